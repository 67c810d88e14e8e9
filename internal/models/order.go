package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending  OrderStatus = "pending"
	StatusApproved OrderStatus = "approved"
	StatusRejected OrderStatus = "rejected"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// LineItem is one ticket category within an order.
type LineItem struct {
	Category  string          `json:"category"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Order struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerEmail    string
	Items            []LineItem
	TotalAmount      decimal.Decimal
	PaymentReference string
	Status           OrderStatus
	BookingRef       sql.NullString
	TicketURL        sql.NullString
	TicketSent       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasCategory reports whether any line item is for the given category.
// Category names compare case-insensitively.
func (o *Order) HasCategory(category string) bool {
	for _, item := range o.Items {
		if strings.EqualFold(strings.TrimSpace(item.Category), strings.TrimSpace(category)) {
			return true
		}
	}
	return false
}

// AwaitingTicket reports whether the order is approved and still has no ticket attached.
func (o *Order) AwaitingTicket() bool {
	return o.Status == StatusApproved && !o.TicketURL.Valid
}
