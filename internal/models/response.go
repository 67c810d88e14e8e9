package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	ID               string          `json:"order_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	Items            []LineItem      `json:"items"`
	TotalAmount      decimal.Decimal `json:"total_amount" swaggertype:"string"`
	PaymentReference string          `json:"payment_reference"`
	Status           OrderStatus     `json:"status"`
	BookingRef       string          `json:"booking_ref,omitempty"`
	TicketURL        string          `json:"ticket_url,omitempty"`
	TicketSent       bool            `json:"ticket_sent"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func NewOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID.String(),
		CustomerName:     o.CustomerName,
		CustomerEmail:    o.CustomerEmail,
		Items:            o.Items,
		TotalAmount:      o.TotalAmount,
		PaymentReference: o.PaymentReference,
		Status:           o.Status,
		TicketSent:       o.TicketSent,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if resp.Items == nil {
		resp.Items = []LineItem{}
	}
	if o.BookingRef.Valid {
		resp.BookingRef = o.BookingRef.String
	}
	if o.TicketURL.Valid {
		resp.TicketURL = o.TicketURL.String
	}
	return resp
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type GroupedOrdersResponse struct {
	Pending  []OrderResponse `json:"pending"`
	Approved []OrderResponse `json:"approved"`
	Rejected []OrderResponse `json:"rejected"`
}

type DeleteRequestResponse struct {
	OrderID   string    `json:"order_id"`
	Token     string    `json:"confirm_token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type DispatchResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type AssignmentInfo struct {
	OrderID    string `json:"order_id"`
	BookingRef string `json:"booking_ref"`
	Filename   string `json:"filename"`
	TicketURL  string `json:"ticket_url,omitempty"`
	Phase      string `json:"phase"`
}

type UploadErrorInfo struct {
	Filename string `json:"filename,omitempty"`
	OrderID  string `json:"order_id,omitempty"`
	Error    string `json:"error"`
	Stage    string `json:"stage"`
}

type AssignResponse struct {
	DryRun            bool              `json:"dry_run"`
	MatchedByRef      int               `json:"matched_by_ref"`
	AutoAssigned      int               `json:"auto_assigned"`
	UnmatchedFiles    int               `json:"unmatched_files"`
	UnmatchedOrders   int               `json:"unmatched_orders"`
	FallbackAvailable int               `json:"fallback_available"`
	Assignments       []AssignmentInfo  `json:"assignments"`
	Errors            []UploadErrorInfo `json:"errors,omitempty"`
	Warnings          []string          `json:"warnings,omitempty"`
	Message           string            `json:"message,omitempty"`
	Interrupted       string            `json:"interrupted,omitempty"`
}

type PaymentPreviewResponse struct {
	PaymentIdentifier string `json:"payment_identifier"`
	PreviewURI        string `json:"preview_uri"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
