package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"event-ticketing-backend/internal/metrics"
	"event-ticketing-backend/internal/models"

	"github.com/google/uuid"
)

var (
	ErrNoTicket        = errors.New("order has no ticket to send")
	ErrDispatchFailure = errors.New("ticket dispatch failed")
)

// Message is everything a mail backend needs to deliver one ticket.
type Message struct {
	ToName     string
	ToEmail    string
	Subject    string
	TicketURL  string
	EventTitle string
	BookingRef string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type OrderGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// Dispatcher emails a customer the link to their ticket. It never changes the
// order: a failed send is reported to the caller, who may retry by hand.
type Dispatcher struct {
	mailer     Mailer
	orders     OrderGetter
	eventTitle string
}

func NewDispatcher(mailer Mailer, orders OrderGetter, eventTitle string) *Dispatcher {
	return &Dispatcher{
		mailer:     mailer,
		orders:     orders,
		eventTitle: eventTitle,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, order *models.Order) error {
	if !order.TicketURL.Valid || strings.TrimSpace(order.TicketURL.String) == "" {
		metrics.Dispatches.WithLabelValues("no_ticket").Inc()
		return fmt.Errorf("%w: order %s", ErrNoTicket, order.ID)
	}

	msg := Message{
		ToName:     order.CustomerName,
		ToEmail:    order.CustomerEmail,
		Subject:    d.subject(order),
		TicketURL:  order.TicketURL.String,
		EventTitle: d.eventTitle,
		BookingRef: order.BookingRef.String,
	}
	if err := d.mailer.Send(ctx, msg); err != nil {
		metrics.Dispatches.WithLabelValues("failed").Inc()
		return fmt.Errorf("%w: order %s: %v", ErrDispatchFailure, order.ID, err)
	}

	metrics.Dispatches.WithLabelValues("sent").Inc()
	return nil
}

// DispatchOrder loads the order by id and dispatches it.
func (d *Dispatcher) DispatchOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := d.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Dispatch(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (d *Dispatcher) subject(order *models.Order) string {
	subject := "Your ticket for " + d.eventTitle
	if order.BookingRef.Valid {
		subject += " (" + order.BookingRef.String + ")"
	}
	return subject
}
