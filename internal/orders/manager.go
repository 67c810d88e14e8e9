package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"event-ticketing-backend/internal/metrics"
	"event-ticketing-backend/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxBookingRefAttempts = 5

// Manager owns every status transition of an order. Ticket fields are only
// written through UpdateFields.
type Manager struct {
	store         Store
	now           func() time.Time
	newBookingRef func() (string, error)
	deleteTTL     time.Duration

	mu             sync.Mutex
	pendingDeletes map[string]pendingDelete
}

type pendingDelete struct {
	orderID   uuid.UUID
	expiresAt time.Time
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithBookingRefGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.newBookingRef = gen }
}

// WithDeleteConfirmTTL sets how long a delete confirmation token stays valid.
func WithDeleteConfirmTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.deleteTTL = ttl }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:          store,
		now:            func() time.Time { return time.Now().UTC() },
		newBookingRef:  NewBookingRef,
		deleteTTL:      5 * time.Minute,
		pendingDeletes: make(map[string]pendingDelete),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type SubmitOrder struct {
	CustomerName     string
	CustomerEmail    string
	PaymentReference string
	Items            []models.LineItem
}

// Submit records a new customer order in the pending state.
func (m *Manager) Submit(ctx context.Context, req SubmitOrder) (*models.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	email := strings.TrimSpace(req.CustomerEmail)
	paymentRef := strings.TrimSpace(req.PaymentReference)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	case email == "":
		return nil, fmt.Errorf("%w: customer email is required", ErrInvalidOrder)
	case paymentRef == "":
		return nil, fmt.Errorf("%w: payment reference is required", ErrInvalidOrder)
	case len(req.Items) == 0:
		return nil, fmt.Errorf("%w: at least one line item is required", ErrInvalidOrder)
	}

	items := make([]models.LineItem, 0, len(req.Items))
	total := decimal.Zero
	for i, item := range req.Items {
		category := strings.TrimSpace(item.Category)
		if category == "" {
			return nil, fmt.Errorf("%w: item %d has no category", ErrInvalidOrder, i)
		}
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has quantity %d", ErrInvalidOrder, i, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %d has a negative price", ErrInvalidOrder, i)
		}
		items = append(items, models.LineItem{Category: category, Quantity: item.Quantity, UnitPrice: item.UnitPrice})
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := m.now()
	order := &models.Order{
		ID:               uuid.New(),
		CustomerName:     name,
		CustomerEmail:    email,
		Items:            items,
		TotalAmount:      total,
		PaymentReference: paymentRef,
		Status:           models.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := m.store.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	metrics.OrderTransitions.WithLabelValues("submit").Inc()
	return order, nil
}

func (m *Manager) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return m.store.Get(ctx, id)
}

type ListFilter struct {
	Status   models.OrderStatus
	Category string
}

func (m *Manager) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	all, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if filter.Status == "" && filter.Category == "" {
		return all, nil
	}

	out := make([]models.Order, 0, len(all))
	for i := range all {
		if filter.Status != "" && all[i].Status != filter.Status {
			continue
		}
		if filter.Category != "" && !all[i].HasCategory(filter.Category) {
			continue
		}
		out = append(out, all[i])
	}
	return out, nil
}

type GroupedOrders struct {
	Pending  []models.Order
	Approved []models.Order
	Rejected []models.Order
}

// ListGrouped returns every order bucketed by status, each bucket in store order.
func (m *Manager) ListGrouped(ctx context.Context) (*GroupedOrders, error) {
	all, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	grouped := &GroupedOrders{}
	for _, o := range all {
		switch o.Status {
		case models.StatusPending:
			grouped.Pending = append(grouped.Pending, o)
		case models.StatusApproved:
			grouped.Approved = append(grouped.Approved, o)
		case models.StatusRejected:
			grouped.Rejected = append(grouped.Rejected, o)
		}
	}
	return grouped, nil
}

// Approve moves a pending order to approved and assigns its booking reference.
// Payment evidence is expected to have been checked by the operator already.
func (m *Manager) Approve(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, models.StatusApproved) {
		return nil, fmt.Errorf("%w: cannot approve order %s in status %s", ErrInvalidTransition, id, order.Status)
	}

	pending := models.StatusPending
	approved := models.StatusApproved
	for attempt := 0; attempt < maxBookingRefAttempts; attempt++ {
		ref, err := m.newBookingRef()
		if err != nil {
			return nil, err
		}

		updated, err := m.store.Update(ctx, id, OrderUpdate{
			ExpectStatus: &pending,
			Status:       &approved,
			BookingRef:   &ref,
		})
		if errors.Is(err, ErrBookingRefTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.OrderTransitions.WithLabelValues("approve").Inc()
		return updated, nil
	}

	return nil, fmt.Errorf("failed to assign a unique booking reference to order %s after %d attempts", id, maxBookingRefAttempts)
}

func (m *Manager) Reject(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(order.Status, models.StatusRejected) {
		return nil, fmt.Errorf("%w: cannot reject order %s in status %s", ErrInvalidTransition, id, order.Status)
	}

	pending := models.StatusPending
	rejected := models.StatusRejected
	updated, err := m.store.Update(ctx, id, OrderUpdate{ExpectStatus: &pending, Status: &rejected})
	if err != nil {
		return nil, err
	}
	metrics.OrderTransitions.WithLabelValues("reject").Inc()
	return updated, nil
}

// Delete removes the order unconditionally. Callers at the edge of the system
// go through RequestDelete and ConfirmDelete instead.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.OrderTransitions.WithLabelValues("delete").Inc()
	return nil
}

type DeleteRequest struct {
	OrderID   uuid.UUID
	Token     string
	ExpiresAt time.Time
}

// RequestDelete issues a single-use token that ConfirmDelete must present.
func (m *Manager) RequestDelete(ctx context.Context, id uuid.UUID) (*DeleteRequest, error) {
	if _, err := m.store.Get(ctx, id); err != nil {
		return nil, err
	}

	now := m.now()
	req := &DeleteRequest{
		OrderID:   id,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(m.deleteTTL),
	}

	m.mu.Lock()
	for token, p := range m.pendingDeletes {
		if !now.Before(p.expiresAt) {
			delete(m.pendingDeletes, token)
		}
	}
	m.pendingDeletes[req.Token] = pendingDelete{orderID: id, expiresAt: req.ExpiresAt}
	m.mu.Unlock()

	return req, nil
}

func (m *Manager) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {
	m.mu.Lock()
	p, ok := m.pendingDeletes[token]
	if ok && p.orderID == id {
		delete(m.pendingDeletes, token)
	}
	m.mu.Unlock()

	if !ok || p.orderID != id {
		return fmt.Errorf("%w: unknown confirmation token for order %s", ErrDeleteNotConfirmed, id)
	}
	if !m.now().Before(p.expiresAt) {
		return fmt.Errorf("%w: confirmation token for order %s expired", ErrDeleteNotConfirmed, id)
	}
	return m.Delete(ctx, id)
}

// FulfillmentFields are the ticket fields the matching engine is allowed to set.
// With FirstTicketOnly the write fails if the order already holds a ticket.
type FulfillmentFields struct {
	TicketURL       *string
	TicketSent      *bool
	FirstTicketOnly bool
}

func (m *Manager) UpdateFields(ctx context.Context, id uuid.UUID, fields FulfillmentFields) (*models.Order, error) {
	order, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != models.StatusApproved {
		return nil, fmt.Errorf("%w: order %s is %s, ticket fields need an approved order", ErrInvalidTransition, id, order.Status)
	}
	if fields.TicketURL != nil && strings.TrimSpace(*fields.TicketURL) == "" {
		return nil, fmt.Errorf("%w: ticket url must not be empty", ErrInvalidOrder)
	}
	if fields.FirstTicketOnly && order.TicketURL.Valid {
		return nil, fmt.Errorf("%w: order %s already has a ticket", ErrInvalidTransition, id)
	}
	if fields.TicketSent != nil && *fields.TicketSent && fields.TicketURL == nil && !order.TicketURL.Valid {
		return nil, fmt.Errorf("%w: order %s has no ticket to mark as sent", ErrInvalidOrder, id)
	}

	approved := models.StatusApproved
	return m.store.Update(ctx, id, OrderUpdate{
		ExpectStatus:   &approved,
		ExpectNoTicket: fields.FirstTicketOnly,
		TicketURL:      fields.TicketURL,
		TicketSent:     fields.TicketSent,
	})
}
