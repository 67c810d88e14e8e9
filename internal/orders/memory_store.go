package orders

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"event-ticketing-backend/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store. Orders list oldest first, with ties
// broken by insertion order.
type MemoryStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*models.Order
	seq    map[uuid.UUID]int
	next   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		orders: make(map[uuid.UUID]*models.Order),
		seq:    make(map[uuid.UUID]int),
	}
}

func (s *MemoryStore) Create(ctx context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return fmt.Errorf("failed to create order: id %s already exists", order.ID)
	}
	if order.BookingRef.Valid && s.bookingRefUsed(order.BookingRef.String, order.ID) {
		return ErrBookingRefTaken
	}

	stored := cloneOrder(order)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = stored.CreatedAt
	}
	s.orders[order.ID] = stored
	s.seq[order.ID] = s.next
	s.next++
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, *cloneOrder(o))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return s.seq[out[i].ID] < s.seq[out[j].ID]
	})
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return cloneOrder(o), nil
}

func (s *MemoryStore) Update(ctx context.Context, id uuid.UUID, update OrderUpdate) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if update.ExpectStatus != nil && o.Status != *update.ExpectStatus {
		return nil, fmt.Errorf("%w: order %s is %s, expected %s", ErrInvalidTransition, id, o.Status, *update.ExpectStatus)
	}
	if update.ExpectNoTicket && o.TicketURL.Valid {
		return nil, fmt.Errorf("%w: order %s already has a ticket", ErrInvalidTransition, id)
	}
	if update.BookingRef != nil && s.bookingRefUsed(*update.BookingRef, id) {
		return nil, ErrBookingRefTaken
	}

	if update.Status != nil {
		o.Status = *update.Status
	}
	if update.BookingRef != nil {
		o.BookingRef.String, o.BookingRef.Valid = *update.BookingRef, true
	}
	if update.TicketURL != nil {
		o.TicketURL.String, o.TicketURL.Valid = *update.TicketURL, true
	}
	if update.TicketSent != nil {
		o.TicketSent = *update.TicketSent
	}
	o.UpdatedAt = time.Now().UTC()
	return cloneOrder(o), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.orders, id)
	delete(s.seq, id)
	return nil
}

func (s *MemoryStore) bookingRefUsed(ref string, except uuid.UUID) bool {
	for id, o := range s.orders {
		if id != except && o.BookingRef.Valid && o.BookingRef.String == ref {
			return true
		}
	}
	return false
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	if o.Items != nil {
		c.Items = append([]models.LineItem(nil), o.Items...)
	}
	return &c
}
