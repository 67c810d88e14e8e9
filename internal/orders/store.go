package orders

import (
	"context"

	"event-ticketing-backend/internal/models"

	"github.com/google/uuid"
)

// OrderUpdate is a partial update. Nil fields are left untouched.
//
// When ExpectStatus is set the update only applies if the stored order is
// still in that status; otherwise Update returns ErrInvalidTransition and
// writes nothing. ExpectNoTicket additionally requires that no ticket url is
// stored yet, so an order is never bound to a second file.
type OrderUpdate struct {
	ExpectStatus   *models.OrderStatus
	ExpectNoTicket bool
	Status         *models.OrderStatus
	BookingRef     *string
	TicketURL      *string
	TicketSent     *bool
}

// Store persists orders. Implementations must return ErrNotFound for unknown
// ids and ErrBookingRefTaken when a booking reference is already used by
// another order.
type Store interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, id uuid.UUID, update OrderUpdate) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
