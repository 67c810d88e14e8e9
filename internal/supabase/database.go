package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/orders"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (d *DatabaseClient) OrderStore() *OrderStore {
	return &OrderStore{db: d.db}
}

func (d *DatabaseClient) SettingsStore() *SettingsStore {
	return &SettingsStore{db: d.db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// OrderStore implements orders.Store on the orders table.
type OrderStore struct {
	db *sql.DB
}

const orderColumns = `id, customer_name, customer_email, items, total_amount, payment_reference,
	status, booking_ref, ticket_url, ticket_sent, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var items []byte
	var status string
	err := row.Scan(
		&order.ID, &order.CustomerName, &order.CustomerEmail, &items, &order.TotalAmount,
		&order.PaymentReference, &status, &order.BookingRef, &order.TicketURL, &order.TicketSent,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatus(status)
	if len(items) > 0 {
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items of order %s: %w", order.ID, err)
		}
	}
	return &order, nil
}

func (s *OrderStore) Create(ctx context.Context, order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_email, items, total_amount, payment_reference,
			status, booking_ref, ticket_url, ticket_sent, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING created_at, updated_at
	`, order.ID, order.CustomerName, order.CustomerEmail, string(items), order.TotalAmount, order.PaymentReference,
		string(order.Status), order.BookingRef, order.TicketURL, order.TicketSent, order.CreatedAt,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return orders.ErrBookingRefTaken
		}
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

func (s *OrderStore) List(ctx context.Context) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var out []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		out = append(out, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return out, nil
}

func (s *OrderStore) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := scanOrder(s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", orders.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// Update applies the non-nil fields in one statement. The status and ticket
// guards are part of the WHERE clause, so a concurrent transition, binding or
// delete makes the update match no row instead of overwriting.
func (s *OrderStore) Update(ctx context.Context, id uuid.UUID, update orders.OrderUpdate) (*models.Order, error) {
	var status, expect, bookingRef, ticketURL sql.NullString
	var ticketSent sql.NullBool
	if update.Status != nil {
		status = sql.NullString{String: string(*update.Status), Valid: true}
	}
	if update.ExpectStatus != nil {
		expect = sql.NullString{String: string(*update.ExpectStatus), Valid: true}
	}
	if update.BookingRef != nil {
		bookingRef = sql.NullString{String: *update.BookingRef, Valid: true}
	}
	if update.TicketURL != nil {
		ticketURL = sql.NullString{String: *update.TicketURL, Valid: true}
	}
	if update.TicketSent != nil {
		ticketSent = sql.NullBool{Bool: *update.TicketSent, Valid: true}
	}

	order, err := scanOrder(s.db.QueryRowContext(ctx, `
		UPDATE orders
		SET status = COALESCE($2, status),
			booking_ref = COALESCE($3, booking_ref),
			ticket_url = COALESCE($4, ticket_url),
			ticket_sent = COALESCE($5, ticket_sent),
			updated_at = NOW()
		WHERE id = $1
			AND ($6::text IS NULL OR status = $6::text)
			AND (NOT $7::boolean OR ticket_url IS NULL)
		RETURNING `+orderColumns,
		id, status, bookingRef, ticketURL, ticketSent, expect, update.ExpectNoTicket))
	if err == nil {
		return order, nil
	}
	if isUniqueViolation(err) {
		return nil, orders.ErrBookingRefTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	current, getErr := s.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if update.ExpectNoTicket && current.TicketURL.Valid {
		return nil, fmt.Errorf("%w: order %s already has a ticket", orders.ErrInvalidTransition, id)
	}
	return nil, fmt.Errorf("%w: order %s is %s, expected %s", orders.ErrInvalidTransition, id, current.Status, expect.String)
}

func (s *OrderStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM orders
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", orders.ErrNotFound, id)
	}
	return nil
}

// SettingsStore keeps the single payment_settings row (id = 1).
type SettingsStore struct {
	db *sql.DB
}

func (s *SettingsStore) Get(ctx context.Context) (models.PaymentSettings, error) {
	var settings models.PaymentSettings
	err := s.db.QueryRowContext(ctx, `
		SELECT payment_identifier, instructions, updated_at
		FROM payment_settings
		WHERE id = 1
	`).Scan(&settings.PaymentIdentifier, &settings.Instructions, &settings.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PaymentSettings{}, nil
	}
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to get payment settings: %w", err)
	}
	return settings, nil
}

func (s *SettingsStore) Set(ctx context.Context, settings models.PaymentSettings) (models.PaymentSettings, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO payment_settings (id, payment_identifier, instructions, updated_at)
		VALUES (1, $1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET payment_identifier = EXCLUDED.payment_identifier,
			instructions = EXCLUDED.instructions,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at
	`, settings.PaymentIdentifier, settings.Instructions).Scan(&settings.UpdatedAt)
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to save payment settings: %w", err)
	}
	return settings, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
