package supabase

import (
	"context"
	"fmt"
	"time"

	"event-ticketing-backend/internal/models"

	"github.com/supabase-community/supabase-go"
)

const paymentSettingsTable = "payment_settings"

type Client struct {
	Supabase *supabase.Client
}

func NewClient(url, key string) (*Client, error) {
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase url and key are required")
	}

	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		Supabase: client,
	}, nil
}

// RestSettingsStore reads and writes payment settings through PostgREST, for
// deployments that only hold the Supabase API key and no database URL.
type RestSettingsStore struct {
	client *supabase.Client
}

func (c *Client) SettingsStore() *RestSettingsStore {
	return &RestSettingsStore{client: c.Supabase}
}

type paymentSettingsRow struct {
	ID                int       `json:"id"`
	PaymentIdentifier string    `json:"payment_identifier"`
	Instructions      string    `json:"instructions"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// withContext runs a call from an SDK that takes no context. The call is raced
// against ctx; if ctx ends first its error is returned and the call is left to
// finish in the background.
func withContext(ctx context.Context, call func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- call()
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *RestSettingsStore) Get(ctx context.Context) (models.PaymentSettings, error) {
	var rows []paymentSettingsRow
	err := withContext(ctx, func() error {
		_, err := s.client.From(paymentSettingsTable).
			Select("id,payment_identifier,instructions,updated_at", "", false).
			Eq("id", "1").
			ExecuteTo(&rows)
		return err
	})
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to query payment settings: %w", err)
	}
	if len(rows) == 0 {
		return models.PaymentSettings{}, nil
	}
	return rows[0].toModel(), nil
}

func (s *RestSettingsStore) Set(ctx context.Context, settings models.PaymentSettings) (models.PaymentSettings, error) {
	row := paymentSettingsRow{
		ID:                1,
		PaymentIdentifier: settings.PaymentIdentifier,
		Instructions:      settings.Instructions,
		UpdatedAt:         time.Now().UTC(),
	}

	var saved []paymentSettingsRow
	err := withContext(ctx, func() error {
		_, err := s.client.From(paymentSettingsTable).
			Upsert(row, "id", "representation", "").
			ExecuteTo(&saved)
		return err
	})
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to upsert payment settings: %w", err)
	}
	if len(saved) == 0 {
		return row.toModel(), nil
	}
	return saved[0].toModel(), nil
}

func (r paymentSettingsRow) toModel() models.PaymentSettings {
	return models.PaymentSettings{
		PaymentIdentifier: r.PaymentIdentifier,
		Instructions:      r.Instructions,
		UpdatedAt:         r.UpdatedAt,
	}
}
