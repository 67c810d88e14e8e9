package settings

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"event-ticketing-backend/internal/models"

	qrcode "github.com/skip2/go-qrcode"
)

// PreviewAmount is the nominal amount encoded in preview links so an operator
// can scan them without risking a real payment.
const PreviewAmount = "1.00"

const previewCurrency = "INR"

var ErrInvalidSettings = errors.New("invalid payment settings")

// Store persists the single payment settings record.
type Store interface {
	Get(ctx context.Context) (models.PaymentSettings, error)
	Set(ctx context.Context, s models.PaymentSettings) (models.PaymentSettings, error)
}

type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Get returns the current settings, or the zero value when nothing was saved yet.
func (r *Registry) Get(ctx context.Context) (models.PaymentSettings, error) {
	s, err := r.store.Get(ctx)
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to load payment settings: %w", err)
	}
	return s, nil
}

// Set replaces the whole record. Fields left empty are cleared, not kept.
func (r *Registry) Set(ctx context.Context, s models.PaymentSettings) (models.PaymentSettings, error) {
	s.PaymentIdentifier = strings.TrimSpace(s.PaymentIdentifier)
	s.Instructions = strings.TrimSpace(s.Instructions)
	if s.PaymentIdentifier == "" {
		return models.PaymentSettings{}, fmt.Errorf("%w: payment identifier is required", ErrInvalidSettings)
	}

	saved, err := r.store.Set(ctx, s)
	if err != nil {
		return models.PaymentSettings{}, fmt.Errorf("failed to save payment settings: %w", err)
	}
	return saved, nil
}

// PreviewURI derives the payment link shown in the checkout preview.
func PreviewURI(s models.PaymentSettings) (string, error) {
	id := strings.TrimSpace(s.PaymentIdentifier)
	if id == "" {
		return "", fmt.Errorf("%w: payment identifier is not configured", ErrInvalidSettings)
	}
	// VPAs are written as name@bank; keep the @ readable for scanner apps.
	pa := strings.ReplaceAll(url.QueryEscape(id), "%40", "@")
	return "upi://pay?pa=" + pa + "&am=" + PreviewAmount + "&cu=" + previewCurrency, nil
}

// PreviewQR renders PreviewURI as a square PNG of the given size in pixels.
func PreviewQR(s models.PaymentSettings, size int) ([]byte, error) {
	uri, err := PreviewURI(s)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(uri, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to render payment qr code: %w", err)
	}
	return png, nil
}
