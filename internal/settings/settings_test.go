package settings_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(ctx context.Context) (models.PaymentSettings, error) {
	return models.PaymentSettings{}, errors.New("connection refused")
}

func (failingStore) Set(ctx context.Context, s models.PaymentSettings) (models.PaymentSettings, error) {
	return models.PaymentSettings{}, errors.New("connection refused")
}

func TestRegistry_GetBeforeSetReturnsZeroValue(t *testing.T) {
	r := settings.NewRegistry(settings.NewMemoryStore())

	s, err := r.Get(context.Background())
	require.NoError(t, err)
	assert.Empty(t, s.PaymentIdentifier)
	assert.Empty(t, s.Instructions)
}

func TestRegistry_SetIsFullReplace(t *testing.T) {
	ctx := context.Background()
	r := settings.NewRegistry(settings.NewMemoryStore())

	_, err := r.Set(ctx, models.PaymentSettings{PaymentIdentifier: "events@upi", Instructions: "Add your name in the note"})
	require.NoError(t, err)

	saved, err := r.Set(ctx, models.PaymentSettings{PaymentIdentifier: " box-office@upi "})
	require.NoError(t, err)
	assert.Equal(t, "box-office@upi", saved.PaymentIdentifier)
	assert.Empty(t, saved.Instructions)
	assert.False(t, saved.UpdatedAt.IsZero())

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestRegistry_SetRejectsEmptyIdentifier(t *testing.T) {
	ctx := context.Background()
	r := settings.NewRegistry(settings.NewMemoryStore())
	_, err := r.Set(ctx, models.PaymentSettings{PaymentIdentifier: "events@upi"})
	require.NoError(t, err)

	_, err = r.Set(ctx, models.PaymentSettings{PaymentIdentifier: "   ", Instructions: "x"})
	assert.ErrorIs(t, err, settings.ErrInvalidSettings)

	got, err := r.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "events@upi", got.PaymentIdentifier)
}

func TestRegistry_StoreErrorsAreWrapped(t *testing.T) {
	r := settings.NewRegistry(failingStore{})

	_, err := r.Get(context.Background())
	assert.ErrorContains(t, err, "connection refused")

	_, err = r.Set(context.Background(), models.PaymentSettings{PaymentIdentifier: "events@upi"})
	assert.ErrorContains(t, err, "connection refused")
}

func TestPreviewURI(t *testing.T) {
	s := models.PaymentSettings{PaymentIdentifier: "events@upi", Instructions: "ignored"}

	uri, err := settings.PreviewURI(s)
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=events@upi&am=1.00&cu=INR", uri)

	again, err := settings.PreviewURI(s)
	require.NoError(t, err)
	assert.Equal(t, uri, again)
}

func TestPreviewURI_EscapesIdentifier(t *testing.T) {
	uri, err := settings.PreviewURI(models.PaymentSettings{PaymentIdentifier: "box office&co@upi"})
	require.NoError(t, err)
	assert.Equal(t, "upi://pay?pa=box+office%26co@upi&am=1.00&cu=INR", uri)
}

func TestPreviewURI_RequiresIdentifier(t *testing.T) {
	_, err := settings.PreviewURI(models.PaymentSettings{})
	assert.ErrorIs(t, err, settings.ErrInvalidSettings)
}

func TestPreviewQR(t *testing.T) {
	png, err := settings.PreviewQR(models.PaymentSettings{PaymentIdentifier: "events@upi"}, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))

	_, err = settings.PreviewQR(models.PaymentSettings{}, 256)
	assert.ErrorIs(t, err, settings.ErrInvalidSettings)
}
