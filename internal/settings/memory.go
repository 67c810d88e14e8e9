package settings

import (
	"context"
	"sync"
	"time"

	"event-ticketing-backend/internal/models"
)

type MemoryStore struct {
	mu       sync.RWMutex
	settings models.PaymentSettings
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryStore) Get(ctx context.Context) (models.PaymentSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, nil
}

func (m *MemoryStore) Set(ctx context.Context, s models.PaymentSettings) (models.PaymentSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.now()
	m.settings = s
	return s, nil
}
