package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"event-ticketing-backend/internal/supabase"

	"github.com/google/uuid"
)

// MemoryBackend keeps ticket files in process memory and hands out URLs served
// by the mock tickets route. URLs stop resolving when the process exits, so it
// is only meant for local runs without storage credentials.
type MemoryBackend struct {
	baseURL string

	mu    sync.RWMutex
	blobs map[string]blob
}

type blob struct {
	data        []byte
	contentType string
}

func NewMemoryBackend(baseURL string) *MemoryBackend {
	return &MemoryBackend{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		blobs:   make(map[string]blob),
	}
}

func (m *MemoryBackend) Store(ctx context.Context, data []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := strings.TrimPrefix(supabase.TicketPath(uuid.New(), filename), "tickets/")
	m.mu.Lock()
	m.blobs[key] = blob{
		data:        append([]byte(nil), data...),
		contentType: supabase.ContentType(filename),
	}
	m.mu.Unlock()

	return fmt.Sprintf("%s/tickets/mock/%s", m.baseURL, key), nil
}

// Remove forgets the file behind a URL returned by Store.
func (m *MemoryBackend) Remove(ctx context.Context, fileURL string) error {
	prefix := m.baseURL + "/tickets/mock/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("url %s was not issued by the mock backend", fileURL)
	}
	m.mu.Lock()
	delete(m.blobs, strings.TrimPrefix(fileURL, prefix))
	m.mu.Unlock()
	return nil
}

// Open returns the stored bytes and content type for key.
func (m *MemoryBackend) Open(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[key]
	if !ok {
		return nil, "", false
	}
	return b.data, b.contentType, true
}
