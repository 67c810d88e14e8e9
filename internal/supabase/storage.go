package supabase

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
	timeout time.Duration

	// Backoffs is the wait before each retry, indexed by attempt.
	Backoffs   []time.Duration
	MaxRetries int
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string, timeout time.Duration) (*StorageClient, error) {
	if supabaseURL == "" || serviceRoleKey == "" {
		return nil, fmt.Errorf("supabase url and key are required for ticket storage")
	}
	// Ensure URL doesn't have trailing slash
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		client:     client,
		bucket:     bucket,
		baseURL:    baseURL,
		timeout:    timeout,
		Backoffs:   []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		MaxRetries: 3,
	}, nil
}

// Store uploads a ticket file and returns its public URL. Each attempt is
// bounded by the client timeout and writes to its own path, so an attempt that
// completes after timing out cannot collide with the retry. The last error is
// returned once retries are exhausted.
func (s *StorageClient) Store(ctx context.Context, data []byte, filename string) (string, error) {
	var storagePath string
	err := s.RetryWithBackoff(ctx, func() error {
		storagePath = TicketPath(uuid.New(), filename)
		return s.upload(ctx, storagePath, data)
	}, s.MaxRetries)
	if err != nil {
		return "", fmt.Errorf("failed to upload ticket %s: %w", filename, err)
	}

	return s.GetPublicURL(storagePath), nil
}

func (s *StorageClient) upload(ctx context.Context, storagePath string, data []byte) error {
	contentType := ContentType(storagePath)
	upsert := false

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := withContext(ctx, func() error {
		_, err := s.client.UploadFile(s.bucket, storagePath, bytes.NewReader(data), storage.FileOptions{
			ContentType: &contentType,
			Upsert:      &upsert,
		})
		return err
	})
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("upload of %s did not finish: %w", storagePath, err)
	}
	return err
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

func (s *StorageClient) DeleteFile(storagePath string) error {
	_, err := s.client.RemoveFile(s.bucket, []string{storagePath})
	return err
}

// Remove deletes a file previously returned by Store, given its public URL.
func (s *StorageClient) Remove(ctx context.Context, publicURL string) error {
	prefix := s.GetPublicURL("")
	if !strings.HasPrefix(publicURL, prefix) {
		return fmt.Errorf("url %s is not in bucket %s", publicURL, s.bucket)
	}
	return s.DeleteFile(strings.TrimPrefix(publicURL, prefix))
}

func (s *StorageClient) RetryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if i == maxRetries-1 || i >= len(s.Backoffs) {
			continue
		}
		select {
		case <-time.After(s.Backoffs[i]):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted after %d attempts: %w", i+1, ctx.Err())
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}

// TicketPath builds tickets/{key}/{filename}. The key keeps two uploads with
// the same filename apart.
func TicketPath(key uuid.UUID, filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "ticket"
	}
	return fmt.Sprintf("tickets/%s/%s", key.String(), name)
}

func ContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
