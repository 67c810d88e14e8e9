package notify

import (
	"context"
	"log/slog"
	"sync"
)

// LogMailer writes messages to the log instead of sending them. It is meant
// for local runs where no mail provider is configured.
type LogMailer struct {
	logger *slog.Logger

	mu   sync.Mutex
	sent []Message
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.logger.InfoContext(ctx, "ticket email",
		slog.String("to", msg.ToEmail),
		slog.String("subject", msg.Subject),
		slog.String("ticket_url", msg.TicketURL),
		slog.String("booking_ref", msg.BookingRef),
	)

	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	return nil
}

// Sent returns a copy of every message recorded so far.
func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
