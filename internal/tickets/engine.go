package tickets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"event-ticketing-backend/internal/metrics"
	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/orders"

	"github.com/google/uuid"
)

var (
	ErrNothingToDo   = errors.New("nothing to do")
	ErrUploadFailure = errors.New("ticket upload failed")
)

// Uploader stores a ticket file and returns a durable URL for it.
type Uploader interface {
	Store(ctx context.Context, data []byte, filename string) (string, error)
}

// Remover is implemented by uploaders that can delete a stored file again. The
// engine uses it to drop an upload whose order could not be updated.
type Remover interface {
	Remove(ctx context.Context, url string) error
}

// OrderSource is the part of the order lifecycle the engine depends on.
type OrderSource interface {
	List(ctx context.Context, filter orders.ListFilter) ([]models.Order, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields orders.FulfillmentFields) (*models.Order, error)
}

type Options struct {
	// Category limits the candidate pool to orders with a line item in this category.
	Category string
	// ConfirmFallback applies the positional fallback pairs after exact matching.
	ConfirmFallback bool
}

type Assignment struct {
	OrderID    uuid.UUID
	BookingRef string
	Filename   string
	TicketURL  string
	Phase      Phase
}

type Failure struct {
	Filename string
	OrderID  uuid.UUID
	Stage    string
	Err      error
}

type Summary struct {
	MatchedByRef      int
	AutoAssigned      int
	UnmatchedFiles    int
	UnmatchedOrders   int
	FallbackAvailable int
	Assignments       []Assignment
	Failures          []Failure
	Warnings          []string
}

type Engine struct {
	orders   OrderSource
	uploader Uploader
}

func NewEngine(orders OrderSource, uploader Uploader) *Engine {
	return &Engine{
		orders:   orders,
		uploader: uploader,
	}
}

// Candidates returns approved orders without a ticket, optionally restricted
// to a category, in store order.
func (e *Engine) Candidates(ctx context.Context, category string) ([]models.Order, error) {
	approved, err := e.orders.List(ctx, orders.ListFilter{Status: models.StatusApproved, Category: category})
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate orders: %w", err)
	}

	candidates := make([]models.Order, 0, len(approved))
	for i := range approved {
		if approved[i].AwaitingTicket() {
			candidates = append(candidates, approved[i])
		}
	}
	return candidates, nil
}

// Plan matches files against the current candidate pool without writing anything.
func (e *Engine) Plan(ctx context.Context, files []File, opts Options) (*Plan, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files uploaded", ErrNothingToDo)
	}

	candidates, err := e.Candidates(ctx, opts.Category)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no approved orders are waiting for a ticket", ErrNothingToDo)
	}

	return Match(files, candidates), nil
}

// Execute applies a plan binding by binding. Each binding is independent: a
// failed upload or update is recorded and the batch continues. If ctx is
// cancelled the bindings applied so far stay in place and the partial summary
// is returned together with the context error.
func (e *Engine) Execute(ctx context.Context, plan *Plan, confirmFallback bool) (*Summary, error) {
	summary := &Summary{
		Warnings: append([]string(nil), plan.Warnings...),
	}

	bindings := plan.Exact
	if confirmFallback {
		bindings = append(append([]Binding(nil), plan.Exact...), plan.Fallback...)
	} else {
		summary.FallbackAvailable = len(plan.Fallback)
	}

	var execErr error
	for _, b := range bindings {
		if err := ctx.Err(); err != nil {
			execErr = err
			break
		}

		assignment, failure := e.apply(ctx, b)
		if failure != nil {
			summary.Failures = append(summary.Failures, *failure)
			metrics.AssignmentFailures.WithLabelValues(failure.Stage).Inc()
			continue
		}

		summary.Assignments = append(summary.Assignments, *assignment)
		metrics.TicketsAssigned.WithLabelValues(string(b.Phase)).Inc()
		if b.Phase == PhaseExact {
			summary.MatchedByRef++
		} else {
			summary.AutoAssigned++
		}
	}

	bound := summary.MatchedByRef + summary.AutoAssigned
	summary.UnmatchedFiles = plan.TotalFiles - bound
	summary.UnmatchedOrders = plan.TotalCandidates - bound
	return summary, execErr
}

// Assign plans and executes in one step.
func (e *Engine) Assign(ctx context.Context, files []File, opts Options) (*Summary, error) {
	plan, err := e.Plan(ctx, files, opts)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, plan, opts.ConfirmFallback)
}

func (e *Engine) apply(ctx context.Context, b Binding) (*Assignment, *Failure) {
	started := time.Now()
	url, err := e.uploader.Store(ctx, b.File.Content, b.File.Filename)
	metrics.UploadDuration.Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, &Failure{
			Filename: b.File.Filename,
			OrderID:  b.Order.ID,
			Stage:    "upload",
			Err:      fmt.Errorf("%w: %s: %v", ErrUploadFailure, b.File.Filename, err),
		}
	}

	sent := true
	if _, err := e.orders.UpdateFields(ctx, b.Order.ID, orders.FulfillmentFields{
		TicketURL:       &url,
		TicketSent:      &sent,
		FirstTicketOnly: true,
	}); err != nil {
		failure := &Failure{
			Filename: b.File.Filename,
			OrderID:  b.Order.ID,
			Stage:    "update",
			Err:      fmt.Errorf("failed to attach ticket to order %s: %w", b.Order.ID, err),
		}
		if remover, ok := e.uploader.(Remover); ok {
			if rmErr := remover.Remove(ctx, url); rmErr != nil {
				failure.Err = fmt.Errorf("%w (stored file %s was not removed: %v)", failure.Err, url, rmErr)
			}
		}
		return nil, failure
	}

	return &Assignment{
		OrderID:    b.Order.ID,
		BookingRef: b.Order.BookingRef.String,
		Filename:   b.File.Filename,
		TicketURL:  url,
		Phase:      b.Phase,
	}, nil
}
