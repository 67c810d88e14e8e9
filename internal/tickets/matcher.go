package tickets

import (
	"fmt"
	"strings"

	"event-ticketing-backend/internal/models"
)

// File is one uploaded ticket file of a batch.
type File struct {
	Filename string
	Content  []byte
}

type Phase string

const (
	PhaseExact    Phase = "exact"
	PhaseFallback Phase = "fallback"
)

type Binding struct {
	File  File
	Order models.Order
	Phase Phase
}

// Plan is the outcome of matching a batch against a candidate pool. Nothing in
// a Plan has been written yet.
type Plan struct {
	Exact []Binding
	// Fallback pairs the files and orders left over by Exact. They are only
	// applied when the operator confirms them.
	Fallback        []Binding
	LeftoverFiles   []File
	LeftoverOrders  []models.Order
	TotalFiles      int
	TotalCandidates int
	Warnings        []string
}

// Match runs both phases over files (in batch order) and candidates (in pool
// order).
//
// Phase one binds each file to the first remaining candidate whose booking
// reference occurs in the filename. Phase two pairs whatever is left, one file
// with one order, purely by position.
func Match(files []File, candidates []models.Order) *Plan {
	plan := &Plan{
		TotalFiles:      len(files),
		TotalCandidates: len(candidates),
	}

	pool := append([]models.Order(nil), candidates...)
	for _, file := range files {
		idx, others := firstReferenceMatch(file.Filename, pool)
		if idx < 0 {
			plan.LeftoverFiles = append(plan.LeftoverFiles, file)
			continue
		}
		if len(others) > 0 {
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(
				"file %q also matches booking references %s; bound to %s",
				file.Filename, strings.Join(others, ", "), pool[idx].BookingRef.String))
		}
		plan.Exact = append(plan.Exact, Binding{File: file, Order: pool[idx], Phase: PhaseExact})
		pool = append(pool[:idx], pool[idx+1:]...)
	}
	plan.LeftoverOrders = pool

	n := min(len(plan.LeftoverFiles), len(plan.LeftoverOrders))
	for i := 0; i < n; i++ {
		plan.Fallback = append(plan.Fallback, Binding{
			File:  plan.LeftoverFiles[i],
			Order: plan.LeftoverOrders[i],
			Phase: PhaseFallback,
		})
	}
	return plan
}

// firstReferenceMatch returns the index of the first order whose booking
// reference is contained in filename, plus the references of any later orders
// that would also have matched.
func firstReferenceMatch(filename string, pool []models.Order) (int, []string) {
	idx := -1
	var others []string
	for i := range pool {
		ref := pool[i].BookingRef
		if !ref.Valid || ref.String == "" || !strings.Contains(filename, ref.String) {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		others = append(others, ref.String)
	}
	return idx, others
}
