package tickets_test

import (
	"database/sql"
	"testing"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/tickets"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedOrder(ref string) models.Order {
	return models.Order{
		ID:         uuid.New(),
		Status:     models.StatusApproved,
		BookingRef: sql.NullString{String: ref, Valid: ref != ""},
	}
}

func files(names ...string) []tickets.File {
	out := make([]tickets.File, len(names))
	for i, n := range names {
		out[i] = tickets.File{Filename: n, Content: []byte("%PDF-" + n)}
	}
	return out
}

func TestMatch_ExactReferencesRegardlessOfOrder(t *testing.T) {
	o100 := approvedOrder("100")
	o200 := approvedOrder("200")

	for _, pool := range [][]models.Order{{o100, o200}, {o200, o100}} {
		for _, batch := range [][]tickets.File{files("A-100.pdf", "B-200.pdf"), files("B-200.pdf", "A-100.pdf")} {
			plan := tickets.Match(batch, pool)

			require.Len(t, plan.Exact, 2)
			bound := map[string]uuid.UUID{}
			for _, b := range plan.Exact {
				bound[b.File.Filename] = b.Order.ID
				assert.Equal(t, tickets.PhaseExact, b.Phase)
			}
			assert.Equal(t, o100.ID, bound["A-100.pdf"])
			assert.Equal(t, o200.ID, bound["B-200.pdf"])
			assert.Empty(t, plan.LeftoverFiles)
			assert.Empty(t, plan.LeftoverOrders)
			assert.Empty(t, plan.Fallback)
		}
	}
}

func TestMatch_FallbackPairsLeftoversInOrder(t *testing.T) {
	a := approvedOrder("EVT-AAAA2222")
	b := approvedOrder("EVT-BBBB3333")

	plan := tickets.Match(files("one.pdf", "two.pdf", "three.pdf"), []models.Order{a, b})

	assert.Empty(t, plan.Exact)
	require.Len(t, plan.Fallback, 2)
	assert.Equal(t, "one.pdf", plan.Fallback[0].File.Filename)
	assert.Equal(t, a.ID, plan.Fallback[0].Order.ID)
	assert.Equal(t, "two.pdf", plan.Fallback[1].File.Filename)
	assert.Equal(t, b.ID, plan.Fallback[1].Order.ID)
	assert.Equal(t, tickets.PhaseFallback, plan.Fallback[0].Phase)
	assert.Len(t, plan.LeftoverFiles, 3)
}

func TestMatch_AmbiguousFilenameFirstCandidateWins(t *testing.T) {
	ten := approvedOrder("10")
	hundred := approvedOrder("100")

	plan := tickets.Match(files("B-100.pdf", "A-10.pdf"), []models.Order{ten, hundred})

	require.Len(t, plan.Exact, 2)
	assert.Equal(t, "B-100.pdf", plan.Exact[0].File.Filename)
	assert.Equal(t, ten.ID, plan.Exact[0].Order.ID, "first candidate in pool order wins")
	assert.Equal(t, "A-10.pdf", plan.Exact[1].File.Filename)
	assert.Equal(t, hundred.ID, plan.Exact[1].Order.ID, "second file takes the first remaining match")
	require.Len(t, plan.Warnings, 1)
	assert.Contains(t, plan.Warnings[0], "B-100.pdf")
	assert.Contains(t, plan.Warnings[0], "100")
}

func TestMatch_MixedExactAndLeftovers(t *testing.T) {
	a := approvedOrder("EVT-AAAA2222")
	b := approvedOrder("EVT-BBBB3333")
	c := approvedOrder("EVT-CCCC4444")

	plan := tickets.Match(files("scan.pdf", "EVT-BBBB3333.pdf"), []models.Order{a, b, c})

	require.Len(t, plan.Exact, 1)
	assert.Equal(t, b.ID, plan.Exact[0].Order.ID)
	require.Len(t, plan.LeftoverOrders, 2)
	assert.Equal(t, a.ID, plan.LeftoverOrders[0].ID)
	assert.Equal(t, c.ID, plan.LeftoverOrders[1].ID)
	require.Len(t, plan.Fallback, 1)
	assert.Equal(t, "scan.pdf", plan.Fallback[0].File.Filename)
	assert.Equal(t, a.ID, plan.Fallback[0].Order.ID)
}

func TestMatch_OrderWithoutBookingRefNeverMatchesExactly(t *testing.T) {
	plan := tickets.Match(files("anything.pdf"), []models.Order{approvedOrder("")})

	assert.Empty(t, plan.Exact)
	assert.Len(t, plan.Fallback, 1)
}
