package orders_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"event-ticketing-backend/internal/models"
	"event-ticketing-backend/internal/orders"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func submitOrder(t *testing.T, m *orders.Manager, categories ...string) *models.Order {
	t.Helper()
	if len(categories) == 0 {
		categories = []string{"General"}
	}
	items := make([]models.LineItem, len(categories))
	for i, c := range categories {
		items[i] = models.LineItem{Category: c, Quantity: 1, UnitPrice: decimal.RequireFromString("500")}
	}
	order, err := m.Submit(context.Background(), orders.SubmitOrder{
		CustomerName:     "Asha Rao",
		CustomerEmail:    "asha@example.com",
		PaymentReference: "412345678901",
		Items:            items,
	})
	require.NoError(t, err)
	return order
}

func TestSubmit_ComputesTotalAndStartsPending(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())

	order, err := m.Submit(context.Background(), orders.SubmitOrder{
		CustomerName:     " Asha Rao ",
		CustomerEmail:    "asha@example.com",
		PaymentReference: "412345678901",
		Items: []models.LineItem{
			{Category: "VIP", Quantity: 2, UnitPrice: decimal.RequireFromString("1499.50")},
			{Category: "General", Quantity: 3, UnitPrice: decimal.RequireFromString("250")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "Asha Rao", order.CustomerName)
	assert.True(t, decimal.RequireFromString("3749").Equal(order.TotalAmount), "total was %s", order.TotalAmount)
	assert.False(t, order.BookingRef.Valid)
	assert.False(t, order.TicketURL.Valid)
	assert.False(t, order.TicketSent)
}

func TestSubmit_RejectsInvalidInput(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	valid := []models.LineItem{{Category: "VIP", Quantity: 1, UnitPrice: decimal.NewFromInt(10)}}

	cases := map[string]orders.SubmitOrder{
		"missing name":       {CustomerEmail: "a@b.c", PaymentReference: "1", Items: valid},
		"missing email":      {CustomerName: "A", PaymentReference: "1", Items: valid},
		"missing payment":    {CustomerName: "A", CustomerEmail: "a@b.c", Items: valid},
		"no items":           {CustomerName: "A", CustomerEmail: "a@b.c", PaymentReference: "1"},
		"zero quantity":      {CustomerName: "A", CustomerEmail: "a@b.c", PaymentReference: "1", Items: []models.LineItem{{Category: "VIP"}}},
		"blank category":     {CustomerName: "A", CustomerEmail: "a@b.c", PaymentReference: "1", Items: []models.LineItem{{Category: " ", Quantity: 1}}},
		"negative unit cost": {CustomerName: "A", CustomerEmail: "a@b.c", PaymentReference: "1", Items: []models.LineItem{{Category: "VIP", Quantity: 1, UnitPrice: decimal.NewFromInt(-1)}}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := m.Submit(context.Background(), req)
			assert.ErrorIs(t, err, orders.ErrInvalidOrder)
		})
	}
}

func TestApprove_AssignsBookingRefWithoutTicket(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)

	approved, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.True(t, approved.BookingRef.Valid)
	assert.NotEmpty(t, approved.BookingRef.String)
	assert.NotEqual(t, order.PaymentReference, approved.BookingRef.String)
	assert.False(t, approved.TicketURL.Valid)
}

func TestApprove_TwiceIsInvalidTransitionAndKeepsRef(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)

	first, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = m.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)

	current, err := m.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, first.BookingRef.String, current.BookingRef.String)
}

func TestApprove_UnknownOrderIsNotFound(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())

	_, err := m.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestApprove_RetriesOnBookingRefCollision(t *testing.T) {
	refs := []string{"EVT-AAAA2222", "EVT-AAAA2222", "EVT-BBBB3333"}
	var calls int
	gen := func() (string, error) {
		ref := refs[calls]
		calls++
		return ref, nil
	}
	m := orders.NewManager(orders.NewMemoryStore(), orders.WithBookingRefGenerator(gen))

	a := submitOrder(t, m)
	b := submitOrder(t, m)

	first, err := m.Approve(context.Background(), a.ID)
	require.NoError(t, err)
	second, err := m.Approve(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, "EVT-AAAA2222", first.BookingRef.String)
	assert.Equal(t, "EVT-BBBB3333", second.BookingRef.String)
	assert.Equal(t, 3, calls)
}

func TestReject_NeverAssignsBookingRef(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)

	rejected, err := m.Reject(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.False(t, rejected.BookingRef.Valid)

	_, err = m.Approve(context.Background(), order.ID)
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)
	_, err = m.Reject(context.Background(), order.ID)
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)
}

func TestBookingRefInvariant(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	a := submitOrder(t, m)
	b := submitOrder(t, m)
	submitOrder(t, m)

	_, err := m.Approve(context.Background(), a.ID)
	require.NoError(t, err)
	_, err = m.Reject(context.Background(), b.ID)
	require.NoError(t, err)

	all, err := m.List(context.Background(), orders.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, o := range all {
		if o.Status == models.StatusPending {
			assert.False(t, o.BookingRef.Valid, "pending order %s has a booking ref", o.ID)
		}
		if o.BookingRef.Valid {
			assert.Equal(t, models.StatusApproved, o.Status)
		}
	}
}

func TestDelete_AfterApprovalRemovesRecord(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)
	_, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	require.NoError(t, m.Delete(context.Background(), order.ID))

	_, err = m.Get(context.Background(), order.ID)
	assert.ErrorIs(t, err, orders.ErrNotFound)
	assert.ErrorIs(t, m.Delete(context.Background(), order.ID), orders.ErrNotFound)
}

func TestTwoStepDelete(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	m := orders.NewManager(orders.NewMemoryStore(), orders.WithClock(clock), orders.WithDeleteConfirmTTL(time.Minute))
	order := submitOrder(t, m)
	other := submitOrder(t, m)

	req, err := m.RequestDelete(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Minute), req.ExpiresAt)

	t.Run("wrong order", func(t *testing.T) {
		err := m.ConfirmDelete(context.Background(), other.ID, req.Token)
		assert.ErrorIs(t, err, orders.ErrDeleteNotConfirmed)
	})

	t.Run("unknown token", func(t *testing.T) {
		err := m.ConfirmDelete(context.Background(), order.ID, "nope")
		assert.ErrorIs(t, err, orders.ErrDeleteNotConfirmed)
	})

	t.Run("confirmed", func(t *testing.T) {
		require.NoError(t, m.ConfirmDelete(context.Background(), order.ID, req.Token))
		_, err := m.Get(context.Background(), order.ID)
		assert.ErrorIs(t, err, orders.ErrNotFound)
	})

	t.Run("token is single use", func(t *testing.T) {
		err := m.ConfirmDelete(context.Background(), order.ID, req.Token)
		assert.ErrorIs(t, err, orders.ErrDeleteNotConfirmed)
	})
}

func TestTwoStepDelete_Expired(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	m := orders.NewManager(orders.NewMemoryStore(),
		orders.WithClock(func() time.Time { return now }),
		orders.WithDeleteConfirmTTL(time.Minute))
	order := submitOrder(t, m)

	req, err := m.RequestDelete(context.Background(), order.ID)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	err = m.ConfirmDelete(context.Background(), order.ID, req.Token)
	assert.ErrorIs(t, err, orders.ErrDeleteNotConfirmed)

	_, err = m.Get(context.Background(), order.ID)
	assert.NoError(t, err)
}

func TestRequestDelete_UnknownOrder(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())

	_, err := m.RequestDelete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestUpdateFields(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)
	url := "https://cdn.example.com/tickets/a.pdf"
	sent := true

	_, err := m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &url})
	assert.ErrorIs(t, err, orders.ErrInvalidTransition, "pending orders cannot carry tickets")

	approved, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	_, err = m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketSent: &sent})
	assert.ErrorIs(t, err, orders.ErrInvalidOrder, "sent requires a ticket url")

	updated, err := m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &url, TicketSent: &sent})
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, updated.Status)
	assert.Equal(t, approved.BookingRef, updated.BookingRef)
	assert.Equal(t, url, updated.TicketURL.String)
	assert.True(t, updated.TicketSent)
}

func TestUpdateFields_FirstTicketOnly(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)
	_, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)

	first := "https://cdn.example.com/tickets/a.pdf"
	second := "https://cdn.example.com/tickets/b.pdf"
	_, err = m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &first, FirstTicketOnly: true})
	require.NoError(t, err)

	_, err = m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &second, FirstTicketOnly: true})
	assert.ErrorIs(t, err, orders.ErrInvalidTransition)

	updated, err := m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &second})
	require.NoError(t, err)
	assert.Equal(t, second, updated.TicketURL.String)
}

func TestUpdateFields_AfterConcurrentDelete(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)
	_, err := m.Approve(context.Background(), order.ID)
	require.NoError(t, err)
	require.NoError(t, m.Delete(context.Background(), order.ID))

	url := "https://cdn.example.com/tickets/a.pdf"
	_, err = m.UpdateFields(context.Background(), order.ID, orders.FulfillmentFields{TicketURL: &url})
	assert.ErrorIs(t, err, orders.ErrNotFound)
}

func TestApprove_ConcurrentCallsYieldOneBookingRef(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	order := submitOrder(t, m)

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.Approve(context.Background(), order.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, invalid int
	for err := range results {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, orders.ErrInvalidTransition)
			invalid++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, invalid)
}

func TestListFiltersAndGrouping(t *testing.T) {
	m := orders.NewManager(orders.NewMemoryStore())
	vip := submitOrder(t, m, "VIP")
	general := submitOrder(t, m, "General")
	mixed := submitOrder(t, m, "General", "vip")

	_, err := m.Approve(context.Background(), vip.ID)
	require.NoError(t, err)
	_, err = m.Reject(context.Background(), general.ID)
	require.NoError(t, err)

	vipOrders, err := m.List(context.Background(), orders.ListFilter{Category: "VIP"})
	require.NoError(t, err)
	require.Len(t, vipOrders, 2)
	assert.Equal(t, vip.ID, vipOrders[0].ID)
	assert.Equal(t, mixed.ID, vipOrders[1].ID)

	pending, err := m.List(context.Background(), orders.ListFilter{Status: models.StatusPending})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, mixed.ID, pending[0].ID)

	grouped, err := m.ListGrouped(context.Background())
	require.NoError(t, err)
	assert.Len(t, grouped.Pending, 1)
	assert.Len(t, grouped.Approved, 1)
	assert.Len(t, grouped.Rejected, 1)
}
