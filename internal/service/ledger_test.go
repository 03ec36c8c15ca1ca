package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/repository"
	"github.com/mkadlec/shutterbook/internal/store"
)

func newTestLedger(t *testing.T) (*ClientLedger, *repository.ClientRepo) {
	t.Helper()
	repo := repository.NewClientRepo(store.NewMemory())
	ledger, err := NewClientLedger(context.Background(), repo)
	require.NoError(t, err)
	return ledger, repo
}

func paidOrder(clientName string, price, deposit float64) *domain.Order {
	o := domain.NewOrder("Session", time.Date(2026, 5, 10, 10, 0, 0, 0, time.UTC), price)
	o.ClientName = clientName
	o.Deposit = deposit
	return o
}

func TestApplyOrderDelta_InsertWithPaidDeposit(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	order := paidOrder("Jana", 10000, 2000)
	order.DepositPaid = true

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, false))

	assert.Equal(t, 1, client.TotalOrders)
	assert.Equal(t, 2000.0, client.TotalSpent)
}

func TestApplyOrderDelta_DeleteReversesInsert(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	order := paidOrder("Jana", 10000, 2000)
	order.DepositPaid = true
	order.FinalPaid = true

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, false))
	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, true))

	assert.Equal(t, 0, client.TotalOrders)
	assert.Equal(t, 0.0, client.TotalSpent)
}

func TestApplyOrderDelta_SynthesizesClientOnInsert(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	order := paidOrder("Petr Svoboda", 5000, 0)
	order.ClientEmail = "petr@example.com"
	order.FinalPaid = true

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, false))

	created := ledger.FindByName("petr svoboda")
	require.NotNil(t, created)
	assert.Equal(t, "petr@example.com", created.Email)
	assert.Equal(t, 1, created.TotalOrders)
	assert.Equal(t, 5000.0, created.TotalSpent)
}

func TestApplyOrderDelta_UnresolvedDeleteIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	order := paidOrder("Nobody", 5000, 0)

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, true))
	assert.Empty(t, ledger.Clients())
}

func TestApplyOrderDelta_BlankNameInsertIsNoop(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	order := paidOrder("   ", 5000, 0)

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, false))
	assert.Empty(t, ledger.Clients())
}

func TestApplyOrderDelta_ClampsAtZero(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	order := paidOrder("Jana", 10000, 0)
	order.FinalPaid = true

	// Deleting an order that was never credited must not go negative
	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, true))

	assert.Equal(t, 0, client.TotalOrders)
	assert.Equal(t, 0.0, client.TotalSpent)
}

func TestApplyOrderDelta_DanglingClientIDFallsBackToName(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	gone := uuid.New()
	order := paidOrder("Jana", 10000, 0)
	order.ClientID = &gone
	order.FinalPaid = true

	require.NoError(t, ledger.ApplyOrderDelta(ctx, order, false))

	assert.Equal(t, 1, client.TotalOrders)
	assert.Equal(t, 10000.0, client.TotalSpent)
}

func TestRecalculateAll(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	jana := domain.NewClient("Jana")
	petr := domain.NewClient("Petr")
	require.NoError(t, ledger.Create(ctx, jana))
	require.NoError(t, ledger.Create(ctx, petr))

	// Stale totals that the rebuild must discard
	jana.TotalOrders = 99
	jana.TotalSpent = 99999

	o1 := paidOrder("Jana", 10000, 2000)
	o1.DepositPaid = true
	o2 := paidOrder("jana", 4000, 0)
	o2.FinalPaid = true
	o3 := paidOrder("Petr", 3000, 0)
	blank := paidOrder("", 7000, 0)
	blank.FinalPaid = true

	orders := []*domain.Order{o1, o2, o3, blank}

	require.NoError(t, ledger.RecalculateAll(ctx, orders))

	assert.Equal(t, 2, jana.TotalOrders)
	assert.Equal(t, 6000.0, jana.TotalSpent)
	assert.Equal(t, 1, petr.TotalOrders)
	assert.Equal(t, 0.0, petr.TotalSpent)

	// Idempotent
	require.NoError(t, ledger.RecalculateAll(ctx, orders))
	assert.Equal(t, 2, jana.TotalOrders)
	assert.Equal(t, 6000.0, jana.TotalSpent)
}

func TestDeltaAgreesWithRecalculate(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	o1 := paidOrder("Jana", 10000, 2000)
	o1.DepositPaid = true
	o2 := paidOrder("Jana", 4000, 0)
	o2.FinalPaid = true

	require.NoError(t, ledger.ApplyOrderDelta(ctx, o1, false))
	require.NoError(t, ledger.ApplyOrderDelta(ctx, o2, false))

	deltaOrders, deltaSpent := client.TotalOrders, client.TotalSpent

	require.NoError(t, ledger.RecalculateAll(ctx, []*domain.Order{o1, o2}))

	assert.Equal(t, deltaOrders, client.TotalOrders)
	assert.Equal(t, deltaSpent, client.TotalSpent)
}

func TestUpdatePreservesLedgerTotals(t *testing.T) {
	ctx := context.Background()
	ledger, repo := newTestLedger(t)

	client := domain.NewClient("Jana")
	client.TotalOrders = 3
	client.TotalSpent = 12000
	require.NoError(t, ledger.Create(ctx, client))

	edited := *client
	edited.Name = "Jana Nováková"
	edited.TotalOrders = 0
	edited.TotalSpent = 0

	require.NoError(t, ledger.Update(ctx, &edited))

	stored := ledger.Get(client.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Jana Nováková", stored.Name)
	assert.Equal(t, 3, stored.TotalOrders)
	assert.Equal(t, 12000.0, stored.TotalSpent)

	// Survives a reload round trip
	reloaded, err := NewClientLedger(ctx, repo)
	require.NoError(t, err)
	again := reloaded.Get(client.ID)
	require.NotNil(t, again)
	assert.Equal(t, 3, again.TotalOrders)
}

func TestUpdateUnknownClient(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	ghost := domain.NewClient("Ghost")
	assert.ErrorIs(t, ledger.Update(ctx, ghost), ErrClientNotFound)
	assert.ErrorIs(t, ledger.Delete(ctx, ghost.ID), ErrClientNotFound)
}

func TestFindByName_FirstMatchWins(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	first := domain.NewClient("Jana")
	second := domain.NewClient("jana")
	require.NoError(t, ledger.Create(ctx, first))
	require.NoError(t, ledger.Create(ctx, second))

	found := ledger.FindByName("JANA")
	require.NotNil(t, found)
	assert.Equal(t, first.ID, found.ID)

	assert.Nil(t, ledger.FindByName("   "))
}

func TestUnpaidBalance(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	o1 := paidOrder("Jana", 10000, 2000) // nothing paid: 10000 owed
	o2 := paidOrder("Jana", 4000, 0)     // no deposit, unpaid: 4000 owed
	o2.FinalPaid = false
	o3 := paidOrder("Jana", 6000, 1000) // fully paid
	o3.DepositPaid = true
	o3.FinalPaid = true
	other := paidOrder("Petr", 9999, 0)

	total := ledger.UnpaidBalance(client, []*domain.Order{o1, o2, o3, other})
	assert.Equal(t, 14000.0, total)
}

func TestMigrateClientIDs(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger(t)

	client := domain.NewClient("Jana")
	require.NoError(t, ledger.Create(ctx, client))

	linked := paidOrder("Jana", 1000, 0)
	unknown := paidOrder("Nobody", 1000, 0)
	blank := paidOrder("", 1000, 0)

	orders := []*domain.Order{linked, unknown, blank}

	changed := ledger.MigrateClientIDs(orders)
	assert.True(t, changed)
	require.NotNil(t, linked.ClientID)
	assert.Equal(t, client.ID, *linked.ClientID)
	assert.Nil(t, unknown.ClientID)
	assert.Nil(t, blank.ClientID)

	// Second pass changes nothing
	assert.False(t, ledger.MigrateClientIDs(orders))
}

func TestNewClientLedger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewClientRepo(store.NewMemory())

	ledger, err := NewClientLedger(ctx, repo)
	require.NoError(t, err)

	client := domain.NewClient("Jana")
	client.Email = "jana@example.com"
	require.NoError(t, ledger.Create(ctx, client))

	reloaded, err := NewClientLedger(ctx, repo)
	require.NoError(t, err)
	require.Len(t, reloaded.Clients(), 1)
	assert.Equal(t, "jana@example.com", reloaded.Clients()[0].Email)
}
