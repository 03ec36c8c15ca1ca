package repository

import (
	"context"
	"testing"
	"time"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/store"
)

func TestLoadAll_EmptyStore(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	orders, err := NewOrderRepo(mem).LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty collection, got %d", len(orders))
	}

	clients, err := NewClientRepo(mem).LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(clients) != 0 {
		t.Fatalf("expected empty collection, got %d", len(clients))
	}
}

func TestOrderRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepo(store.NewMemory())

	order := domain.NewOrder("Wedding", time.Date(2026, 6, 20, 14, 0, 0, 0, time.UTC), 18000)
	order.ClientName = "Jana"
	order.Deposit = 2000
	order.DepositPaid = true

	if err := repo.SaveAll(ctx, []*domain.Order{order}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := repo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 order, got %d", len(loaded))
	}

	got := loaded[0]
	if got.ID != order.ID || got.Name != "Wedding" || got.ClientName != "Jana" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if !got.DepositPaid || got.Deposit != 2000 {
		t.Fatalf("payment fields lost: %+v", got)
	}
	if !got.Date.Equal(order.Date) {
		t.Fatalf("expected date %v, got %v", order.Date, got.Date)
	}
}

func TestOrderLoadAll_NormalizesLegacyRecords(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	// Record shape from before the status and duration fields existed
	legacy := []byte(`[{
		"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"name": "Old shoot",
		"clientName": "Jana",
		"date": "2024-05-01T10:00:00Z",
		"price": 4000
	}]`)
	if err := mem.Save(ctx, KeyOrders, legacy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := NewOrderRepo(mem).LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 order, got %d", len(loaded))
	}

	got := loaded[0]
	if got.Status != domain.OrderStatusPlanned {
		t.Fatalf("expected planned default, got %v", got.Status)
	}
	if got.DurationMinutes != 60 {
		t.Fatalf("expected 60 minute default, got %d", got.DurationMinutes)
	}
	if got.ClientID != nil {
		t.Fatalf("expected no client link on a legacy record, got %v", got.ClientID)
	}
}

func TestExpenseLoadAll_NormalizesLegacyCategory(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	legacy := []byte(`[{
		"id": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"name": "Old receipt",
		"amount": 300,
		"date": "2024-05-01T10:00:00Z"
	}]`)
	if err := mem.Save(ctx, KeyExpenses, legacy); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := NewExpenseRepo(mem).LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(loaded))
	}
	if loaded[0].Category != domain.ExpenseOther {
		t.Fatalf("expected other category default, got %v", loaded[0].Category)
	}
}

func TestLoadAll_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	if err := mem.Save(ctx, KeyClients, []byte("{not json")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewClientRepo(mem).LoadAll(ctx); err == nil {
		t.Fatal("expected decode error for corrupt document")
	}
}
