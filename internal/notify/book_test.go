package notify

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkadlec/shutterbook/internal/store"
)

func newTestBook() *Book {
	return NewBook(store.NewMemory())
}

func TestSchedule_SkipsPastFireTime(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	err := book.Schedule(ctx, uuid.New(), time.Now().Add(-time.Hour), "Reminder", "late")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := book.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected no reminders, got %d", len(pending))
	}
}

func TestSchedule_ReplacesExisting(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()
	orderID := uuid.New()

	first := time.Now().Add(24 * time.Hour)
	second := time.Now().Add(48 * time.Hour)

	if err := book.Schedule(ctx, orderID, first, "Reminder", "one"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := book.Schedule(ctx, orderID, second, "Reminder", "two"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := book.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(pending))
	}
	if !pending[0].FireAt.Equal(second) {
		t.Fatalf("expected fire time %v, got %v", second, pending[0].FireAt)
	}
	if pending[0].Body != "two" {
		t.Fatalf("expected replaced body, got %q", pending[0].Body)
	}
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()
	keep := uuid.New()
	drop := uuid.New()

	fireAt := time.Now().Add(time.Hour)
	if err := book.Schedule(ctx, keep, fireAt, "Reminder", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := book.Schedule(ctx, drop, fireAt, "Reminder", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := book.Cancel(ctx, drop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := book.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].OrderID != keep {
		t.Fatalf("expected only %v left, got %d reminders", keep, len(pending))
	}

	// Cancelling an unknown order is a no-op
	if err := book.Cancel(ctx, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCancelAll(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	if err := book.Schedule(ctx, uuid.New(), time.Now().Add(time.Hour), "Reminder", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := book.CancelAll(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := book.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 0 {
		t.Fatalf("expected empty book, got %d reminders", len(pending))
	}
}

func TestPending_SortedByFireTime(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	late := time.Now().Add(72 * time.Hour)
	soon := time.Now().Add(12 * time.Hour)

	if err := book.Schedule(ctx, uuid.New(), late, "Late", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := book.Schedule(ctx, uuid.New(), soon, "Soon", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pending, err := book.Pending(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(pending))
	}
	if pending[0].Title != "Soon" || pending[1].Title != "Late" {
		t.Fatalf("expected soonest first, got %q then %q", pending[0].Title, pending[1].Title)
	}
}

func TestDue(t *testing.T) {
	ctx := context.Background()
	book := newTestBook()

	soon := time.Now().Add(time.Minute)
	far := time.Now().Add(time.Hour)

	if err := book.Schedule(ctx, uuid.New(), soon, "Soon", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := book.Schedule(ctx, uuid.New(), far, "Far", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	due, err := book.Due(ctx, time.Now().Add(30*time.Minute))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 1 || due[0].Title != "Soon" {
		t.Fatalf("expected only the earlier reminder due, got %d", len(due))
	}
}
