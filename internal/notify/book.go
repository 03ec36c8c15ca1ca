package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/store"
)

const remindersKey = "reminders"

// Book is a Scheduler that keeps pending reminders in the document store so
// the reminders command can list what is coming up or already due. One
// reminder per order: scheduling again replaces the previous one.
type Book struct {
	store store.Store
}

// NewBook creates a reminder book backed by the given store
func NewBook(s store.Store) *Book {
	return &Book{store: s}
}

// Schedule records a reminder for the order. Past fire times are skipped.
func (b *Book) Schedule(ctx context.Context, orderID uuid.UUID, fireAt time.Time, title, body string) error {
	if !fireAt.After(time.Now()) {
		return nil
	}

	reminders, err := b.load(ctx)
	if err != nil {
		return err
	}

	kept := reminders[:0]
	for _, r := range reminders {
		if r.OrderID != orderID {
			kept = append(kept, r)
		}
	}
	kept = append(kept, Reminder{OrderID: orderID, FireAt: fireAt, Title: title, Body: body})

	return b.save(ctx, kept)
}

// Cancel removes any pending reminder for the order
func (b *Book) Cancel(ctx context.Context, orderID uuid.UUID) error {
	reminders, err := b.load(ctx)
	if err != nil {
		return err
	}

	kept := reminders[:0]
	removed := false
	for _, r := range reminders {
		if r.OrderID == orderID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return nil
	}

	return b.save(ctx, kept)
}

// CancelAll removes every pending reminder
func (b *Book) CancelAll(ctx context.Context) error {
	if err := b.store.Delete(ctx, remindersKey); err != nil {
		return fmt.Errorf("failed to clear reminders: %w", err)
	}
	return nil
}

// Pending returns all reminders sorted by fire time
func (b *Book) Pending(ctx context.Context) ([]Reminder, error) {
	reminders, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(reminders, func(i, j int) bool {
		return reminders[i].FireAt.Before(reminders[j].FireAt)
	})
	return reminders, nil
}

// Due returns reminders whose fire time has passed as of now
func (b *Book) Due(ctx context.Context, now time.Time) ([]Reminder, error) {
	pending, err := b.Pending(ctx)
	if err != nil {
		return nil, err
	}
	var due []Reminder
	for _, r := range pending {
		if !r.FireAt.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (b *Book) load(ctx context.Context) ([]Reminder, error) {
	data, err := b.store.Load(ctx, remindersKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load reminders: %w", err)
	}
	var reminders []Reminder
	if err := json.Unmarshal(data, &reminders); err != nil {
		return nil, fmt.Errorf("failed to decode reminders: %w", err)
	}
	return reminders, nil
}

func (b *Book) save(ctx context.Context, reminders []Reminder) error {
	data, err := json.Marshal(reminders)
	if err != nil {
		return fmt.Errorf("failed to encode reminders: %w", err)
	}
	if err := b.store.Save(ctx, remindersKey, data); err != nil {
		return fmt.Errorf("failed to save reminders: %w", err)
	}
	return nil
}
