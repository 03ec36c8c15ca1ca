package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/notify"
	"github.com/mkadlec/shutterbook/internal/repository"
)

// NewOrderInput carries the order form fields. The client contact fields are
// copied onto the order as a snapshot; linking to a client record happens by
// name resolution inside Add.
type NewOrderInput struct {
	Name            string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	ClientTaxID     string
	ClientAddress   string
	Location        string
	Date            time.Time
	DurationMinutes int
	Price           float64
	Deposit         float64
	Notes           string
}

// OrderBook owns the order collection and its lifecycle. It is the only
// writer of clientId resolution at creation time, and it notifies the client
// ledger on every mutation that affects money or client identity. Reminder
// scheduling is best effort: a scheduling failure never fails the mutation,
// mirroring how the booking itself must survive a broken notification layer.
type OrderBook struct {
	repo      repository.OrderCollection
	ledger    *ClientLedger
	scheduler notify.Scheduler
	leadTime  time.Duration

	orders []*domain.Order
}

// NewOrderBook loads the order collection, backfills missing clientIds from
// the ledger, and rebuilds the client totals so the ledger reflects exactly
// the orders on disk. A load failure falls back to an empty collection.
func NewOrderBook(ctx context.Context, repo repository.OrderCollection, ledger *ClientLedger, scheduler notify.Scheduler, leadHours int) (*OrderBook, error) {
	book := &OrderBook{
		repo:      repo,
		ledger:    ledger,
		scheduler: scheduler,
		leadTime:  time.Duration(leadHours) * time.Hour,
	}

	orders, err := repo.LoadAll(ctx)
	if err != nil {
		return book, fmt.Errorf("failed to load orders, starting empty: %w", err)
	}
	book.orders = orders

	if ledger.MigrateClientIDs(book.orders) {
		if err := book.persist(ctx); err != nil {
			return book, err
		}
	}
	if err := ledger.RecalculateAll(ctx, book.orders); err != nil {
		return book, err
	}
	return book, nil
}

// Orders returns the current order collection
func (b *OrderBook) Orders() []*domain.Order {
	return b.orders
}

// Get returns the order with the given id, or nil
func (b *OrderBook) Get(id uuid.UUID) *domain.Order {
	for _, o := range b.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// OrderHistory returns the client's orders via the two-tier match
func (b *OrderBook) OrderHistory(client *domain.Client) []*domain.Order {
	return MatchOrders(client, b.orders)
}

// Add creates a planned order with unpaid flags, resolving the client link
// by name. If the named client does not exist yet, the ledger synthesizes one
// during reconciliation.
func (b *OrderBook) Add(ctx context.Context, in NewOrderInput) (*domain.Order, error) {
	order := domain.NewOrder(in.Name, in.Date, in.Price)
	order.ClientName = strings.TrimSpace(in.ClientName)
	order.ClientEmail = in.ClientEmail
	order.ClientPhone = in.ClientPhone
	order.ClientTaxID = in.ClientTaxID
	order.ClientAddress = in.ClientAddress
	order.Location = in.Location
	order.Deposit = in.Deposit
	order.Notes = in.Notes
	// Zero means unspecified and keeps the 60-minute default; a negative
	// duration is carried through so Validate rejects it.
	if in.DurationMinutes != 0 {
		order.DurationMinutes = in.DurationMinutes
	}

	if err := order.Validate(); err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if order.ClientName != "" {
		if client := b.ledger.FindByName(order.ClientName); client != nil {
			id := client.ID
			order.ClientID = &id
		}
	}

	b.orders = append(b.orders, order)
	if err := b.persist(ctx); err != nil {
		return order, err
	}

	b.scheduleReminder(ctx, order)

	if err := b.ledger.ApplyOrderDelta(ctx, order, false); err != nil {
		return order, err
	}
	return order, nil
}

// UpdateStatus sets the order status. Completed, delivered and cancelled
// orders get their pending reminder cancelled; the status alone never moves
// money, so the ledger is not involved.
func (b *OrderBook) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order := b.Get(id)
	if order == nil {
		return ErrOrderNotFound
	}
	order.Status = status
	if err := b.persist(ctx); err != nil {
		return err
	}

	if status.IsTerminal() {
		_ = b.scheduler.Cancel(ctx, order.ID)
	}
	return nil
}

// UpdateDeposit changes the agreed deposit without reconciling: the paid
// amount only moves when a payment flag flips.
func (b *OrderBook) UpdateDeposit(ctx context.Context, id uuid.UUID, deposit float64) error {
	if deposit < 0 {
		return fmt.Errorf("invalid order: deposit cannot be negative")
	}
	order := b.Get(id)
	if order == nil {
		return ErrOrderNotFound
	}
	order.Deposit = deposit
	return b.persist(ctx)
}

// SetDepositPaid records a deposit payment and rebuilds all client totals.
// A flag flip changes PaidAmount in a way that is simpler to re-derive
// globally than to delta against possibly stale client links.
func (b *OrderBook) SetDepositPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	order := b.Get(id)
	if order == nil {
		return ErrOrderNotFound
	}
	order.DepositPaid = paid
	if err := b.persist(ctx); err != nil {
		return err
	}
	return b.ledger.RecalculateAll(ctx, b.orders)
}

// SetFinalPaymentPaid records the final payment and rebuilds all client totals
func (b *OrderBook) SetFinalPaymentPaid(ctx context.Context, id uuid.UUID, paid bool) error {
	order := b.Get(id)
	if order == nil {
		return ErrOrderNotFound
	}
	order.FinalPaid = paid
	if err := b.persist(ctx); err != nil {
		return err
	}
	return b.ledger.RecalculateAll(ctx, b.orders)
}

// Update replaces the mutable fields of the order carrying updated.ID.
// The clientId is re-resolved only when the client name changed; a new name
// with no matching client clears the link rather than keeping the old one.
// When the client identity changed, the original order is debited from the
// old client and the updated one credited to the new; otherwise totals are
// rebuilt wholesale.
func (b *OrderBook) Update(ctx context.Context, updated *domain.Order) error {
	if err := updated.Validate(); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}

	order := b.Get(updated.ID)
	if order == nil {
		return ErrOrderNotFound
	}

	_ = b.scheduler.Cancel(ctx, order.ID)

	original := *order

	order.Name = updated.Name
	order.ClientName = strings.TrimSpace(updated.ClientName)
	order.ClientEmail = updated.ClientEmail
	order.ClientPhone = updated.ClientPhone
	order.ClientTaxID = updated.ClientTaxID
	order.ClientAddress = updated.ClientAddress
	order.Location = updated.Location
	order.Date = updated.Date
	order.DurationMinutes = updated.DurationMinutes
	order.Price = updated.Price
	order.Deposit = updated.Deposit
	order.Notes = updated.Notes

	if original.ClientName != order.ClientName {
		if client := b.ledger.FindByName(order.ClientName); client != nil {
			id := client.ID
			order.ClientID = &id
		} else {
			order.ClientID = nil
		}
	}

	if err := b.persist(ctx); err != nil {
		return err
	}

	b.scheduleReminder(ctx, order)

	if clientIdentityChanged(&original, order) {
		if err := b.ledger.ApplyOrderDelta(ctx, &original, true); err != nil {
			return err
		}
		return b.ledger.ApplyOrderDelta(ctx, order, false)
	}
	return b.ledger.RecalculateAll(ctx, b.orders)
}

// Delete removes the order, debits its client, and runs a trailing rebuild
// as a consistency pass against any prior incremental drift.
func (b *OrderBook) Delete(ctx context.Context, id uuid.UUID) error {
	order := b.Get(id)
	if order == nil {
		return ErrOrderNotFound
	}

	_ = b.scheduler.Cancel(ctx, order.ID)

	if err := b.ledger.ApplyOrderDelta(ctx, order, true); err != nil {
		return err
	}

	b.remove(id)
	if err := b.persist(ctx); err != nil {
		return err
	}
	return b.ledger.RecalculateAll(ctx, b.orders)
}

// DeleteMany removes several orders with one persist and one trailing rebuild
func (b *OrderBook) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		order := b.Get(id)
		if order == nil {
			continue
		}
		_ = b.scheduler.Cancel(ctx, order.ID)
		if err := b.ledger.ApplyOrderDelta(ctx, order, true); err != nil {
			return err
		}
		b.remove(id)
	}
	if err := b.persist(ctx); err != nil {
		return err
	}
	return b.ledger.RecalculateAll(ctx, b.orders)
}

func (b *OrderBook) remove(id uuid.UUID) {
	for i, o := range b.orders {
		if o.ID == id {
			b.orders = append(b.orders[:i], b.orders[i+1:]...)
			return
		}
	}
}

// scheduleReminder schedules the session reminder at the configured lead
// time before the order date. Best effort; past fire times are skipped by
// the scheduler.
func (b *OrderBook) scheduleReminder(ctx context.Context, order *domain.Order) {
	fireAt := order.Date.Add(-b.leadTime)
	_ = b.scheduler.Schedule(ctx, order.ID, fireAt,
		"Session reminder",
		fmt.Sprintf("Upcoming session: %s", order.Name),
	)
}

func (b *OrderBook) persist(ctx context.Context) error {
	if err := b.repo.SaveAll(ctx, b.orders); err != nil {
		return fmt.Errorf("failed to save orders: %w", err)
	}
	return nil
}

func clientIdentityChanged(original, updated *domain.Order) bool {
	if original.ClientName != updated.ClientName {
		return true
	}
	switch {
	case original.ClientID == nil && updated.ClientID == nil:
		return false
	case original.ClientID == nil || updated.ClientID == nil:
		return true
	default:
		return *original.ClientID != *updated.ClientID
	}
}
