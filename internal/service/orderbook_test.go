package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/repository"
	"github.com/mkadlec/shutterbook/internal/store"
)

// fakeScheduler records scheduling calls
type fakeScheduler struct {
	scheduled map[uuid.UUID]time.Time
	cancelled []uuid.UUID
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: make(map[uuid.UUID]time.Time)}
}

func (f *fakeScheduler) Schedule(ctx context.Context, orderID uuid.UUID, fireAt time.Time, title, body string) error {
	f.scheduled[orderID] = fireAt
	return nil
}

func (f *fakeScheduler) Cancel(ctx context.Context, orderID uuid.UUID) error {
	f.cancelled = append(f.cancelled, orderID)
	delete(f.scheduled, orderID)
	return nil
}

func (f *fakeScheduler) CancelAll(ctx context.Context) error {
	f.scheduled = make(map[uuid.UUID]time.Time)
	return nil
}

type bookFixture struct {
	book      *OrderBook
	ledger    *ClientLedger
	orderRepo *repository.OrderRepo
	scheduler *fakeScheduler
}

func newBookFixture(t *testing.T) *bookFixture {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()

	ledger, err := NewClientLedger(ctx, repository.NewClientRepo(mem))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderRepo := repository.NewOrderRepo(mem)
	scheduler := newFakeScheduler()
	book, err := NewOrderBook(ctx, orderRepo, ledger, scheduler, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return &bookFixture{book: book, ledger: ledger, orderRepo: orderRepo, scheduler: scheduler}
}

func futureDate() time.Time {
	return time.Now().Add(72 * time.Hour)
}

func TestAdd_ResolvesExistingClient(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	client := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, client); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := f.book.Add(ctx, NewOrderInput{
		Name:       "Wedding",
		ClientName: "  jana  ",
		Date:       futureDate(),
		Price:      18000,
		Deposit:    2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ClientID == nil || *order.ClientID != client.ID {
		t.Fatalf("expected order linked to client %v, got %v", client.ID, order.ClientID)
	}
	if order.Status != domain.OrderStatusPlanned {
		t.Fatalf("expected planned status, got %v", order.Status)
	}
	if client.TotalOrders != 1 {
		t.Fatalf("expected 1 order on client, got %d", client.TotalOrders)
	}
	if client.TotalSpent != 0 {
		t.Fatalf("expected no spend before payment, got %v", client.TotalSpent)
	}

	fireAt, ok := f.scheduler.scheduled[order.ID]
	if !ok {
		t.Fatal("expected a reminder to be scheduled")
	}
	if want := order.Date.Add(-2 * time.Hour); !fireAt.Equal(want) {
		t.Fatalf("expected reminder at %v, got %v", want, fireAt)
	}
}

func TestAdd_SynthesizesUnknownClient(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	order, err := f.book.Add(ctx, NewOrderInput{
		Name:       "Portrait",
		ClientName: "Petr",
		Date:       futureDate(),
		Price:      5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ClientID != nil {
		t.Fatal("expected no client link for an unknown name at creation")
	}

	created := f.ledger.FindByName("Petr")
	if created == nil {
		t.Fatal("expected a synthesized client")
	}
	if created.TotalOrders != 1 {
		t.Fatalf("expected 1 order on synthesized client, got %d", created.TotalOrders)
	}
}

func TestAdd_DefaultDuration(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	order, err := f.book.Add(ctx, NewOrderInput{Name: "Quick", Date: futureDate(), Price: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.DurationMinutes != 60 {
		t.Fatalf("expected default 60 minutes, got %d", order.DurationMinutes)
	}
}

func TestAdd_NegativeDurationRejected(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	_, err := f.book.Add(ctx, NewOrderInput{
		Name: "Quick", Date: futureDate(), Price: 1000, DurationMinutes: -30,
	})
	if err == nil {
		t.Fatal("expected validation error for negative duration")
	}
	if len(f.book.Orders()) != 0 {
		t.Fatal("invalid order must not be kept")
	}
}

func TestAdd_InvalidOrder(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	if _, err := f.book.Add(ctx, NewOrderInput{Name: "", Date: futureDate()}); err == nil {
		t.Fatal("expected validation error for blank name")
	}
	if len(f.book.Orders()) != 0 {
		t.Fatal("invalid order must not be kept")
	}
}

func TestSetDepositPaid_RebuildsTotals(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	client := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, client); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := f.book.Add(ctx, NewOrderInput{
		Name: "Wedding", ClientName: "Jana", Date: futureDate(), Price: 18000, Deposit: 2000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.book.SetDepositPaid(ctx, order.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.TotalSpent != 2000 {
		t.Fatalf("expected 2000 spent after deposit, got %v", client.TotalSpent)
	}

	if err := f.book.SetFinalPaymentPaid(ctx, order.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.TotalSpent != 18000 {
		t.Fatalf("expected 18000 spent after final payment, got %v", client.TotalSpent)
	}

	// Unsetting the flag takes the money back out
	if err := f.book.SetFinalPaymentPaid(ctx, order.ID, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.TotalSpent != 2000 {
		t.Fatalf("expected 2000 spent after undo, got %v", client.TotalSpent)
	}
}

func TestUpdateStatus_TerminalCancelsReminder(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	order, err := f.book.Add(ctx, NewOrderInput{Name: "Wedding", Date: futureDate(), Price: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.book.UpdateStatus(ctx, order.ID, domain.OrderStatusInProgress); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.scheduler.scheduled[order.ID]; !ok {
		t.Fatal("reminder must survive a non-terminal status change")
	}

	if err := f.book.UpdateStatus(ctx, order.ID, domain.OrderStatusCancelled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := f.scheduler.scheduled[order.ID]; ok {
		t.Fatal("expected reminder cancelled on terminal status")
	}
}

func TestUpdate_ReattributesAcrossClients(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	jana := domain.NewClient("Jana")
	petr := domain.NewClient("Petr")
	if err := f.ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.ledger.Create(ctx, petr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := f.book.Add(ctx, NewOrderInput{
		Name: "Portrait", ClientName: "Jana", Date: futureDate(), Price: 5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.book.SetFinalPaymentPaid(ctx, order.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if jana.TotalSpent != 5000 {
		t.Fatalf("expected 5000 on Jana, got %v", jana.TotalSpent)
	}

	updated := *order
	updated.ClientName = "Petr"
	if err := f.book.Update(ctx, &updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if jana.TotalOrders != 0 || jana.TotalSpent != 0 {
		t.Fatalf("expected Jana debited, got %d/%v", jana.TotalOrders, jana.TotalSpent)
	}
	if petr.TotalOrders != 1 || petr.TotalSpent != 5000 {
		t.Fatalf("expected Petr credited, got %d/%v", petr.TotalOrders, petr.TotalSpent)
	}

	stored := f.book.Get(order.ID)
	if stored.ClientID == nil || *stored.ClientID != petr.ID {
		t.Fatalf("expected order relinked to Petr, got %v", stored.ClientID)
	}
}

func TestUpdate_UnknownNewNameClearsLink(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	jana := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := f.book.Add(ctx, NewOrderInput{
		Name: "Portrait", ClientName: "Jana", Date: futureDate(), Price: 5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated := *order
	updated.ClientName = "Stranger"
	if err := f.book.Update(ctx, &updated); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored := f.book.Get(order.ID)
	if stored.ClientID != nil {
		t.Fatalf("expected cleared client link, got %v", stored.ClientID)
	}
}

func TestDelete_DebitsClient(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	jana := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	order, err := f.book.Add(ctx, NewOrderInput{
		Name: "Portrait", ClientName: "Jana", Date: futureDate(), Price: 5000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.book.SetFinalPaymentPaid(ctx, order.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := f.book.Delete(ctx, order.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.book.Orders()) != 0 {
		t.Fatalf("expected empty book, got %d orders", len(f.book.Orders()))
	}
	if jana.TotalOrders != 0 || jana.TotalSpent != 0 {
		t.Fatalf("expected Jana debited, got %d/%v", jana.TotalOrders, jana.TotalSpent)
	}
	if _, ok := f.scheduler.scheduled[order.ID]; ok {
		t.Fatal("expected reminder cancelled on delete")
	}
}

func TestDelete_UnknownOrder(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	if err := f.book.Delete(ctx, uuid.New()); err != ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteMany(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	jana := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		order, err := f.book.Add(ctx, NewOrderInput{
			Name: "Session", ClientName: "Jana", Date: futureDate(), Price: 1000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, order.ID)
	}

	if err := f.book.DeleteMany(ctx, ids[:2]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.book.Orders()) != 1 {
		t.Fatalf("expected 1 order left, got %d", len(f.book.Orders()))
	}
	if jana.TotalOrders != 1 {
		t.Fatalf("expected 1 order on Jana, got %d", jana.TotalOrders)
	}
}

func TestNewOrderBook_MigratesAndRecalculates(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	clientRepo := repository.NewClientRepo(mem)
	ledger, err := NewClientLedger(ctx, clientRepo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	jana := domain.NewClient("Jana")
	if err := ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Legacy order on disk: no client link, stale client totals
	orderRepo := repository.NewOrderRepo(mem)
	legacy := domain.NewOrder("Old wedding", time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC), 10000)
	legacy.ClientName = "Jana"
	legacy.FinalPaid = true
	legacy.Deposit = 0
	if err := orderRepo.SaveAll(ctx, []*domain.Order{legacy}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	book, err := NewOrderBook(ctx, orderRepo, ledger, newFakeScheduler(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded := book.Get(legacy.ID)
	if loaded == nil {
		t.Fatal("expected legacy order loaded")
	}
	if loaded.ClientID == nil || *loaded.ClientID != jana.ID {
		t.Fatal("expected client id backfilled on load")
	}
	if jana.TotalOrders != 1 || jana.TotalSpent != 10000 {
		t.Fatalf("expected totals rebuilt on load, got %d/%v", jana.TotalOrders, jana.TotalSpent)
	}

	// Backfill was persisted
	stored, err := orderRepo.LoadAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored[0].ClientID == nil {
		t.Fatal("expected persisted client id")
	}
}

func TestOrderHistory(t *testing.T) {
	ctx := context.Background()
	f := newBookFixture(t)

	jana := domain.NewClient("Jana")
	if err := f.ledger.Create(ctx, jana); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.book.Add(ctx, NewOrderInput{Name: "A", ClientName: "Jana", Date: futureDate(), Price: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.book.Add(ctx, NewOrderInput{Name: "B", ClientName: "Someone", Date: futureDate(), Price: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	history := f.book.OrderHistory(jana)
	if len(history) != 1 || history[0].Name != "A" {
		t.Fatalf("expected only Jana's order, got %d", len(history))
	}
}
