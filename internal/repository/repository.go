package repository

import (
	"context"

	"github.com/mkadlec/shutterbook/internal/domain"
)

// Collection keys in the document store
const (
	KeyClients   = "clients"
	KeyOrders    = "orders"
	KeyExpenses  = "expenses"
	KeyReminders = "reminders"
)

// ClientCollection persists the client collection as a whole. There is no
// per-record access: the ledger owns the collection in memory and writes it
// back after every mutation, last write wins.
type ClientCollection interface {
	LoadAll(ctx context.Context) ([]*domain.Client, error)
	SaveAll(ctx context.Context, clients []*domain.Client) error
}

// OrderCollection persists the order collection as a whole
type OrderCollection interface {
	LoadAll(ctx context.Context) ([]*domain.Order, error)
	SaveAll(ctx context.Context, orders []*domain.Order) error
}

// ExpenseCollection persists the expense collection as a whole
type ExpenseCollection interface {
	LoadAll(ctx context.Context) ([]*domain.Expense, error)
	SaveAll(ctx context.Context, expenses []*domain.Expense) error
}
