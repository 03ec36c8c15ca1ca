package repository

import (
	"context"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/store"
)

// ExpenseRepo stores the expense collection in the document store
type ExpenseRepo struct {
	store store.Store
}

// NewExpenseRepo creates a new ExpenseRepo
func NewExpenseRepo(s store.Store) *ExpenseRepo {
	return &ExpenseRepo{store: s}
}

// LoadAll reads the full expense collection
func (r *ExpenseRepo) LoadAll(ctx context.Context) ([]*domain.Expense, error) {
	var expenses []*domain.Expense
	if err := loadCollection(ctx, r.store, KeyExpenses, &expenses); err != nil {
		return nil, err
	}
	for _, e := range expenses {
		if e.Category == "" {
			e.Category = domain.ExpenseOther
		}
	}
	return expenses, nil
}

// SaveAll replaces the stored expense collection
func (r *ExpenseRepo) SaveAll(ctx context.Context, expenses []*domain.Expense) error {
	return saveCollection(ctx, r.store, KeyExpenses, expenses)
}
