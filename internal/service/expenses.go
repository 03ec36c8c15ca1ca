package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/repository"
)

// ExpenseService owns the expense collection
type ExpenseService struct {
	repo     repository.ExpenseCollection
	expenses []*domain.Expense
}

// NewExpenseService loads the expense collection, falling back to empty on
// a load failure.
func NewExpenseService(ctx context.Context, repo repository.ExpenseCollection) (*ExpenseService, error) {
	svc := &ExpenseService{repo: repo}

	expenses, err := repo.LoadAll(ctx)
	if err != nil {
		return svc, fmt.Errorf("failed to load expenses, starting empty: %w", err)
	}
	svc.expenses = expenses
	return svc, nil
}

// Expenses returns the current expense collection
func (s *ExpenseService) Expenses() []*domain.Expense {
	return s.expenses
}

// Get returns the expense with the given id, or nil
func (s *ExpenseService) Get(id uuid.UUID) *domain.Expense {
	for _, e := range s.expenses {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Add validates and appends a new expense, then persists the collection
func (s *ExpenseService) Add(ctx context.Context, expense *domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return fmt.Errorf("invalid expense: %w", err)
	}
	s.expenses = append(s.expenses, expense)
	return s.persist(ctx)
}

// Update replaces the stored expense carrying the same id
func (s *ExpenseService) Update(ctx context.Context, expense *domain.Expense) error {
	if err := expense.Validate(); err != nil {
		return fmt.Errorf("invalid expense: %w", err)
	}
	for i, existing := range s.expenses {
		if existing.ID == expense.ID {
			s.expenses[i] = expense
			return s.persist(ctx)
		}
	}
	return ErrExpenseNotFound
}

// Delete removes an expense by id
func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return s.persist(ctx)
		}
	}
	return ErrExpenseNotFound
}

func (s *ExpenseService) persist(ctx context.Context) error {
	if err := s.repo.SaveAll(ctx, s.expenses); err != nil {
		return fmt.Errorf("failed to save expenses: %w", err)
	}
	return nil
}
