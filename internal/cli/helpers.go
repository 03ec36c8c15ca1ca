package cli

import (
	"fmt"
	"strings"

	"github.com/mkadlec/shutterbook/internal/domain"
)

// formatMoney renders an amount with the configured currency suffix
func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f %s", amount, appInstance.Config.Currency)
}

// findClientByArg resolves a client by full id, unique id prefix, or name
func findClientByArg(arg string) (*domain.Client, error) {
	var matched []*domain.Client
	for _, c := range appInstance.Ledger.Clients() {
		if strings.HasPrefix(c.ID.String(), strings.ToLower(arg)) {
			matched = append(matched, c)
		}
	}
	if len(matched) == 1 {
		return matched[0], nil
	}
	if len(matched) > 1 {
		return nil, fmt.Errorf("ambiguous client ID prefix %q", arg)
	}
	if c := appInstance.Ledger.FindByName(arg); c != nil {
		return c, nil
	}
	return nil, fmt.Errorf("client not found: %s", arg)
}

// findOrderByArg resolves an order by full id or unique id prefix
func findOrderByArg(arg string) (*domain.Order, error) {
	var matched []*domain.Order
	for _, o := range appInstance.Orders.Orders() {
		if strings.HasPrefix(o.ID.String(), strings.ToLower(arg)) {
			matched = append(matched, o)
		}
	}
	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("order not found: %s", arg)
	case 1:
		return matched[0], nil
	default:
		return nil, fmt.Errorf("ambiguous order ID prefix %q", arg)
	}
}

// findExpenseByArg resolves an expense by full id or unique id prefix
func findExpenseByArg(arg string) (*domain.Expense, error) {
	var matched []*domain.Expense
	for _, e := range appInstance.Expenses.Expenses() {
		if strings.HasPrefix(e.ID.String(), strings.ToLower(arg)) {
			matched = append(matched, e)
		}
	}
	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("expense not found: %s", arg)
	case 1:
		return matched[0], nil
	default:
		return nil, fmt.Errorf("ambiguous expense ID prefix %q", arg)
	}
}

func shortID(id fmt.Stringer) string {
	return strings.Split(id.String(), "-")[0]
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
