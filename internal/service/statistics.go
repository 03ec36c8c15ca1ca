package service

import (
	"sort"
	"time"

	"github.com/mkadlec/shutterbook/internal/domain"
)

// MonthlyPoint is one month's recognized revenue. Month is normalized to the
// first day of the month at midnight UTC.
type MonthlyPoint struct {
	Month   time.Time
	Revenue float64
}

// countsAsRevenue reports whether the status counts as recognized revenue.
// Revenue recognition is gated on completion status, not payment status:
// planned and in-progress work is pipeline even when a deposit came in.
func countsAsRevenue(status domain.OrderStatus) bool {
	return status == domain.OrderStatusCompleted || status == domain.OrderStatusDelivered
}

func inYear(t time.Time, year *int) bool {
	return year == nil || t.Year() == *year
}

// MonthlyRevenue aggregates collected payments of completed and delivered
// orders by calendar month. With a year given, the result always has twelve
// points, January through December, months without revenue at zero. Without
// one it has a point per distinct month that saw revenue, in chronological
// order.
func MonthlyRevenue(orders []*domain.Order, year *int) []MonthlyPoint {
	if year != nil {
		points := make([]MonthlyPoint, 12)
		for m := 0; m < 12; m++ {
			points[m].Month = time.Date(*year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC)
		}
		for _, order := range orders {
			if !countsAsRevenue(order.Status) || order.Date.Year() != *year {
				continue
			}
			points[int(order.Date.Month())-1].Revenue += order.PaidAmount()
		}
		return points
	}

	byMonth := make(map[time.Time]float64)
	for _, order := range orders {
		if !countsAsRevenue(order.Status) {
			continue
		}
		month := time.Date(order.Date.Year(), order.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] += order.PaidAmount()
	}

	points := make([]MonthlyPoint, 0, len(byMonth))
	for month, revenue := range byMonth {
		points = append(points, MonthlyPoint{Month: month, Revenue: revenue})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Month.Before(points[j].Month)
	})
	return points
}

// ActualRevenue sums payments actually received across all orders in scope,
// regardless of status. A paid deposit on a cancelled shoot is still money
// in the bank. Deliberately broader than the completed-only monthly series.
func ActualRevenue(orders []*domain.Order, year *int) float64 {
	total := 0.0
	for _, order := range orders {
		if inYear(order.Date, year) {
			total += order.PaidAmount()
		}
	}
	return total
}

// CompletedRevenue sums collected payments of completed and delivered orders
// in scope. Equals the sum of the MonthlyRevenue buckets.
func CompletedRevenue(orders []*domain.Order, year *int) float64 {
	total := 0.0
	for _, order := range orders {
		if countsAsRevenue(order.Status) && inYear(order.Date, year) {
			total += order.PaidAmount()
		}
	}
	return total
}

// TotalExpenses sums expense amounts in scope
func TotalExpenses(expenses []*domain.Expense, year *int) float64 {
	total := 0.0
	for _, e := range expenses {
		if inYear(e.Date, year) {
			total += e.Amount
		}
	}
	return total
}

// NetProfit is received payments minus expenses for the scope
func NetProfit(orders []*domain.Order, expenses []*domain.Expense, year *int) float64 {
	return ActualRevenue(orders, year) - TotalExpenses(expenses, year)
}

// OrderCount counts orders whose date falls in the year, unfiltered by status
func OrderCount(orders []*domain.Order, year *int) int {
	count := 0
	for _, order := range orders {
		if inYear(order.Date, year) {
			count++
		}
	}
	return count
}

// ExpensesByCategory sums expense amounts per category for the scope
func ExpensesByCategory(expenses []*domain.Expense, year *int) map[domain.ExpenseCategory]float64 {
	byCategory := make(map[domain.ExpenseCategory]float64)
	for _, e := range expenses {
		if inYear(e.Date, year) {
			byCategory[e.Category] += e.Amount
		}
	}
	return byCategory
}

// AvailableYears returns the distinct order years, newest first
func AvailableYears(orders []*domain.Order) []int {
	seen := make(map[int]bool)
	for _, order := range orders {
		seen[order.Date.Year()] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
