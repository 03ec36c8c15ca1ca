package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkadlec/shutterbook/internal/domain"
)

func statsOrder(date time.Time, status domain.OrderStatus, price, deposit float64, depositPaid, finalPaid bool) *domain.Order {
	o := domain.NewOrder("Session", date, price)
	o.Status = status
	o.Deposit = deposit
	o.DepositPaid = depositPaid
	o.FinalPaid = finalPaid
	return o
}

func intPtr(v int) *int { return &v }

func statsFixture() []*domain.Order {
	return []*domain.Order{
		// March 2026, delivered, fully paid: 12000 recognized
		statsOrder(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
			domain.OrderStatusDelivered, 12000, 2000, true, true),
		// March 2026, completed, deposit only: 3000 recognized
		statsOrder(time.Date(2026, 3, 28, 10, 0, 0, 0, time.UTC),
			domain.OrderStatusCompleted, 9000, 3000, true, false),
		// June 2026, planned with paid deposit: pipeline, not recognized
		statsOrder(time.Date(2026, 6, 5, 10, 0, 0, 0, time.UTC),
			domain.OrderStatusPlanned, 8000, 1000, true, false),
		// August 2026, cancelled with paid deposit: money kept, not recognized
		statsOrder(time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
			domain.OrderStatusCancelled, 6000, 1500, true, false),
		// November 2025, delivered, fully paid: previous year
		statsOrder(time.Date(2025, 11, 2, 10, 0, 0, 0, time.UTC),
			domain.OrderStatusDelivered, 5000, 0, false, true),
	}
}

func TestMonthlyRevenue_YearScope(t *testing.T) {
	orders := statsFixture()

	points := MonthlyRevenue(orders, intPtr(2026))
	require.Len(t, points, 12)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), points[0].Month)
	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), points[11].Month)

	// Only collected money of completed and delivered orders lands in buckets
	assert.Equal(t, 15000.0, points[2].Revenue) // March: 12000 + 3000
	assert.Equal(t, 0.0, points[5].Revenue)     // June: planned deposit excluded
	assert.Equal(t, 0.0, points[7].Revenue)     // August: cancelled deposit excluded

	total := 0.0
	for _, p := range points {
		total += p.Revenue
	}
	assert.Equal(t, CompletedRevenue(orders, intPtr(2026)), total)
}

func TestMonthlyRevenue_AllTime(t *testing.T) {
	orders := statsFixture()

	points := MonthlyRevenue(orders, nil)
	require.Len(t, points, 2)

	// Chronological, only months with recognized revenue
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), points[0].Month)
	assert.Equal(t, 5000.0, points[0].Revenue)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), points[1].Month)
	assert.Equal(t, 15000.0, points[1].Revenue)
}

func TestMonthlyRevenue_EmptyYear(t *testing.T) {
	points := MonthlyRevenue(nil, intPtr(2026))
	require.Len(t, points, 12)
	for _, p := range points {
		assert.Equal(t, 0.0, p.Revenue)
	}

	assert.Empty(t, MonthlyRevenue(nil, nil))
}

func TestActualRevenue_CountsAllStatuses(t *testing.T) {
	orders := statsFixture()

	// 12000 + 3000 + 1000 planned deposit + 1500 cancelled deposit
	assert.Equal(t, 17500.0, ActualRevenue(orders, intPtr(2026)))
	assert.Equal(t, 22500.0, ActualRevenue(orders, nil))
}

func TestCompletedRevenue(t *testing.T) {
	orders := statsFixture()

	assert.Equal(t, 15000.0, CompletedRevenue(orders, intPtr(2026)))
	assert.Equal(t, 20000.0, CompletedRevenue(orders, nil))
}

func TestOrderCount_ByDateYear(t *testing.T) {
	orders := statsFixture()

	// Cancelled and planned orders count too
	assert.Equal(t, 4, OrderCount(orders, intPtr(2026)))
	assert.Equal(t, 1, OrderCount(orders, intPtr(2025)))
	assert.Equal(t, 5, OrderCount(orders, nil))
}

func TestExpenseAggregates(t *testing.T) {
	gear := domain.NewExpense("Lens", 8000, domain.ExpenseEquipment)
	gear.Date = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	fuel := domain.NewExpense("Fuel", 500, domain.ExpenseTravel)
	fuel.Date = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	old := domain.NewExpense("License", 1200, domain.ExpenseSoftware)
	old.Date = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	expenses := []*domain.Expense{gear, fuel, old}

	assert.Equal(t, 8500.0, TotalExpenses(expenses, intPtr(2026)))
	assert.Equal(t, 9700.0, TotalExpenses(expenses, nil))

	byCategory := ExpensesByCategory(expenses, intPtr(2026))
	assert.Equal(t, 8000.0, byCategory[domain.ExpenseEquipment])
	assert.Equal(t, 500.0, byCategory[domain.ExpenseTravel])
	assert.NotContains(t, byCategory, domain.ExpenseSoftware)
}

func TestNetProfit(t *testing.T) {
	orders := statsFixture()
	expense := domain.NewExpense("Lens", 8000, domain.ExpenseEquipment)
	expense.Date = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 9500.0, NetProfit(orders, []*domain.Expense{expense}, intPtr(2026)))
}

func TestAvailableYears_NewestFirst(t *testing.T) {
	orders := statsFixture()
	assert.Equal(t, []int{2026, 2025}, AvailableYears(orders))
	assert.Empty(t, AvailableYears(nil))
}
