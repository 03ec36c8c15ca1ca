package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/service"
)

// StatsModel displays revenue, expense, and profit statistics
type StatsModel struct {
	app  *app.App
	year int // 0 means all time

	booked      float64
	received    float64
	expenses    float64
	netProfit   float64
	orderCount  int
	monthly     []service.MonthlyPoint
	byCategory  map[domain.ExpenseCategory]float64
	years       []int

	loading bool
	err     error
}

type statsDataMsg struct {
	booked     float64
	received   float64
	expenses   float64
	netProfit  float64
	orderCount int
	monthly    []service.MonthlyPoint
	byCategory map[domain.ExpenseCategory]float64
	years      []int
	err        error
}

// NewStatsModel creates a new statistics screen model
func NewStatsModel(a *app.App) tea.Model {
	return &StatsModel{
		app:     a,
		year:    time.Now().Year(),
		loading: true,
	}
}

func (m *StatsModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *StatsModel) loadData() tea.Cmd {
	year := m.year
	return func() tea.Msg {
		orders := m.app.Orders.Orders()
		expenses := m.app.Expenses.Expenses()

		var yearFilter *int
		if year != 0 {
			yearFilter = &year
		}

		return statsDataMsg{
			booked:     service.CompletedRevenue(orders, yearFilter),
			received:   service.ActualRevenue(orders, yearFilter),
			expenses:   service.TotalExpenses(expenses, yearFilter),
			netProfit:  service.NetProfit(orders, expenses, yearFilter),
			orderCount: service.OrderCount(orders, yearFilter),
			monthly:    service.MonthlyRevenue(orders, yearFilter),
			byCategory: service.ExpensesByCategory(expenses, yearFilter),
			years:      service.AvailableYears(orders),
		}
	}
}

// cycleYear moves the monthly chart through available years and "all time"
func (m *StatsModel) cycleYear(forward bool) {
	if len(m.years) == 0 {
		return
	}

	// Options: years... then 0 (all time)
	options := append(append([]int{}, m.years...), 0)
	current := 0
	for i, y := range options {
		if y == m.year {
			current = i
			break
		}
	}
	if forward {
		current = (current + 1) % len(options)
	} else {
		current = (current - 1 + len(options)) % len(options)
	}
	m.year = options[current]
}

func (m *StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()

	case statsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.booked = msg.booked
			m.received = msg.received
			m.expenses = msg.expenses
			m.netProfit = msg.netProfit
			m.orderCount = msg.orderCount
			m.monthly = msg.monthly
			m.byCategory = msg.byCategory
			m.years = msg.years
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, DefaultKeyMap.Right):
			m.cycleYear(true)
			m.loading = true
			return m, m.loadData()
		case key.Matches(msg, DefaultKeyMap.Left):
			m.cycleYear(false)
			m.loading = true
			return m, m.loadData()
		}
	}

	return m, nil
}

func (m *StatsModel) View() string {
	if m.loading {
		return "Loading statistics..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	currency := m.app.Config.Currency

	var s string

	s += fmt.Sprintf(
		"  Orders:      %d\n  Recognized:  %s\n  Received:    %s\n  Expenses:    %s\n  Net profit:  %s\n",
		m.orderCount,
		formatMoney(m.booked, currency),
		formatMoney(m.received, currency),
		formatMoney(m.expenses, currency),
		formatMoney(m.netProfit, currency),
	)

	s += "\n" + m.renderMonthlyChart()

	if len(m.byCategory) > 0 {
		s += "\n  " + titleStyle.Render("Expenses by Category") + "\n"
		for _, category := range domain.ExpenseCategories {
			if amount, ok := m.byCategory[category]; ok {
				s += fmt.Sprintf("  %-12s %s\n", category, formatMoney(amount, currency))
			}
		}
	}

	s += "\n" + helpStyle.Render("  h/l: change year")

	return s
}

func (m *StatsModel) renderMonthlyChart() string {
	label := "All Time"
	if m.year != 0 {
		label = fmt.Sprintf("%d", m.year)
	}
	s := "  " + titleStyle.Render(fmt.Sprintf("Monthly Revenue - %s", label)) + "\n"

	if len(m.monthly) == 0 {
		return s + subtitleStyle.Render("  No revenue yet") + "\n"
	}

	maxRevenue := 0.0
	for _, p := range m.monthly {
		if p.Revenue > maxRevenue {
			maxRevenue = p.Revenue
		}
	}

	const maxBar = 30
	for _, p := range m.monthly {
		barLen := 0
		if maxRevenue > 0 {
			barLen = int((p.Revenue / maxRevenue) * float64(maxBar))
		}
		bar := ""
		for j := 0; j < barLen; j++ {
			bar += "█"
		}

		format := "Jan"
		if m.year == 0 {
			format = "Jan 2006"
		}
		s += fmt.Sprintf("  %-9s %s %s\n",
			p.Month.Format(format),
			barStyle.Render(fmt.Sprintf("%-30s", bar)),
			formatMoney(p.Revenue, m.app.Config.Currency),
		)
	}

	return s
}
