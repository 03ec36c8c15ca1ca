package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/notify"
	"github.com/mkadlec/shutterbook/internal/service"
)

// DashboardModel represents the dashboard home screen
type DashboardModel struct {
	app *app.App

	// Data
	received     float64
	outstanding  float64
	netProfit    float64
	statusCounts map[domain.OrderStatus]int
	upcoming     []*domain.Order
	reminders    []notify.Reminder

	loading bool
	err     error
}

type dashboardDataMsg struct {
	received     float64
	outstanding  float64
	netProfit    float64
	statusCounts map[domain.OrderStatus]int
	upcoming     []*domain.Order
	reminders    []notify.Reminder
	err          error
}

// NewDashboardModel creates a new dashboard model
func NewDashboardModel(a *app.App) tea.Model {
	return &DashboardModel{
		app:     a,
		loading: true,
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *DashboardModel) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		msg := dashboardDataMsg{
			statusCounts: make(map[domain.OrderStatus]int),
		}

		orders := m.app.Orders.Orders()
		expenses := m.app.Expenses.Expenses()

		msg.received = service.ActualRevenue(orders, nil)
		msg.netProfit = service.NetProfit(orders, expenses, nil)
		for _, order := range orders {
			msg.statusCounts[order.Status]++
			msg.outstanding += order.UnpaidAmount()
		}

		// Upcoming sessions, soonest first
		now := time.Now()
		for _, order := range orders {
			if order.Date.After(now) && !order.Status.IsTerminal() {
				msg.upcoming = append(msg.upcoming, order)
			}
		}
		sort.Slice(msg.upcoming, func(i, j int) bool {
			return msg.upcoming[i].Date.Before(msg.upcoming[j].Date)
		})

		reminders, err := m.app.Reminders.Pending(ctx)
		if err == nil {
			msg.reminders = reminders
		}

		return msg
	}
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardDataMsg:
		m.loading = false
		m.err = msg.err
		m.received = msg.received
		m.outstanding = msg.outstanding
		m.netProfit = msg.netProfit
		m.statusCounts = msg.statusCounts
		m.upcoming = msg.upcoming
		m.reminders = msg.reminders
		return m, nil

	case RefreshDataMsg:
		m.loading = true
		return m, m.loadData()
	}

	return m, nil
}

func (m *DashboardModel) View() string {
	if m.loading {
		return "Loading dashboard..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	currency := m.app.Config.Currency

	var s string

	s += fmt.Sprintf(
		"  Received:     %-16s  Outstanding:  %s\n  Net profit:   %s\n",
		formatMoney(m.received, currency),
		unpaidStyle.Render(formatMoney(m.outstanding, currency)),
		formatMoney(m.netProfit, currency),
	)

	s += "\n  " + titleStyle.Render("Pipeline") + "\n  "
	for i, status := range domain.OrderStatuses {
		if i > 0 {
			s += "  "
		}
		s += fmt.Sprintf("%s: %d", status, m.statusCounts[status])
	}
	s += "\n"

	s += "\n" + m.renderUpcoming()

	if len(m.reminders) > 0 {
		next := m.reminders[0]
		s += "\n" + subtitleStyle.Render(fmt.Sprintf(
			"  Next reminder: %s at %s",
			next.Body,
			next.FireAt.Format("Jan 2 15:04"),
		)) + "\n"
	}

	return s
}

func (m *DashboardModel) renderUpcoming() string {
	header := "  " + titleStyle.Render("Upcoming Sessions") + "\n"
	if len(m.upcoming) == 0 {
		return header + subtitleStyle.Render("  No upcoming sessions") + "\n"
	}

	s := header
	limit := 6
	if len(m.upcoming) < limit {
		limit = len(m.upcoming)
	}

	for i := 0; i < limit; i++ {
		order := m.upcoming[i]
		client := order.ClientName
		if client == "" {
			client = "-"
		}
		s += fmt.Sprintf("  %-13s %-25s %-20s %s\n",
			order.Date.Format("Jan 2 15:04"),
			truncateStr(order.Name, 25),
			truncateStr(client, 20),
			formatMoney(order.Price, m.app.Config.Currency),
		)
	}

	return s
}
