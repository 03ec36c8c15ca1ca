package tui

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/service"
)

// orderMode represents the current screen mode
type orderMode int

const (
	orderModeList orderMode = iota
	orderModeNew
	orderModeEdit
)

// form field indices
const (
	orderFieldName = iota
	orderFieldClient
	orderFieldDate
	orderFieldLocation
	orderFieldDuration
	orderFieldPrice
	orderFieldDeposit
	orderFieldNotes
	orderFieldCount
)

// OrdersModel displays a navigable list of orders with create/edit forms
type OrdersModel struct {
	app       *app.App
	orders    []*domain.Order
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode       orderMode
	fields     []textinput.Model
	fieldFocus int
	editingID  uuid.UUID
	template   int // -1 for none, otherwise index into DefaultTemplates
}

type ordersDataMsg struct {
	orders []*domain.Order
	err    error
}

type orderSavedMsg struct {
	name string
	err  error
}

type orderActionMsg struct {
	status string
	err    error
}

// NewOrdersModel creates a new orders screen model
func NewOrdersModel(a *app.App) tea.Model {
	return &OrdersModel{
		app:      a,
		loading:  true,
		template: -1,
	}
}

// IsCapturingInput returns true when the form is active
func (m *OrdersModel) IsCapturingInput() bool {
	return m.mode == orderModeNew || m.mode == orderModeEdit
}

func (m *OrdersModel) Init() tea.Cmd {
	return m.loadOrders()
}

func (m *OrdersModel) loadOrders() tea.Cmd {
	return func() tea.Msg {
		orders := m.app.Orders.Orders()

		// Newest session first
		sorted := make([]*domain.Order, len(orders))
		copy(sorted, orders)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Date.After(sorted[j].Date)
		})

		return ordersDataMsg{orders: sorted}
	}
}

func (m *OrdersModel) initForm(editing *domain.Order) {
	m.fields = make([]textinput.Model, orderFieldCount)

	m.fields[orderFieldName] = textinput.New()
	m.fields[orderFieldName].Placeholder = "Session name"
	m.fields[orderFieldName].CharLimit = 100
	m.fields[orderFieldName].Width = 40

	m.fields[orderFieldClient] = textinput.New()
	m.fields[orderFieldClient].Placeholder = "Client name"
	m.fields[orderFieldClient].CharLimit = 100
	m.fields[orderFieldClient].Width = 40

	m.fields[orderFieldDate] = textinput.New()
	m.fields[orderFieldDate].Placeholder = "2026-09-12 14:00"
	m.fields[orderFieldDate].CharLimit = 16
	m.fields[orderFieldDate].Width = 20

	m.fields[orderFieldLocation] = textinput.New()
	m.fields[orderFieldLocation].Placeholder = "Location"
	m.fields[orderFieldLocation].CharLimit = 100
	m.fields[orderFieldLocation].Width = 40

	m.fields[orderFieldDuration] = textinput.New()
	m.fields[orderFieldDuration].Placeholder = "60"
	m.fields[orderFieldDuration].CharLimit = 5
	m.fields[orderFieldDuration].Width = 10

	m.fields[orderFieldPrice] = textinput.New()
	m.fields[orderFieldPrice].Placeholder = "5000"
	m.fields[orderFieldPrice].CharLimit = 12
	m.fields[orderFieldPrice].Width = 15

	m.fields[orderFieldDeposit] = textinput.New()
	m.fields[orderFieldDeposit].Placeholder = "0"
	m.fields[orderFieldDeposit].CharLimit = 12
	m.fields[orderFieldDeposit].Width = 15

	m.fields[orderFieldNotes] = textinput.New()
	m.fields[orderFieldNotes].Placeholder = "Optional notes"
	m.fields[orderFieldNotes].CharLimit = 200
	m.fields[orderFieldNotes].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[orderFieldName].SetValue(editing.Name)
		m.fields[orderFieldClient].SetValue(editing.ClientName)
		m.fields[orderFieldDate].SetValue(editing.Date.Format("2006-01-02 15:04"))
		m.fields[orderFieldLocation].SetValue(editing.Location)
		m.fields[orderFieldDuration].SetValue(strconv.Itoa(editing.DurationMinutes))
		m.fields[orderFieldPrice].SetValue(fmt.Sprintf("%.2f", editing.Price))
		m.fields[orderFieldDeposit].SetValue(fmt.Sprintf("%.2f", editing.Deposit))
		m.fields[orderFieldNotes].SetValue(editing.Notes)
		m.editingID = editing.ID
	} else {
		m.editingID = uuid.Nil
		if m.app.Config.Orders.DefaultDeposit > 0 {
			m.fields[orderFieldDeposit].SetValue(fmt.Sprintf("%.2f", m.app.Config.Orders.DefaultDeposit))
		}
	}

	m.fieldFocus = orderFieldName
	m.fields[orderFieldName].Focus()
}

// applyTemplate prefills the form from a built-in session template
func (m *OrdersModel) applyTemplate(index int) {
	tpl := domain.DefaultTemplates[index]
	m.fields[orderFieldName].SetValue(tpl.Name)
	m.fields[orderFieldDuration].SetValue(strconv.Itoa(tpl.DurationMinutes))
	m.fields[orderFieldPrice].SetValue(fmt.Sprintf("%.2f", tpl.Price))
	m.fields[orderFieldDeposit].SetValue(fmt.Sprintf("%.2f", tpl.Deposit))
	if tpl.Description != "" {
		m.fields[orderFieldNotes].SetValue(tpl.Description)
	}
}

func (m *OrdersModel) parseForm() (service.NewOrderInput, error) {
	var in service.NewOrderInput

	in.Name = m.fields[orderFieldName].Value()
	if in.Name == "" {
		return in, fmt.Errorf("name is required")
	}
	in.ClientName = m.fields[orderFieldClient].Value()
	in.Location = m.fields[orderFieldLocation].Value()
	in.Notes = m.fields[orderFieldNotes].Value()

	date, err := parseFormDate(m.fields[orderFieldDate].Value())
	if err != nil {
		return in, err
	}
	in.Date = date

	if v := m.fields[orderFieldDuration].Value(); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil {
			return in, fmt.Errorf("invalid duration: %s", v)
		}
		in.DurationMinutes = minutes
	}
	if v := m.fields[orderFieldPrice].Value(); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("invalid price: %s", v)
		}
		in.Price = price
	}
	if v := m.fields[orderFieldDeposit].Value(); v != "" {
		deposit, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, fmt.Errorf("invalid deposit: %s", v)
		}
		in.Deposit = deposit
	}

	return in, nil
}

func (m *OrdersModel) saveOrder() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		in, err := m.parseForm()
		if err != nil {
			return orderSavedMsg{err: err}
		}

		if m.editingID != uuid.Nil {
			existing := m.app.Orders.Get(m.editingID)
			if existing == nil {
				return orderSavedMsg{err: service.ErrOrderNotFound}
			}
			updated := *existing
			updated.Name = in.Name
			updated.ClientName = in.ClientName
			updated.Date = in.Date
			updated.Location = in.Location
			updated.DurationMinutes = in.DurationMinutes
			updated.Price = in.Price
			updated.Deposit = in.Deposit
			updated.Notes = in.Notes

			if err := m.app.Orders.Update(ctx, &updated); err != nil {
				return orderSavedMsg{err: err}
			}
			return orderSavedMsg{name: in.Name}
		}

		if _, err := m.app.Orders.Add(ctx, in); err != nil {
			return orderSavedMsg{err: err}
		}
		return orderSavedMsg{name: in.Name}
	}
}

func (m *OrdersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle form mode
	if m.mode == orderModeNew || m.mode == orderModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadOrders()

	case ordersDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.orders = msg.orders
			if m.cursor >= len(m.orders) {
				m.cursor = max(0, len(m.orders)-1)
			}
		}
		return m, nil

	case orderSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = orderModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadOrders()

	case orderActionMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = msg.status
		m.loading = true
		return m, m.loadOrders()

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.orders)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = orderModeNew
			m.template = -1
			m.initForm(nil)
			return m, m.fields[orderFieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected order
			if m.selected() != nil {
				m.mode = orderModeEdit
				m.initForm(m.selected())
				return m, m.fields[orderFieldName].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if m.selected() != nil {
				return m, m.deleteOrder(m.selected().ID)
			}
		case msg.String() == "p":
			if order := m.selected(); order != nil {
				return m, m.togglePayment(order, true)
			}
		case msg.String() == "f":
			if order := m.selected(); order != nil {
				return m, m.togglePayment(order, false)
			}
		case msg.String() == "t":
			if order := m.selected(); order != nil {
				return m, m.advanceStatus(order)
			}
		case msg.String() == "i":
			if order := m.selected(); order != nil {
				return m, m.renderInvoice(order)
			}
		}
	}

	return m, nil
}

func (m *OrdersModel) selected() *domain.Order {
	if len(m.orders) == 0 || m.cursor >= len(m.orders) {
		return nil
	}
	return m.orders[m.cursor]
}

func (m *OrdersModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case orderSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = orderModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadOrders()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = orderModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % orderFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + orderFieldCount) % orderFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save
			if m.fieldFocus == orderFieldCount-1 {
				return m, m.saveOrder()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveOrder()

		case "ctrl+t":
			// Cycle through session templates (new orders only)
			if m.mode == orderModeNew {
				m.template = (m.template + 1) % len(domain.DefaultTemplates)
				m.applyTemplate(m.template)
			}
			return m, nil
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *OrdersModel) deleteOrder(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Orders.Delete(context.Background(), id); err != nil {
			return orderActionMsg{err: err}
		}
		return orderActionMsg{status: "Order deleted"}
	}
}

func (m *OrdersModel) togglePayment(order *domain.Order, deposit bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if deposit {
			if order.Deposit <= 0 {
				return orderActionMsg{err: fmt.Errorf("order has no deposit")}
			}
			if err := m.app.Orders.SetDepositPaid(ctx, order.ID, !order.DepositPaid); err != nil {
				return orderActionMsg{err: err}
			}
			return orderActionMsg{status: fmt.Sprintf("Deposit paid=%v", !order.DepositPaid)}
		}
		if err := m.app.Orders.SetFinalPaymentPaid(ctx, order.ID, !order.FinalPaid); err != nil {
			return orderActionMsg{err: err}
		}
		return orderActionMsg{status: fmt.Sprintf("Final payment paid=%v", !order.FinalPaid)}
	}
}

// advanceStatus moves the order to the next status in the usual flow,
// wrapping from delivered back to planned. Cancelling stays a CLI operation.
func (m *OrdersModel) advanceStatus(order *domain.Order) tea.Cmd {
	return func() tea.Msg {
		next := domain.OrderStatusPlanned
		switch order.Status {
		case domain.OrderStatusPlanned:
			next = domain.OrderStatusInProgress
		case domain.OrderStatusInProgress:
			next = domain.OrderStatusCompleted
		case domain.OrderStatusCompleted:
			next = domain.OrderStatusDelivered
		}

		if err := m.app.Orders.UpdateStatus(context.Background(), order.ID, next); err != nil {
			return orderActionMsg{err: err}
		}
		return orderActionMsg{status: fmt.Sprintf("%s is now %s", order.Name, next)}
	}
}

func (m *OrdersModel) renderInvoice(order *domain.Order) tea.Cmd {
	return func() tea.Msg {
		var client *domain.Client
		if order.ClientID != nil {
			client = m.app.Ledger.Get(*order.ClientID)
		}
		if client == nil {
			client = m.app.Ledger.FindByName(order.ClientName)
		}

		path, err := m.app.Invoices.Render(order, client)
		if err != nil {
			return orderActionMsg{err: err}
		}
		return orderActionMsg{status: fmt.Sprintf("Invoice written: %s", path)}
	}
}

func (m *OrdersModel) View() string {
	if m.mode == orderModeNew || m.mode == orderModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *OrdersModel) viewForm() string {
	var s string

	if m.mode == orderModeNew {
		s += titleStyle.Render("New Order") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Order") + "\n\n"
	}

	labels := []string{"Name:", "Client:", "Date:", "Location:", "Duration (min):", "Price:", "Deposit:", "Notes:"}
	for i, label := range labels {
		indicator := "  "
		if i == m.fieldFocus {
			indicator = "> "
		}
		labelStyle := subtitleStyle
		if i == m.fieldFocus {
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s\n  %s\n\n", indicator, labelStyle.Render(label), m.fields[i].View())
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate  ctrl+t: template  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *OrdersModel) viewList() string {
	if m.loading {
		return "Loading orders..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += titleStyle.Render("Orders") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.orders) == 0 {
		s += subtitleStyle.Render("  No orders yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, order := range m.orders {
		s += m.renderOrder(i, order) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete  p: deposit paid  f: final paid  t: status  i: invoice")

	return s
}

func (m *OrdersModel) renderOrder(index int, order *domain.Order) string {
	selected := index == m.cursor
	currency := m.app.Config.Currency

	indicator := "  "
	if selected {
		indicator = "> "
	}

	client := order.ClientName
	if client == "" {
		client = "-"
	}

	var payment string
	switch {
	case order.FinalPaid:
		payment = paidStyle.Render("paid")
	case order.DepositPaid:
		payment = unpaidStyle.Render(fmt.Sprintf("deposit paid, %s due", formatMoney(order.RemainingAmount(), currency)))
	default:
		payment = unpaidStyle.Render(fmt.Sprintf("%s due", formatMoney(order.UnpaidAmount(), currency)))
	}

	line1 := fmt.Sprintf("%s%s  %s", indicator, order.Date.Format("2006-01-02 15:04"), order.Name)
	line2 := fmt.Sprintf("    %s  |  %s  |  %s  |  %s",
		truncateStr(client, 25),
		order.Status,
		formatMoney(order.Price, currency),
		payment,
	)

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}
	if order.Status == domain.OrderStatusCancelled {
		nameStyle = nameStyle.Foreground(mutedColor)
	}

	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}

// parseFormDate accepts "2006-01-02 15:04" or a bare date
func parseFormDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or YYYY-MM-DD HH:MM)", s)
}
