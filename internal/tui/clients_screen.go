package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/mkadlec/shutterbook/internal/domain"
)

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	clientFieldName = iota
	clientFieldEmail
	clientFieldPhone
	clientFieldTaxID
	clientFieldAddress
	clientFieldNotes
	clientFieldCount
)

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app       *app.App
	clients   []*domain.Client
	unpaid    map[uuid.UUID]float64
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode          clientMode
	fields        []textinput.Model
	fieldFocus    int
	editingID     uuid.UUID
	autoNewClient bool // open new client form after data loads
}

type clientsDataMsg struct {
	clients []*domain.Client
	unpaid  map[uuid.UUID]float64
	err     error
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{
		app:     a,
		unpaid:  make(map[uuid.UUID]float64),
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		clients := m.app.Ledger.Clients()
		orders := m.app.Orders.Orders()

		unpaid := make(map[uuid.UUID]float64)
		for _, client := range clients {
			unpaid[client.ID] = m.app.Ledger.UnpaidBalance(client, orders)
		}

		return clientsDataMsg{clients: clients, unpaid: unpaid}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, clientFieldCount)

	m.fields[clientFieldName] = textinput.New()
	m.fields[clientFieldName].Placeholder = "Client name"
	m.fields[clientFieldName].CharLimit = 100
	m.fields[clientFieldName].Width = 40

	m.fields[clientFieldEmail] = textinput.New()
	m.fields[clientFieldEmail].Placeholder = "email@example.com"
	m.fields[clientFieldEmail].CharLimit = 100
	m.fields[clientFieldEmail].Width = 40

	m.fields[clientFieldPhone] = textinput.New()
	m.fields[clientFieldPhone].Placeholder = "+420 777 123 456"
	m.fields[clientFieldPhone].CharLimit = 30
	m.fields[clientFieldPhone].Width = 25

	m.fields[clientFieldTaxID] = textinput.New()
	m.fields[clientFieldTaxID].Placeholder = "Tax ID"
	m.fields[clientFieldTaxID].CharLimit = 30
	m.fields[clientFieldTaxID].Width = 25

	m.fields[clientFieldAddress] = textinput.New()
	m.fields[clientFieldAddress].Placeholder = "Address"
	m.fields[clientFieldAddress].CharLimit = 200
	m.fields[clientFieldAddress].Width = 50

	m.fields[clientFieldNotes] = textinput.New()
	m.fields[clientFieldNotes].Placeholder = "Optional notes"
	m.fields[clientFieldNotes].CharLimit = 200
	m.fields[clientFieldNotes].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[clientFieldName].SetValue(editing.Name)
		m.fields[clientFieldEmail].SetValue(editing.Email)
		m.fields[clientFieldPhone].SetValue(editing.Phone)
		m.fields[clientFieldTaxID].SetValue(editing.TaxID)
		m.fields[clientFieldAddress].SetValue(editing.Address)
		m.fields[clientFieldNotes].SetValue(editing.Notes)
		m.editingID = editing.ID
	} else {
		m.editingID = uuid.Nil
	}

	m.fieldFocus = clientFieldName
	m.fields[clientFieldName].Focus()
}

func (m *ClientsModel) saveClient() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		name := m.fields[clientFieldName].Value()
		if name == "" {
			return clientSavedMsg{err: fmt.Errorf("name is required")}
		}

		if m.editingID != uuid.Nil {
			// Update existing
			existing := m.app.Ledger.Get(m.editingID)
			if existing == nil {
				return clientSavedMsg{err: fmt.Errorf("client not found")}
			}
			updated := *existing
			updated.Name = name
			updated.Email = m.fields[clientFieldEmail].Value()
			updated.Phone = m.fields[clientFieldPhone].Value()
			updated.TaxID = m.fields[clientFieldTaxID].Value()
			updated.Address = m.fields[clientFieldAddress].Value()
			updated.Notes = m.fields[clientFieldNotes].Value()

			if err := m.app.Ledger.Update(ctx, &updated); err != nil {
				return clientSavedMsg{err: err}
			}
			return clientSavedMsg{name: name}
		}

		// Create new
		client := domain.NewClient(name)
		client.Email = m.fields[clientFieldEmail].Value()
		client.Phone = m.fields[clientFieldPhone].Value()
		client.TaxID = m.fields[clientFieldTaxID].Value()
		client.Address = m.fields[clientFieldAddress].Value()
		client.Notes = m.fields[clientFieldNotes].Value()

		if err := m.app.Ledger.Create(ctx, client); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: name}
	}
}

func (m *ClientsModel) deleteClient(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Ledger.Delete(context.Background(), id); err != nil {
			return clientSavedMsg{err: err}
		}
		return clientSavedMsg{name: "(removed)"}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle OpenNewClientFormMsg at the top so it works regardless of mode
	if _, ok := msg.(OpenNewClientFormMsg); ok {
		if m.loading {
			// Data hasn't loaded yet; set flag to auto-open form when it does
			m.autoNewClient = true
			return m, nil
		}
		m.mode = clientModeNew
		m.initForm(nil)
		return m, m.fields[clientFieldName].Focus()
	}

	// Handle form mode
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadClients()

	case clientsDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.clients = msg.clients
			m.unpaid = msg.unpaid
			if m.cursor >= len(m.clients) {
				m.cursor = max(0, len(m.clients)-1)
			}
		}
		// Auto-open new client form on first run
		if m.autoNewClient {
			m.autoNewClient = false
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[clientFieldName].Focus()
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

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
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, m.fields[clientFieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			// Enter key opens edit form for selected client
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, m.fields[clientFieldName].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.clients) > 0 && m.cursor < len(m.clients) {
				return m, m.deleteClient(m.clients[m.cursor].ID)
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadClients()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = clientModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % clientFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + clientFieldCount) % clientFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save
			if m.fieldFocus == clientFieldCount-1 {
				return m, m.saveClient()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveClient()
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ClientsModel) viewForm() string {
	var s string

	if m.mode == clientModeNew {
		if len(m.clients) == 0 {
			s += titleStyle.Render("Welcome to shutterbook!") + "\n"
			s += subtitleStyle.Render("  Let's set up your first client to get started.") + "\n\n"
		} else {
			s += titleStyle.Render("New Client") + "\n\n"
		}
	} else {
		s += titleStyle.Render("Edit Client") + "\n\n"
	}

	labels := []string{"Name:", "Email:", "Phone:", "Tax ID:", "Address:", "Notes:"}
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

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ClientsModel) viewList() string {
	if m.loading {
		return "Loading clients..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	var s string

	s += titleStyle.Render("Clients") + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, client := range m.clients {
		s += m.renderClient(i, client) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: remove")

	return s
}

func (m *ClientsModel) renderClient(index int, client *domain.Client) string {
	selected := index == m.cursor
	currency := m.app.Config.Currency

	indicator := "  "
	if selected {
		indicator = "> "
	}

	totals := fmt.Sprintf("Orders: %d  Spent: %s", client.TotalOrders, formatMoney(client.TotalSpent, currency))
	if due := m.unpaid[client.ID]; due > 0 {
		totals += "  " + unpaidStyle.Render(fmt.Sprintf("Unpaid: %s", formatMoney(due, currency)))
	}

	contact := client.Email
	if contact == "" {
		contact = client.Phone
	}
	if contact == "" && client.Notes != "" {
		contact = truncateStr(client.Notes, 40)
	}

	line1 := fmt.Sprintf("%s%s", indicator, client.Name)
	line2 := fmt.Sprintf("    %s", totals)
	var line3 string
	if contact != "" {
		line3 = fmt.Sprintf("    %s", contact)
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	result := nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
	if line3 != "" {
		result += "\n" + subtitleStyle.Render(line3)
	}

	return result
}
