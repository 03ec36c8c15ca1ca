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

// expenseMode represents the current screen mode
type expenseMode int

const (
	expenseModeList expenseMode = iota
	expenseModeNew
	expenseModeEdit
)

// form field indices
const (
	expenseFieldName = iota
	expenseFieldAmount
	expenseFieldCategory
	expenseFieldDate
	expenseFieldNotes
	expenseFieldCount
)

// ExpensesModel displays a navigable list of expenses with create/edit forms
type ExpensesModel struct {
	app       *app.App
	expenses  []*domain.Expense
	total     float64
	cursor    int
	loading   bool
	err       error
	statusMsg string

	// Form state
	mode       expenseMode
	fields     []textinput.Model
	fieldFocus int
	editingID  uuid.UUID
	recurring  bool
}

type expensesDataMsg struct {
	expenses []*domain.Expense
	total    float64
	err      error
}

type expenseSavedMsg struct {
	name string
	err  error
}

// NewExpensesModel creates a new expenses screen model
func NewExpensesModel(a *app.App) tea.Model {
	return &ExpensesModel{
		app:     a,
		loading: true,
	}
}

// IsCapturingInput returns true when the form is active
func (m *ExpensesModel) IsCapturingInput() bool {
	return m.mode == expenseModeNew || m.mode == expenseModeEdit
}

func (m *ExpensesModel) Init() tea.Cmd {
	return m.loadExpenses()
}

func (m *ExpensesModel) loadExpenses() tea.Cmd {
	return func() tea.Msg {
		expenses := m.app.Expenses.Expenses()

		// Newest first
		sorted := make([]*domain.Expense, len(expenses))
		copy(sorted, expenses)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Date.After(sorted[j].Date)
		})

		return expensesDataMsg{
			expenses: sorted,
			total:    service.TotalExpenses(expenses, nil),
		}
	}
}

func (m *ExpensesModel) initForm(editing *domain.Expense) {
	m.fields = make([]textinput.Model, expenseFieldCount)

	m.fields[expenseFieldName] = textinput.New()
	m.fields[expenseFieldName].Placeholder = "Expense name"
	m.fields[expenseFieldName].CharLimit = 100
	m.fields[expenseFieldName].Width = 40

	m.fields[expenseFieldAmount] = textinput.New()
	m.fields[expenseFieldAmount].Placeholder = "1500"
	m.fields[expenseFieldAmount].CharLimit = 12
	m.fields[expenseFieldAmount].Width = 15

	m.fields[expenseFieldCategory] = textinput.New()
	m.fields[expenseFieldCategory].Placeholder = "equipment, travel, software, ..."
	m.fields[expenseFieldCategory].CharLimit = 20
	m.fields[expenseFieldCategory].Width = 35

	m.fields[expenseFieldDate] = textinput.New()
	m.fields[expenseFieldDate].Placeholder = "2026-08-29"
	m.fields[expenseFieldDate].CharLimit = 16
	m.fields[expenseFieldDate].Width = 20

	m.fields[expenseFieldNotes] = textinput.New()
	m.fields[expenseFieldNotes].Placeholder = "Optional notes"
	m.fields[expenseFieldNotes].CharLimit = 200
	m.fields[expenseFieldNotes].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[expenseFieldName].SetValue(editing.Name)
		m.fields[expenseFieldAmount].SetValue(fmt.Sprintf("%.2f", editing.Amount))
		m.fields[expenseFieldCategory].SetValue(string(editing.Category))
		m.fields[expenseFieldDate].SetValue(editing.Date.Format("2006-01-02"))
		m.fields[expenseFieldNotes].SetValue(editing.Notes)
		m.editingID = editing.ID
		m.recurring = editing.Recurring
	} else {
		m.editingID = uuid.Nil
		m.recurring = false
	}

	m.fieldFocus = expenseFieldName
	m.fields[expenseFieldName].Focus()
}

func (m *ExpensesModel) saveExpense() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		name := m.fields[expenseFieldName].Value()
		if name == "" {
			return expenseSavedMsg{err: fmt.Errorf("name is required")}
		}

		amount := 0.0
		if v := m.fields[expenseFieldAmount].Value(); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return expenseSavedMsg{err: fmt.Errorf("invalid amount: %s", v)}
			}
			amount = parsed
		}

		category := domain.ParseExpenseCategory(m.fields[expenseFieldCategory].Value())

		date := time.Now()
		if v := m.fields[expenseFieldDate].Value(); v != "" {
			parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
			if err != nil {
				return expenseSavedMsg{err: fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", v)}
			}
			date = parsed
		}

		notes := m.fields[expenseFieldNotes].Value()

		if m.editingID != uuid.Nil {
			existing := m.app.Expenses.Get(m.editingID)
			if existing == nil {
				return expenseSavedMsg{err: service.ErrExpenseNotFound}
			}
			updated := *existing
			updated.Name = name
			updated.Amount = amount
			updated.Category = category
			updated.Date = date
			updated.Notes = notes
			updated.Recurring = m.recurring

			if err := m.app.Expenses.Update(ctx, &updated); err != nil {
				return expenseSavedMsg{err: err}
			}
			return expenseSavedMsg{name: name}
		}

		expense := domain.NewExpense(name, amount, category)
		expense.Date = date
		expense.Notes = notes
		expense.Recurring = m.recurring

		if err := m.app.Expenses.Add(ctx, expense); err != nil {
			return expenseSavedMsg{err: err}
		}
		return expenseSavedMsg{name: name}
	}
}

func (m *ExpensesModel) deleteExpense(id uuid.UUID) tea.Cmd {
	return func() tea.Msg {
		if err := m.app.Expenses.Delete(context.Background(), id); err != nil {
			return expenseSavedMsg{err: err}
		}
		return expenseSavedMsg{name: "(deleted)"}
	}
}

func (m *ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle form mode
	if m.mode == expenseModeNew || m.mode == expenseModeEdit {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.loading = true
		return m, m.loadExpenses()

	case expensesDataMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			m.expenses = msg.expenses
			m.total = msg.total
			if m.cursor >= len(m.expenses) {
				m.cursor = max(0, len(m.expenses)-1)
			}
		}
		return m, nil

	case expenseSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = expenseModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadExpenses()

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
			if m.cursor < len(m.expenses)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = expenseModeNew
			m.initForm(nil)
			return m, m.fields[expenseFieldName].Focus()
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.expenses) > 0 && m.cursor < len(m.expenses) {
				m.mode = expenseModeEdit
				m.initForm(m.expenses[m.cursor])
				return m, m.fields[expenseFieldName].Focus()
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.expenses) > 0 && m.cursor < len(m.expenses) {
				return m, m.deleteExpense(m.expenses[m.cursor].ID)
			}
		}
	}

	return m, nil
}

func (m *ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = expenseModeList
		m.statusMsg = fmt.Sprintf("Saved: %s", msg.name)
		m.loading = true
		return m, m.loadExpenses()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			// Cancel form
			m.mode = expenseModeList
			m.err = nil
			return m, nil

		case "tab", "down":
			// Next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus + 1) % expenseFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "shift+tab", "up":
			// Previous field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus = (m.fieldFocus - 1 + expenseFieldCount) % expenseFieldCount
			return m, m.fields[m.fieldFocus].Focus()

		case "enter":
			// If on last field, save
			if m.fieldFocus == expenseFieldCount-1 {
				return m, m.saveExpense()
			}
			// Otherwise advance to next field
			m.fields[m.fieldFocus].Blur()
			m.fieldFocus++
			return m, m.fields[m.fieldFocus].Focus()

		case "ctrl+s":
			// Save from any field
			return m, m.saveExpense()

		case "ctrl+r":
			// Toggle the recurring flag
			m.recurring = !m.recurring
			return m, nil
		}
	}

	// Update the focused text input
	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ExpensesModel) View() string {
	if m.mode == expenseModeNew || m.mode == expenseModeEdit {
		return m.viewForm()
	}
	return m.viewList()
}

func (m *ExpensesModel) viewForm() string {
	var s string

	if m.mode == expenseModeNew {
		s += titleStyle.Render("New Expense") + "\n\n"
	} else {
		s += titleStyle.Render("Edit Expense") + "\n\n"
	}

	labels := []string{"Name:", "Amount:", "Category:", "Date:", "Notes:"}
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

	recurring := "no"
	if m.recurring {
		recurring = "yes"
	}
	s += subtitleStyle.Render(fmt.Sprintf("  Recurring: %s (ctrl+r to toggle)", recurring)) + "\n\n"

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	s += helpStyle.Render("  tab/shift+tab: navigate fields  ctrl+s: save  enter: next/save  esc: cancel")

	return s
}

func (m *ExpensesModel) viewList() string {
	if m.loading {
		return "Loading expenses..."
	}

	if m.err != nil {
		return lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("Error: %v", m.err))
	}

	currency := m.app.Config.Currency

	var s string

	s += titleStyle.Render("Expenses") + "  " +
		subtitleStyle.Render(fmt.Sprintf("total %s", formatMoney(m.total, currency))) + "\n\n"

	// Status message
	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if len(m.expenses) == 0 {
		s += subtitleStyle.Render("  No expenses yet. Press 'n' to add one.") + "\n"
		return s
	}

	for i, expense := range m.expenses {
		selected := i == m.cursor

		indicator := "  "
		if selected {
			indicator = "> "
		}

		recurring := ""
		if expense.Recurring {
			recurring = "  (recurring)"
		}

		line := fmt.Sprintf("%s%-12s %-30s %-12s %s%s",
			indicator,
			expense.Date.Format("2006-01-02"),
			truncateStr(expense.Name, 30),
			expense.Category,
			formatMoney(expense.Amount, currency),
			recurring,
		)

		style := lipgloss.NewStyle()
		if selected {
			style = style.Bold(true).Foreground(primaryColor)
		}
		s += style.Render(line) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  n: new  enter: edit  x: delete")

	return s
}
