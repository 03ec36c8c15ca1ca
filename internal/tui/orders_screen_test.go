package tui

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/mkadlec/shutterbook/internal/app"
	"github.com/mkadlec/shutterbook/internal/config"
	"github.com/mkadlec/shutterbook/internal/domain"
)

func newFormModel() *OrdersModel {
	m := &OrdersModel{
		app:      &app.App{Config: config.DefaultConfig()},
		template: -1,
	}
	m.initForm(nil)
	return m
}

func TestApplyTemplate_PrefillsForm(t *testing.T) {
	m := newFormModel()

	tpl := domain.DefaultTemplates[0]
	m.applyTemplate(0)

	if got := m.fields[orderFieldName].Value(); got != tpl.Name {
		t.Fatalf("name = %q, want %q", got, tpl.Name)
	}
	if got := m.fields[orderFieldDuration].Value(); got != strconv.Itoa(tpl.DurationMinutes) {
		t.Fatalf("duration = %q, want %d", got, tpl.DurationMinutes)
	}
	if got := m.fields[orderFieldPrice].Value(); got != fmt.Sprintf("%.2f", tpl.Price) {
		t.Fatalf("price = %q, want %.2f", got, tpl.Price)
	}
	if got := m.fields[orderFieldDeposit].Value(); got != fmt.Sprintf("%.2f", tpl.Deposit) {
		t.Fatalf("deposit = %q, want %.2f", got, tpl.Deposit)
	}

	// The template description lands in the notes field
	if got := m.fields[orderFieldNotes].Value(); got != tpl.Description {
		t.Fatalf("notes = %q, want %q", got, tpl.Description)
	}
}

func TestApplyTemplate_EmptyDescriptionKeepsNotes(t *testing.T) {
	m := newFormModel()
	m.fields[orderFieldNotes].SetValue("bring the drone")

	saved := domain.DefaultTemplates[0].Description
	domain.DefaultTemplates[0].Description = ""
	defer func() { domain.DefaultTemplates[0].Description = saved }()

	m.applyTemplate(0)

	if got := m.fields[orderFieldNotes].Value(); got != "bring the drone" {
		t.Fatalf("notes = %q, want unchanged", got)
	}
}
