package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ExpenseCategory string

const (
	ExpenseEquipment ExpenseCategory = "equipment"
	ExpenseTravel    ExpenseCategory = "travel"
	ExpenseSoftware  ExpenseCategory = "software"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseEducation ExpenseCategory = "education"
	ExpenseOffice    ExpenseCategory = "office"
	ExpenseOther     ExpenseCategory = "other"
)

var ExpenseCategories = []ExpenseCategory{
	ExpenseEquipment,
	ExpenseTravel,
	ExpenseSoftware,
	ExpenseMarketing,
	ExpenseEducation,
	ExpenseOffice,
	ExpenseOther,
}

func (c ExpenseCategory) String() string {
	switch c {
	case ExpenseEquipment:
		return "Equipment"
	case ExpenseTravel:
		return "Travel"
	case ExpenseSoftware:
		return "Software"
	case ExpenseMarketing:
		return "Marketing"
	case ExpenseEducation:
		return "Education"
	case ExpenseOffice:
		return "Office"
	case ExpenseOther:
		return "Other"
	default:
		return string(c)
	}
}

// ParseExpenseCategory maps user input to a category, defaulting to "other"
func ParseExpenseCategory(s string) ExpenseCategory {
	c := ExpenseCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range ExpenseCategories {
		if c == known {
			return known
		}
	}
	return ExpenseOther
}

type Expense struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Amount    float64         `json:"amount"`
	Category  ExpenseCategory `json:"category"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	Recurring bool            `json:"isRecurring"` // informational only, not expanded into instances
}

// NewExpense creates a new expense dated now
func NewExpense(name string, amount float64, category ExpenseCategory) *Expense {
	return &Expense{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Amount:   amount,
		Category: category,
		Date:     time.Now(),
	}
}

// Validate returns an error if the expense is invalid
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return errors.New("expense name is required")
	}
	if e.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	return nil
}
