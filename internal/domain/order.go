package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPlanned    OrderStatus = "planned"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists all statuses in display order. There is no enforced
// transition graph; any status is reachable from any other by explicit user
// action.
var OrderStatuses = []OrderStatus{
	OrderStatusPlanned,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsTerminal reports whether the status suppresses the session reminder.
// Terminal-in-practice statuses stay mutable.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPlanned:
		return "Planned"
	case OrderStatusInProgress:
		return "In progress"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusDelivered:
		return "Delivered"
	case OrderStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// Order is a photo session booking. The client contact fields are a
// denormalized snapshot captured at creation time so invoices keep showing
// what was agreed even if the client record changes later. ClientID is a
// weak reference: orders created before client linking existed carry none,
// and resolution falls back to the name match permanently.
type Order struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	ClientName    string     `json:"clientName"`
	ClientID      *uuid.UUID `json:"clientId,omitempty"`
	ClientEmail   string     `json:"clientEmail,omitempty"`
	ClientPhone   string     `json:"clientPhone,omitempty"`
	ClientTaxID   string     `json:"clientTaxId,omitempty"`
	ClientAddress string     `json:"clientAddress,omitempty"`

	Location        string      `json:"location,omitempty"`
	Date            time.Time   `json:"date"`
	DurationMinutes int         `json:"duration"`
	Price           float64     `json:"price"`
	Deposit         float64     `json:"deposit"`
	DepositPaid     bool        `json:"isDepositPaid"`
	FinalPaid       bool        `json:"isFinalPaymentPaid"`
	Status          OrderStatus `json:"status"`
	Notes           string      `json:"notes,omitempty"`
}

// NewOrder creates a planned order with unpaid payment flags
func NewOrder(name string, date time.Time, price float64) *Order {
	return &Order{
		ID:              uuid.New(),
		Name:            strings.TrimSpace(name),
		Date:            date,
		DurationMinutes: 60,
		Price:           price,
		Status:          OrderStatusPlanned,
	}
}

// RemainingAmount returns the part of the price not covered by the deposit
func (o *Order) RemainingAmount() float64 {
	return o.Price - o.Deposit
}

// PaidAmount returns the portion of the price actually collected, per the
// deposit/final-payment flags. This is the single shared paid-amount policy
// used by the client ledger and the statistics rollups.
//
// A full prepayment recorded as the deposit (deposit == price) counts as
// paid once the deposit flag is set, without requiring the final-payment
// flag.
func (o *Order) PaidAmount() float64 {
	paid := 0.0
	if o.Deposit > 0 && o.DepositPaid {
		paid += o.Deposit
	}
	if o.RemainingAmount() > 0 && o.FinalPaid {
		paid += o.RemainingAmount()
	}
	if o.Deposit == 0 && o.FinalPaid {
		paid += o.Price
	}
	return paid
}

// UnpaidAmount returns what is still owed on the order: the unpaid deposit
// plus the unpaid remainder, or the full price when no deposit was agreed.
// The no-deposit case routes to its own branch so the price is never counted
// twice.
func (o *Order) UnpaidAmount() float64 {
	if o.Deposit == 0 {
		if o.FinalPaid {
			return 0
		}
		return o.Price
	}
	unpaid := 0.0
	if !o.DepositPaid {
		unpaid += o.Deposit
	}
	if o.RemainingAmount() > 0 && !o.FinalPaid {
		unpaid += o.RemainingAmount()
	}
	return unpaid
}

// FormattedDuration renders the duration as "2h 30min"
func (o *Order) FormattedDuration() string {
	h := o.DurationMinutes / 60
	m := o.DurationMinutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dmin", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dmin", m)
	}
}

// Validate returns an error if the order is invalid
func (o *Order) Validate() error {
	if strings.TrimSpace(o.Name) == "" {
		return errors.New("order name is required")
	}
	if o.Date.IsZero() {
		return errors.New("order date is required")
	}
	if o.DurationMinutes <= 0 {
		return errors.New("duration must be positive")
	}
	if o.Price < 0 {
		return errors.New("price cannot be negative")
	}
	if o.Deposit < 0 {
		return errors.New("deposit cannot be negative")
	}
	return nil
}
