package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/repository"
)

// ClientLedger owns the client collection and is the single writer of the
// derived TotalOrders/TotalSpent fields. Every money- or identity-affecting
// order mutation flows through ApplyOrderDelta or RecalculateAll; nothing
// else may touch the totals.
type ClientLedger struct {
	repo    repository.ClientCollection
	clients []*domain.Client
}

// NewClientLedger loads the client collection. A load failure falls back to
// an empty collection so the app keeps working; the error is returned so the
// caller can warn the user.
func NewClientLedger(ctx context.Context, repo repository.ClientCollection) (*ClientLedger, error) {
	ledger := &ClientLedger{repo: repo}

	clients, err := repo.LoadAll(ctx)
	if err != nil {
		return ledger, fmt.Errorf("failed to load clients, starting empty: %w", err)
	}
	ledger.clients = clients
	return ledger, nil
}

// Clients returns the current client collection in creation order
func (l *ClientLedger) Clients() []*domain.Client {
	return l.clients
}

// Get returns the client with the given id, or nil
func (l *ClientLedger) Get(id uuid.UUID) *domain.Client {
	for _, c := range l.clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindByName returns the first client whose name matches case-insensitively,
// ignoring surrounding whitespace. Duplicate names are permitted; the first
// match in creation order wins, which makes the tie-break deterministic.
func (l *ClientLedger) FindByName(name string) *domain.Client {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	for _, c := range l.clients {
		if c.NameMatches(name) {
			return c
		}
	}
	return nil
}

// Create validates and appends a new client, then persists the collection
func (l *ClientLedger) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	l.clients = append(l.clients, client)
	return l.persist(ctx)
}

// Update replaces the stored client's editable fields by id. The ledger
// totals of the stored record are kept; they are never taken from a form.
func (l *ClientLedger) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}
	for i, existing := range l.clients {
		if existing.ID == client.ID {
			updated := *client
			updated.CreatedAt = existing.CreatedAt
			updated.TotalOrders = existing.TotalOrders
			updated.TotalSpent = existing.TotalSpent
			l.clients[i] = &updated
			return l.persist(ctx)
		}
	}
	return ErrClientNotFound
}

// Delete removes a client by id. Orders keep their denormalized snapshot and
// a possibly dangling clientId; deletion never cascades.
func (l *ClientLedger) Delete(ctx context.Context, id uuid.UUID) error {
	for i, c := range l.clients {
		if c.ID == id {
			l.clients = append(l.clients[:i], l.clients[i+1:]...)
			return l.persist(ctx)
		}
	}
	return ErrClientNotFound
}

// ApplyOrderDelta adjusts the resolved client's totals for one order insert
// or delete. Resolution prefers the order's clientId and falls back to the
// trimmed case-insensitive name match. When no client resolves on insert and
// the order names one, a new client is synthesized from the order's
// denormalized snapshot. When no client resolves on delete, the ledger is
// already consistent and nothing happens.
func (l *ClientLedger) ApplyOrderDelta(ctx context.Context, order *domain.Order, isDeleting bool) error {
	multiplier := 1
	if isDeleting {
		multiplier = -1
	}
	paid := order.PaidAmount()

	if client := l.resolve(order); client != nil {
		client.TotalOrders += multiplier
		client.TotalSpent += paid * float64(multiplier)
		clampTotals(client)
		return l.persist(ctx)
	}

	if !isDeleting && strings.TrimSpace(order.ClientName) != "" {
		created := domain.NewClient(order.ClientName)
		created.Email = order.ClientEmail
		created.Phone = order.ClientPhone
		created.TaxID = order.ClientTaxID
		created.Address = order.ClientAddress
		created.TotalOrders = 1
		created.TotalSpent = paid
		l.clients = append(l.clients, created)
		return l.persist(ctx)
	}

	// Deleting an order for an already-removed client is not an error
	return nil
}

// RecalculateAll rebuilds every client's totals from the given order
// collection. Idempotent: running it twice over the same orders yields the
// same totals. Used after payment-flag flips and batch deletes, where a full
// rebuild is simpler to get right than incremental deltas.
func (l *ClientLedger) RecalculateAll(ctx context.Context, orders []*domain.Order) error {
	for _, c := range l.clients {
		c.TotalOrders = 0
		c.TotalSpent = 0
	}

	for _, order := range orders {
		if strings.TrimSpace(order.ClientName) == "" {
			continue
		}
		if client := l.resolve(order); client != nil {
			client.TotalOrders++
			client.TotalSpent += order.PaidAmount()
		}
	}

	return l.persist(ctx)
}

// UnpaidBalance sums what the client still owes across their orders: unpaid
// deposits, unpaid remainders, and the full price of no-deposit orders not
// yet settled.
func (l *ClientLedger) UnpaidBalance(client *domain.Client, orders []*domain.Order) float64 {
	total := 0.0
	for _, order := range MatchOrders(client, orders) {
		total += order.UnpaidAmount()
	}
	return total
}

// MigrateClientIDs backfills clientId on orders that predate client linking,
// using the name match. Non-destructive and idempotent; safe on every load.
// Returns true when any order was changed so the caller can persist orders.
func (l *ClientLedger) MigrateClientIDs(orders []*domain.Order) bool {
	changed := false
	for _, order := range orders {
		if order.ClientID != nil || strings.TrimSpace(order.ClientName) == "" {
			continue
		}
		if client := l.FindByName(order.ClientName); client != nil {
			id := client.ID
			order.ClientID = &id
			changed = true
		}
	}
	return changed
}

// MatchOrders returns the orders belonging to the client via the two-tier
// match: clientId when the order carries one, name fallback otherwise.
func MatchOrders(client *domain.Client, orders []*domain.Order) []*domain.Order {
	var matched []*domain.Order
	for _, order := range orders {
		if order.ClientID != nil {
			if *order.ClientID == client.ID {
				matched = append(matched, order)
			}
		} else if client.NameMatches(order.ClientName) {
			matched = append(matched, order)
		}
	}
	return matched
}

// resolve finds the order's client: by id first, then by name. An order with
// a dangling clientId still resolves by name, matching how legacy orders
// without any id behave.
func (l *ClientLedger) resolve(order *domain.Order) *domain.Client {
	if order.ClientID != nil {
		for _, c := range l.clients {
			if c.ID == *order.ClientID {
				return c
			}
		}
	}
	return l.FindByName(order.ClientName)
}

func (l *ClientLedger) persist(ctx context.Context) error {
	if err := l.repo.SaveAll(ctx, l.clients); err != nil {
		return fmt.Errorf("failed to save clients: %w", err)
	}
	return nil
}

func clampTotals(c *domain.Client) {
	if c.TotalOrders < 0 {
		c.TotalOrders = 0
	}
	if c.TotalSpent < 0 {
		c.TotalSpent = 0
	}
}
