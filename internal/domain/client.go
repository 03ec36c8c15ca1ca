package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	TaxID   string    `json:"taxId,omitempty"`
	Address string    `json:"address,omitempty"`
	Notes   string    `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// Ledger totals. Maintained exclusively by service.ClientLedger and
	// clamped to >= 0 after every adjustment; never edited from forms.
	TotalOrders int     `json:"totalOrders"`
	TotalSpent  float64 `json:"totalSpent"`
}

// NewClient creates a new client with required fields
func NewClient(name string) *Client {
	return &Client{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
}

// NameMatches reports whether the client's name equals the given name,
// case-insensitively and ignoring surrounding whitespace. This is the
// fallback half of the two-tier order-to-client match.
func (c *Client) NameMatches(name string) bool {
	return strings.EqualFold(
		strings.TrimSpace(c.Name),
		strings.TrimSpace(name),
	)
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}
