package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// OrderIDLayout derives the order id from its creation time, second resolution.
	// Two orders created in the same second share an id; this is accepted.
	OrderIDLayout = "20060102-150405"
	// RowTimeLayout is the per-row timestamp written to the ledger and registry.
	RowTimeLayout = "2006-01-02 15:04:05"
)

// LineItem is one requested product.
type LineItem struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

// Validate checks the required fields of a single item.
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrValidation)
	}
	if li.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	return nil
}

// ValidateItems checks an order's item list: non-empty and every item valid.
func ValidateItems(items []LineItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item[%d]: %w", i, err)
		}
	}
	return nil
}

// Order is one submitted request. It is created once and never mutated.
type Order struct {
	ID            string     `json:"order_id"`
	CreatedAt     time.Time  `json:"created_at"`
	ClientName    string     `json:"client_name"`
	ClientContact string     `json:"client_contact"`
	Items         []LineItem `json:"items"`
}

// NewOrderID formats t as an order id.
func NewOrderID(t time.Time) string {
	return t.Format(OrderIDLayout)
}
