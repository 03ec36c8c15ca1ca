package repository

import (
	"context"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/store"
)

// OrderRepo stores the order collection in the document store
type OrderRepo struct {
	store store.Store
}

// NewOrderRepo creates a new OrderRepo
func NewOrderRepo(s store.Store) *OrderRepo {
	return &OrderRepo{store: s}
}

// LoadAll reads the full order collection and normalizes legacy records:
// orders saved before the status or client-link fields existed decode with
// documented defaults instead of failing the whole collection.
func (r *OrderRepo) LoadAll(ctx context.Context) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := loadCollection(ctx, r.store, KeyOrders, &orders); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Status == "" {
			o.Status = domain.OrderStatusPlanned
		}
		if o.DurationMinutes == 0 {
			o.DurationMinutes = 60
		}
	}
	return orders, nil
}

// SaveAll replaces the stored order collection
func (r *OrderRepo) SaveAll(ctx context.Context, orders []*domain.Order) error {
	return saveCollection(ctx, r.store, KeyOrders, orders)
}
