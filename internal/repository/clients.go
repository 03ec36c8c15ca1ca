package repository

import (
	"context"

	"github.com/mkadlec/shutterbook/internal/domain"
	"github.com/mkadlec/shutterbook/internal/store"
)

// ClientRepo stores the client collection in the document store
type ClientRepo struct {
	store store.Store
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(s store.Store) *ClientRepo {
	return &ClientRepo{store: s}
}

// LoadAll reads the full client collection; a never-saved collection is empty
func (r *ClientRepo) LoadAll(ctx context.Context) ([]*domain.Client, error) {
	var clients []*domain.Client
	if err := loadCollection(ctx, r.store, KeyClients, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

// SaveAll replaces the stored client collection
func (r *ClientRepo) SaveAll(ctx context.Context, clients []*domain.Client) error {
	return saveCollection(ctx, r.store, KeyClients, clients)
}
