package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a collection has never been saved.
// Callers treat it as an empty collection, not a failure.
var ErrNotFound = errors.New("collection not found")

// Store is the persistence gateway: a key-value document store holding one
// serialized entity collection per key. Implementations own durability only;
// all bookkeeping happens above this interface.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
