package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mkadlec/shutterbook/internal/store"
)

// loadCollection decodes the JSON document stored under key into out.
// A collection that has never been saved decodes to the empty collection.
func loadCollection(ctx context.Context, s store.Store, key string, out any) error {
	data, err := s.Load(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// saveCollection encodes in as JSON and stores it under key
func saveCollection(ctx context.Context, s store.Store, key string, in any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
