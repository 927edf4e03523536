// Package metadata is the key/value table of the console's local database.
// It holds the session (token pair and cached profile) and small console
// settings.
package metadata

import (
	"context"
)

type Repository interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMany returns only the keys that exist.
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the given keys in one statement; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
	// Clear empties the table.
	Clear(ctx context.Context) error
}
