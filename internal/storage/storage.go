// Package storage provides durable client-side snapshot storage. One key maps
// to one serialized snapshot, and every write replaces the whole value, so a
// crash can never leave a torn snapshot behind.
package storage

import "context"

// Store persists opaque snapshots under fixed keys.
type Store interface {
	// Load returns the snapshot stored under key. ok is false when the key
	// has never been written or was deleted.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save replaces the snapshot stored under key in full.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the snapshot stored under key. Deleting an absent key
	// is not an error.
	Delete(ctx context.Context, key string) error
}
