// Package store provides the CLI's local persistence layer: a small
// collection/document store where each named collection holds one JSON blob.
package store

import "context"

// Well-known collection names.
const (
	CollectionUsers   = "users"
	CollectionTasks   = "tasks"
	CollectionSession = "session"
)

// Store is a minimal key/blob store keyed by collection name.
//
// Contract:
//   - Load returns (nil, nil) when the collection does not exist.
//   - Save creates the collection or overwrites it atomically.
//   - Delete is idempotent.
type Store interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
	Delete(ctx context.Context, collection string) error
}
