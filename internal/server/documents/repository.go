// Package documents implements the document-store semantics on top of a
// flat (collection, key) -> JSON value repository.
package documents

import "context"

// Repository persists child documents. Values are raw JSON.
type Repository interface {
	// List returns every child of collection keyed by child key.
	List(ctx context.Context, collection string) (map[string][]byte, error)
	// Get returns common.ErrNotFound when the child does not exist.
	Get(ctx context.Context, collection, key string) ([]byte, error)
	// Put inserts or replaces a child.
	Put(ctx context.Context, collection, key string, value []byte) error
	// Delete removes a child; removing an absent child is not an error.
	Delete(ctx context.Context, collection, key string) error
	// DeleteCollection removes every child of collection.
	DeleteCollection(ctx context.Context, collection string) error
	// ReplaceCollection atomically swaps all children of collection.
	ReplaceCollection(ctx context.Context, collection string, children map[string][]byte) error
}
