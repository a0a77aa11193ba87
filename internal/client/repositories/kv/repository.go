// Package kv is a tiny persistent key/value store: the CLI's equivalent of
// browser local storage.
package kv

import "context"

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
