package client

import "context"

// Client is the document-store API used by the storage layer.
type Client interface {
	Close() error
	Get(ctx context.Context, path string) (any, bool, error)
	Set(ctx context.Context, path string, value any) (any, error)
	Push(ctx context.Context, path string, value any) (string, any, error)
	Remove(ctx context.Context, path string) error
}
