// Package storage provides the two poem stores the repository chooses
// between: a remote store (document store over gRPC, or S3) and a local
// snapshot store used as the fallback.
package storage

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
)

var (
	// ErrRemoteDisabled is returned by every operation of the disabled remote.
	ErrRemoteDisabled = errors.New("remote store disabled")
	// ErrNotPersisted reports that a local mutation produced a record but the
	// snapshot could not be written.
	ErrNotPersisted = errors.New("local snapshot not written")
)

// Storage is the CRUD capability shared by every store.
type Storage interface {
	// Create stores a new poem; the store assigns id and both timestamps.
	Create(ctx context.Context, in models.PoemInput) (models.Poem, error)
	// Update replaces the poem with p.ID, keeping its creation time and
	// refreshing its update time. Unknown ids are created.
	Update(ctx context.Context, p models.Poem) (models.Poem, error)
	// Remove deletes the poem; removing an absent id is not an error.
	Remove(ctx context.Context, id string) error
	// ListAll returns every poem, newest first.
	ListAll(ctx context.Context) ([]models.Poem, error)
}

// Remote is a Storage reached over the network.
type Remote interface {
	Storage
	// CheckConnectivity reports whether the store answers. It never fails.
	CheckConnectivity(ctx context.Context) bool
}
