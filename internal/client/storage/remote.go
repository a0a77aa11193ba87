package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
)

// ProbePath is read by CheckConnectivity.
const ProbePath = "test"

// DocumentClient is the subset of the document-store client the remote uses.
type DocumentClient interface {
	Get(ctx context.Context, path string) (any, bool, error)
	Set(ctx context.Context, path string, value any) (any, error)
	Push(ctx context.Context, path string, value any) (string, any, error)
	Remove(ctx context.Context, path string) error
}

// DocumentRemote stores poems as children of one document-store collection.
// Timestamps are written as server-value placeholders so the server clock
// is authoritative.
type DocumentRemote struct {
	client     DocumentClient
	collection string
	now        func() time.Time
}

func NewDocumentRemote(c DocumentClient, collection string) (*DocumentRemote, error) {
	if err := docstore.ValidateSegment(collection); err != nil {
		return nil, fmt.Errorf("collection path: %w", err)
	}
	return &DocumentRemote{client: c, collection: collection, now: time.Now}, nil
}

func (r *DocumentRemote) childPath(id string) (string, error) {
	if err := docstore.ValidateSegment(id); err != nil {
		return "", fmt.Errorf("poem id: %w", err)
	}
	return r.collection + "/" + id, nil
}

func (r *DocumentRemote) Create(ctx context.Context, in models.PoemInput) (models.Poem, error) {
	doc := encodePoem(in)
	doc["createdAt"] = docstore.ServerTimestamp()
	doc["updatedAt"] = docstore.ServerTimestamp()

	key, stored, err := r.client.Push(ctx, r.collection, doc)
	if err != nil {
		return models.Poem{}, fmt.Errorf("push poem: %w", err)
	}

	p, ok := decodePoem(key, stored, r.now())
	if !ok {
		now := r.now()
		p = models.Poem{ID: key, CreatedAt: now, UpdatedAt: now}.WithInput(in)
	}
	return p, nil
}

func (r *DocumentRemote) Update(ctx context.Context, p models.Poem) (models.Poem, error) {
	path, err := r.childPath(p.ID)
	if err != nil {
		return models.Poem{}, err
	}

	doc := encodePoem(p.Input())
	if p.CreatedAt.IsZero() {
		doc["createdAt"] = docstore.ServerTimestamp()
	} else {
		doc["createdAt"] = p.CreatedAt.UnixMilli()
	}
	doc["updatedAt"] = docstore.ServerTimestamp()

	stored, err := r.client.Set(ctx, path, doc)
	if err != nil {
		return models.Poem{}, fmt.Errorf("set poem %s: %w", p.ID, err)
	}

	out, ok := decodePoem(p.ID, stored, r.now())
	if !ok {
		out = p.Clone()
		out.UpdatedAt = r.now()
	}
	return out, nil
}

func (r *DocumentRemote) Remove(ctx context.Context, id string) error {
	path, err := r.childPath(id)
	if err != nil {
		return err
	}
	if err := r.client.Remove(ctx, path); err != nil {
		return fmt.Errorf("remove poem %s: %w", id, err)
	}
	return nil
}

func (r *DocumentRemote) ListAll(ctx context.Context) ([]models.Poem, error) {
	value, exists, err := r.client.Get(ctx, r.collection)
	if err != nil {
		return nil, fmt.Errorf("list poems: %w", err)
	}

	poems := []models.Poem{}
	if !exists {
		return poems, nil
	}

	children, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("list poems: collection %s is not an object", r.collection)
	}

	now := r.now()
	for key, child := range children {
		if p, ok := decodePoem(key, child, now); ok {
			poems = append(poems, p)
		}
	}

	models.SortByCreatedDesc(poems)
	return poems, nil
}

func (r *DocumentRemote) CheckConnectivity(ctx context.Context) bool {
	_, _, err := r.client.Get(ctx, ProbePath)
	return err == nil
}
