package documents

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
)

// MemoryRepository keeps documents in process memory. Used for development
// and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{data: make(map[string]map[string][]byte)}
}

func (r *MemoryRepository) List(_ context.Context, collection string) (map[string][]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string][]byte, len(r.data[collection]))
	for k, v := range r.data[collection] {
		out[k] = slices.Clone(v)
	}
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, collection, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[collection][key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (r *MemoryRepository) Put(_ context.Context, collection, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.data[collection]
	if !ok {
		c = make(map[string][]byte)
		r.data[collection] = c
	}
	c[key] = slices.Clone(value)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, collection, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data[collection], key)
	return nil
}

func (r *MemoryRepository) DeleteCollection(_ context.Context, collection string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.data, collection)
	return nil
}

func (r *MemoryRepository) ReplaceCollection(_ context.Context, collection string, children map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := make(map[string][]byte, len(children))
	for k, v := range children {
		c[k] = slices.Clone(v)
	}
	r.data[collection] = c
	return nil
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
