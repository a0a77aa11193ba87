package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"github.com/google/uuid"
)

// Service implements Get/Set/Push/Remove over a Repository.
type Service struct {
	repo   Repository
	now    func() time.Time
	newKey func() (string, error)
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		newKey: func() (string, error) {
			id, err := uuid.NewV7()
			if err != nil {
				return "", err
			}
			return id.String(), nil
		},
	}
}

// Get reads a child or a whole collection. An empty collection or an absent
// child reports exists=false.
func (s *Service) Get(ctx context.Context, p docstore.Path) (any, bool, error) {
	if p.IsCollection() {
		children, err := s.repo.List(ctx, p.Collection)
		if err != nil {
			return nil, false, err
		}
		if len(children) == 0 {
			return nil, false, nil
		}
		out := make(map[string]any, len(children))
		for k, raw := range children {
			v, err := decode(raw)
			if err != nil {
				return nil, false, fmt.Errorf("decode %s/%s: %w", p.Collection, k, err)
			}
			out[k] = v
		}
		return out, true, nil
	}

	raw, err := s.repo.Get(ctx, p.Collection, p.Key)
	if errors.Is(err, common.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	v, err := decode(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", p, err)
	}
	return v, true, nil
}

// Set writes value at p and returns it with server values resolved. Writing
// nil removes the target. Setting a collection replaces all its children and
// requires an object value.
func (s *Service) Set(ctx context.Context, p docstore.Path, value any) (any, error) {
	if value == nil {
		return nil, s.Remove(ctx, p)
	}

	resolved := docstore.ResolveServerValues(value, s.now().UnixMilli())

	if !p.IsCollection() {
		raw, err := json.Marshal(resolved)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidValue, err)
		}
		if err := s.repo.Put(ctx, p.Collection, p.Key, raw); err != nil {
			return nil, err
		}
		return resolved, nil
	}

	obj, ok := resolved.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: collection value must be an object", common.ErrInvalidValue)
	}

	children := make(map[string][]byte, len(obj))
	for k, child := range obj {
		if err := docstore.ValidateSegment(k); err != nil {
			return nil, err
		}
		if child == nil {
			continue
		}
		raw, err := json.Marshal(child)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidValue, err)
		}
		children[k] = raw
	}

	if err := s.repo.ReplaceCollection(ctx, p.Collection, children); err != nil {
		return nil, err
	}
	return resolved, nil
}

// Push stores value under a new time-ordered key in collection p.
func (s *Service) Push(ctx context.Context, p docstore.Path, value any) (string, any, error) {
	if !p.IsCollection() {
		return "", nil, fmt.Errorf("%w: push needs a collection, got %s", common.ErrInvalidPath, p)
	}
	if value == nil {
		return "", nil, fmt.Errorf("%w: push value is empty", common.ErrInvalidValue)
	}

	key, err := s.newKey()
	if err != nil {
		return "", nil, fmt.Errorf("generate key: %w", err)
	}

	resolved, err := s.Set(ctx, p.Child(key), value)
	if err != nil {
		return "", nil, err
	}
	return key, resolved, nil
}

// Remove deletes a child or clears a collection. Absent targets are not an
// error.
func (s *Service) Remove(ctx context.Context, p docstore.Path) error {
	if p.IsCollection() {
		return s.repo.DeleteCollection(ctx, p.Collection)
	}
	return s.repo.Delete(ctx, p.Collection, p.Key)
}

func decode(raw []byte) (any, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
