package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
)

// SnapshotKey is the kv key holding the whole collection.
const SnapshotKey = "poetry-app-poems"

// Local keeps the full collection as one JSON snapshot in a kv repository.
// It is the fallback the repository uses when the remote store fails.
type Local struct {
	kv     kv.Repository
	logger logging.Logger
	now    func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewLocal(repo kv.Repository, logger logging.Logger) *Local {
	return &Local{
		kv:     repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Load returns the snapshot newest first. A missing or unreadable snapshot
// yields an empty collection; only a storage failure is returned.
func (l *Local) Load(ctx context.Context) ([]models.Poem, error) {
	raw, err := l.kv.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	poems := []models.Poem{}
	if raw == nil {
		return poems, nil
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger.Warn(ctx, "discarding unreadable local snapshot", "error", err)
		return poems, nil
	}

	now := l.now()
	for _, item := range items {
		if p, ok := decodePoem("", item, now); ok && p.ID != "" {
			poems = append(poems, p)
		}
	}

	models.SortByCreatedDesc(poems)
	return poems, nil
}

// Save overwrites the snapshot. An empty collection is never written.
func (l *Local) Save(ctx context.Context, poems []models.Poem) error {
	if len(poems) == 0 {
		return nil
	}

	body, err := json.Marshal(poems)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := l.kv.Set(ctx, SnapshotKey, body); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (l *Local) Create(ctx context.Context, in models.PoemInput) (models.Poem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poems, err := l.Load(ctx)
	if err != nil {
		return models.Poem{}, err
	}

	now := l.now()
	p := models.Poem{ID: l.nextID(now, poems), CreatedAt: now, UpdatedAt: now}.WithInput(in)

	poems = append([]models.Poem{p}, poems...)
	if err := l.Save(ctx, poems); err != nil {
		return p, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return p, nil
}

// nextID derives an id from the clock in epoch milliseconds, bumped past
// the last issued id and any id already in poems.
func (l *Local) nextID(now time.Time, poems []models.Poem) string {
	id := max(now.UnixMilli(), l.lastID+1)
	for {
		s := strconv.FormatInt(id, 10)
		taken := slices.ContainsFunc(poems, func(p models.Poem) bool { return p.ID == s })
		if !taken {
			l.lastID = id
			return s
		}
		id++
	}
}

func (l *Local) Update(ctx context.Context, p models.Poem) (models.Poem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	poems, err := l.Load(ctx)
	if err != nil {
		return models.Poem{}, err
	}

	now := l.now()
	out := p.Clone()
	idx := slices.IndexFunc(poems, func(e models.Poem) bool { return e.ID == p.ID })
	if idx >= 0 {
		out.CreatedAt = poems[idx].CreatedAt
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	if out.UpdatedAt.Before(out.CreatedAt) {
		out.UpdatedAt = out.CreatedAt
	}

	if idx >= 0 {
		poems[idx] = out
	} else {
		poems = append(poems, out)
		models.SortByCreatedDesc(poems)
	}

	if err := l.Save(ctx, poems); err != nil {
		return out, fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return out, nil
}

func (l *Local) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	poems, err := l.Load(ctx)
	if err != nil {
		return err
	}

	kept := slices.DeleteFunc(poems, func(p models.Poem) bool { return p.ID == id })
	if err := l.Save(ctx, kept); err != nil {
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

func (l *Local) ListAll(ctx context.Context) ([]models.Poem, error) {
	return l.Load(ctx)
}
