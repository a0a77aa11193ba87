package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/storage"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
)

// ErrLoadFailed is set as State.LastError when neither store produced a
// collection.
var ErrLoadFailed = errors.New("could not load poems")

var errRemoteUnreachable = errors.New("remote store unreachable")

type Option func(*Repository)

// WithSeeding controls whether an empty collection is filled with the
// sample poems on load.
func WithSeeding(enabled bool) Option {
	return func(r *Repository) { r.seed = enabled }
}

// WithClosers registers resources released by Close, in order.
func WithClosers(c ...io.Closer) Option {
	return func(r *Repository) { r.closers = append(r.closers, c...) }
}

func withClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// Repository is the single owner of the poem collection for a session.
type Repository struct {
	remote storage.Remote
	local  *storage.Local
	logger logging.Logger
	seed   bool
	now    func() time.Time

	closers []io.Closer

	mu     sync.RWMutex
	state  State
	subs   map[int]func(State)
	nextID int

	// lastMemID is the last id issued for a poem that only lives in memory.
	lastMemID int64

	// persistMu keeps snapshot writes in dispatch order.
	persistMu sync.Mutex

	initOnce sync.Once
	initErr  error
}

func New(remote storage.Remote, local *storage.Local, logger logging.Logger, opts ...Option) *Repository {
	r := &Repository{
		remote: remote,
		local:  local,
		logger: logger,
		seed:   true,
		now:    func() time.Time { return time.Now().UTC() },
		state:  InitialState(),
		subs:   map[int]func(State){},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State returns the current snapshot.
func (r *Repository) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Subscribe registers fn to receive every new state. fn runs on the
// dispatching goroutine and may itself dispatch. The returned func removes
// the subscription.
func (r *Repository) Subscribe(fn func(State)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.subs, id)
	}
}

// Dispatch applies m, persists the collection when it changed and notifies
// subscribers.
func (r *Repository) Dispatch(ctx context.Context, m Message) State {
	next, subs := r.apply(ctx, m)
	for _, fn := range subs {
		fn(next)
	}
	return next
}

// apply reduces m and writes the snapshot. Snapshot writes happen in
// dispatch order; subscribers are notified after persistMu is released.
func (r *Repository) apply(ctx context.Context, m Message) (State, []func(State)) {
	r.persistMu.Lock()
	defer r.persistMu.Unlock()

	r.mu.Lock()
	next := Reduce(r.state, m)
	r.state = next
	subs := make([]func(State), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.mu.Unlock()

	if changesPoems(m) {
		if err := r.local.Save(ctx, next.Poems); err != nil {
			r.logger.Warn(ctx, "saving local snapshot failed", "error", err)
		}
	}
	return next, subs
}

// Init loads the collection once per session. Later calls are no-ops that
// return the first result.
func (r *Repository) Init(ctx context.Context) error {
	r.initOnce.Do(func() { r.initErr = r.Reload(ctx) })
	return r.initErr
}

// Reload loads the collection from the remote store, falling back to the
// local snapshot. It fails only when both paths fail.
func (r *Repository) Reload(ctx context.Context) error {
	r.Dispatch(ctx, SetLoading{Loading: true})

	poems, err := r.loadRemote(ctx)
	if err != nil {
		r.logRemoteFailure(ctx, "loading from remote store failed, using local snapshot", err)

		poems, err = r.loadLocal(ctx)
		if err != nil {
			r.logger.Error(ctx, "loading local snapshot failed", "error", err)
			r.Dispatch(ctx, SetError{Err: ErrLoadFailed})
			return fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
	}

	r.Dispatch(ctx, LoadPoems{Poems: poems})
	return nil
}

func (r *Repository) loadRemote(ctx context.Context) ([]models.Poem, error) {
	if !r.remote.CheckConnectivity(ctx) {
		return nil, errRemoteUnreachable
	}

	poems, err := r.remote.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(poems) > 0 || !r.seed {
		return poems, nil
	}

	for _, in := range models.SamplePoems() {
		if _, err := r.remote.Create(ctx, in); err != nil {
			return nil, fmt.Errorf("seed remote store: %w", err)
		}
	}
	r.logger.Info(ctx, "seeded remote store with sample poems")
	return r.remote.ListAll(ctx)
}

func (r *Repository) loadLocal(ctx context.Context) ([]models.Poem, error) {
	poems, err := r.local.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(poems) > 0 || !r.seed {
		return poems, nil
	}

	poems = models.LocalSamplePoems(r.now())
	if err := r.local.Save(ctx, poems); err != nil {
		r.logger.Warn(ctx, "saving sample poems failed", "error", err)
	}
	return poems, nil
}

// Create validates in and stores it remotely, or locally when the remote
// store fails. When the local store fails too the poem is built in memory.
func (r *Repository) Create(ctx context.Context, in models.PoemInput) (models.Poem, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Poem{}, err
	}

	p, err := r.remote.Create(ctx, in)
	if err != nil {
		r.logRemoteFailure(ctx, "remote create failed, storing locally", err)
		if p, err = r.local.Create(ctx, in); !r.usableLocal(ctx, err) {
			now := r.now()
			p = models.Poem{ID: r.memoryID(now), CreatedAt: now, UpdatedAt: now}.WithInput(in)
		}
	}

	r.Dispatch(ctx, AddPoem{Poem: p})
	return p, nil
}

// Update merges patch into the poem with id. An unknown id is written as a
// new poem.
func (r *Repository) Update(ctx context.Context, id string, patch models.PoemPatch) (models.Poem, error) {
	cur, known := r.Poem(id)
	if !known {
		cur = models.Poem{ID: id}
	}

	in := patch.ApplyTo(cur.Input()).Normalize()
	if err := in.Validate(); err != nil {
		return models.Poem{}, err
	}
	target := cur.WithInput(in)

	p, err := r.remote.Update(ctx, target)
	if err != nil {
		r.logRemoteFailure(ctx, "remote update failed, storing locally", err, "id", id)
		if p, err = r.local.Update(ctx, target); !r.usableLocal(ctx, err) {
			p = target
			p.UpdatedAt = r.now()
			if p.CreatedAt.IsZero() {
				p.CreatedAt = p.UpdatedAt
			}
		}
	}

	p.ID = id
	if known {
		p.CreatedAt = cur.CreatedAt
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}

	r.Dispatch(ctx, UpdatePoem{Poem: p})
	return p, nil
}

// Delete removes the poem with id. Deleting an absent id succeeds.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.remote.Remove(ctx, id); err != nil {
		r.logRemoteFailure(ctx, "remote delete failed, removing locally", err, "id", id)
		_ = r.usableLocal(ctx, r.local.Remove(ctx, id))
	}

	r.Dispatch(ctx, DeletePoem{ID: id})
	return nil
}

// usableLocal reports whether a local mutation produced a result. A record
// that could not be written to the snapshot still counts. Any failure is
// logged; the change is then kept in memory only.
func (r *Repository) usableLocal(ctx context.Context, err error) bool {
	if err == nil {
		return true
	}
	r.logger.Warn(ctx, "local change kept in memory only", "error", err)
	return errors.Is(err, storage.ErrNotPersisted)
}

// memoryID issues an epoch-millisecond id not used by any poem in state.
func (r *Repository) memoryID(now time.Time) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := max(now.UnixMilli(), r.lastMemID+1)
	for {
		s := strconv.FormatInt(id, 10)
		if !slices.ContainsFunc(r.state.Poems, func(p models.Poem) bool { return p.ID == s }) {
			r.lastMemID = id
			return s
		}
		id++
	}
}

func (r *Repository) logRemoteFailure(ctx context.Context, msg string, err error, kv ...any) {
	kv = append(kv, "error", err)
	if errors.Is(err, storage.ErrRemoteDisabled) {
		r.logger.Debug(ctx, msg, kv...)
		return
	}
	r.logger.Warn(ctx, msg, kv...)
}

// Poem looks up a poem by id.
func (r *Repository) Poem(id string) (models.Poem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.state.Poems {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Poem{}, false
}

func (r *Repository) FilteredAndSorted() []models.Poem {
	return FilteredAndSorted(r.State())
}

func (r *Repository) Categories() []string {
	return Categories(r.State())
}

func (r *Repository) SetFilters(ctx context.Context, patch FilterPatch) FilterState {
	return r.Dispatch(ctx, SetFilters{Patch: patch}).Filters
}

func (r *Repository) ResetFilters(ctx context.Context) FilterState {
	return r.Dispatch(ctx, ResetFilters{}).Filters
}

// CheckConnectivity probes the remote store.
func (r *Repository) CheckConnectivity(ctx context.Context) bool {
	return r.remote.CheckConnectivity(ctx)
}

// Close releases the registered resources.
func (r *Repository) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
