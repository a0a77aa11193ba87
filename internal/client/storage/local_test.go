package storage

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
	"github.com/dmitrijs2005/poetrykeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/poetrykeeper/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memKV struct {
	kv.Repository

	mu     sync.Mutex
	data   map[string][]byte
	sets   int
	getErr error
	setErr error
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[key] = value
	return nil
}

func newTestLocal(repo kv.Repository) *Local {
	l := NewLocal(repo, logging.NewNop())
	l.now = func() time.Time { return fixedNow }
	return l
}

func TestLocal_LoadAbsentSnapshotIsEmpty(t *testing.T) {
	poems, err := newTestLocal(newMemKV()).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, poems)
	assert.Empty(t, poems)
}

func TestLocal_LoadUnparsableSnapshotIsEmpty(t *testing.T) {
	m := newMemKV()
	m.data[SnapshotKey] = []byte("{not json")

	poems, err := newTestLocal(m).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, poems)
}

func TestLocal_LoadStorageErrorIsReturned(t *testing.T) {
	m := newMemKV()
	m.getErr = errors.New("disk")

	_, err := newTestLocal(m).Load(context.Background())
	require.ErrorIs(t, err, m.getErr)
}

func TestLocal_LoadNormalisesAndSorts(t *testing.T) {
	m := newMemKV()
	m.data[SnapshotKey] = []byte(`[
		{"id":"1","title":"Old","createdAt":"2020-01-01T00:00:00Z","updatedAt":"2020-01-01T00:00:00Z"},
		{"id":"2","title":"New","tags":["A","a"],"createdAt":"2021-01-01T00:00:00Z"},
		{"title":"no id"},
		42
	]`)

	poems, err := newTestLocal(m).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, poems, 2)
	assert.Equal(t, "2", poems[0].ID)
	assert.Equal(t, []string{"a"}, poems[0].Tags)
	assert.Equal(t, fixedNow, poems[0].UpdatedAt)
	assert.Equal(t, []string{}, poems[1].Tags)
}

func TestLocal_SaveSkipsEmpty(t *testing.T) {
	m := newMemKV()
	l := newTestLocal(m)

	require.NoError(t, l.Save(context.Background(), nil))
	require.NoError(t, l.Save(context.Background(), []models.Poem{}))
	assert.Zero(t, m.sets)
	assert.NotContains(t, m.data, SnapshotKey)
}

func TestLocal_SaveLoadRoundTrip(t *testing.T) {
	l := newTestLocal(newMemKV())
	ctx := context.Background()
	in := models.LocalSamplePoems(fixedNow)

	require.NoError(t, l.Save(ctx, in))
	out, err := l.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLocal_CreateAssignsUniqueTimestampIDs(t *testing.T) {
	l := newTestLocal(newMemKV())
	ctx := context.Background()

	a, err := l.Create(ctx, sampleInput)
	require.NoError(t, err)
	b, err := l.Create(ctx, sampleInput)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "1710072000000", a.ID)
	assert.Equal(t, "1710072000001", b.ID)
	assert.Equal(t, fixedNow, a.CreatedAt)
	assert.Equal(t, a.CreatedAt, a.UpdatedAt)

	all, err := l.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLocal_CreateSkipsIDsAlreadyInSnapshot(t *testing.T) {
	m := newMemKV()
	l := newTestLocal(m)
	ctx := context.Background()
	require.NoError(t, l.Save(ctx, []models.Poem{{ID: "1710072000000", Title: "x", CreatedAt: fixedNow, UpdatedAt: fixedNow}}))

	p, err := l.Create(ctx, sampleInput)
	require.NoError(t, err)
	assert.Equal(t, "1710072000001", p.ID)
}

func TestLocal_CreateReturnsRecordWhenSnapshotWriteFails(t *testing.T) {
	m := newMemKV()
	m.setErr = errors.New("disk full")
	l := newTestLocal(m)

	p, err := l.Create(context.Background(), sampleInput)
	require.ErrorIs(t, err, ErrNotPersisted)
	require.ErrorIs(t, err, m.setErr)
	assert.Equal(t, "Ozymandias", p.Title)
	assert.NotEmpty(t, p.ID)
}

func TestLocal_UpdateKeepsCreatedAtAndUpserts(t *testing.T) {
	l := newTestLocal(newMemKV())
	ctx := context.Background()
	created := fixedNow.Add(-time.Hour)
	require.NoError(t, l.Save(ctx, []models.Poem{{ID: "1", Title: "Old", Tags: []string{}, CreatedAt: created, UpdatedAt: created}}))

	out, err := l.Update(ctx, models.Poem{ID: "1", Title: "New"})
	require.NoError(t, err)
	assert.Equal(t, created, out.CreatedAt)
	assert.Equal(t, fixedNow, out.UpdatedAt)

	up, err := l.Update(ctx, models.Poem{ID: "9", Title: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, up.CreatedAt)

	all, err := l.Load(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "9", all[0].ID)
	assert.Equal(t, "New", all[1].Title)
}

func TestLocal_UpdateNeverMovesUpdatedAtBeforeCreatedAt(t *testing.T) {
	l := newTestLocal(newMemKV())
	future := fixedNow.Add(time.Hour)

	out, err := l.Update(context.Background(), models.Poem{ID: "1", CreatedAt: future})
	require.NoError(t, err)
	assert.Equal(t, future, out.UpdatedAt)
}

func TestLocal_Remove(t *testing.T) {
	m := newMemKV()
	l := newTestLocal(m)
	ctx := context.Background()
	require.NoError(t, l.Save(ctx, models.LocalSamplePoems(fixedNow)))

	require.NoError(t, l.Remove(ctx, "1"))
	require.NoError(t, l.Remove(ctx, "absent"))
	all, err := l.Load(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "2", all[0].ID)

	// removing the last poem leaves the previous snapshot in place
	require.NoError(t, l.Remove(ctx, "2"))
	all, err = l.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLocal_OverSQLite(t *testing.T) {
	ctx := context.Background()
	db, err := kv.Open(ctx, filepath.Join(t.TempDir(), "poetry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := newTestLocal(kv.NewSQLiteRepository(db))
	p, err := l.Create(ctx, sampleInput)
	require.NoError(t, err)

	reopened := newTestLocal(kv.NewSQLiteRepository(db))
	all, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, p, all[0])
}
