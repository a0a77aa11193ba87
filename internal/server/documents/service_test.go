package documents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"github.com/dmitrijs2005/poetrykeeper/internal/docstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	s := NewService(repo)
	s.now = func() time.Time { return fixedNow }
	n := 0
	s.newKey = func() (string, error) {
		n++
		return "k" + string(rune('0'+n)), nil
	}
	return s, repo
}

func mustPath(t *testing.T, raw string) docstore.Path {
	t.Helper()
	p, err := docstore.ParsePath(raw)
	require.NoError(t, err)
	return p
}

func TestService_PushResolvesTimestamps(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	key, stored, err := s.Push(ctx, mustPath(t, "Poems"), map[string]any{
		"title":     "Sonnet 18",
		"createdAt": docstore.ServerTimestamp(),
		"updatedAt": docstore.ServerTimestamp(),
	})
	require.NoError(t, err)
	assert.Equal(t, "k1", key)

	m := stored.(map[string]any)
	assert.Equal(t, fixedNow.UnixMilli(), m["createdAt"])
	assert.Equal(t, m["createdAt"], m["updatedAt"])

	v, ok, err := s.Get(ctx, mustPath(t, "Poems/k1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float64(fixedNow.UnixMilli()), v.(map[string]any)["createdAt"])
}

func TestService_PushRejectsChildPathAndNil(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, _, err := s.Push(ctx, mustPath(t, "Poems/x"), map[string]any{"a": 1})
	assert.ErrorIs(t, err, common.ErrInvalidPath)

	_, _, err = s.Push(ctx, mustPath(t, "Poems"), nil)
	assert.ErrorIs(t, err, common.ErrInvalidValue)
}

func TestService_GetCollection(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, mustPath(t, "Poems"))
	require.NoError(t, err)
	assert.False(t, ok, "empty collection does not exist")

	_, err = s.Set(ctx, mustPath(t, "Poems/a"), map[string]any{"title": "A"})
	require.NoError(t, err)
	_, err = s.Set(ctx, mustPath(t, "Poems/b"), map[string]any{"title": "B"})
	require.NoError(t, err)

	v, ok, err := s.Get(ctx, mustPath(t, "Poems"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, map[string]any{
		"a": map[string]any{"title": "A"},
		"b": map[string]any{"title": "B"},
	}, v)
}

func TestService_GetMissingChild(t *testing.T) {
	s, _ := newTestService(t)

	v, ok, err := s.Get(context.Background(), mustPath(t, "test"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestService_SetCollectionReplaces(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()

	_, err := s.Set(ctx, mustPath(t, "Poems/old"), map[string]any{"title": "old"})
	require.NoError(t, err)

	_, err = s.Set(ctx, mustPath(t, "Poems"), map[string]any{
		"n1": map[string]any{"title": "new"},
		"n2": nil,
	})
	require.NoError(t, err)

	children, err := repo.List(ctx, "Poems")
	require.NoError(t, err)
	assert.Len(t, children, 1)
	assert.Contains(t, children, "n1")
}

func TestService_SetCollectionValidation(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Set(ctx, mustPath(t, "Poems"), "scalar")
	assert.ErrorIs(t, err, common.ErrInvalidValue)

	_, err = s.Set(ctx, mustPath(t, "Poems"), map[string]any{"bad.key": map[string]any{}})
	assert.ErrorIs(t, err, common.ErrInvalidPath)
}

func TestService_SetNilRemoves(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Set(ctx, mustPath(t, "Poems/a"), map[string]any{"title": "A"})
	require.NoError(t, err)
	_, err = s.Set(ctx, mustPath(t, "Poems/a"), nil)
	require.NoError(t, err)

	_, ok, err := s.Get(ctx, mustPath(t, "Poems/a"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_Remove(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, s.Remove(ctx, mustPath(t, "Poems/absent")))

	_, err := s.Set(ctx, mustPath(t, "Poems/a"), map[string]any{"title": "A"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, mustPath(t, "Poems")))

	_, ok, err := s.Get(ctx, mustPath(t, "Poems"))
	require.NoError(t, err)
	assert.False(t, ok)
}

type failingRepo struct {
	Repository
	err error
}

func (f failingRepo) List(context.Context, string) (map[string][]byte, error) { return nil, f.err }
func (f failingRepo) Get(context.Context, string, string) ([]byte, error)     { return nil, f.err }

func TestService_PropagatesRepositoryErrors(t *testing.T) {
	boom := errors.New("boom")
	s := NewService(failingRepo{err: boom})
	ctx := context.Background()

	_, _, err := s.Get(ctx, mustPath(t, "Poems"))
	assert.ErrorIs(t, err, boom)

	_, _, err = s.Get(ctx, mustPath(t, "Poems/a"))
	assert.ErrorIs(t, err, boom)
}

func TestService_CorruptStoredValue(t *testing.T) {
	s, repo := newTestService(t)
	ctx := context.Background()
	require.NoError(t, repo.Put(ctx, "Poems", "bad", []byte("{")))

	_, _, err := s.Get(ctx, mustPath(t, "Poems/bad"))
	assert.Error(t, err)
}
