package documents

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_CRUD(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	_, err := r.Get(ctx, "Poems", "a")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, r.Put(ctx, "Poems", "a", []byte(`{"t":1}`)))
	got, err := r.Get(ctx, "Poems", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":1}`, string(got))

	// returned slices are copies
	got[0] = 'x'
	again, err := r.Get(ctx, "Poems", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":1}`, string(again))

	require.NoError(t, r.Delete(ctx, "Poems", "a"))
	require.NoError(t, r.Delete(ctx, "Poems", "a"))
	all, err := r.List(ctx, "Poems")
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryRepository_ReplaceAndDeleteCollection(t *testing.T) {
	r := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, r.Put(ctx, "Poems", "old", []byte(`1`)))
	require.NoError(t, r.ReplaceCollection(ctx, "Poems", map[string][]byte{"n": []byte(`2`)}))

	all, err := r.List(ctx, "Poems")
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"n": []byte(`2`)}, all)

	require.NoError(t, r.DeleteCollection(ctx, "Poems"))
	all, err = r.List(ctx, "Poems")
	require.NoError(t, err)
	assert.Empty(t, all)
}
