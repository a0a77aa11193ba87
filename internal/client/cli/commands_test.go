package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd_CreatesPoem(t *testing.T) {
	a, repo, out := newTestApp(t,
		"Ozymandias",
		"Percy Bysshe Shelley",
		"Life",
		"I met a traveller from an antique land",
		"Who said: <b>Two vast</b> legs",
		"",
		"Ruins, power, ruins",
	)

	require.NoError(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), `Added "Ozymandias"`)

	poems := repo.State().Poems
	require.Len(t, poems, 3)
	p := poems[0]
	assert.Equal(t, "Ozymandias", p.Title)
	assert.Equal(t, "I met a traveller from an antique land\nWho said: <b>Two vast</b> legs", p.Description)
	assert.Equal(t, []string{"ruins", "power"}, p.Tags)
}

func TestAdd_ReportsValidationPerField(t *testing.T) {
	a, repo, out := newTestApp(t, "", "Someone", "", "", "")

	require.Error(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "title: Title is required")
	assert.Contains(t, out.String(), "category: Category is required")
	assert.Contains(t, out.String(), "description: Poem description is required")
	assert.NotContains(t, out.String(), "author:")
	assert.Len(t, repo.State().Poems, 2)
}

func TestEdit_ChangesOnlyAnsweredFields(t *testing.T) {
	a, repo, out := newTestApp(t,
		"",
		"",
		"Classics",
		"",
		"-",
	)

	require.NoError(t, a.Edit(context.Background(), []string{"1"}))
	assert.Contains(t, out.String(), `Updated "The Road Not Taken"`)

	p, ok := repo.Poem("1")
	require.True(t, ok)
	assert.Equal(t, "Classics", p.Category)
	assert.Equal(t, "Robert Frost", p.Author)
	assert.Empty(t, p.Tags)
}

func TestEdit_NothingChanged(t *testing.T) {
	a, _, out := newTestApp(t, "", "", "", "", "")

	require.NoError(t, a.Edit(context.Background(), []string{"2"}))
	assert.Contains(t, out.String(), "Nothing changed.")
}

func TestEdit_UnknownID(t *testing.T) {
	a, _, out := newTestApp(t)

	require.ErrorIs(t, a.Edit(context.Background(), []string{"nope"}), errNotFound)
	assert.Contains(t, out.String(), "Poem nope not found")
	require.ErrorIs(t, a.Edit(context.Background(), nil), errUsage)
}

func TestDelete_AsksForConfirmation(t *testing.T) {
	a, repo, out := newTestApp(t, "n", "y")
	ctx := context.Background()

	require.ErrorIs(t, a.Delete(ctx, []string{"1"}), errAborted)
	assert.Len(t, repo.State().Poems, 2)

	require.NoError(t, a.Delete(ctx, []string{"1"}))
	assert.Contains(t, out.String(), `Deleted "The Road Not Taken"`)
	_, ok := repo.Poem("1")
	assert.False(t, ok)
}

func TestShow(t *testing.T) {
	a, _, out := newTestApp(t)

	require.NoError(t, a.Show(context.Background(), []string{"2"}))
	assert.Contains(t, out.String(), "Sonnet 18")
	assert.Contains(t, out.String(), "William Shakespeare")
	assert.Contains(t, out.String(), "Tags: #love #beauty #eternity")
}

func TestSearchCategorySortAndReset(t *testing.T) {
	a, repo, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Search(ctx, []string{"ETERNITY"}))
	assert.Contains(t, out.String(), "1 of 2 poems")
	assert.Equal(t, "ETERNITY", repo.State().Filters.Search)

	require.NoError(t, a.Search(ctx, nil))
	assert.Equal(t, "", repo.State().Filters.Search)

	require.NoError(t, a.Category(ctx, []string{"Love"}))
	assert.Equal(t, "Love", repo.State().Filters.Category)
	require.NoError(t, a.Category(ctx, []string{"ALL"}))
	assert.Equal(t, repository.AllCategories, repo.State().Filters.Category)
	require.ErrorIs(t, a.Category(ctx, nil), errUsage)

	require.NoError(t, a.Sort(ctx, []string{"Title", "asc"}))
	f := repo.State().Filters
	assert.Equal(t, repository.SortByTitle, f.SortBy)
	assert.Equal(t, repository.Asc, f.SortOrder)
	require.ErrorIs(t, a.Sort(ctx, []string{"rhyme"}), errUsage)
	require.ErrorIs(t, a.Sort(ctx, []string{"date", "sideways"}), errUsage)

	require.NoError(t, a.Category(ctx, []string{"Politics"}))
	out.Reset()
	require.NoError(t, a.List(ctx))
	assert.Contains(t, out.String(), "No poems match")

	require.NoError(t, a.Reset(ctx))
	assert.Equal(t, repository.DefaultFilters(), repo.State().Filters)
}

func TestCategoriesAndStatus(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Categories(ctx))
	assert.Contains(t, out.String(), "Love\nNature\n")

	out.Reset()
	require.NoError(t, a.Status(ctx))
	assert.Contains(t, out.String(), "Mode:      disabled")
	assert.Contains(t, out.String(), "Poems:     2")
	assert.Contains(t, out.String(), "Sort:      date desc")
}

func TestReload(t *testing.T) {
	a, repo, out := newTestApp(t)
	defer repo.Subscribe(a.watchLoads())()

	require.NoError(t, a.Reload(context.Background()))
	assert.Contains(t, out.String(), "Reloading...")
	assert.Contains(t, out.String(), "Loaded 2 poems.")

	out.Reset()
	repo.SetFilters(context.Background(), repository.FilterPatch{})
	assert.Empty(t, out.String(), "only finished loads are reported")
}
