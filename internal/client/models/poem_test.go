package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPoemInput_Normalize(t *testing.T) {
	in := PoemInput{
		Title:       "  Ozymandias ",
		Author:      "\tShelley",
		Description: "\nI met a traveller\nfrom an antique land\n",
		Category:    " Life ",
		Tags:        []string{" Ruin", "ruin", "", "  ", "TIME"},
	}

	got := in.Normalize()

	assert.Equal(t, "Ozymandias", got.Title)
	assert.Equal(t, "Shelley", got.Author)
	assert.Equal(t, "I met a traveller\nfrom an antique land", got.Description)
	assert.Equal(t, "Life", got.Category)
	assert.Equal(t, []string{"ruin", "time"}, got.Tags)
}

func TestPoemPatch_ApplyTo(t *testing.T) {
	base := PoemInput{Title: "A", Author: "B", Description: "C", Category: "D", Tags: []string{"x"}}

	tags := []string{"y", "z"}
	got := PoemPatch{Title: strPtr("A2"), Tags: &tags}.ApplyTo(base)

	assert.Equal(t, PoemInput{Title: "A2", Author: "B", Description: "C", Category: "D", Tags: []string{"y", "z"}}, got)
	assert.Equal(t, []string{"x"}, base.Tags, "base must not change")

	tags[0] = "mutated"
	assert.Equal(t, "y", got.Tags[0], "patch tags are copied")
}

func TestPoemPatch_IsEmpty(t *testing.T) {
	assert.True(t, PoemPatch{}.IsEmpty())
	assert.False(t, PoemPatch{Category: strPtr("x")}.IsEmpty())
}

func TestPoem_CloneAndWithInput(t *testing.T) {
	p := Poem{ID: "1", Tags: []string{"a"}}
	c := p.Clone()
	c.Tags[0] = "b"
	assert.Equal(t, "a", p.Tags[0])

	assert.Equal(t, []string{}, Poem{}.Clone().Tags)

	now := time.Now()
	q := Poem{ID: "9", CreatedAt: now}.WithInput(PoemInput{Title: "T"})
	assert.Equal(t, "9", q.ID)
	assert.Equal(t, now, q.CreatedAt)
	assert.Equal(t, "T", q.Title)
	assert.Equal(t, []string{}, q.Tags)
}

func TestSortByCreatedDesc(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	poems := []Poem{
		{ID: "old", CreatedAt: t0},
		{ID: "new", CreatedAt: t0.Add(time.Hour)},
		{ID: "tie-a", CreatedAt: t0},
	}

	SortByCreatedDesc(poems)

	assert.Equal(t, "new", poems[0].ID)
	assert.Equal(t, "old", poems[1].ID)
	assert.Equal(t, "tie-a", poems[2].ID)
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"love", "loss"}, ParseTags("Love, loss ,, LOVE"))
	assert.Equal(t, []string{}, ParseTags(""))
}
