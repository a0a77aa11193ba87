package repository

import (
	"slices"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
)

// FilteredAndSorted applies the search, category and sort settings of s.
// The result is a fresh slice.
func FilteredAndSorted(s State) []models.Poem {
	f := s.Filters
	term := strings.ToLower(f.Search)

	out := make([]models.Poem, 0, len(s.Poems))
	for _, p := range s.Poems {
		if term != "" && !matches(p, term) {
			continue
		}
		if f.Category != AllCategories && p.Category != f.Category {
			continue
		}
		out = append(out, p.Clone())
	}

	cmp := compareBy(f.SortBy)
	if f.SortOrder == Asc {
		slices.SortStableFunc(out, cmp)
	} else {
		slices.SortStableFunc(out, func(a, b models.Poem) int { return cmp(b, a) })
	}
	return out
}

func matches(p models.Poem, term string) bool {
	for _, field := range []string{p.Title, p.Author, p.Description} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return slices.ContainsFunc(p.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), term)
	})
}

// compareBy orders ascending. Unknown fields sort by date.
func compareBy(field SortField) func(a, b models.Poem) int {
	switch field {
	case SortByTitle:
		return func(a, b models.Poem) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortByAuthor:
		return func(a, b models.Poem) int {
			return strings.Compare(strings.ToLower(a.Author), strings.ToLower(b.Author))
		}
	default:
		return func(a, b models.Poem) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}

// Categories returns the distinct non-empty categories in s, sorted.
func Categories(s State) []string {
	out := make([]string, 0)
	for _, p := range s.Poems {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	slices.Sort(out)
	return out
}
