// Package repository owns the in-memory poem collection. Every change goes
// through Reduce; stores are consulted remote first with the local snapshot
// as fallback.
package repository

import "github.com/dmitrijs2005/poetrykeeper/internal/client/models"

type SortField string

const (
	SortByTitle  SortField = "title"
	SortByAuthor SortField = "author"
	SortByDate   SortField = "date"
)

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// AllCategories disables category filtering.
const AllCategories = "all"

type FilterState struct {
	Search    string
	Category  string
	SortBy    SortField
	SortOrder SortOrder
}

func DefaultFilters() FilterState {
	return FilterState{Category: AllCategories, SortBy: SortByDate, SortOrder: Desc}
}

// FilterPatch is a partial FilterState; nil fields are left unchanged.
type FilterPatch struct {
	Search    *string
	Category  *string
	SortBy    *SortField
	SortOrder *SortOrder
}

func (fp FilterPatch) applyTo(f FilterState) FilterState {
	if fp.Search != nil {
		f.Search = *fp.Search
	}
	if fp.Category != nil {
		f.Category = *fp.Category
	}
	if fp.SortBy != nil {
		f.SortBy = *fp.SortBy
	}
	if fp.SortOrder != nil {
		f.SortOrder = *fp.SortOrder
	}
	return f
}

// State is an immutable snapshot. Poems are newest first unless a caller
// asks for a derived view.
type State struct {
	Poems     []models.Poem
	Loading   bool
	LastError error
	Filters   FilterState
}

func InitialState() State {
	return State{Poems: []models.Poem{}, Loading: true, Filters: DefaultFilters()}
}
