package repository

import (
	"slices"

	"github.com/dmitrijs2005/poetrykeeper/internal/client/models"
)

// Message is one state transition. The set is closed.
type Message interface {
	isMessage()
}

type (
	SetLoading struct{ Loading bool }
	SetError   struct{ Err error }
	LoadPoems  struct{ Poems []models.Poem }
	AddPoem    struct{ Poem models.Poem }
	UpdatePoem struct{ Poem models.Poem }
	DeletePoem struct{ ID string }
	SetFilters struct{ Patch FilterPatch }
	// ResetFilters restores DefaultFilters.
	ResetFilters struct{}
)

func (SetLoading) isMessage()   {}
func (SetError) isMessage()     {}
func (LoadPoems) isMessage()    {}
func (AddPoem) isMessage()      {}
func (UpdatePoem) isMessage()   {}
func (DeletePoem) isMessage()   {}
func (SetFilters) isMessage()   {}
func (ResetFilters) isMessage() {}

// Reduce returns the state that results from applying m to s. s is never
// modified; the Poems slice is copied whenever it changes.
func Reduce(s State, m Message) State {
	switch m := m.(type) {
	case SetLoading:
		s.Loading = m.Loading
	case SetError:
		s.LastError = m.Err
		s.Loading = false
	case LoadPoems:
		s.Poems = clonePoems(m.Poems)
		models.SortByCreatedDesc(s.Poems)
		s.Loading = false
		s.LastError = nil
	case AddPoem:
		rest := slices.DeleteFunc(clonePoems(s.Poems), func(p models.Poem) bool { return p.ID == m.Poem.ID })
		s.Poems = append([]models.Poem{m.Poem.Clone()}, rest...)
	case UpdatePoem:
		idx := slices.IndexFunc(s.Poems, func(p models.Poem) bool { return p.ID == m.Poem.ID })
		if idx < 0 {
			return Reduce(s, AddPoem{Poem: m.Poem})
		}
		poems := clonePoems(s.Poems)
		poems[idx] = m.Poem.Clone()
		s.Poems = poems
	case DeletePoem:
		if !slices.ContainsFunc(s.Poems, func(p models.Poem) bool { return p.ID == m.ID }) {
			return s
		}
		s.Poems = slices.DeleteFunc(clonePoems(s.Poems), func(p models.Poem) bool { return p.ID == m.ID })
	case SetFilters:
		s.Filters = m.Patch.applyTo(s.Filters)
	case ResetFilters:
		s.Filters = DefaultFilters()
	}
	return s
}

// changesPoems reports whether m can alter the collection.
func changesPoems(m Message) bool {
	switch m.(type) {
	case LoadPoems, AddPoem, UpdatePoem, DeletePoem:
		return true
	default:
		return false
	}
}

func clonePoems(in []models.Poem) []models.Poem {
	out := make([]models.Poem, len(in))
	for i, p := range in {
		out[i] = p.Clone()
	}
	return out
}
