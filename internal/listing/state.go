// Package listing holds the row table's view-model: an immutable State
// changed only through pure transitions, the composition of that State into
// a backend query, and a Controller that sequences fetches.
package listing

import (
	"excelPanel/internal/models"
)

// PageSizes are the sizes offered by the table's size selector.
var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 20

// State is the complete description of what the table should show. Values
// are never mutated in place; every transition returns a new State.
type State struct {
	Page          int
	Size          int
	SortField     string
	SortDirection models.Direction
	SearchMode    bool
	Filter        models.Filter
}

func NewState(size int) State {
	if size <= 0 {
		size = DefaultPageSize
	}
	return State{Size: size, SortDirection: models.Asc}
}

// SetPage moves to page n. It is refused when n is outside [0, totalPages).
func (s State) SetPage(n, totalPages int) (State, bool) {
	if n < 0 || n >= totalPages || n == s.Page {
		return s, false
	}
	s.Page = n
	return s, true
}

// SetSize changes the page size. The current offset is meaningless under a
// new size, so the page goes back to 0.
func (s State) SetSize(n int) (State, bool) {
	if n <= 0 || (n == s.Size && s.Page == 0) {
		return s, false
	}
	s.Size = n
	s.Page = 0
	return s, true
}

// ToggleSort flips the direction when field is already the sort field and
// otherwise sorts by field ascending. Either way the page goes back to 0.
func (s State) ToggleSort(field string) (State, bool) {
	if field == "" {
		return s, false
	}
	if s.SortField == field {
		s.SortDirection = s.SortDirection.Toggle()
	} else {
		s.SortField = field
		s.SortDirection = models.Asc
	}
	s.Page = 0
	return s, true
}

// Search enters search mode with f. An empty filter is the same as Reset.
func (s State) Search(f models.Filter) (State, bool) {
	if f.IsEmpty() {
		return s.Reset()
	}
	s.SearchMode = true
	s.Filter = f.Clone()
	s.Page = 0
	return s, true
}

// Reset clears every filter and returns to the unfiltered first page.
func (s State) Reset() (State, bool) {
	s.SearchMode = false
	s.Filter = models.Filter{}
	s.Page = 0
	return s, true
}

// Mutated keeps the state as is and asks for the current query again, so the
// table shows server truth after a create, update or delete.
func (s State) Mutated() (State, bool) {
	return s, true
}

// Uploaded drops any filtered view: the new batch supersedes it.
func (s State) Uploaded() (State, bool) {
	return s.Reset()
}
