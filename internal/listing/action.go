package listing

import "excelPanel/internal/models"

// Action is one user intent applied to a State.
type Action interface {
	apply(State) (State, bool)
}

type PageAction struct {
	Page       int
	TotalPages int
}

type SizeAction struct{ Size int }

type SortAction struct{ Field string }

type SearchAction struct{ Filter models.Filter }

type ResetAction struct{}

// MutationAction follows a successful create, update, delete or delete-all.
type MutationAction struct{}

// UploadAction follows a successful spreadsheet upload.
type UploadAction struct{}

func (a PageAction) apply(s State) (State, bool) { return s.SetPage(a.Page, a.TotalPages) }
func (a SizeAction) apply(s State) (State, bool) { return s.SetSize(a.Size) }
func (a SortAction) apply(s State) (State, bool) { return s.ToggleSort(a.Field) }
func (a SearchAction) apply(s State) (State, bool) { return s.Search(a.Filter) }
func (ResetAction) apply(s State) (State, bool) { return s.Reset() }
func (MutationAction) apply(s State) (State, bool) { return s.Mutated() }
func (UploadAction) apply(s State) (State, bool) { return s.Uploaded() }

// Reduce applies a to s. The bool reports whether the result needs a fetch.
func Reduce(s State, a Action) (State, bool) {
	return a.apply(s)
}
