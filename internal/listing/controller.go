package listing

import (
	"context"

	"excelPanel/internal/models"
)

// Request is one fetch the owner of a Controller must perform.
type Request struct {
	Seq   uint64
	Query models.SearchRequest
}

// Response carries the outcome of a Request back to the Controller.
type Response struct {
	Seq  uint64
	Page *models.Page
	Err  error
}

// Source is the part of the remote client the table reads from.
type Source interface {
	List(ctx context.Context, page, size int) (*models.Page, error)
	Search(ctx context.Context, req models.SearchRequest) (*models.Page, error)
}

// Fetch performs req against src. Plain queries use the list endpoint,
// anything filtered or sorted goes through search.
func Fetch(ctx context.Context, src Source, req Request) Response {
	var (
		page *models.Page
		err  error
	)
	if IsPlain(req.Query) {
		page, err = src.List(ctx, req.Query.Page, req.Query.Size)
	} else {
		page, err = src.Search(ctx, req.Query)
	}
	return Response{Seq: req.Seq, Page: page, Err: err}
}

// Controller owns one table's State, the last page received for it and the
// error to display. Each accepted action yields exactly one Request, and only
// the response to the most recently issued Request is applied.
type Controller struct {
	state State
	// applied is the State that produced page; a failed fetch falls back to it.
	applied State
	page    *models.Page
	seq     uint64
	loading bool
	err     string
	baseURL string
}

func NewController(size int, baseURL string) *Controller {
	s := NewState(size)
	return &Controller{state: s, applied: s, baseURL: baseURL}
}

func (c *Controller) State() State { return c.state }
func (c *Controller) Page() *models.Page { return c.page }
func (c *Controller) Loading() bool { return c.loading }
func (c *Controller) Error() string { return c.err }
func (c *Controller) Query() models.SearchRequest { return Compose(c.state) }

// Dispatch applies a and, when the state changed, returns the fetch to run.
func (c *Controller) Dispatch(a Action) (Request, bool) {
	next, changed := Reduce(c.state, a)
	if !changed {
		return Request{}, false
	}
	c.state = next
	return c.issue(), true
}

// Reload re-issues the current query, e.g. for the initial load.
func (c *Controller) Reload() Request {
	return c.issue()
}

// GoTo requests page n of the current result. Pages outside the last
// received totalPages are refused, as is any move before the first load.
func (c *Controller) GoTo(n int) (Request, bool) {
	total := 0
	if c.page != nil {
		total = c.page.TotalPages
	}
	return c.Dispatch(PageAction{Page: n, TotalPages: total})
}

func (c *Controller) Next() (Request, bool) { return c.GoTo(c.state.Page + 1) }
func (c *Controller) Prev() (Request, bool) { return c.GoTo(c.state.Page - 1) }

// CanNext and CanPrev drive the enabled state of the navigation controls.
func (c *Controller) CanNext() bool {
	return c.page != nil && c.page.CanVisit(c.state.Page+1)
}

func (c *Controller) CanPrev() bool {
	return c.page != nil && c.state.Page > 0
}

// CanExport reports whether there is anything to export or delete.
func (c *Controller) CanExport() bool {
	return !c.loading && c.page != nil && !c.page.IsEmpty()
}

// Resolve applies r if it answers the latest Request and reports whether it
// did. Stale responses are dropped without touching state. A failed fetch
// restores the State of the page still on screen.
func (c *Controller) Resolve(r Response) bool {
	if r.Seq != c.seq {
		return false
	}
	c.loading = false
	if r.Err != nil {
		c.err = Describe(r.Err, c.baseURL)
		c.state = c.applied
		return true
	}
	c.page = r.Page
	c.applied = c.state
	return true
}

// Fail surfaces an error from an action outside the fetch cycle, such as a
// failed delete.
func (c *Controller) Fail(err error) {
	if err != nil {
		c.err = Describe(err, c.baseURL)
	}
}

func (c *Controller) DismissError() {
	c.err = ""
}

func (c *Controller) issue() Request {
	c.seq++
	c.loading = true
	c.err = ""
	return Request{Seq: c.seq, Query: Compose(c.state)}
}
