package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"excelPanel/internal/listing"
	"excelPanel/internal/models"
	"excelPanel/internal/upload"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type column struct {
	title string
	field string
	width int
}

var columns = []column{
	{"ID", "id", 6},
	{"Product", "productName", 28},
	{"SKU", "sku", 12},
	{"EAN", "ean", 14},
	{"Warehouse", "warehouse", 12},
	{"Status", "status", 10},
	{"Price", "basePriceWithVat", 10},
	{"Stock", "currentStock", 7},
	{"VAT", "vat", 6},
	{"Row", "rowNumber", 5},
}

type deleteAllRequestMsg struct{}

func deleteAll() tea.Msg { return deleteAllRequestMsg{} }

// TableModel shows one page of rows and owns the listing controller.
type TableModel struct {
	opts   *Options
	ctrl   *listing.Controller
	table  table.Model
	notice string
	width  int
	height int
}

func NewTableModel(opts *Options) *TableModel {
	t := table.New(
		table.WithColumns(tableColumns(listing.State{})),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	return &TableModel{
		opts:  opts,
		ctrl:  listing.NewController(opts.PageSize, opts.BaseURL),
		table: t,
	}
}

func (m *TableModel) Init() tea.Cmd {
	return m.Reload()
}

func (m *TableModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	// title, status, filters, error, notice and help take about 10 lines
	if h := height - 10; h > 3 {
		m.table.SetHeight(h)
	}
}

func (m *TableModel) Reload() tea.Cmd {
	return m.fetch(m.ctrl.Reload())
}

func (m *TableModel) Filter() models.Filter {
	return m.ctrl.State().Filter
}

func (m *TableModel) CanExport() bool {
	return m.ctrl.CanExport()
}

func (m *TableModel) Fail(err error) {
	m.ctrl.Fail(err)
}

// Resolve applies a fetch result unless a newer fetch has been issued.
func (m *TableModel) Resolve(r listing.Response) {
	if !m.ctrl.Resolve(r) {
		m.opts.Log.Debug("Dropped stale page", zap.Uint64("seq", r.Seq))
		return
	}
	if r.Err != nil {
		m.opts.Log.Warn("Page fetch failed", zap.Error(r.Err))
	}
	m.refresh()
}

func (m *TableModel) Mutated(notice string) tea.Cmd {
	m.notice = notice
	return m.dispatch(listing.MutationAction{})
}

func (m *TableModel) Uploaded(res *models.UploadResult) tea.Cmd {
	m.notice = upload.Summary(res)
	return m.dispatch(listing.UploadAction{})
}

func (m *TableModel) Search(f models.Filter) tea.Cmd {
	m.notice = ""
	return m.dispatch(listing.SearchAction{Filter: f})
}

func (m *TableModel) dispatch(a listing.Action) tea.Cmd {
	req, ok := m.ctrl.Dispatch(a)
	if !ok {
		return nil
	}
	return m.fetch(req)
}

func (m *TableModel) goTo(req listing.Request, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return m.fetch(req)
}

func (m *TableModel) fetch(req listing.Request) tea.Cmd {
	src := m.opts.Backend
	return func() tea.Msg {
		return fetchedMsg{listing.Fetch(context.Background(), src, req)}
	}
}

func (m *TableModel) selected() *models.Row {
	page := m.ctrl.Page()
	if page == nil {
		return nil
	}
	i := m.table.Cursor()
	if i < 0 || i >= len(page.Content) {
		return nil
	}
	row := page.Content[i]
	return &row
}

func (m *TableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "right", "l", "n":
		return m, m.goTo(m.ctrl.Next())
	case "left", "h", "p":
		return m, m.goTo(m.ctrl.Prev())
	case "home", "g":
		return m, m.goTo(m.ctrl.GoTo(0))
	case "end", "G":
		if page := m.ctrl.Page(); page != nil {
			return m, m.goTo(m.ctrl.GoTo(page.TotalPages - 1))
		}
		return m, nil
	case "z":
		return m, m.dispatch(listing.SizeAction{Size: nextSize(m.ctrl.State().Size)})
	case "1", "2", "3":
		i, _ := strconv.Atoi(key.String())
		return m, m.dispatch(listing.SortAction{Field: models.SortableFields[i-1]})
	case "/":
		return m, ChangeScreen(SearchScreen)
	case "r":
		m.notice = ""
		return m, m.dispatch(listing.ResetAction{})
	case "ctrl+r":
		return m, m.Reload()
	case "c":
		return m, openForm(nil)
	case "e", "enter":
		if row := m.selected(); row != nil {
			return m, openForm(row)
		}
		return m, nil
	case "d":
		if row := m.selected(); row != nil {
			return m, m.confirmDelete(*row)
		}
		return m, nil
	case "D":
		return m, m.ConfirmDeleteAll()
	case "u":
		return m, ChangeScreen(UploadScreen)
	case "X":
		return m, ChangeScreen(ExportScreen)
	case "x":
		m.ctrl.DismissError()
		m.notice = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *TableModel) confirmDelete(row models.Row) tea.Cmd {
	backend := m.opts.Backend
	return askConfirm(ConfirmRequestMsg{
		Prompt: fmt.Sprintf("Delete row #%d (%s)?", row.ID, row.ProductName),
		OnYes: func() tea.Msg {
			if err := backend.Delete(context.Background(), row.ID); err != nil {
				return ErrorMsg{Err: err}
			}
			return MutatedMsg{Notice: fmt.Sprintf("Deleted row #%d", row.ID)}
		},
	})
}

// ConfirmDeleteAll asks before removing every row. It is refused when the
// collection is known to be empty.
func (m *TableModel) ConfirmDeleteAll() tea.Cmd {
	if !m.ctrl.CanExport() {
		m.notice = "There are no rows to delete"
		return ChangeScreen(TableScreen)
	}
	backend := m.opts.Backend
	total := m.ctrl.Page().TotalElements
	return askConfirm(ConfirmRequestMsg{
		Prompt: fmt.Sprintf("Delete ALL %d rows? This cannot be undone.", total),
		Danger: true,
		OnYes: func() tea.Msg {
			res, err := backend.DeleteAll(context.Background())
			if err != nil {
				return ErrorMsg{Err: err}
			}
			return MutatedMsg{Notice: res.Message}
		},
	})
}

func nextSize(current int) int {
	for i, s := range listing.PageSizes {
		if s == current {
			return listing.PageSizes[(i+1)%len(listing.PageSizes)]
		}
	}
	return listing.PageSizes[0]
}

func (m *TableModel) refresh() {
	m.table.SetColumns(tableColumns(m.ctrl.State()))
	page := m.ctrl.Page()
	if page == nil {
		m.table.SetRows(nil)
		return
	}
	rows := make([]table.Row, 0, len(page.Content))
	for _, r := range page.Content {
		rows = append(rows, tableRow(r))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func tableColumns(s listing.State) []table.Column {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		title := c.title
		if c.field == s.SortField {
			if s.SortDirection == models.Desc {
				title += " ↓"
			} else {
				title += " ↑"
			}
		}
		cols[i] = table.Column{Title: title, Width: c.width}
	}
	return cols
}

func tableRow(r models.Row) table.Row {
	return table.Row{
		strconv.FormatInt(r.ID, 10),
		r.ProductName,
		r.SKU,
		r.EAN,
		r.Warehouse,
		r.Status,
		decimalText(r.BasePriceWithVat, 2),
		intText(r.CurrentStock),
		decimalText(r.Vat, 0),
		intText(intPtr64(r.RowNumber)),
	}
}

func decimalText(d *decimal.Decimal, places int32) string {
	if d == nil {
		return "-"
	}
	return d.StringFixed(places)
}

func intText(n *int64) string {
	if n == nil {
		return "-"
	}
	return strconv.FormatInt(*n, 10)
}

func intPtr64(n *int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}

func (m *TableModel) statusLine() string {
	page := m.ctrl.Page()
	state := m.ctrl.State()
	if page == nil {
		if m.ctrl.Loading() {
			return "Loading..."
		}
		return "No data loaded"
	}

	parts := []string{
		fmt.Sprintf("Page %d of %d", state.Page+1, max(page.TotalPages, 1)),
		fmt.Sprintf("%d rows", page.TotalElements),
		fmt.Sprintf("%d per page", state.Size),
	}
	if state.SortField != "" {
		parts = append(parts, fmt.Sprintf("sorted by %s %s", state.SortField, state.SortDirection))
	}
	if m.ctrl.Loading() {
		parts = append(parts, "loading...")
	}
	return strings.Join(parts, " • ")
}

func (m *TableModel) View() string {
	title := titleStyle.Render("📋 Rows")

	sections := []string{title, statusStyle.Render(m.statusLine())}
	if q := m.ctrl.Query(); m.ctrl.State().SearchMode {
		sections = append(sections, labelStyle.Render("Filter: ")+q.Describe())
	}

	page := m.ctrl.Page()
	if page != nil && page.IsEmpty() && !m.ctrl.Loading() {
		sections = append(sections, warningStyle.Render("No rows found"))
	} else {
		sections = append(sections, m.table.View())
	}

	if msg := m.ctrl.Error(); msg != "" {
		sections = append(sections, errorStyle.Render("❌ "+msg)+statusStyle.Render("  (x to dismiss)"))
	}
	if m.notice != "" {
		sections = append(sections, successStyle.Render("✅ "+m.notice))
	}

	help := "←/→: Page • z: Page size • 1/2/3: Sort name/price/stock • /: Search • r: Reset\n" +
		"c: New • e: Edit • d: Delete • u: Upload"
	if m.ctrl.CanExport() {
		help += " • X: Export • D: Delete all"
	}
	help += " • Esc: Menu • q: Quit"
	sections = append(sections, helpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
