package tui

import (
	"context"
	"path/filepath"
	"testing"

	"excelPanel/internal/export"
	"excelPanel/internal/models"
	"excelPanel/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	rows     []models.Row
	lists    int
	searches []models.SearchRequest
	created  []models.RowInput
	deleted  []int64
	uploads  int
}

func (f *fakeBackend) page(number, size int) *models.Page {
	total := int64(len(f.rows))
	start := number * size
	end := min(start+size, len(f.rows))
	var content []models.Row
	if start < end {
		content = f.rows[start:end]
	}
	return &models.Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    models.TotalPagesFor(total, size),
		Size:          size,
		Number:        number,
	}
}

func (f *fakeBackend) List(_ context.Context, page, size int) (*models.Page, error) {
	f.lists++
	return f.page(page, size), nil
}

func (f *fakeBackend) Search(_ context.Context, req models.SearchRequest) (*models.Page, error) {
	f.searches = append(f.searches, req)
	return f.page(req.Page, req.Size), nil
}

func (f *fakeBackend) Create(_ context.Context, in models.RowInput) (*models.Row, error) {
	f.created = append(f.created, in)
	return &models.Row{ID: 99, ProductName: in.ProductName}, nil
}

func (f *fakeBackend) Update(_ context.Context, id int64, in models.RowInput) (*models.Row, error) {
	return &models.Row{ID: id, ProductName: in.ProductName}, nil
}

func (f *fakeBackend) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeBackend) DeleteAll(_ context.Context) (*models.Message, error) {
	f.rows = nil
	return &models.Message{Message: "All rows deleted"}, nil
}

func (f *fakeBackend) UploadFile(_ context.Context, path string) (*models.UploadResult, error) {
	f.uploads++
	return &models.UploadResult{UploadID: "u-1", TotalRows: 2, SavedRows: 2}, nil
}

func newTestModel(t *testing.T, rows int) (Model, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{}
	for i := 1; i <= rows; i++ {
		backend.rows = append(backend.rows, models.Row{ID: int64(i), ProductName: "Proizvod"})
	}
	m := NewModel(Options{
		Backend:  backend,
		Exporter: export.NewService(nil, t.TempDir(), nil),
		BaseURL:  "http://localhost:8080/api/excel",
		PageSize: 10,
	})
	return m, backend
}

// step feeds msg to m and returns the updated model and the message its
// command produced, if any.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	var out tea.Msg
	if cmd != nil {
		out = cmd()
	}
	return next.(Model), out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, rows int) (Model, *fakeBackend) {
	t.Helper()
	m, backend := newTestModel(t, rows)
	m, _ = step(t, m, m.Init()())
	return m, backend
}

func TestInitLoadsFirstPage(t *testing.T) {
	m, backend := loaded(t, 25)

	assert.Equal(t, 1, backend.lists)
	page := m.tableModel.ctrl.Page()
	require.NotNil(t, page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Content, 10)
	assert.Contains(t, m.View(), "Page 1 of 3")
}

func TestPagingKeysRespectBounds(t *testing.T) {
	m, backend := loaded(t, 15)

	_, msg := step(t, m, key("p"))
	assert.Nil(t, msg, "no previous page from page 0")

	m, msg = step(t, m, key("n"))
	require.IsType(t, fetchedMsg{}, msg)
	m, _ = step(t, m, msg)
	assert.Equal(t, 1, m.tableModel.ctrl.Page().Number)

	_, msg = step(t, m, key("n"))
	assert.Nil(t, msg, "page 1 is the last page")
	assert.Equal(t, 2, backend.lists)
}

func TestSortKeyUsesSearchEndpoint(t *testing.T) {
	m, backend := loaded(t, 5)

	m, msg := step(t, m, key("2"))
	m, _ = step(t, m, msg)

	require.Len(t, backend.searches, 1)
	assert.Equal(t, "basePriceWithVat", backend.searches[0].Sort)
	assert.Equal(t, models.Asc, backend.searches[0].Direction)
	assert.Contains(t, m.View(), "Price ↑")
}

func TestSearchTextDisablesFieldFilters(t *testing.T) {
	s := NewSearchModel()
	s.inputs[0].input.SetValue("mleko")
	s.inputs[1].input.SetValue("ignored")

	f, err := s.Filter()
	require.NoError(t, err)
	assert.Equal(t, "mleko", f.Search)
	assert.Empty(t, f.Fields)

	s.focus(0)
	s.move(1)
	assert.Equal(t, 0, s.focused, "field inputs are skipped while search text is set")
}

func TestSearchFieldFiltersAndRanges(t *testing.T) {
	s := NewSearchModel()
	for i := range s.inputs {
		in := &s.inputs[i]
		switch {
		case in.role == roleText && in.field == "sku":
			in.input.SetValue("SK-1")
		case in.role == roleMin && in.field == "currentStock":
			in.input.SetValue("5")
		case in.role == roleMax && in.field == "currentStock":
			in.input.SetValue("2")
		}
	}

	_, err := s.Filter()
	assert.ErrorContains(t, err, "min is greater than max")

	for i := range s.inputs {
		if s.inputs[i].role == roleMax && s.inputs[i].field == "currentStock" {
			s.inputs[i].input.SetValue("50")
		}
	}
	f, err := s.Filter()
	require.NoError(t, err)
	assert.Equal(t, "SK-1", f.Fields["sku"])
	assert.Equal(t, "5", f.Ranges["currentStock"].Min.String())
	assert.Equal(t, "50", f.Ranges["currentStock"].Max.String())
}

func TestSearchMsgFiltersTable(t *testing.T) {
	m, backend := loaded(t, 5)

	m, msg := step(t, m, SearchMsg{Filter: models.Filter{Search: "kafa"}})
	m, _ = step(t, m, msg)

	require.Len(t, backend.searches, 1)
	assert.Equal(t, "kafa", backend.searches[0].Search)
	assert.Equal(t, TableScreen, m.currentScreen)
	assert.Contains(t, m.View(), `search="kafa"`)
}

func TestFormDoesNotSubmitWithoutProductName(t *testing.T) {
	m, backend := loaded(t, 1)

	m, _ = step(t, m, OpenFormMsg{})
	assert.Equal(t, FormScreen, m.currentScreen)

	m, msg := step(t, m, key("enter"))
	assert.Nil(t, msg)
	assert.Empty(t, backend.created)
	assert.Contains(t, m.formModel.errs, "productName")
}

func TestFormCreatesRow(t *testing.T) {
	m, backend := loaded(t, 1)
	m, _ = step(t, m, OpenFormMsg{})
	m.formModel.inputs[0].SetValue("Hleb")

	m, msg := step(t, m, key("enter"))
	require.IsType(t, savedMsg{}, msg)
	require.Len(t, backend.created, 1)
	assert.Equal(t, "Hleb", backend.created[0].ProductName)
	assert.Equal(t, 1, *backend.created[0].RowNumber)
	assert.Nil(t, backend.created[0].Vat)

	next, cmd := m.Update(msg)
	assert.NotNil(t, cmd)
	assert.Empty(t, next.(Model).formModel.err)
}

func TestMutationRefetchesOnce(t *testing.T) {
	m, backend := loaded(t, 3)

	m, msg := step(t, m, MutatedMsg{Notice: "Deleted row #1"})
	require.IsType(t, fetchedMsg{}, msg)
	m, _ = step(t, m, msg)

	assert.Equal(t, 2, backend.lists)
	assert.Contains(t, m.View(), "Deleted row #1")
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, backend := loaded(t, 3)

	m, msg := step(t, m, key("d"))
	req, ok := msg.(ConfirmRequestMsg)
	require.True(t, ok)
	assert.Contains(t, req.Prompt, "#1")

	m, _ = step(t, m, req)
	assert.Equal(t, ConfirmScreen, m.currentScreen)

	m, msg = step(t, m, key("n"))
	assert.Equal(t, ScreenChangeMsg{Screen: TableScreen}, msg)
	assert.Empty(t, backend.deleted)

	// accepting runs the delete
	assert.IsType(t, MutatedMsg{}, req.OnYes())
	assert.Equal(t, []int64{1}, backend.deleted)
}

func TestDeleteAllRefusedWhenEmpty(t *testing.T) {
	m, _ := loaded(t, 0)
	m, msg := step(t, m, key("D"))
	assert.Equal(t, ScreenChangeMsg{Screen: TableScreen}, msg)
	assert.Contains(t, m.View(), "There are no rows to delete")
}

func TestExportScreenRequiresRows(t *testing.T) {
	m, _ := loaded(t, 0)
	m, _ = step(t, m, ScreenChangeMsg{Screen: ExportScreen})
	assert.Equal(t, TableScreen, m.currentScreen)

	m, _ = loaded(t, 2)
	m, _ = step(t, m, ScreenChangeMsg{Screen: ExportScreen})
	assert.Equal(t, ExportScreen, m.currentScreen)
}

func TestUploadRejectsWrongExtensionLocally(t *testing.T) {
	m, backend := loaded(t, 1)
	m, _ = step(t, m, ScreenChangeMsg{Screen: UploadScreen})
	m.uploadModel.fileInput.SetValue(filepath.Join(t.TempDir(), "rows.csv"))

	m, msg := step(t, m, key("enter"))
	assert.Nil(t, msg)
	assert.Zero(t, backend.uploads)
	assert.Contains(t, m.uploadModel.err, "only Excel files")
}

func TestUploadResetsTableToFirstPage(t *testing.T) {
	m, backend := loaded(t, 25)
	m, msg := step(t, m, key("n"))
	m, _ = step(t, m, msg)
	require.Equal(t, 1, m.tableModel.ctrl.State().Page)

	m.opts.UploadVariant = upload.AutoUpload
	m, _ = step(t, m, ScreenChangeMsg{Screen: UploadScreen})
	m.uploadModel.fileInput.SetValue("rows.xlsx")

	m, msg = step(t, m, key("enter"))
	require.IsType(t, uploadDoneMsg{}, msg)
	assert.Equal(t, 1, backend.uploads)

	m, msg = step(t, m, msg)
	require.IsType(t, UploadedMsg{}, msg)
	m, msg = step(t, m, msg)
	m, _ = step(t, m, msg)

	assert.Equal(t, 0, m.tableModel.ctrl.State().Page)
	assert.Contains(t, m.tableModel.notice, "Saved 2 of 2 rows")
}

func TestExportPageIsOneBased(t *testing.T) {
	m, _ := loaded(t, 2)
	e := m.exportModel

	req, err := e.request()
	require.NoError(t, err)
	assert.Equal(t, export.DefaultPage, req.Page)

	e.pageInput.SetValue("3")
	req, err = e.request()
	require.NoError(t, err)
	assert.Equal(t, 2, req.Page)

	e.pageInput.SetValue("0")
	_, err = e.request()
	assert.ErrorContains(t, err, "starting at 1")
}
