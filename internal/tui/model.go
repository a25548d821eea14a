package tui

import (
	"context"

	"excelPanel/internal/export"
	"excelPanel/internal/listing"
	"excelPanel/internal/models"
	"excelPanel/internal/upload"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

type Screen int

const (
	MenuScreen Screen = iota
	TableScreen
	SearchScreen
	FormScreen
	UploadScreen
	ExportScreen
	ConfirmScreen
)

// Backend is the remote row collection as the screens use it.
type Backend interface {
	listing.Source
	Create(ctx context.Context, input models.RowInput) (*models.Row, error)
	Update(ctx context.Context, id int64, input models.RowInput) (*models.Row, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (*models.Message, error)
	UploadFile(ctx context.Context, path string) (*models.UploadResult, error)
}

type Options struct {
	Backend       Backend
	Exporter      *export.Service
	BaseURL       string
	PageSize      int
	ExportSize    int
	UploadVariant upload.Variant
	MaxUploadSize int64
	Log           *zap.Logger
}

type Model struct {
	opts          *Options
	currentScreen Screen
	menuModel     *MenuModel
	tableModel    *TableModel
	searchModel   *SearchModel
	formModel     *FormModel
	uploadModel   *UploadModel
	exportModel   *ExportModel
	confirmModel  *ConfirmModel
	quitting      bool
	width         int
	height        int
}

func NewModel(opts Options) Model {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.ExportSize <= 0 {
		opts.ExportSize = export.DefaultSize
	}
	o := &opts
	return Model{
		opts:          o,
		currentScreen: TableScreen,
		menuModel:     NewMenuModel(),
		tableModel:    NewTableModel(o),
		searchModel:   NewSearchModel(),
		formModel:     NewFormModel(o),
		uploadModel:   NewUploadModel(o),
		exportModel:   NewExportModel(o),
		confirmModel:  NewConfirmModel(),
	}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return m.tableModel.Reload()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menuModel.SetSize(msg.Width, msg.Height)
		m.tableModel.SetSize(msg.Width, msg.Height)
		m.searchModel.SetSize(msg.Width, msg.Height)
		m.formModel.SetSize(msg.Width, msg.Height)
		m.uploadModel.SetSize(msg.Width, msg.Height)
		m.exportModel.SetSize(msg.Width, msg.Height)
		m.confirmModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "q":
			if m.currentScreen == MenuScreen || m.currentScreen == TableScreen {
				m.quitting = true
				return m, tea.Quit
			}
		case "esc":
			if m.currentScreen == TableScreen {
				m.currentScreen = MenuScreen
				return m, nil
			}
		}

	case ScreenChangeMsg:
		return m.changeScreen(msg.Screen)

	case ErrorMsg:
		m.tableModel.Fail(msg.Err)
		m.currentScreen = TableScreen
		return m, nil

	// Results are routed to their owner whatever screen is showing.
	case fetchedMsg:
		m.tableModel.Resolve(msg.Response)
		return m, nil
	case MutatedMsg:
		return m, m.tableModel.Mutated(msg.Notice)
	case UploadedMsg:
		return m, m.tableModel.Uploaded(msg.Result)
	case SearchMsg:
		m.currentScreen = TableScreen
		return m, m.tableModel.Search(msg.Filter)
	case OpenFormMsg:
		m.currentScreen = FormScreen
		return m, m.formModel.Open(msg.Row)
	case deleteAllRequestMsg:
		m.currentScreen = TableScreen
		return m, m.tableModel.ConfirmDeleteAll()
	case ConfirmRequestMsg:
		m.confirmModel.Ask(msg)
		m.currentScreen = ConfirmScreen
		return m, nil
	case savedMsg:
		_, cmd := m.formModel.Update(msg)
		return m, cmd
	case uploadDoneMsg, previewMsg:
		_, cmd := m.uploadModel.Update(msg)
		return m, cmd
	case exportDoneMsg:
		_, cmd := m.exportModel.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case MenuScreen:
		_, cmd = m.menuModel.Update(msg)
	case TableScreen:
		_, cmd = m.tableModel.Update(msg)
	case SearchScreen:
		_, cmd = m.searchModel.Update(msg)
	case FormScreen:
		_, cmd = m.formModel.Update(msg)
	case UploadScreen:
		_, cmd = m.uploadModel.Update(msg)
	case ExportScreen:
		_, cmd = m.exportModel.Update(msg)
	case ConfirmScreen:
		_, cmd = m.confirmModel.Update(msg)
	}
	return m, cmd
}

func (m Model) changeScreen(screen Screen) (tea.Model, tea.Cmd) {
	switch screen {
	case SearchScreen:
		m.searchModel.Load(m.tableModel.Filter())
	case UploadScreen:
		m.uploadModel.reset()
	case ExportScreen:
		if !m.tableModel.CanExport() {
			m.tableModel.notice = "Nothing to export"
			m.currentScreen = TableScreen
			return m, nil
		}
		m.exportModel.reset()
	}
	m.currentScreen = screen
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return "Bye!\n"
	}

	switch m.currentScreen {
	case MenuScreen:
		return m.menuModel.View()
	case SearchScreen:
		return m.searchModel.View()
	case FormScreen:
		return m.formModel.View()
	case UploadScreen:
		return m.uploadModel.View()
	case ExportScreen:
		return m.exportModel.View()
	case ConfirmScreen:
		return m.confirmModel.View()
	default:
		return m.tableModel.View()
	}
}

type ScreenChangeMsg struct {
	Screen Screen
}

// ErrorMsg reports a failed action; it is shown above the table.
type ErrorMsg struct {
	Err error
}

// MutatedMsg reports a successful create, update or delete.
type MutatedMsg struct {
	Notice string
}

type UploadedMsg struct {
	Result *models.UploadResult
}

// SearchMsg applies a filter to the table. An empty filter resets it.
type SearchMsg struct {
	Filter models.Filter
}

// OpenFormMsg opens the row form; a nil Row creates.
type OpenFormMsg struct {
	Row *models.Row
}

type fetchedMsg struct {
	listing.Response
}

func ChangeScreen(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return ScreenChangeMsg{Screen: screen}
	}
}

func ShowError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}
