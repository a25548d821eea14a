package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"excelPanel/internal/listing"
	"excelPanel/internal/models"
	"excelPanel/internal/upload"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type UploadState int

const (
	UploadInputState UploadState = iota
	UploadFileSelectState
	UploadPreviewState
	UploadProgressState
	UploadResultState
)

type previewMsg struct {
	preview *upload.Preview
	err     error
}

type uploadDoneMsg struct {
	result *models.UploadResult
	err    error
}

type UploadModel struct {
	opts         *Options
	state        UploadState
	fileInput    textinput.Model
	progress     progress.Model
	preview      *upload.Preview
	result       *models.UploadResult
	err          string
	files        []string
	selectedFile int
	width        int
	height       int
}

func NewUploadModel(opts *Options) *UploadModel {
	fileInput := textinput.New()
	fileInput.Placeholder = "path/to/rows.xlsx"
	fileInput.Width = 50
	fileInput.Focus()

	progressBar := progress.New(
		progress.WithSolidFill("#00aadd"),
		progress.WithoutPercentage(),
	)

	return &UploadModel{
		opts:      opts,
		state:     UploadInputState,
		fileInput: fileInput,
		progress:  progressBar,
	}
}

func (m *UploadModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *UploadModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	w := width - 10
	if w < 20 {
		w = 20
	}
	if w > 80 {
		w = 80
	}
	m.progress.Width = w
}

func (m *UploadModel) reset() {
	m.state = UploadInputState
	m.preview = nil
	m.result = nil
	m.err = ""
	m.fileInput.SetValue("")
	m.fileInput.Focus()
}

func (m *UploadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case UploadInputState:
			return m.updateInputState(msg)
		case UploadFileSelectState:
			return m.updateFileSelectState(msg)
		case UploadPreviewState:
			switch msg.String() {
			case "y", "enter":
				return m, m.startUpload()
			case "n", "esc":
				m.state = UploadInputState
			}
		case UploadProgressState:
			return m, nil
		case UploadResultState:
			switch msg.String() {
			case "enter", " ", "esc":
				return m, ChangeScreen(TableScreen)
			case "u":
				m.reset()
			}
		}

	case previewMsg:
		if msg.err != nil {
			m.err = msg.err.Error()
			m.state = UploadInputState
			return m, nil
		}
		m.preview = msg.preview
		m.state = UploadPreviewState
		return m, nil

	case uploadDoneMsg:
		if msg.err != nil {
			m.err = listing.Describe(msg.err, m.opts.BaseURL)
			m.state = UploadInputState
			return m, nil
		}
		m.result = msg.result
		m.state = UploadResultState
		res := msg.result
		return m, func() tea.Msg { return UploadedMsg{Result: res} }
	}

	return m, nil
}

func (m *UploadModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, ChangeScreen(TableScreen)
	case "ctrl+f":
		return m.browseFiles()
	case "enter":
		return m, m.accept()
	}

	var cmd tea.Cmd
	m.fileInput, cmd = m.fileInput.Update(msg)
	return m, cmd
}

// accept runs the local checks and then either uploads straight away or
// shows the preview, depending on the configured variant.
func (m *UploadModel) accept() tea.Cmd {
	path := strings.TrimSpace(m.fileInput.Value())
	if path == "" {
		return nil
	}
	m.err = ""
	if err := upload.Check(path); err != nil {
		m.err = err.Error()
		return nil
	}
	if err := upload.CheckSize(path, m.opts.MaxUploadSize); err != nil {
		m.err = err.Error()
		return nil
	}

	if m.opts.UploadVariant == upload.AutoUpload {
		return m.startUpload()
	}
	return func() tea.Msg {
		p, err := upload.Inspect(path)
		return previewMsg{preview: p, err: err}
	}
}

func (m *UploadModel) startUpload() tea.Cmd {
	path := strings.TrimSpace(m.fileInput.Value())
	m.state = UploadProgressState
	backend, log := m.opts.Backend, m.opts.Log
	return func() tea.Msg {
		res, err := upload.Submit(context.Background(), backend, path, log)
		return uploadDoneMsg{result: res, err: err}
	}
}

func (m *UploadModel) updateFileSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.selectedFile > 0 {
			m.selectedFile--
		}
	case "down", "j":
		if m.selectedFile < len(m.files)-1 {
			m.selectedFile++
		}
	case "enter":
		if len(m.files) > 0 {
			m.fileInput.SetValue(m.files[m.selectedFile])
			m.state = UploadInputState
		}
	case "esc":
		m.state = UploadInputState
	}
	return m, nil
}

func (m *UploadModel) browseFiles() (tea.Model, tea.Cmd) {
	cwd, _ := os.Getwd()
	var files []string
	entries, err := os.ReadDir(cwd)
	if err != nil {
		return m, ShowError(err)
	}
	for _, e := range entries {
		if !e.IsDir() && upload.Check(e.Name()) == nil {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	m.files = files
	m.selectedFile = 0
	m.state = UploadFileSelectState
	return m, nil
}

func (m *UploadModel) View() string {
	switch m.state {
	case UploadFileSelectState:
		return m.renderFileSelector()
	case UploadPreviewState:
		return m.renderPreview()
	case UploadProgressState:
		return m.renderProgress()
	case UploadResultState:
		return m.renderResult()
	default:
		return m.renderInputForm()
	}
}

func (m *UploadModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📥 Upload spreadsheet")
	form := adaptiveFormStyle.Render(
		labelStyle.Render("Excel file (.xlsx, .xls):") + "\n" + m.fileInput.View(),
	)

	sections := []string{title, form}
	if m.err != "" {
		sections = append(sections, errorStyle.Render("❌ "+m.err))
	}
	help := "Ctrl+F: Browse files • Enter: Upload • Esc: Back"
	if m.opts.UploadVariant == upload.Confirm {
		help = "Ctrl+F: Browse files • Enter: Preview • Esc: Back"
	}
	sections = append(sections, adaptiveHelpStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *UploadModel) renderFileSelector() string {
	title := titleStyle.Render("📁 Select spreadsheet")

	if len(m.files) == 0 {
		content := warningStyle.Render("No Excel files found in current directory")
		help := helpStyle.Render("Esc: Back to form")
		return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
	}

	var fileList string
	for i, file := range m.files {
		cursor := " "
		style := menuItemStyle
		if i == m.selectedFile {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		fileList += fmt.Sprintf("%s %s\n", cursor, style.Render(file))
	}

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • Esc: Cancel")
	return lipgloss.JoinVertical(lipgloss.Left, title, fileList, help)
}

func (m *UploadModel) renderPreview() string {
	title := titleStyle.Render("📄 " + filepath.Base(m.preview.Path))

	details := fmt.Sprintf("Size: %s", m.preview.SizeText())
	if m.preview.Parsed {
		details += fmt.Sprintf("\nSheet: %s\nData rows: %d\nColumns: %s",
			m.preview.Sheet, m.preview.Rows, strings.Join(m.preview.Headers, ", "))
	} else {
		details += "\n" + dimStyle.Render("Legacy .xls files are not previewed")
	}

	help := helpStyle.Render("y/Enter: Upload • n/Esc: Choose another file")
	return lipgloss.JoinVertical(lipgloss.Left, title, formStyle.Render(details), help)
}

func (m *UploadModel) renderProgress() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📥 Uploading...")
	help := adaptiveHelpStyle.Render("Please wait while the backend imports the file...")

	content := lipgloss.JoinVertical(lipgloss.Left, title, help)
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

func (m *UploadModel) renderResult() string {
	title := titleStyle.Render("📥 Upload complete")
	res := m.result

	ratio := 0.0
	if res.TotalRows > 0 {
		ratio = float64(res.SavedRows) / float64(res.TotalRows)
	}
	bar := progressStyle.Render(m.progress.ViewAs(ratio))

	status := successStyle.Render("✅ " + upload.Summary(res))
	if res.SavedRows < res.TotalRows {
		status = warningStyle.Render(fmt.Sprintf("⚠️  %d rows were not saved. ", res.TotalRows-res.SavedRows)) + upload.Summary(res)
	}

	help := helpStyle.Render("Enter: Back to rows • u: Upload another file")
	return lipgloss.JoinVertical(lipgloss.Left, title, status, bar, help)
}
