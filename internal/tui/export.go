package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"excelPanel/internal/export"
	"excelPanel/internal/listing"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ExportState int

const (
	ExportFormatSelectState ExportState = iota
	ExportInputState
	ExportProgressState
	ExportResultState
)

type exportDoneMsg struct {
	result *export.Result
	err    error
}

type ExportModel struct {
	opts            *Options
	state           ExportState
	formats         []export.Format
	formatSelection int
	pageInput       textinput.Model
	sizeInput       textinput.Model
	uploadInput     textinput.Model
	focusedInput    int
	result          *export.Result
	err             string
	width           int
	height          int
}

func NewExportModel(opts *Options) *ExportModel {
	pageInput := textinput.New()
	pageInput.Placeholder = "1"
	pageInput.Width = 10

	sizeInput := textinput.New()
	sizeInput.Placeholder = strconv.Itoa(opts.ExportSize)
	sizeInput.Width = 10

	uploadInput := textinput.New()
	uploadInput.Placeholder = "optional, XML only"
	uploadInput.Width = 40

	return &ExportModel{
		opts:        opts,
		formats:     []export.Format{export.XML, export.Excel},
		pageInput:   pageInput,
		sizeInput:   sizeInput,
		uploadInput: uploadInput,
	}
}

func (m *ExportModel) Init() tea.Cmd {
	return nil
}

func (m *ExportModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ExportModel) reset() {
	m.state = ExportFormatSelectState
	m.result = nil
	m.err = ""
	m.pageInput.SetValue("")
	m.sizeInput.SetValue("")
	m.uploadInput.SetValue("")
}

func (m *ExportModel) inputs() []*textinput.Model {
	if m.formats[m.formatSelection] == export.XML {
		return []*textinput.Model{&m.pageInput, &m.sizeInput, &m.uploadInput}
	}
	return []*textinput.Model{&m.pageInput, &m.sizeInput}
}

func (m *ExportModel) updateInputFocus() {
	for i, input := range m.inputs() {
		if i == m.focusedInput {
			input.Focus()
		} else {
			input.Blur()
		}
	}
}

func (m *ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case ExportFormatSelectState:
			return m.updateFormatSelectState(msg)
		case ExportInputState:
			return m.updateInputState(msg)
		case ExportProgressState:
			return m, nil
		case ExportResultState:
			switch msg.String() {
			case "enter", " ", "esc":
				return m, ChangeScreen(TableScreen)
			}
		}

	case exportDoneMsg:
		m.state = ExportResultState
		m.result = msg.result
		m.err = ""
		if msg.err != nil {
			m.err = listing.Describe(msg.err, m.opts.BaseURL)
		}
		return m, nil
	}
	return m, nil
}

func (m *ExportModel) updateFormatSelectState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.formatSelection > 0 {
			m.formatSelection--
		}
	case "down", "j":
		if m.formatSelection < len(m.formats)-1 {
			m.formatSelection++
		}
	case "enter":
		m.state = ExportInputState
		m.focusedInput = 0
		m.updateInputFocus()
		return m, textinput.Blink
	case "esc":
		return m, ChangeScreen(TableScreen)
	}
	return m, nil
}

func (m *ExportModel) updateInputState(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	inputs := m.inputs()
	n := len(inputs)

	switch msg.String() {
	case "tab", "down":
		m.focusedInput = (m.focusedInput + 1) % n
		m.updateInputFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusedInput = (m.focusedInput - 1 + n) % n
		m.updateInputFocus()
		return m, nil
	case "esc":
		m.state = ExportFormatSelectState
		return m, nil
	case "enter":
		req, err := m.request()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		m.state = ExportProgressState
		exporter := m.opts.Exporter
		return m, func() tea.Msg {
			res, err := exporter.Export(context.Background(), req)
			return exportDoneMsg{result: res, err: err}
		}
	}

	var cmd tea.Cmd
	*inputs[m.focusedInput], cmd = inputs[m.focusedInput].Update(msg)
	return m, cmd
}

func (m *ExportModel) request() (export.Request, error) {
	req := export.Request{
		Format: m.formats[m.formatSelection],
		Page:   export.DefaultPage,
		Size:   m.opts.ExportSize,
	}
	if v := strings.TrimSpace(m.pageInput.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return req, fmt.Errorf("page must be a number starting at 1")
		}
		req.Page = n - 1
	}
	if v := strings.TrimSpace(m.sizeInput.Value()); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return req, fmt.Errorf("size must be a positive number")
		}
		req.Size = n
	}
	if req.Format == export.XML {
		req.UploadID = strings.TrimSpace(m.uploadInput.Value())
	}
	return req, nil
}

func (m *ExportModel) View() string {
	switch m.state {
	case ExportInputState:
		return m.renderInputForm()
	case ExportProgressState:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("💾 Exporting..."),
			helpStyle.Render("Please wait while the export is downloaded..."))
	case ExportResultState:
		return m.renderResult()
	default:
		return m.renderFormatSelector()
	}
}

func (m *ExportModel) renderFormatSelector() string {
	title := titleStyle.Render("💾 Select export format")

	var formatList string
	for i, format := range m.formats {
		cursor := " "
		style := menuItemStyle
		if i == m.formatSelection {
			cursor = ">"
			style = selectedMenuItemStyle
		}
		label := "XML"
		if format == export.Excel {
			label = "Excel (.xlsx)"
		}
		formatList += fmt.Sprintf("%s %s\n", cursor, style.Render(label))
	}

	help := helpStyle.Render("↑/↓: Navigate • Enter: Select • Esc: Back")
	return lipgloss.JoinVertical(lipgloss.Left, title, formatList, help)
}

func (m *ExportModel) renderInputForm() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	title := adaptiveTitleStyle.Render(fmt.Sprintf("💾 Export %s", strings.ToUpper(string(m.formats[m.formatSelection]))))

	body := labelStyle.Render("Page:") + "\n" + m.pageInput.View() + "\n\n" +
		labelStyle.Render("Size:") + "\n" + m.sizeInput.View()
	if m.formats[m.formatSelection] == export.XML {
		body += "\n\n" + labelStyle.Render("Upload ID:") + "\n" + m.uploadInput.View()
	}

	sections := []string{title, adaptiveFormStyle.Render(body)}
	if m.err != "" {
		sections = append(sections, errorStyle.Render("❌ "+m.err))
	}
	sections = append(sections, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Enter: Export • Esc: Back"))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *ExportModel) renderResult() string {
	title := titleStyle.Render("💾 Export complete")

	var status string
	if m.err != "" {
		status = errorStyle.Render("❌ Export failed: " + m.err)
	} else {
		status = successStyle.Render("✅ " + m.result.String())
	}

	help := helpStyle.Render("Enter: Back to rows")
	return lipgloss.JoinVertical(lipgloss.Left, title, status, help)
}
