package tui

import (
	"context"
	"fmt"
	"strings"

	"excelPanel/internal/form"
	"excelPanel/internal/listing"
	"excelPanel/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type savedMsg struct {
	row *models.Row
	err error
}

func openForm(row *models.Row) tea.Cmd {
	return func() tea.Msg { return OpenFormMsg{Row: row} }
}

func decimalValue(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// FormModel is the create/edit dialog. It stays open on failure and closes
// only after the backend accepted the row.
type FormModel struct {
	opts    *Options
	form    *form.Form
	inputs  []textinput.Model
	focused int
	errs    form.Errors
	err     string
	saving  bool
	width   int
	height  int
}

func NewFormModel(opts *Options) *FormModel {
	inputs := make([]textinput.Model, len(form.Fields))
	for i, f := range form.Fields {
		ti := textinput.New()
		ti.Placeholder = f.Label
		ti.Width = 40
		if f.Kind != form.Text {
			ti.Width = 16
		}
		inputs[i] = ti
	}
	return &FormModel{opts: opts, form: form.New(nil), inputs: inputs}
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Open starts a create form for a nil row and an edit form otherwise.
func (m *FormModel) Open(row *models.Row) tea.Cmd {
	m.form = form.New(row)
	m.errs = nil
	m.err = ""
	m.saving = false
	for i, f := range form.Fields {
		m.inputs[i].SetValue(m.form.Value(f.Key))
	}
	m.focus(0)
	return textinput.Blink
}

func (m *FormModel) focus(i int) {
	m.focused = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saving = false
		if msg.err != nil {
			m.opts.Log.Warn("Save failed", zap.String("mode", m.form.Mode().String()), zap.Error(msg.err))
			m.err = listing.Describe(msg.err, m.opts.BaseURL)
			return m, nil
		}
		notice := fmt.Sprintf("Created row #%d", msg.row.ID)
		if m.form.Mode() == form.ModeEdit {
			notice = fmt.Sprintf("Updated row #%d", msg.row.ID)
		}
		return m, tea.Sequence(ChangeScreen(TableScreen), func() tea.Msg { return MutatedMsg{Notice: notice} })

	case tea.KeyMsg:
		if m.saving {
			return m, nil
		}
		n := len(m.inputs)
		switch msg.String() {
		case "tab", "down":
			m.focus((m.focused + 1) % n)
			return m, nil
		case "shift+tab", "up":
			m.focus((m.focused - 1 + n) % n)
			return m, nil
		case "esc":
			return m, ChangeScreen(TableScreen)
		case "enter", "ctrl+s":
			return m, m.submit()
		}
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit validates locally; nothing is sent while a field is invalid.
func (m *FormModel) submit() tea.Cmd {
	for i, f := range form.Fields {
		m.form.Set(f.Key, m.inputs[i].Value())
	}
	m.err = ""
	m.errs = m.form.Validate()
	if m.errs != nil {
		return nil
	}
	input, err := m.form.Input()
	if err != nil {
		m.err = err.Error()
		return nil
	}

	m.saving = true
	backend := m.opts.Backend
	mode, id := m.form.Mode(), m.form.ID()
	return func() tea.Msg {
		var (
			row *models.Row
			err error
		)
		if mode == form.ModeEdit {
			row, err = backend.Update(context.Background(), id, input)
		} else {
			row, err = backend.Create(context.Background(), input)
		}
		return savedMsg{row: row, err: err}
	}
}

func (m *FormModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	title := adaptiveTitleStyle.Render("✏️  " + m.form.Title())

	var b strings.Builder
	for i, f := range form.Fields {
		label := f.Label
		if f.Required {
			label += " *"
		}
		b.WriteString(labelStyle.Render(label+":") + " " + m.inputs[i].View())
		if msg, ok := m.errs[f.Key]; ok {
			b.WriteString(" " + errorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	sections := []string{title, adaptiveFormStyle.Render(strings.TrimRight(b.String(), "\n"))}
	if m.saving {
		sections = append(sections, statusStyle.Render("Saving..."))
	}
	if m.err != "" {
		sections = append(sections, errorStyle.Render("❌ "+m.err))
	}
	sections = append(sections, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Enter: Save • Esc: Cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
