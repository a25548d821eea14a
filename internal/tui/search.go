package tui

import (
	"fmt"
	"strings"

	"excelPanel/internal/form"
	"excelPanel/internal/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type inputRole int

const (
	roleSearch inputRole = iota
	roleText
	roleMin
	roleMax
)

type searchInput struct {
	role  inputRole
	field string
	input textinput.Model
}

// SearchModel edits the table filter. Freeform text and per-field filters
// are exclusive: while the freeform input has text the field inputs are
// disabled and skipped.
type SearchModel struct {
	inputs  []searchInput
	focused int
	err     string
	width   int
	height  int
}

func NewSearchModel() *SearchModel {
	newInput := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.Width = 30
		return ti
	}

	inputs := []searchInput{{role: roleSearch, input: newInput("search all fields")}}
	for _, f := range models.TextFields {
		inputs = append(inputs, searchInput{role: roleText, field: f, input: newInput(f)})
	}
	for _, f := range models.NumericFields {
		inputs = append(inputs,
			searchInput{role: roleMin, field: f, input: newInput("min")},
			searchInput{role: roleMax, field: f, input: newInput("max")},
		)
	}
	inputs[0].input.Focus()

	return &SearchModel{inputs: inputs}
}

func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Load fills the inputs from the filter currently applied.
func (m *SearchModel) Load(f models.Filter) {
	m.err = ""
	for i := range m.inputs {
		in := &m.inputs[i]
		switch in.role {
		case roleSearch:
			in.input.SetValue(f.Search)
		case roleText:
			in.input.SetValue(f.Fields[in.field])
		case roleMin:
			in.input.SetValue(decimalValue(f.Ranges[in.field].Min))
		case roleMax:
			in.input.SetValue(decimalValue(f.Ranges[in.field].Max))
		}
	}
	m.focus(0)
}

func (m *SearchModel) freeform() bool {
	return strings.TrimSpace(m.inputs[0].input.Value()) != ""
}

func (m *SearchModel) enabled(i int) bool {
	return i == 0 || !m.freeform()
}

func (m *SearchModel) focus(i int) {
	m.focused = i
	for j := range m.inputs {
		if j == i {
			m.inputs[j].input.Focus()
		} else {
			m.inputs[j].input.Blur()
		}
	}
}

func (m *SearchModel) move(step int) {
	n := len(m.inputs)
	i := m.focused
	for k := 0; k < n; k++ {
		i = (i + step + n) % n
		if m.enabled(i) {
			break
		}
	}
	m.focus(i)
}

func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "tab", "down":
		m.move(1)
		return m, nil
	case "shift+tab", "up":
		m.move(-1)
		return m, nil
	case "esc":
		return m, ChangeScreen(TableScreen)
	case "ctrl+r":
		m.Load(models.Filter{})
		return m, applyFilter(models.Filter{})
	case "enter":
		f, err := m.Filter()
		if err != nil {
			m.err = err.Error()
			return m, nil
		}
		return m, applyFilter(f)
	}

	var cmd tea.Cmd
	m.inputs[m.focused].input, cmd = m.inputs[m.focused].input.Update(msg)
	m.err = ""
	return m, cmd
}

func applyFilter(f models.Filter) tea.Cmd {
	return func() tea.Msg { return SearchMsg{Filter: f} }
}

// Filter builds the filter the inputs describe. Freeform text wins over the
// field inputs.
func (m *SearchModel) Filter() (models.Filter, error) {
	if search := strings.TrimSpace(m.inputs[0].input.Value()); search != "" {
		return models.Filter{Search: search}, nil
	}

	f := models.Filter{Fields: map[string]string{}, Ranges: map[string]models.Range{}}
	for _, in := range m.inputs[1:] {
		value := strings.TrimSpace(in.input.Value())
		if value == "" {
			continue
		}
		switch in.role {
		case roleText:
			f.Fields[in.field] = value
		case roleMin, roleMax:
			d, err := form.ParseDecimal(value)
			if err != nil {
				return models.Filter{}, fmt.Errorf("%s: %w", in.field, err)
			}
			rng := f.Ranges[in.field]
			if in.role == roleMin {
				rng.Min = d
			} else {
				rng.Max = d
			}
			if rng.Min != nil && rng.Max != nil && rng.Min.GreaterThan(*rng.Max) {
				return models.Filter{}, fmt.Errorf("%s: min is greater than max", in.field)
			}
			f.Ranges[in.field] = rng
		}
	}
	return f, nil
}

func (m *SearchModel) View() string {
	adaptiveTitleStyle, adaptiveFormStyle, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)
	title := adaptiveTitleStyle.Render("🔍 Search & filter")

	var b strings.Builder
	b.WriteString(labelStyle.Render("Search:") + "\n" + m.inputs[0].input.View() + "\n\n")

	disabled := m.freeform()
	label := func(s string) string {
		if disabled {
			return dimStyle.Render(s)
		}
		return labelStyle.Render(s)
	}
	view := func(in searchInput) string {
		if disabled {
			return dimStyle.Render(in.input.Value())
		}
		return in.input.View()
	}

	for _, in := range m.inputs[1:] {
		switch in.role {
		case roleText:
			b.WriteString(label(in.field+":") + " " + view(in) + "\n")
		case roleMin:
			b.WriteString(label(in.field+":") + " " + view(in))
		case roleMax:
			b.WriteString(" .. " + view(in) + "\n")
		}
	}
	if disabled {
		b.WriteString("\n" + dimStyle.Render("Field filters are ignored while search text is set"))
	}

	sections := []string{title, adaptiveFormStyle.Render(b.String())}
	if m.err != "" {
		sections = append(sections, errorStyle.Render("❌ "+m.err))
	}
	sections = append(sections, adaptiveHelpStyle.Render("Tab/Shift+Tab: Navigate • Enter: Apply • Ctrl+R: Clear filters • Esc: Back"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
