package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmRequestMsg opens the confirmation dialog. OnYes runs only after the
// user accepts.
type ConfirmRequestMsg struct {
	Prompt string
	Danger bool
	OnYes  tea.Cmd
}

func askConfirm(req ConfirmRequestMsg) tea.Cmd {
	return func() tea.Msg { return req }
}

type ConfirmModel struct {
	req    ConfirmRequestMsg
	width  int
	height int
}

func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{}
}

func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m *ConfirmModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ConfirmModel) Ask(req ConfirmRequestMsg) {
	m.req = req
}

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y":
		onYes := m.req.OnYes
		m.req = ConfirmRequestMsg{}
		if onYes == nil {
			return m, ChangeScreen(TableScreen)
		}
		return m, tea.Sequence(ChangeScreen(TableScreen), onYes)
	case "n", "N", "esc", "enter":
		m.req = ConfirmRequestMsg{}
		return m, ChangeScreen(TableScreen)
	}
	return m, nil
}

func (m *ConfirmModel) View() string {
	title := titleStyle.Render("⚠️  Please confirm")

	prompt := warningStyle.Render(m.req.Prompt)
	if m.req.Danger {
		prompt = errorStyle.Render(m.req.Prompt)
	}

	// enter cancels so a stray keypress never deletes anything
	help := helpStyle.Render("y: Yes • n/Enter/Esc: No")

	content := lipgloss.JoinVertical(lipgloss.Left, title, formStyle.Render(prompt), help)
	if m.width > 0 && m.height > 0 {
		content = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}
