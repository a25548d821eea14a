package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type menuChoice struct {
	label string
	cmd   func() tea.Cmd
}

type MenuModel struct {
	choices  []menuChoice
	cursor   int
	selected int
	width    int
	height   int
}

func NewMenuModel() *MenuModel {
	return &MenuModel{
		choices: []menuChoice{
			{"📋 Browse rows", func() tea.Cmd { return ChangeScreen(TableScreen) }},
			{"🔍 Search & filter", func() tea.Cmd { return ChangeScreen(SearchScreen) }},
			{"➕ New row", func() tea.Cmd { return openForm(nil) }},
			{"📥 Upload spreadsheet", func() tea.Cmd { return ChangeScreen(UploadScreen) }},
			{"💾 Export rows", func() tea.Cmd { return ChangeScreen(ExportScreen) }},
			{"🗑️  Delete all rows", func() tea.Cmd { return deleteAll }},
			{"🚪 Exit", func() tea.Cmd { return tea.Quit }},
		},
	}
}

func (m *MenuModel) Init() tea.Cmd {
	return nil
}

func (m *MenuModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.selected = m.cursor
			return m, m.choices[m.selected].cmd()
		}
	}
	return m, nil
}

func (m *MenuModel) View() string {
	adaptiveTitleStyle, _, adaptiveHelpStyle := GetAdaptiveStyles(m.width, m.height)

	title := adaptiveTitleStyle.Render("📊 Excel Panel")

	var menu string
	for i, choice := range m.choices {
		cursor := " "
		label := menuItemStyle.Render(choice.label)
		if m.cursor == i {
			cursor = ">"
			label = selectedMenuItemStyle.Render(choice.label)
		}
		menu += fmt.Sprintf("%s %s\n", cursor, label)
	}

	help := adaptiveHelpStyle.Render("Use ↑/↓ (or j/k) to navigate • Enter to select • q to quit")

	content := lipgloss.JoinVertical(lipgloss.Left, title, menu, help)
	if m.width > 0 {
		content = lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			content,
		)
	}
	return content
}
