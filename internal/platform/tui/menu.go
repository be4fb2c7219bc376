package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/lane-runner/internal/registry"
)

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items          []registry.GameInfo
	cursor         int
	width          int
	height         int
	keys           *KeyMapper
	best           map[string]int
	quitting       bool
	selected       *registry.GameInfo
	openScoreboard bool
}

// NewMenuModel lists every registered mode. best maps mode IDs to high
// scores and may be nil.
func NewMenuModel(width, height int, best map[string]int) MenuModel {
	return MenuModel{
		items:  registry.List(),
		width:  width,
		height: height,
		keys:   NewKeyMapper(),
		best:   best,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

var (
	menuTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuDimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuCurStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("L A N E   R U N N E R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a mode", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if best, ok := m.best[item.ID]; ok && best > 0 {
			line += fmt.Sprintf("  (best %d)", best)
		}
		if i == m.cursor {
			b.WriteString(centerText(menuCurStyle.Render("> "+line[2:]), m.width))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
		if item.Description != "" {
			b.WriteString(centerText(menuDimStyle.Render(item.Description), m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Up/Down: Navigate  |  Enter: Play  |  Tab: Scores  |  Q: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Selected returns the chosen mode, or nil if none was chosen.
func (m MenuModel) Selected() *registry.GameInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// centerText centers text by its printable width, ignoring ANSI codes.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
