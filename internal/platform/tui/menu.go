package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-stage/internal/registry"
)

// MenuItem represents a selectable demo in the menu.
type MenuItem struct {
	DemoID string
	Title  string
}

// MenuModel is the Bubble Tea model for the demo picker.
type MenuModel struct {
	items    []MenuItem
	cursor   int
	width    int
	height   int
	quitting bool
	selected *MenuItem // Set when user selects a demo
	runs     bool      // True if user pressed Tab for stored runs
}

// NewMenuModel creates a menu listing every registered demo.
func NewMenuModel(width, height int) MenuModel {
	demos := registry.List()
	items := make([]MenuItem, 0, len(demos))
	for _, d := range demos {
		items = append(items, MenuItem{DemoID: d.ID, Title: d.Title})
	}

	return MenuModel{
		items:  items,
		width:  width,
		height: height,
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
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
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

	case MenuActionRuns:
		m.runs = true
	}

	return m, nil
}

// View renders the menu centered in the window.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	itemStyle := lipgloss.NewStyle().PaddingLeft(2)
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).Padding(0, 1)
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	rows := []string{titleStyle.Render("S T A G E"), "", "Select a scene", ""}
	for i, item := range m.items {
		line := fmt.Sprintf("%-18s %s", item.Title, hintStyle.Render(item.DemoID))
		if i == m.cursor {
			rows = append(rows, activeStyle.Render(line))
			continue
		}
		rows = append(rows, itemStyle.Render(line))
	}
	if len(m.items) == 0 {
		rows = append(rows, hintStyle.Render("no scenes registered"))
	}
	rows = append(rows, "", hintStyle.Render("up/down: navigate  enter: play  tab: runs  q: quit"))

	block := lipgloss.JoinVertical(lipgloss.Center, rows...)
	if m.width <= 0 || m.height <= 0 {
		return block
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, block)
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRuns returns true if user requested the run browser.
func (m MenuModel) WantsRuns() bool {
	return m.runs
}

// centerText pads text on the left to center it in width columns.
func centerText(text string, width int) string {
	if n := lipgloss.Width(text); n < width {
		return strings.Repeat(" ", (width-n)/2) + text
	}
	return text
}
