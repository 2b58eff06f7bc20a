// Package tui provides the Bubble Tea integration for the stage.
// It presents stage frames as half-block cells, feeds terminal input to the
// staged scene and serves the same player over SSH.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/engine"
	"github.com/vovakirdan/tui-stage/internal/registry"
)

// footerRows is reserved below the stage for status and help.
const footerRows = 1

// Model is the Bubble Tea model that plays one demo on an engine.
type Model struct {
	demo     registry.Demo
	engine   *engine.Engine
	surface  *Surface
	screen   *Screen
	renderer *lipgloss.Renderer
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	back     bool
}

// NewModel creates a player for demo. The engine must present on surface;
// it is closed when the model quits or goes back.
func NewModel(demo registry.Demo, eng *engine.Engine, surface *Surface, renderer *lipgloss.Renderer) Model {
	h := help.New()
	h.ShowAll = false

	return Model{
		demo:     demo,
		engine:   eng,
		surface:  surface,
		screen:   NewScreen(0, 0),
		renderer: renderer,
		keys:     DefaultKeyMap(),
		help:     h,
	}
}

// WithBack enables the back key, used when the player was opened from a menu.
func (m Model) WithBack() Model {
	m.keys.Back.SetEnabled(true)
	return m
}

// Init waits for the first frame.
func (m Model) Init() tea.Cmd {
	return m.surface.WaitRedraw()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.surface.DispatchMouse(mouseEvent(msg))
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case RedrawMsg:
		return m, m.surface.WaitRedraw()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.back = true
		m.stop()
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		m.engine.TogglePause()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}

	m.surface.DispatchKey(keyEvent(msg))
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.help.Width = msg.Width

	rows := max(msg.Height-m.footerHeight(), 0)
	m.surface.Resize(msg.Width, rows)
	m.screen.Resize(msg.Width, rows)
	return m, nil
}

func (m Model) footerHeight() int {
	if m.help.ShowAll {
		return footerRows + len(m.keys.FullHelp()[0])
	}
	return footerRows
}

func (m Model) stop() {
	m.engine.Close()
	m.surface.Close()
}

// View renders the latest stage frame and the footer.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	m.engine.Stage().Present(m.screen.Image())

	var b strings.Builder
	if m.screen.Rows() > 0 {
		b.WriteString(m.screen.Render(m.renderer))
		b.WriteString("\n")
	}
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) footer() string {
	style := m.renderer.NewStyle().Foreground(lipgloss.Color("241"))
	status := m.demo.Title()
	if m.engine.Paused() {
		status += " (paused)"
	}
	return style.Render(fmt.Sprintf("%s  %s", status, m.help.View(m.keys)))
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Play builds an engine for demo and plays it in the current terminal until
// the user quits or ctx is cancelled.
func Play(ctx context.Context, cfg config.Config, demo registry.Demo, logger *log.Logger) error {
	surface := NewSurface(logger)
	eng, err := engine.New(cfg, surface, surface, logger)
	if err != nil {
		return err
	}
	defer eng.Close()

	eng.SetScene(demo)
	eng.Start(ctx)

	model := NewModel(demo, eng, surface, lipgloss.DefaultRenderer())
	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err = p.Run()
	if ctx.Err() != nil {
		return nil
	}
	return err
}
