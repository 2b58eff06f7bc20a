package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/engine"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/storage"
)

// SessionModel manages the full session flow: menu -> player or runs -> menu.
// It is the top-level model used for SSH sessions and for local play without
// a scene argument.
type SessionModel struct {
	ctx      context.Context
	cfg      config.Config
	store    *storage.Store
	logger   *log.Logger
	renderer *lipgloss.Renderer

	menu     MenuModel
	player   *Model
	runs     *RunsModel
	width    int
	height   int
	err      error
	quitting bool
}

// NewSessionModel creates a session. Engines started by the session stop
// when ctx is cancelled. store may be nil.
func NewSessionModel(ctx context.Context, cfg config.Config, store *storage.Store, logger *log.Logger, renderer *lipgloss.Renderer, width, height int) SessionModel {
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		ctx:      ctx,
		cfg:      cfg,
		store:    store,
		logger:   logger,
		renderer: renderer,
		menu:     NewMenuModel(width, height),
		width:    width,
		height:   height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = wsm.Width, wsm.Height
	}

	switch {
	case m.player != nil:
		return m.updatePlayer(msg)
	case m.runs != nil:
		return m.updateRuns(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(RedrawMsg); ok {
		// Late frame from a player that was already closed.
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsRuns() {
		runs := NewRunsModel(m.store, m.width, m.height)
		m.runs = &runs
		return m, runs.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		player, err := m.startPlayer(selected.DemoID)
		if err != nil {
			m.logger.Error("cannot start scene", "scene", selected.DemoID, "error", err)
			m.err = err
			m.menu = NewMenuModel(m.width, m.height)
			return m, nil
		}
		m.player = &player
		return m, player.Init()
	}

	return m, cmd
}

// startPlayer builds an engine for demoID and a player sized for the
// current window.
func (m SessionModel) startPlayer(demoID string) (Model, error) {
	demo, err := registry.Create(demoID, m.cfg)
	if err != nil {
		return Model{}, err
	}

	surface := NewSurface(m.logger)
	eng, err := engine.New(m.cfg, surface, surface, m.logger)
	if err != nil {
		return Model{}, err
	}
	eng.SetScene(demo)
	eng.Start(m.ctx)

	player := NewModel(demo, eng, surface, m.renderer).WithBack()
	sized, _ := player.handleResize(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	return sized.(Model), nil
}

// updatePlayer handles updates when a scene is playing.
func (m SessionModel) updatePlayer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.player.Update(msg)
	if player, ok := newModel.(Model); ok {
		m.player = &player
	}

	if m.player.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.player.BackToMenu() {
		m.player = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRuns handles updates when browsing runs.
func (m SessionModel) updateRuns(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.runs.Update(msg)
	if runs, ok := newModel.(RunsModel); ok {
		m.runs = &runs
	}

	if m.runs.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.runs.IsGoingBack() {
		m.runs = nil
		m.menu = NewMenuModel(m.width, m.height)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.player != nil:
		return m.player.View()
	case m.runs != nil:
		return m.runs.View()
	}

	view := m.menu.View()
	if m.err != nil {
		view += "\n" + centerText("error: "+m.err.Error(), m.width) + "\n"
	}
	return view
}

// Close stops a scene that is still playing.
func (m SessionModel) Close() {
	if m.player != nil {
		m.player.stop()
	}
}

// RunSession runs the menu driven session in the current terminal.
func RunSession(ctx context.Context, cfg config.Config, store *storage.Store, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(ctx, cfg, store, logger, nil, 0, 0),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(SessionModel); ok {
		m.Close()
	}
	if ctx.Err() != nil {
		return nil
	}
	return err
}
