package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// KeyMap defines the global key bindings of the player.
// Keys not bound here are forwarded to the staged scene.
type KeyMap struct {
	Quit  key.Binding
	Pause key.Binding
	Help  key.Binding
	Back  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Back, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Back},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
			key.WithDisabled(),
		),
	}
}

// keyEvent translates a Bubble Tea key message for scene listeners.
func keyEvent(msg tea.KeyMsg) core.KeyEvent {
	k := msg.String()
	if k == " " {
		k = "space"
	}
	return core.KeyEvent{
		Key:   k,
		Runes: msg.Runes,
		Alt:   msg.Alt,
	}
}

// mouseEvent translates a Bubble Tea mouse message into viewport pixels.
// Rows are doubled because each cell holds two pixels.
func mouseEvent(msg tea.MouseMsg) core.MouseEvent {
	ev := core.MouseEvent{
		X: msg.X,
		Y: msg.Y * pixelsPerRow,
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		ev.Button = core.ButtonLeft
	case tea.MouseButtonMiddle:
		ev.Button = core.ButtonMiddle
	case tea.MouseButtonRight:
		ev.Button = core.ButtonRight
	case tea.MouseButtonWheelUp:
		ev.Button = core.ButtonWheelUp
	case tea.MouseButtonWheelDown:
		ev.Button = core.ButtonWheelDown
	}

	switch {
	case tea.MouseEvent(msg).IsWheel():
		ev.Action = core.MouseWheel
	case msg.Action == tea.MouseActionPress:
		ev.Action = core.MousePress
	case msg.Action == tea.MouseActionRelease:
		ev.Action = core.MouseRelease
	default:
		ev.Action = core.MouseMotion
	}
	return ev
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "tab":
		return MenuActionRuns
	}
	return MenuActionNone
}
