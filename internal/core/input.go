package core

import "reflect"

// InputListener is anything a scene wants registered with the input surface.
// The stage never interprets it; the platform dispatches by the interfaces
// below (KeyListener, MouseListener) and ignores everything else.
type InputListener any

// KeyEvent is a single key press delivered by the platform.
type KeyEvent struct {
	Key   string // Normalized key name ("up", "space", "a", "ctrl+c")
	Runes []rune // Typed characters, empty for special keys
	Alt   bool   // Alt modifier held
}

// MouseAction is the kind of pointer activity.
type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseWheel
)

// String returns a human-readable name for the action.
func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "Press"
	case MouseRelease:
		return "Release"
	case MouseMotion:
		return "Motion"
	case MouseWheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// MouseButton identifies the pointer button involved in an event.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
)

// MouseEvent is pointer activity in viewport pixel coordinates.
type MouseEvent struct {
	X, Y   int
	Action MouseAction
	Button MouseButton
}

// KeyListener receives key events while its scene is staged.
type KeyListener interface {
	HandleKey(ev KeyEvent)
}

// MouseListener receives pointer events while its scene is staged.
type MouseListener interface {
	HandleMouse(ev MouseEvent)
}

// SameListener reports whether a and b are the same listener value.
// Values of non-comparable dynamic types, such as funcs, never match.
func SameListener(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == nil || ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// KeyFunc adapts a function to KeyListener.
// Function values are not comparable, so register a pointer to one when the
// listener must be removed again.
type KeyFunc func(ev KeyEvent)

// HandleKey calls f(ev).
func (f KeyFunc) HandleKey(ev KeyEvent) { f(ev) }

// MouseFunc adapts a function to MouseListener.
type MouseFunc func(ev MouseEvent)

// HandleMouse calls f(ev).
func (f MouseFunc) HandleMouse(ev MouseEvent) { f(ev) }
