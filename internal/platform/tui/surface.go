package tui

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/stage"
)

// Each terminal cell shows two vertically stacked pixels.
const pixelsPerRow = 2

// RedrawMsg tells the program that the stage finished a frame.
type RedrawMsg struct{}

var (
	_ stage.Display      = (*Surface)(nil)
	_ stage.InputSurface = (*Surface)(nil)
)

// Surface connects a stage to a Bubble Tea program. It reports the terminal
// size as the stage viewport, turns redraw requests into RedrawMsg and fans
// terminal input out to the staged scene's listeners.
type Surface struct {
	logger *log.Logger

	width  atomic.Int32 // Pixels
	height atomic.Int32 // Pixels

	// redraw holds at most one pending request; further requests coalesce.
	redraw    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	// listeners is replaced on every mutation and never modified in place.
	mu        sync.Mutex
	listeners []core.InputListener
}

// NewSurface creates a surface with an empty viewport. A nil logger
// discards listener faults.
func NewSurface(logger *log.Logger) *Surface {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Surface{
		logger: logger,
		redraw: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// Resize sets the viewport from a terminal size in cells.
func (s *Surface) Resize(cols, rows int) {
	s.width.Store(int32(max(cols, 0)))
	s.height.Store(int32(max(rows, 0) * pixelsPerRow))
}

// Viewport implements stage.Display.
func (s *Surface) Viewport() (int, int) {
	return int(s.width.Load()), int(s.height.Load())
}

// RequestRedraw implements stage.Display. It never blocks.
func (s *Surface) RequestRedraw() {
	select {
	case s.redraw <- struct{}{}:
	default:
	}
}

// WaitRedraw returns a command that delivers the next RedrawMsg. The
// command returns nil once the surface is closed.
func (s *Surface) WaitRedraw() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-s.redraw:
			return RedrawMsg{}
		case <-s.closed:
			return nil
		}
	}
}

// Close releases pending WaitRedraw commands.
func (s *Surface) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}

// AddInputListener implements stage.InputSurface.
func (s *Surface) AddInputListener(l core.InputListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]core.InputListener, len(s.listeners), len(s.listeners)+1)
	copy(next, s.listeners)
	s.listeners = append(next, l)
}

// RemoveInputListener implements stage.InputSurface. Only the first
// registration of l is removed.
func (s *Surface) RemoveInputListener(l core.InputListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, x := range s.listeners {
		if core.SameListener(x, l) {
			next := make([]core.InputListener, 0, len(s.listeners)-1)
			next = append(next, s.listeners[:i]...)
			s.listeners = append(next, s.listeners[i+1:]...)
			return
		}
	}
}

// Listeners returns the registered listeners in registration order.
func (s *Surface) Listeners() []core.InputListener {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listeners
}

// DispatchKey delivers ev to every KeyListener.
func (s *Surface) DispatchKey(ev core.KeyEvent) {
	for _, l := range s.Listeners() {
		if kl, ok := l.(core.KeyListener); ok {
			s.guard(l, func() { kl.HandleKey(ev) })
		}
	}
}

// DispatchMouse delivers ev to every MouseListener.
func (s *Surface) DispatchMouse(ev core.MouseEvent) {
	for _, l := range s.Listeners() {
		if ml, ok := l.(core.MouseListener); ok {
			s.guard(l, func() { ml.HandleMouse(ev) })
		}
	}
}

// guard runs fn, logging a panic as a listener fault instead of tearing
// down the program.
func (s *Surface) guard(l core.InputListener, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			fault := &core.ListenerFault{
				Listener: fmt.Sprintf("%T", l),
				Value:    r,
				Stack:    debug.Stack(),
			}
			s.logger.Error("input listener fault", "listener", fault.Listener, "error", fault)
		}
	}()
	fn()
}
