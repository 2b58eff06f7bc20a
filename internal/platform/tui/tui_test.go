package tui

import (
	"image"
	"image/color"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/engine"
)

type recorder struct {
	keys   []string
	mice   []core.MouseEvent
	panics bool
}

func (r *recorder) HandleKey(ev core.KeyEvent) {
	if r.panics {
		panic("key handler failed")
	}
	r.keys = append(r.keys, ev.Key)
}

func (r *recorder) HandleMouse(ev core.MouseEvent) {
	r.mice = append(r.mice, ev)
}

func TestSurface_Viewport(t *testing.T) {
	s := NewSurface(nil)
	if w, h := s.Viewport(); w != 0 || h != 0 {
		t.Errorf("Viewport() = %dx%d, expected 0x0", w, h)
	}

	s.Resize(80, 24)
	if w, h := s.Viewport(); w != 80 || h != 48 {
		t.Errorf("Viewport() = %dx%d, expected 80x48", w, h)
	}

	s.Resize(-1, 5)
	if w, h := s.Viewport(); w != 0 || h != 10 {
		t.Errorf("Viewport() = %dx%d, expected 0x10", w, h)
	}
}

func TestSurface_RedrawCoalesces(t *testing.T) {
	s := NewSurface(nil)
	for i := 0; i < 10; i++ {
		s.RequestRedraw() // must never block
	}

	cmd := s.WaitRedraw()
	if _, ok := cmd().(RedrawMsg); !ok {
		t.Fatal("WaitRedraw() did not deliver a RedrawMsg")
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- s.WaitRedraw()() }()
	select {
	case msg := <-done:
		t.Fatalf("second wait returned %v without a new request", msg)
	case <-time.After(20 * time.Millisecond):
	}

	s.Close()
	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("wait after Close returned %v, expected nil", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not release the pending wait")
	}
}

func TestSurface_Listeners(t *testing.T) {
	s := NewSurface(nil)
	a, b := &recorder{}, &recorder{}

	s.AddInputListener(a)
	s.AddInputListener(b)
	s.AddInputListener(a)
	s.AddInputListener(core.KeyFunc(func(core.KeyEvent) {})) // never removable
	s.AddInputListener("opaque")

	s.DispatchKey(core.KeyEvent{Key: "x"})
	if len(a.keys) != 2 || len(b.keys) != 1 {
		t.Errorf("dispatch counts a=%d b=%d, expected 2 and 1", len(a.keys), len(b.keys))
	}

	s.RemoveInputListener(a)
	if got := len(s.Listeners()); got != 4 {
		t.Errorf("after one removal: %d listeners, expected 4", got)
	}
	s.RemoveInputListener(core.KeyFunc(func(core.KeyEvent) {}))
	if got := len(s.Listeners()); got != 4 {
		t.Errorf("removing a func listener changed the count to %d", got)
	}

	s.DispatchMouse(core.MouseEvent{X: 3, Y: 4, Action: core.MouseMotion})
	if len(a.mice) != 1 || len(b.mice) != 1 {
		t.Errorf("mouse dispatch counts a=%d b=%d, expected 1 and 1", len(a.mice), len(b.mice))
	}
}

func TestSurface_ListenerPanicIsIsolated(t *testing.T) {
	s := NewSurface(nil)
	bad, good := &recorder{panics: true}, &recorder{}
	s.AddInputListener(bad)
	s.AddInputListener(good)

	s.DispatchKey(core.KeyEvent{Key: "a"})
	if len(good.keys) != 1 {
		t.Error("listener after a panicking one was not called")
	}
}

func TestKeyEvent(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected string
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, "up"},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, "space"},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}}, "+"},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, "ctrl+c"},
	}

	for _, tt := range tests {
		if got := keyEvent(tt.msg).Key; got != tt.expected {
			t.Errorf("keyEvent(%v).Key = %q, expected %q", tt.msg, got, tt.expected)
		}
	}
}

func TestMouseEvent(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.MouseMsg
		expected core.MouseEvent
	}{
		{
			name:     "left press",
			msg:      tea.MouseMsg{X: 5, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
			expected: core.MouseEvent{X: 5, Y: 6, Action: core.MousePress, Button: core.ButtonLeft},
		},
		{
			name:     "motion",
			msg:      tea.MouseMsg{X: 1, Y: 0, Action: tea.MouseActionMotion},
			expected: core.MouseEvent{X: 1, Y: 0, Action: core.MouseMotion},
		},
		{
			name:     "wheel",
			msg:      tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown},
			expected: core.MouseEvent{X: 2, Y: 4, Action: core.MouseWheel, Button: core.ButtonWheelDown},
		},
		{
			name:     "release",
			msg:      tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonRight},
			expected: core.MouseEvent{X: 0, Y: 2, Action: core.MouseRelease, Button: core.ButtonRight},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mouseEvent(tt.msg); got != tt.expected {
				t.Errorf("mouseEvent() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	red := color.RGBA{255, 0, 0, 255}
	for x := 0; x < 3; x++ {
		img.SetRGBA(x, 0, red)
	}

	out := RenderHalfBlocks(lipgloss.NewRenderer(io.Discard), img)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if got := strings.Count(line, upperHalf); got != 3 {
			t.Errorf("line %d has %d cells, expected 3", i, got)
		}
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		c        color.RGBA
		expected string
	}{
		{color.RGBA{0, 0, 0, 255}, "#000000"},
		{color.RGBA{255, 255, 255, 255}, "#ffffff"},
		{color.RGBA{25, 109, 159, 255}, "#196d9f"},
	}
	for _, tt := range tests {
		if got := hex(tt.c); got != tt.expected {
			t.Errorf("hex(%v) = %q, expected %q", tt.c, got, tt.expected)
		}
	}
}

func TestScreen_Resize(t *testing.T) {
	s := NewScreen(4, 2)
	if b := s.Image().Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("Image() bounds = %v, expected 4x4", b)
	}

	before := s.Image()
	s.Resize(4, 2)
	if s.Image() != before {
		t.Error("Resize to the same size reallocated the buffer")
	}

	s.Resize(10, 3)
	if s.Cols() != 10 || s.Rows() != 3 || s.Image().Bounds().Dy() != 6 {
		t.Errorf("after Resize: %dx%d cells, image %v", s.Cols(), s.Rows(), s.Image().Bounds())
	}
}

type solidDemo struct {
	rec *recorder
}

func (solidDemo) ID() string    { return "solid" }
func (solidDemo) Title() string { return "Solid" }

func (solidDemo) PaintScene(dc *gg.Context, width, height int, _ time.Duration) {
	dc.SetColor(core.ColorRed)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

func (d solidDemo) InputListeners() []core.InputListener {
	return []core.InputListener{d.rec}
}

func newTestModel(t *testing.T) (Model, *recorder) {
	t.Helper()
	rec := &recorder{}
	demo := solidDemo{rec: rec}

	surface := NewSurface(nil)
	eng, err := engine.New(config.Default(), surface, surface, nil)
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	eng.SetScene(demo)
	t.Cleanup(eng.Close)

	return NewModel(demo, eng, surface, lipgloss.NewRenderer(io.Discard)), rec
}

func TestModel_ResizeAndForwardInput(t *testing.T) {
	m, rec := newTestModel(t)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})
	m = next.(Model)
	if w, h := m.surface.Viewport(); w != 20 || h != 20 {
		t.Errorf("viewport = %dx%d, expected 20x20 (one footer row)", w, h)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	next, _ = m.Update(tea.MouseMsg{X: 2, Y: 3, Action: tea.MouseActionMotion})
	m = next.(Model)

	if len(rec.keys) != 1 || rec.keys[0] != "+" {
		t.Errorf("forwarded keys = %v, expected [+]", rec.keys)
	}
	if len(rec.mice) != 1 || rec.mice[0].Y != 6 {
		t.Errorf("forwarded mouse = %+v, expected y=6", rec.mice)
	}

	// Global keys are not forwarded.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	m = next.(Model)
	if len(rec.keys) != 1 {
		t.Errorf("pause key was forwarded: %v", rec.keys)
	}
}

func TestModel_ViewPresentsFrame(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 4, Height: 3})
	m = next.(Model)

	m.engine.Stage().Tick(1, time.Millisecond)
	view := m.View()
	if got := strings.Count(view, upperHalf); got != 8 {
		t.Errorf("View() rendered %d cells, expected 8", got)
	}
	if !strings.Contains(view, "Solid") {
		t.Error("View() footer does not name the demo")
	}
}

func TestModel_QuitAndBack(t *testing.T) {
	m, _ := newTestModel(t)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(Model).BackToMenu() {
		t.Error("esc went back although back is disabled")
	}

	back := m.WithBack()
	next, _ = back.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("esc did not go back with back enabled")
	}

	m2, _ := newTestModel(t)
	next, cmd := m2.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("ctrl+c did not quit")
	}
	select {
	case <-m2.engine.Done():
	case <-time.After(time.Second):
		t.Error("engine not closed on quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRuns},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, MenuActionNone},
	}

	for _, tt := range tests {
		if got := MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%v) = %v, expected %v", tt.msg, got, tt.expected)
		}
	}
}
