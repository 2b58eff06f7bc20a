// Package stage composites the active scene into an off-screen buffer on every
// clock tick and hands the finished frame to a display.
package stage

import (
	"image"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/vovakirdan/tui-stage/internal/clock"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/scene"
)

// Display owns the visible surface.
type Display interface {
	// Viewport returns the current drawable size in pixels.
	Viewport() (width, height int)
	// RequestRedraw asks the display to call Present soon. It must not block.
	RequestRedraw()
}

// InputSurface receives the listeners of the staged scene.
type InputSurface interface {
	AddInputListener(l core.InputListener)
	RemoveInputListener(l core.InputListener)
}

// Stats are cumulative paint counters.
type Stats struct {
	Frames       int64         // Successful scene paints
	SkippedTicks int64         // Ticks deferred because the viewport had no area
	Painted      time.Duration // Elapsed time handed to scenes, never decreasing
	Swaps        int64         // SetScene calls
}

var _ clock.Listener = (*Stage)(nil)

// Stage is a clock listener that paints the active scene.
type Stage struct {
	display    Display
	input      InputSurface
	background color.Color
	filter     draw.Interpolator
	logger     *log.Logger

	// mu guards everything below. It is held for a full paint and for a full
	// Present, so readers never see a half-painted buffer.
	mu         sync.Mutex
	scene      scene.Scene
	registered []core.InputListener
	buffer     *image.RGBA
	dc         *gg.Context
	skipped    time.Duration
	stats      Stats
}

// New creates a stage presenting on display.
func New(display Display, opts ...Option) *Stage {
	s := &Stage{
		display:    display,
		background: core.ColorBlack,
		filter:     draw.NearestNeighbor,
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetScene swaps the active scene. The outgoing scene's listeners are removed
// from the input surface and the incoming scene's are added. nil unstages the
// current scene.
func (s *Stage) SetScene(sc scene.Scene) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.input != nil {
		for _, l := range s.registered {
			s.input.RemoveInputListener(l)
		}
	}
	s.registered = nil
	s.scene = sc
	s.stats.Swaps++

	if sc == nil {
		return
	}
	s.registered = sc.InputListeners()
	if s.input != nil {
		for _, l := range s.registered {
			s.input.AddInputListener(l)
		}
	}
	s.logger.Debug("scene staged", "scene", describe(sc), "listeners", len(s.registered))
}

// Scene returns the active scene.
func (s *Stage) Scene() scene.Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scene
}

// Tick paints the active scene. It is called on the clock goroutine.
// Time covered on a zero-area viewport is carried into the next paint; with
// no scene staged the tick is consumed and its time dropped.
// A panicking scene unwinds to the clock's fault boundary with the buffer
// lock released.
func (s *Stage) Tick(_ int64, covered time.Duration) {
	w, h := s.display.Viewport()
	if s.paint(w, h, covered) {
		s.display.RequestRedraw()
	}
}

func (s *Stage) paint(w, h int, covered time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w <= 0 || h <= 0 {
		s.skipped += covered
		s.stats.SkippedTicks++
		return false
	}
	if s.scene == nil {
		return false
	}

	if s.buffer == nil || s.buffer.Rect.Dx() != w || s.buffer.Rect.Dy() != h {
		s.buffer = image.NewRGBA(image.Rect(0, 0, w, h))
		s.dc = gg.NewContextForRGBA(s.buffer)
		s.logger.Debug("buffer recreated", "width", w, "height", h)
	} else {
		clear(s.buffer.Pix)
	}

	elapsed := covered + s.skipped
	s.skipped = 0
	s.stats.Frames++
	s.stats.Painted += elapsed

	s.dc.Push()
	defer func() {
		s.dc.ClearPath()
		s.dc.Pop()
	}()
	s.scene.PaintScene(s.dc, w, h, elapsed)
	return true
}

// Present fills dst with the background and blits the last painted frame
// scaled to dst's bounds.
func (s *Stage) Present(dst draw.Image) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draw.Draw(dst, b, image.NewUniform(s.background), image.Point{}, draw.Src)
	if s.buffer == nil {
		return
	}

	src := s.buffer.Bounds()
	if src.Dx() == b.Dx() && src.Dy() == b.Dy() {
		draw.Draw(dst, b, s.buffer, src.Min, draw.Over)
		return
	}
	s.filter.Scale(dst, b, s.buffer, src, draw.Over, nil)
}

// Snapshot returns a copy of the last painted frame, or nil.
func (s *Stage) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.buffer == nil {
		return nil
	}
	out := image.NewRGBA(s.buffer.Rect)
	copy(out.Pix, s.buffer.Pix)
	return out
}

// Stats returns cumulative paint counters.
func (s *Stage) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Skipped returns the time deferred while the viewport had no area.
func (s *Stage) Skipped() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.skipped
}

type identified interface {
	ID() string
}

func describe(sc scene.Scene) string {
	if d, ok := sc.(identified); ok {
		return d.ID()
	}
	return "anonymous"
}
