// Package scene defines what the stage paints: scenes, which render a whole
// viewport, and objects, positioned units with alpha-mask collision tests.
package scene

import (
	"image/color"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// Scene renders the complete stage content for one frame.
type Scene interface {
	// PaintScene draws the current state onto dc, a cleared transparent
	// surface of width x height pixels. elapsed is the simulated time since
	// the previous paint.
	PaintScene(dc *gg.Context, width, height int, elapsed time.Duration)

	// InputListeners returns the listeners to register while the scene is
	// staged. It is queried once, when the scene becomes active.
	InputListeners() []core.InputListener
}

// ColorScene fills the viewport with a single color.
type ColorScene struct {
	Color color.Color
}

// PaintScene implements Scene.
func (s ColorScene) PaintScene(dc *gg.Context, width, height int, _ time.Duration) {
	if s.Color == nil {
		return
	}
	dc.SetColor(s.Color)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

// InputListeners implements Scene.
func (ColorScene) InputListeners() []core.InputListener {
	return nil
}

// Layers paints several scenes bottom to top on the same surface.
type Layers []Scene

// PaintScene implements Scene.
func (l Layers) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	for _, sc := range l {
		if sc == nil {
			continue
		}
		dc.Push()
		sc.PaintScene(dc, width, height, elapsed)
		dc.Pop()
	}
}

// InputListeners returns the listeners of every layer, bottom first.
func (l Layers) InputListeners() []core.InputListener {
	var out []core.InputListener
	for _, sc := range l {
		if sc == nil {
			continue
		}
		out = append(out, sc.InputListeners()...)
	}
	return out
}
