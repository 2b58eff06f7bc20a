// Package cursor implements a pointer demo: a ring cursor driven by the mouse
// or the arrow keys is tested against three shapes. A shape lights up while
// the cursor touches it and turns white once it covers the cursor completely.
package cursor

import (
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/scene"
)

func init() {
	registry.Register("cursor", func(cfg config.Config) (registry.Demo, error) {
		return New(cfg)
	})
}

// State is how a shape relates to the cursor.
type State int

const (
	StateIdle     State = iota // No contact
	StateTouched               // Cursor collides with the shape
	StateCovering              // Shape consumes the cursor
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTouched:
		return "touched"
	case StateCovering:
		return "covering"
	default:
		return "unknown"
	}
}

type kind int

const (
	kindSquare kind = iota
	kindCircle
	kindTriangle
)

type shape struct {
	name  string
	kind  kind
	color colorful.Color
	state State
	obj   *scene.Object
}

// Paint fills the shape outline in a color picked by its state.
func (s *shape) Paint(dc *gg.Context, _ time.Duration) {
	w, h := float64(dc.Width()), float64(dc.Height())

	switch s.kind {
	case kindSquare:
		dc.DrawRectangle(0, 0, w, h)
	case kindCircle:
		dc.DrawEllipse(w/2, h/2, w/2, h/2)
	case kindTriangle:
		dc.MoveTo(w/2, 0)
		dc.LineTo(w, h)
		dc.LineTo(0, h)
		dc.ClosePath()
	}

	switch s.state {
	case StateCovering:
		dc.SetColor(core.ColorWhite)
	case StateTouched:
		dc.SetColor(s.color)
	default:
		dc.SetColor(s.color.BlendLab(colorful.Color{}, 0.6).Clamped())
	}
	dc.Fill()
}

type ring struct{}

// Paint strokes a ring inside the bounding box.
func (ring) Paint(dc *gg.Context, _ time.Duration) {
	r := float64(dc.Width()) / 2
	dc.SetColor(core.ColorWhite)
	dc.SetLineWidth(2)
	dc.DrawCircle(r, r, r-1)
	dc.Stroke()
}

// Demo is the pointer scene.
type Demo struct {
	cfg    config.CursorConfig
	scaled *scene.ScaleScene

	mu        sync.Mutex
	cursor    *scene.Object
	shapes    []*shape
	showBoxes bool
}

// New creates the demo from cfg.
func New(cfg config.Config) (*Demo, error) {
	mode, err := cfg.ScaleMode()
	if err != nil {
		return nil, err
	}

	d := &Demo{
		cfg:       cfg.Demos.Cursor,
		showBoxes: cfg.Stage.DrawBoundingBoxes,
	}
	d.scaled, err = scene.NewScaleScene(board{d}, d.cfg.Width, d.cfg.Height, mode)
	if err != nil {
		return nil, err
	}

	w, h := float64(d.cfg.Width), float64(d.cfg.Height)
	side := min(w/4.5, h*0.45)
	gap := (w - 3*side) / 4

	specs := []struct {
		name  string
		kind  kind
		color colorful.Color
	}{
		{"square", kindSquare, colorful.Hsv(200, 0.8, 0.9)},
		{"circle", kindCircle, colorful.Hsv(330, 0.7, 0.95)},
		{"triangle", kindTriangle, colorful.Hsv(45, 0.9, 0.95)},
	}
	for i, sp := range specs {
		s := &shape{name: sp.name, kind: sp.kind, color: sp.color}
		s.obj = scene.NewObject(s)
		if err := s.obj.SetSize(core.MustSize(side, side)); err != nil {
			return nil, err
		}
		s.obj.SetTopLeft(core.Pt(gap+float64(i)*(side+gap), h*0.15))
		d.shapes = append(d.shapes, s)
	}

	d.cursor = scene.NewObject(ring{})
	r := d.cfg.Radius
	if err := d.cursor.SetSize(core.MustSize(2*r, 2*r)); err != nil {
		return nil, err
	}
	d.cursor.SetAnchor(scene.AnchorCenter)
	d.cursor.SetPosition(core.Pt(w/2, h*0.85))
	d.update()
	return d, nil
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "cursor"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Pointer Collisions"
}

// PaintScene implements scene.Scene.
func (d *Demo) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	d.scaled.PaintScene(dc, width, height, elapsed)
}

// InputListeners implements scene.Scene.
func (d *Demo) InputListeners() []core.InputListener {
	return []core.InputListener{d}
}

// HandleKey implements core.KeyListener.
func (d *Demo) HandleKey(ev core.KeyEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	step := d.cfg.Step
	var delta core.Point
	switch ev.Key {
	case "up", "k", "w":
		delta = core.Pt(0, -step)
	case "down", "j", "s":
		delta = core.Pt(0, step)
	case "left", "h", "a":
		delta = core.Pt(-step, 0)
	case "right", "l", "d":
		delta = core.Pt(step, 0)
	case " ", "space", "b":
		d.showBoxes = !d.showBoxes
		return
	default:
		return
	}
	d.moveTo(d.cursor.Position().Add(delta))
}

// HandleMouse implements core.MouseListener. Pointer coordinates are in
// viewport pixels and are mapped through the scale transform.
func (d *Demo) HandleMouse(ev core.MouseEvent) {
	if ev.Action != core.MouseMotion && ev.Action != core.MousePress {
		return
	}
	p := d.scaled.GlobalToLocal(core.Pt(float64(ev.X), float64(ev.Y)))

	d.mu.Lock()
	defer d.mu.Unlock()
	d.moveTo(p)
}

// States returns the state of every shape by name.
func (d *Demo) States() map[string]State {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]State, len(d.shapes))
	for _, s := range d.shapes {
		out[s.name] = s.state
	}
	return out
}

// CursorPosition returns the cursor center in logical coordinates.
func (d *Demo) CursorPosition() core.Point {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cursor.Position()
}

// moveTo must be called with mu held.
func (d *Demo) moveTo(p core.Point) {
	p.X = core.ClampF(p.X, 0, float64(d.cfg.Width))
	p.Y = core.ClampF(p.Y, 0, float64(d.cfg.Height))
	d.cursor.SetPosition(p)
	d.update()
}

// update recomputes shape states; mu must be held.
func (d *Demo) update() {
	for _, s := range d.shapes {
		switch {
		case s.obj.Consumes(d.cursor):
			s.state = StateCovering
		case s.obj.Collides(d.cursor):
			s.state = StateTouched
		default:
			s.state = StateIdle
		}
	}
}

func (d *Demo) status() string {
	var parts []string
	for _, s := range d.shapes {
		if s.state != StateIdle {
			parts = append(parts, s.name+" "+s.state.String())
		}
	}
	if len(parts) == 0 {
		return "move the cursor"
	}
	return strings.Join(parts, ", ")
}

type board struct {
	d *Demo
}

func (b board) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	d := b.d
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, s := range d.shapes {
		s.obj.SetDrawBoundingBox(d.showBoxes)
		s.obj.PaintOnScene(dc, elapsed)
	}
	d.cursor.SetDrawBoundingBox(d.showBoxes)
	d.cursor.PaintOnScene(dc, elapsed)

	dc.SetColor(color.Gray{Y: 200})
	dc.DrawStringAnchored(d.status(), float64(width)/2, float64(height)-2, 0.5, 0)
}

func (board) InputListeners() []core.InputListener {
	return nil
}
