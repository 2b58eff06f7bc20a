// Package loading implements an animated loading screen: two arcs spin in
// opposite directions over a gridded background with a radial shadow, and
// the caption cycles its trailing dots.
package loading

import (
	"image"
	"image/color"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/registry"
)

// Arc geometry relative to min(width, height).
const (
	innerSize      = 0.6
	innerThickness = 0.04
	innerLength    = 0.7

	outerSize      = 0.8
	outerThickness = 0.025
	outerLength    = 0.6

	// outerRatio is the outer arc speed relative to the inner one.
	// The outer arc turns the other way.
	outerRatio = 1.75

	// dotsPerSecond advances the caption dots.
	dotsPerSecond = 2
)

var (
	colorInnerArc    = color.RGBA{172, 211, 239, 255}
	colorOuterArc    = color.RGBA{74, 226, 251, 255}
	colorShadowInner = color.RGBA{}
	colorShadowOuter = color.RGBA{0, 0, 0, 150}
)

func init() {
	registry.Register("loading", func(cfg config.Config) (registry.Demo, error) {
		return New(cfg), nil
	})
}

// Demo is the loading screen scene.
type Demo struct {
	cfg config.LoadingConfig

	mu     sync.Mutex
	inner  float64 // Inner arc start, radians
	outer  float64 // Outer arc start, radians
	phase  float64 // Caption phase in [0, 4)
	shadow *image.RGBA
}

// New creates the demo from cfg.
func New(cfg config.Config) *Demo {
	return &Demo{cfg: cfg.Demos.Loading}
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "loading"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Loading Screen"
}

// InputListeners implements scene.Scene; the loading screen takes no input.
func (d *Demo) InputListeners() []core.InputListener {
	return nil
}

// PaintScene implements scene.Scene.
func (d *Demo) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.advance(elapsed)

	w, h := float64(width), float64(height)
	m := math.Min(w, h)

	dc.SetColor(core.ColorNavy)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	d.paintGrid(dc, width, height)
	dc.DrawImage(d.shadowFor(width, height), 0, 0)

	dc.SetLineCapButt()
	d.paintArc(dc, w, h, m*outerSize, m*outerThickness, d.outer, outerLength, colorOuterArc)
	dc.SetLineCapRound()
	d.paintArc(dc, w, h, m*innerSize, m*innerThickness, d.inner, innerLength, colorInnerArc)

	dc.SetColor(core.ColorWhite)
	dc.DrawStringAnchored(d.caption(), w/2, h/2, 0.5, 0.5)
}

// Caption returns the caption as it would be painted now.
func (d *Demo) Caption() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.caption()
}

// Angles returns the current start angles of the inner and outer arcs.
func (d *Demo) Angles() (inner, outer float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inner, d.outer
}

// advance must be called with mu held.
func (d *Demo) advance(elapsed time.Duration) {
	sec := elapsed.Seconds()
	turn := 2 * math.Pi * d.cfg.Speed * sec

	d.inner = math.Mod(d.inner+turn, 2*math.Pi)
	d.outer = math.Mod(d.outer-turn*outerRatio, 2*math.Pi)
	d.phase = math.Mod(d.phase+dotsPerSecond*sec, 4)
}

func (d *Demo) caption() string {
	dots := int(math.Ceil(d.phase)) - 1
	if dots < 0 {
		dots = 0
	}
	return d.cfg.Text + " " + strings.Repeat(".", dots)
}

func (d *Demo) paintGrid(dc *gg.Context, width, height int) {
	step := d.cfg.GridOffset
	if step <= 0 {
		return
	}

	dc.SetColor(core.ColorDeepNavy)
	for x := step; x < width; x += step {
		dc.DrawRectangle(float64(x), 0, 1, float64(height))
	}
	for y := step; y < height; y += step {
		dc.DrawRectangle(0, float64(y), float64(width), 1)
	}
	dc.Fill()
}

// shadowFor returns the cached radial shadow, rebuilding it when the
// viewport size changes.
func (d *Demo) shadowFor(width, height int) *image.RGBA {
	if d.shadow != nil && d.shadow.Bounds().Dx() == width && d.shadow.Bounds().Dy() == height {
		return d.shadow
	}

	sc := gg.NewContext(width, height)
	cx, cy := float64(width)/2, float64(height)/2
	grad := gg.NewRadialGradient(cx, cy, 0, cx, cy, math.Min(float64(width), float64(height)))
	grad.AddColorStop(0.2, colorShadowInner)
	grad.AddColorStop(0.7, colorShadowOuter)
	sc.SetFillStyle(grad)
	sc.DrawRectangle(0, 0, float64(width), float64(height))
	sc.Fill()

	d.shadow = sc.Image().(*image.RGBA)
	return d.shadow
}

func (d *Demo) paintArc(dc *gg.Context, w, h, size, thickness, start, length float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(math.Max(1, thickness))
	dc.DrawArc(w/2, h/2, size/2, start, start+2*math.Pi*length)
	dc.Stroke()
}
