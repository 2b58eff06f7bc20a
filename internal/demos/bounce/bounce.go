// Package bounce implements a demo of balls bouncing inside a fixed-size
// field. Overlapping balls are detected with pixel-exact collision tests and
// flash while they touch.
package bounce

import (
	"image/color"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/scene"
)

// maxStep bounds a single physics step so long frames cannot tunnel balls
// through walls; longer frames are split into several steps.
const maxStep = time.Second / 60

// maxSteps caps the number of physics steps per frame.
const maxSteps = 600

func init() {
	registry.Register("bounce", func(cfg config.Config) (registry.Demo, error) {
		return New(cfg)
	})
}

type ball struct {
	obj   *scene.Object
	vel   core.Point // Logical pixels per second
	color color.Color
	hit   bool
}

// Paint draws the ball as a filled disc; it only reads state.
func (b *ball) Paint(dc *gg.Context, _ time.Duration) {
	r := float64(dc.Width()) / 2
	if b.hit {
		dc.SetColor(core.ColorWhite)
	} else {
		dc.SetColor(b.color)
	}
	dc.DrawCircle(r, r, r)
	dc.Fill()
}

func (b *ball) radius() float64 {
	return b.obj.Size().Width / 2
}

// Demo is the bouncing balls scene.
type Demo struct {
	cfg    config.BounceConfig
	scaled *scene.ScaleScene

	mu         sync.Mutex
	rng        *rand.Rand
	balls      []*ball
	showBoxes  bool
	collisions int64
}

// New creates the demo from cfg.
func New(cfg config.Config) (*Demo, error) {
	mode, err := cfg.ScaleMode()
	if err != nil {
		return nil, err
	}

	seed := cfg.Demos.Bounce.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &Demo{
		cfg:       cfg.Demos.Bounce,
		rng:       rand.New(rand.NewSource(seed)),
		showBoxes: cfg.Stage.DrawBoundingBoxes,
	}
	d.scaled, err = scene.NewScaleScene(field{d}, d.cfg.Width, d.cfg.Height, mode)
	if err != nil {
		return nil, err
	}

	for i := 0; i < d.cfg.Balls; i++ {
		d.addBall()
	}
	return d, nil
}

// ID returns the unique identifier for this demo.
func (d *Demo) ID() string {
	return "bounce"
}

// Title returns the display name for this demo.
func (d *Demo) Title() string {
	return "Bouncing Balls"
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

	switch ev.Key {
	case " ", "space", "b":
		d.showBoxes = !d.showBoxes
	case "+", "=":
		if d.cfg.MaxBalls <= 0 || len(d.balls) < d.cfg.MaxBalls {
			d.addBall()
		}
	case "-", "_":
		if len(d.balls) > 1 {
			d.balls = d.balls[:len(d.balls)-1]
		}
	}
}

// BallCount returns the number of balls in the field.
func (d *Demo) BallCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.balls)
}

// Collisions returns how many touching ball pairs were detected so far.
func (d *Demo) Collisions() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.collisions
}

// addBall must be called with mu held.
func (d *Demo) addBall() {
	c := d.cfg
	r := c.MinRadius + d.rng.Float64()*(c.MaxRadius-c.MinRadius)
	angle := d.rng.Float64() * 2 * math.Pi
	hue := math.Mod(float64(len(d.balls)*47)+d.rng.Float64()*10, 360)

	b := &ball{
		vel:   core.Pt(math.Cos(angle)*c.Speed, math.Sin(angle)*c.Speed),
		color: colorful.Hsv(hue, 0.7, 0.95),
	}
	b.obj = scene.NewObject(b)
	_ = b.obj.SetSize(core.MustSize(2*r, 2*r))
	b.obj.SetAnchor(scene.AnchorCenter)
	b.obj.SetPosition(core.Pt(
		r+d.rng.Float64()*math.Max(0, float64(c.Width)-2*r),
		r+d.rng.Float64()*math.Max(0, float64(c.Height)-2*r),
	))
	d.balls = append(d.balls, b)
}

// step advances the simulation; mu must be held.
func (d *Demo) step(elapsed time.Duration) {
	for i := 0; elapsed > 0 && i < maxSteps; i++ {
		dt := elapsed
		if dt > maxStep {
			dt = maxStep
		}
		elapsed -= dt
		d.move(dt.Seconds())
	}
	d.collide()
}

func (d *Demo) move(dt float64) {
	w, h := float64(d.cfg.Width), float64(d.cfg.Height)

	for _, b := range d.balls {
		r := b.radius()
		p := b.obj.Position().Add(core.Pt(b.vel.X*dt, b.vel.Y*dt))

		if p.X < r {
			p.X = 2*r - p.X
			b.vel.X = math.Abs(b.vel.X)
		} else if p.X > w-r {
			p.X = 2*(w-r) - p.X
			b.vel.X = -math.Abs(b.vel.X)
		}
		if p.Y < r {
			p.Y = 2*r - p.Y
			b.vel.Y = math.Abs(b.vel.Y)
		} else if p.Y > h-r {
			p.Y = 2*(h-r) - p.Y
			b.vel.Y = -math.Abs(b.vel.Y)
		}

		b.obj.SetPosition(core.Pt(core.ClampF(p.X, r, math.Max(r, w-r)), core.ClampF(p.Y, r, math.Max(r, h-r))))
	}
}

// collide flags touching balls and exchanges the velocities of pairs that
// are moving towards each other.
func (d *Demo) collide() {
	for _, b := range d.balls {
		b.hit = false
	}

	for i, a := range d.balls {
		for _, b := range d.balls[i+1:] {
			if !a.obj.Collides(b.obj) {
				continue
			}
			a.hit, b.hit = true, true
			d.collisions++

			rel := b.obj.Position().Sub(a.obj.Position())
			dv := b.vel.Sub(a.vel)
			if rel.X*dv.X+rel.Y*dv.Y < 0 {
				a.vel, b.vel = b.vel, a.vel
			}
		}
	}
}

// field paints the logical 160x90 (by default) content of the demo.
type field struct {
	d *Demo
}

func (f field) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	d := f.d
	d.mu.Lock()
	defer d.mu.Unlock()

	d.step(elapsed)

	dc.SetColor(core.ColorGray)
	dc.SetLineWidth(1)
	dc.DrawRectangle(0.5, 0.5, float64(width)-1, float64(height)-1)
	dc.Stroke()

	for _, b := range d.balls {
		b.obj.SetDrawBoundingBox(d.showBoxes)
		b.obj.PaintOnScene(dc, elapsed)
	}
}

func (field) InputListeners() []core.InputListener {
	return nil
}
