package scene

import (
	"fmt"
	"image"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// Painter draws an object into a context sized to the object's bounding box,
// with (0, 0) at the object's top-left corner.
//
// Paint is called for display frames and, with elapsed == 0, for collision
// masks. It must not advance animation or any other state: two calls with the
// same elapsed time must produce the same pixels.
type Painter interface {
	Paint(dc *gg.Context, elapsed time.Duration)
}

// PainterFunc adapts a function to Painter.
type PainterFunc func(dc *gg.Context, elapsed time.Duration)

// Paint calls f(dc, elapsed).
func (f PainterFunc) Paint(dc *gg.Context, elapsed time.Duration) {
	f(dc, elapsed)
}

// Anchor computes an object's origin from its size. The object's position
// refers to this point inside its bounding box.
type Anchor func(size core.Size) core.Point

// AnchorTopLeft is the default anchor; position is the top-left corner.
func AnchorTopLeft(core.Size) core.Point {
	return core.Point{}
}

// AnchorCenter anchors the position at the middle of the bounding box.
func AnchorCenter(s core.Size) core.Point {
	return core.Pt(s.Width/2, s.Height/2)
}

// AnchorBottomCenter anchors the position at the middle of the bottom edge.
func AnchorBottomCenter(s core.Size) core.Point {
	return core.Pt(s.Width/2, s.Height)
}

// FixedAnchor returns an anchor that ignores the size and always yields p.
func FixedAnchor(p core.Point) Anchor {
	return func(core.Size) core.Point { return p }
}

// RenderOptions override stroke and fill settings of the context an object
// paints into. Zero fields keep gg's defaults.
type RenderOptions struct {
	LineWidth float64
	LineCap   gg.LineCap
	LineJoin  gg.LineJoin
	FillRule  gg.FillRule
	Dash      []float64
}

func (ro *RenderOptions) apply(dc *gg.Context) {
	if ro == nil {
		return
	}
	if ro.LineWidth > 0 {
		dc.SetLineWidth(ro.LineWidth)
	}
	dc.SetLineCap(ro.LineCap)
	dc.SetLineJoin(ro.LineJoin)
	dc.SetFillRule(ro.FillRule)
	if len(ro.Dash) > 0 {
		dc.SetDash(ro.Dash...)
	}
}

// Object is a positioned, sized and paintable unit of a scene.
// It is not safe for concurrent use; scenes that mutate objects from input
// listeners must synchronize with their PaintScene.
type Object struct {
	painter Painter

	position        core.Point
	size            core.Size
	anchor          Anchor
	drawBoundingBox bool
	options         *RenderOptions
}

// NewObject creates an empty object at (0, 0) painted by p.
func NewObject(p Painter) *Object {
	if p == nil {
		p = PainterFunc(func(*gg.Context, time.Duration) {})
	}
	return &Object{
		painter: p,
		anchor:  AnchorTopLeft,
	}
}

// Position returns the anchor-relative position.
func (o *Object) Position() core.Point {
	return o.position
}

// SetPosition moves the object so that its origin lies at p.
func (o *Object) SetPosition(p core.Point) {
	o.position = p
}

// Size returns the object's extent.
func (o *Object) Size() core.Size {
	return o.size
}

// SetSize changes the extent. Invalid sizes are rejected with
// core.ErrInvalidArgument and leave the object unchanged.
func (o *Object) SetSize(s core.Size) error {
	if !s.Valid() {
		return fmt.Errorf("object size %vx%v: %w", s.Width, s.Height, core.ErrInvalidArgument)
	}
	o.size = s
	return nil
}

// SetAnchor changes how the origin is derived from the size.
// A nil anchor restores AnchorTopLeft.
func (o *Object) SetAnchor(a Anchor) {
	if a == nil {
		a = AnchorTopLeft
	}
	o.anchor = a
}

// Origin returns the anchor offset inside the bounding box.
func (o *Object) Origin() core.Point {
	return o.anchor(o.size)
}

// TopLeft returns the absolute top-left corner (position - origin).
func (o *Object) TopLeft() core.Point {
	return o.position.Sub(o.Origin())
}

// SetTopLeft moves the object so that its top-left corner lies at p.
func (o *Object) SetTopLeft(p core.Point) {
	o.position = p.Add(o.Origin())
}

// Rect returns the bounding box in pixels of the parent coordinate space.
func (o *Object) Rect() core.Rect {
	return core.RectFrom(o.TopLeft(), o.size)
}

// DrawBoundingBox reports whether a black outline is painted around the object.
func (o *Object) DrawBoundingBox() bool {
	return o.drawBoundingBox
}

// SetDrawBoundingBox toggles the bounding box outline.
func (o *Object) SetDrawBoundingBox(v bool) {
	o.drawBoundingBox = v
}

// RenderOptions returns the paint overrides, or nil.
func (o *Object) RenderOptions() *RenderOptions {
	return o.options
}

// SetRenderOptions sets paint overrides; nil removes them.
func (o *Object) SetRenderOptions(ro *RenderOptions) {
	o.options = ro
}

// PaintOnScene draws the object at its top-left corner on dc. The scene's
// current transform applies, so objects inside a ScaleScene scale with it.
func (o *Object) PaintOnScene(dc *gg.Context, elapsed time.Duration) {
	im := o.rasterize(elapsed, o.drawBoundingBox)
	if im == nil {
		return
	}
	r := o.Rect()
	dc.DrawImage(im, r.X, r.Y)
}

// rasterize paints the object into a fresh transparent buffer sized to its
// bounding box. It returns nil for objects that cover no pixel.
func (o *Object) rasterize(elapsed time.Duration, outline bool) *image.RGBA {
	r := o.Rect()
	if r.Empty() {
		return nil
	}

	im := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	dc := gg.NewContextForRGBA(im)
	o.options.apply(dc)
	o.painter.Paint(dc, elapsed)

	if outline {
		dc.Identity()
		dc.SetDash()
		dc.SetLineWidth(1)
		dc.SetColor(core.ColorBlack)
		dc.DrawRectangle(0.5, 0.5, float64(r.W)-1, float64(r.H)-1)
		dc.Stroke()
	}
	return im
}
