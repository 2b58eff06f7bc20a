package scene

import (
	"image"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// mask is an object's rasterized alpha channel placed in parent coordinates.
type mask struct {
	im     *image.RGBA
	bounds core.Rect
}

// maskOf paints o with zero elapsed time and no outline.
func maskOf(o *Object) mask {
	return mask{im: o.rasterize(0, false), bounds: o.Rect()}
}

// inside reports whether the global pixel (x, y) lies within the buffer.
func (m mask) inside(x, y int) bool {
	return m.im != nil && m.bounds.Contains(x, y)
}

// alpha returns the alpha at global pixel (x, y); pixels outside the buffer
// are transparent.
func (m mask) alpha(x, y int) uint8 {
	if !m.inside(x, y) {
		return 0
	}
	lx, ly := x-m.bounds.X, y-m.bounds.Y
	return m.im.Pix[m.im.PixOffset(lx, ly)+3]
}

// CollidesBoundingBox returns the overlap of both bounding boxes.
// Disjoint boxes and boxes without area report false.
func (o *Object) CollidesBoundingBox(other *Object) (core.Rect, bool) {
	return o.Rect().Intersection(other.Rect())
}

// Collides runs the bounding box test and, only when the boxes overlap, the
// pixel test restricted to the overlap.
func (o *Object) Collides(other *Object) bool {
	inter, ok := o.CollidesBoundingBox(other)
	if !ok {
		return false
	}
	return o.CollidesExactly(other, inter)
}

// CollidesExactly reports whether some pixel inside inter is opaque
// (alpha != 0) in both objects. inter is given in parent coordinates and is
// normally the result of CollidesBoundingBox.
func (o *Object) CollidesExactly(other *Object, inter core.Rect) bool {
	if inter.Empty() {
		return false
	}

	a, b := maskOf(o), maskOf(other)
	if a.im == nil || b.im == nil {
		return false
	}

	for y := inter.Y; y < inter.Bottom(); y++ {
		for x := inter.X; x < inter.Right(); x++ {
			if a.alpha(x, y) == 0 {
				continue
			}
			if b.alpha(x, y) != 0 {
				return true
			}
		}
	}
	return false
}

// ConsumesBoundingBox reports whether other's bounding box lies completely
// inside this object's bounding box.
func (o *Object) ConsumesBoundingBox(other *Object) bool {
	return o.Rect().ContainsRect(other.Rect())
}

// Consumes reports whether other is completely covered by this object, first
// by bounding box and then pixel by pixel.
func (o *Object) Consumes(other *Object) bool {
	if !o.ConsumesBoundingBox(other) {
		return false
	}
	return o.ConsumesExactly(other)
}

// ConsumesExactly reports whether every opaque pixel of other is also opaque
// in this object. An opaque pixel outside this object's buffer fails at once.
func (o *Object) ConsumesExactly(other *Object) bool {
	inner := maskOf(other)
	if inner.im == nil {
		return true
	}
	outer := maskOf(o)

	r := inner.bounds
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if inner.alpha(x, y) == 0 {
				continue
			}
			if !outer.inside(x, y) || outer.alpha(x, y) == 0 {
				return false
			}
		}
	}
	return true
}
