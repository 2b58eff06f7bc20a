// Package core provides the value types shared by the clock, stage and scene
// packages. It has no dependency on the terminal platform, keeping geometry and
// collision math pure and testable.
package core

import (
	"fmt"
	"math"
)

// Point is a 2D coordinate in fractional pixels.
// It can be negative and is never mutated after construction.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IntX returns X rounded to the nearest pixel.
func (p Point) IntX() int {
	return Round(p.X)
}

// IntY returns Y rounded to the nearest pixel.
func (p Point) IntY() int {
	return Round(p.Y)
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// HorizontalDistanceTo returns |p.X - q.X|.
func (p Point) HorizontalDistanceTo(q Point) float64 {
	return math.Abs(p.X - q.X)
}

// VerticalDistanceTo returns |p.Y - q.Y|.
func (p Point) VerticalDistanceTo(q Point) float64 {
	return math.Abs(p.Y - q.Y)
}

// DistanceTo returns the euclidean distance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Size is a non-negative extent. Use NewSize to construct checked values.
type Size struct {
	Width, Height float64
}

// NewSize validates and returns a size.
// Negative, NaN or infinite extents fail with ErrInvalidArgument.
func NewSize(width, height float64) (Size, error) {
	if !validExtent(width) || !validExtent(height) {
		return Size{}, fmt.Errorf("size %vx%v: %w", width, height, ErrInvalidArgument)
	}
	return Size{Width: width, Height: height}, nil
}

// MustSize is NewSize for constant arguments; it panics on invalid input.
func MustSize(width, height float64) Size {
	s, err := NewSize(width, height)
	if err != nil {
		panic(err)
	}
	return s
}

func validExtent(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Valid reports whether both extents are non-negative finite numbers.
func (s Size) Valid() bool {
	return validExtent(s.Width) && validExtent(s.Height)
}

// IntWidth returns the width rounded to the nearest pixel.
func (s Size) IntWidth() int {
	return Round(s.Width)
}

// IntHeight returns the height rounded to the nearest pixel.
func (s Size) IntHeight() int {
	return Round(s.Height)
}

// Empty reports whether the size covers no pixel once rounded.
func (s Size) Empty() bool {
	return s.IntWidth() <= 0 || s.IntHeight() <= 0
}

// Rect represents an axis-aligned pixel rectangle used for collision detection.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFrom converts a fractional top-left corner and size into pixels.
// Every fractional-to-pixel conversion of object bounds goes through here so
// that bounding box tests and mask tests agree on which pixels are inside.
func RectFrom(topLeft Point, size Size) Rect {
	return Rect{
		X: topLeft.IntX(),
		Y: topLeft.IntY(),
		W: size.IntWidth(),
		H: size.IntHeight(),
	}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Zero-area rectangles never intersect anything.
func (r Rect) Intersects(other Rect) bool {
	_, ok := r.Intersection(other)
	return ok
}

// Intersection returns the overlapping region of both rectangles.
// The second result is false when the overlap is empty.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	if r.Empty() || other.Empty() {
		return Rect{}, false
	}

	x0 := Max(r.X, other.X)
	y0 := Max(r.Y, other.Y)
	x1 := Min(r.Right(), other.Right())
	y1 := Min(r.Bottom(), other.Bottom())

	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// ContainsRect reports whether other lies completely inside r.
// Empty rectangles are neither containers nor contained.
func (r Rect) ContainsRect(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Round converts a fractional coordinate to the nearest integer pixel.
func Round(v float64) int {
	return int(math.Round(v))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
