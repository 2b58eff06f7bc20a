package core

import (
	"errors"
	"math"
	"testing"
)

func TestRectIntersection(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected Rect
		ok       bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: NewRect(5, 5, 5, 5),
			ok:       true,
		},
		{
			name: "non-overlapping horizontal",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(15, 0, 10, 10),
		},
		{
			name: "non-overlapping vertical",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(0, 15, 10, 10),
		},
		{
			name: "adjacent horizontal (no overlap)",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(10, 0, 10, 10),
		},
		{
			name: "adjacent vertical (no overlap)",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(0, 10, 10, 10),
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: NewRect(5, 5, 5, 5),
			ok:       true,
		},
		{
			name:     "single pixel overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: NewRect(9, 9, 1, 1),
			ok:       true,
		},
		{
			name: "zero width never intersects",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 0, 3),
		},
		{
			name: "zero height never intersects",
			a:    NewRect(0, 0, 10, 10),
			b:    NewRect(5, 5, 3, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := tc.a.Intersection(tc.b)
			if ok != tc.ok || got != tc.expected {
				t.Errorf("Intersection() = %v, %v, expected %v, %v", got, ok, tc.expected, tc.ok)
			}
			// Also test symmetry
			gotReverse, okReverse := tc.b.Intersection(tc.a)
			if okReverse != tc.ok || gotReverse != tc.expected {
				t.Errorf("Intersection() (reversed) = %v, %v, expected %v, %v", gotReverse, okReverse, tc.expected, tc.ok)
			}
			if tc.a.Intersects(tc.b) != tc.ok {
				t.Errorf("Intersects() = %v, expected %v", !tc.ok, tc.ok)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := NewRect(0, 0, 20, 20)

	tests := []struct {
		name     string
		inner    Rect
		expected bool
	}{
		{"inside", NewRect(5, 5, 5, 5), true},
		{"identical", NewRect(0, 0, 20, 20), true},
		{"touching right edge", NewRect(10, 0, 10, 10), true},
		{"overflow right", NewRect(11, 0, 10, 10), false},
		{"overflow top", NewRect(0, -1, 5, 5), false},
		{"empty inner", NewRect(5, 5, 0, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := outer.ContainsRect(tc.inner); got != tc.expected {
				t.Errorf("ContainsRect(%v) = %v, expected %v", tc.inner, got, tc.expected)
			}
		})
	}

	if NewRect(0, 0, 0, 0).ContainsRect(NewRect(0, 0, 0, 0)) {
		t.Error("empty rect should not contain anything")
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestRectFromRoundsToNearest(t *testing.T) {
	r := RectFrom(Pt(1.4, 2.5), Size{Width: 3.5, Height: 2.49})
	expected := NewRect(1, 3, 4, 2)
	if r != expected {
		t.Errorf("RectFrom() = %v, expected %v", r, expected)
	}

	neg := RectFrom(Pt(-1.6, -0.4), Size{Width: 1, Height: 1})
	if neg.X != -2 || neg.Y != 0 {
		t.Errorf("RectFrom() negative = (%d, %d), expected (-2, 0)", neg.X, neg.Y)
	}
}

func TestNewSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"zero", 0, 0, false},
		{"positive", 10, 4.5, false},
		{"negative width", -1, 4, true},
		{"negative height", 4, -0.1, true},
		{"nan", math.NaN(), 1, true},
		{"inf", 1, math.Inf(1), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewSize(tc.w, tc.h)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("NewSize(%v, %v) error = %v, expected ErrInvalidArgument", tc.w, tc.h, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSize(%v, %v) failed: %v", tc.w, tc.h, err)
			}
			if s.Width != tc.w || s.Height != tc.h {
				t.Errorf("NewSize() = %v, expected %vx%v", s, tc.w, tc.h)
			}
		})
	}
}

func TestPointDistances(t *testing.T) {
	a := Pt(1, 1)
	b := Pt(4, 5)

	if d := a.HorizontalDistanceTo(b); d != 3 {
		t.Errorf("HorizontalDistanceTo() = %v, expected 3", d)
	}
	if d := b.VerticalDistanceTo(a); d != 4 {
		t.Errorf("VerticalDistanceTo() = %v, expected 4", d)
	}
	if d := a.DistanceTo(b); d != 5 {
		t.Errorf("DistanceTo() = %v, expected 5", d)
	}
}

func TestPointInt(t *testing.T) {
	p := Pt(2.5, -2.5)
	if p.IntX() != 3 || p.IntY() != -3 {
		t.Errorf("Int() = (%d, %d), expected (3, -3)", p.IntX(), p.IntY())
	}
	if q := p.Sub(Pt(0.5, 0.5)).Add(Pt(1, 1)); q != Pt(3, -2) {
		t.Errorf("Sub/Add = %v, expected (3, -2)", q)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestListenerFaultUnwrap(t *testing.T) {
	cause := errors.New("boom")
	f := &ListenerFault{Listener: "*stage.Stage", Value: cause}
	if !errors.Is(f, cause) {
		t.Error("ListenerFault should unwrap to the recovered error")
	}

	g := &ListenerFault{Listener: "x", Value: "plain"}
	if g.Unwrap() != nil {
		t.Error("non-error panic values should not unwrap")
	}
}
