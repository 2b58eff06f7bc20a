package scene

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// ScaleMode selects how a fixed-size scene is mapped onto the viewport.
type ScaleMode int

const (
	ScaleAuto ScaleMode = iota // Same as ScaleFill
	ScaleFill                  // Stretch both axes independently
	ScaleFit                   // Uniform scale, centered with letterbox bars
	ScaleNone                  // 1:1, anchored at the top-left corner
)

// String returns the config name of the mode.
func (m ScaleMode) String() string {
	switch m {
	case ScaleAuto:
		return "auto"
	case ScaleFill:
		return "fill"
	case ScaleFit:
		return "fit"
	case ScaleNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseScaleMode converts a config name into a ScaleMode.
func ParseScaleMode(name string) (ScaleMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return ScaleAuto, nil
	case "fill":
		return ScaleFill, nil
	case "fit":
		return ScaleFit, nil
	case "none", "noscale":
		return ScaleNone, nil
	}
	return ScaleAuto, fmt.Errorf("scale mode %q: %w", name, core.ErrInvalidArgument)
}

// ScaleScene paints inner at a fixed logical size regardless of the viewport.
// Transforms set by inner are relative to the scale transform.
type ScaleScene struct {
	inner         Scene
	width, height int
	mode          ScaleMode

	mu     sync.RWMutex
	fx, fy float64
	tx, ty float64
}

// NewScaleScene wraps inner with a logical size of width x height.
func NewScaleScene(inner Scene, width, height int, mode ScaleMode) (*ScaleScene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scale scene %dx%d: %w", width, height, core.ErrInvalidArgument)
	}
	return &ScaleScene{
		inner:  inner,
		width:  width,
		height: height,
		mode:   mode,
		fx:     1,
		fy:     1,
	}, nil
}

// Width returns the logical width.
func (s *ScaleScene) Width() int { return s.width }

// Height returns the logical height.
func (s *ScaleScene) Height() int { return s.height }

// Mode returns the scale mode.
func (s *ScaleScene) Mode() ScaleMode { return s.mode }

// transform computes scale and translation for a viewport.
func (s *ScaleScene) transform(realWidth, realHeight int) (fx, fy, tx, ty float64) {
	switch s.mode {
	case ScaleAuto, ScaleFill:
		return float64(realWidth) / float64(s.width), float64(realHeight) / float64(s.height), 0, 0
	case ScaleFit:
		f := math.Min(float64(realWidth)/float64(s.width), float64(realHeight)/float64(s.height))
		tx = (float64(realWidth) - float64(s.width)*f) * 0.5
		ty = (float64(realHeight) - float64(s.height)*f) * 0.5
		return f, f, tx, ty
	default:
		return 1, 1, 0, 0
	}
}

// PaintScene implements Scene.
func (s *ScaleScene) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	fx, fy, tx, ty := s.transform(width, height)

	s.mu.Lock()
	s.fx, s.fy, s.tx, s.ty = fx, fy, tx, ty
	s.mu.Unlock()

	if s.inner == nil {
		return
	}

	dc.Push()
	dc.Translate(tx, ty)
	dc.Scale(fx, fy)
	s.inner.PaintScene(dc, s.width, s.height, elapsed)
	dc.Pop()
}

// InputListeners returns the wrapped scene's listeners.
func (s *ScaleScene) InputListeners() []core.InputListener {
	if s.inner == nil {
		return nil
	}
	return s.inner.InputListeners()
}

// GlobalToLocal converts a viewport point into logical coordinates using the
// transform of the last paint.
func (s *ScaleScene) GlobalToLocal(p core.Point) core.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fx == 0 || s.fy == 0 {
		return p
	}
	return core.Pt((p.X-s.tx)/s.fx, (p.Y-s.ty)/s.fy)
}

// LocalToGlobal converts a logical point into viewport coordinates.
func (s *ScaleScene) LocalToGlobal(p core.Point) core.Point {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return core.Pt(p.X*s.fx+s.tx, p.Y*s.fy+s.ty)
}
