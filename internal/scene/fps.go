package scene

import (
	"fmt"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/clock"
	"github.com/vovakirdan/tui-stage/internal/core"
)

// FPSScene is an overlay that paints the measured frame rate in the upper
// left corner of the wrapped scene.
type FPSScene struct {
	inner     Scene
	textColor color.Color

	mu    sync.Mutex
	meter *clock.Meter
}

// NewFPSScene wraps inner. A nil textColor paints in white.
func NewFPSScene(inner Scene, textColor color.Color) *FPSScene {
	if textColor == nil {
		textColor = core.ColorWhite
	}
	return &FPSScene{
		inner:     inner,
		textColor: textColor,
		meter:     clock.NewMeter(),
	}
}

// Inner returns the wrapped scene.
func (s *FPSScene) Inner() Scene {
	return s.inner
}

// Rate returns the last measured frames per second.
func (s *FPSScene) Rate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meter.Rate()
}

// PaintScene implements Scene.
func (s *FPSScene) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	if s.inner != nil {
		dc.Push()
		s.inner.PaintScene(dc, width, height, elapsed)
		dc.Pop()
	}

	s.mu.Lock()
	s.meter.Update(elapsed)
	rate := s.meter.Rate()
	s.mu.Unlock()

	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		rate = 0
	}

	dc.Push()
	dc.Identity()
	dc.SetColor(s.textColor)
	dc.DrawString(fmt.Sprintf("%.2f FPS", rate), 2, 2+dc.FontHeight())
	dc.Pop()
}

// InputListeners returns the wrapped scene's listeners.
func (s *FPSScene) InputListeners() []core.InputListener {
	if s.inner == nil {
		return nil
	}
	return s.inner.InputListeners()
}
