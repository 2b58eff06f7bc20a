package scene

import (
	"errors"
	"testing"
	"time"

	"github.com/fogleman/gg"

	"github.com/vovakirdan/tui-stage/internal/core"
)

type recordingScene struct {
	width, height int
	elapsed       time.Duration
	listeners     []core.InputListener
}

func (s *recordingScene) PaintScene(dc *gg.Context, width, height int, elapsed time.Duration) {
	s.width, s.height, s.elapsed = width, height, elapsed
	fillRect(dc, elapsed)
}

func (s *recordingScene) InputListeners() []core.InputListener {
	return s.listeners
}

func TestScaleScene_Fit(t *testing.T) {
	inner := &recordingScene{}
	s, err := NewScaleScene(inner, 160, 90, ScaleFit)
	if err != nil {
		t.Fatalf("NewScaleScene() error = %v", err)
	}

	dc := gg.NewContext(320, 360)
	s.PaintScene(dc, 320, 360, 5*time.Millisecond)

	if inner.width != 160 || inner.height != 90 {
		t.Errorf("inner painted at %dx%d, expected 160x90", inner.width, inner.height)
	}
	if inner.elapsed != 5*time.Millisecond {
		t.Errorf("inner elapsed = %v, expected 5ms", inner.elapsed)
	}

	// Letterbox bars above and below the scaled scene.
	im := dc.Image()
	if _, _, _, a := im.At(160, 40).RGBA(); a != 0 {
		t.Error("letterbox bar is painted")
	}
	if _, _, _, a := im.At(160, 180).RGBA(); a == 0 {
		t.Error("scaled scene is not painted in the middle")
	}

	if got := s.GlobalToLocal(core.Pt(160, 180)); got != core.Pt(80, 45) {
		t.Errorf("GlobalToLocal() = %v, expected (80,45)", got)
	}
	if got := s.LocalToGlobal(core.Pt(80, 45)); got != core.Pt(160, 180) {
		t.Errorf("LocalToGlobal() = %v, expected (160,180)", got)
	}
}

func TestScaleScene_Modes(t *testing.T) {
	tests := []struct {
		mode           ScaleMode
		fx, fy, tx, ty float64
	}{
		{ScaleAuto, 2, 4, 0, 0},
		{ScaleFill, 2, 4, 0, 0},
		{ScaleFit, 2, 2, 0, 90},
		{ScaleNone, 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			s, _ := NewScaleScene(nil, 160, 90, tt.mode)
			fx, fy, tx, ty := s.transform(320, 360)
			if fx != tt.fx || fy != tt.fy || tx != tt.tx || ty != tt.ty {
				t.Errorf("transform() = (%v, %v, %v, %v), expected (%v, %v, %v, %v)",
					fx, fy, tx, ty, tt.fx, tt.fy, tt.tx, tt.ty)
			}
		})
	}
}

func TestScaleScene_InvalidSize(t *testing.T) {
	if _, err := NewScaleScene(nil, 0, 10, ScaleFit); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("NewScaleScene(0x10) error = %v, expected ErrInvalidArgument", err)
	}
}

func TestParseScaleMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ScaleMode
		wantErr bool
	}{
		{"", ScaleAuto, false},
		{"Fit", ScaleFit, false},
		{" fill ", ScaleFill, false},
		{"noscale", ScaleNone, false},
		{"zoom", ScaleAuto, true},
	}

	for _, tt := range tests {
		got, err := ParseScaleMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScaleMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseScaleMode(%q) = %v, expected %v", tt.in, got, tt.want)
		}
	}
}

func TestLayers(t *testing.T) {
	bottom := &recordingScene{listeners: []core.InputListener{"a"}}
	top := &recordingScene{listeners: []core.InputListener{"b", "c"}}
	l := Layers{bottom, nil, top}

	dc := gg.NewContext(8, 4)
	l.PaintScene(dc, 8, 4, time.Millisecond)

	if bottom.width != 8 || top.width != 8 {
		t.Error("every layer should be painted at the full viewport")
	}
	if got := l.InputListeners(); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("InputListeners() = %v, expected [a b c]", got)
	}
}

func TestFPSScene(t *testing.T) {
	inner := &recordingScene{listeners: []core.InputListener{"k"}}
	s := NewFPSScene(inner, nil)

	dc := gg.NewContext(64, 32)
	for i := 0; i < 25; i++ {
		dc.Clear()
		s.PaintScene(dc, 64, 32, 40*time.Millisecond)
	}

	if rate := s.Rate(); rate < 24.9 || rate > 25.1 {
		t.Errorf("Rate() = %v, expected 25", rate)
	}
	if inner.width != 64 {
		t.Errorf("inner width = %d, expected 64", inner.width)
	}
	if got := s.InputListeners(); len(got) != 1 {
		t.Errorf("InputListeners() = %v, expected the inner listeners", got)
	}
	if s.Inner() != inner {
		t.Error("Inner() should return the wrapped scene")
	}
}

func TestColorScene(t *testing.T) {
	dc := gg.NewContext(4, 4)
	ColorScene{Color: core.ColorRed}.PaintScene(dc, 4, 4, 0)

	r, _, _, a := dc.Image().At(3, 3).RGBA()
	if a == 0 || r>>8 != uint32(core.ColorRed.R) {
		t.Errorf("pixel = r%d a%d, expected opaque red", r>>8, a>>8)
	}
	if (ColorScene{}).InputListeners() != nil {
		t.Error("ColorScene should not register listeners")
	}
}
