package bench

import (
	"context"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/registry"
)

type blankDemo struct{}

func (blankDemo) ID() string    { return "bench-blank" }
func (blankDemo) Title() string { return "Blank" }

func (blankDemo) PaintScene(dc *gg.Context, width, height int, _ time.Duration) {
	dc.SetColor(core.ColorBlue)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

func (blankDemo) InputListeners() []core.InputListener { return nil }

func init() {
	registry.Register("bench-blank", func(config.Config) (registry.Demo, error) {
		return blankDemo{}, nil
	})
}

func benchConfig(fps float64) config.Config {
	cfg := config.Default()
	cfg.Clock.FPS = fps
	return cfg
}

func TestRun_MeasuresFrames(t *testing.T) {
	run, err := Run(context.Background(), Options{
		SceneID:  "bench-blank",
		Duration: 300 * time.Millisecond,
		Width:    32,
		Height:   18,
		Config:   benchConfig(100),
	})
	require.NoError(t, err)

	assert.Equal(t, "bench-blank", run.SceneID)
	assert.Equal(t, 100.0, run.TargetFPS)
	assert.GreaterOrEqual(t, run.Wall, 300*time.Millisecond)
	assert.Positive(t, run.Frames)
	assert.LessOrEqual(t, run.Frames, run.Batches)
	assert.Zero(t, run.Skipped)
	assert.LessOrEqual(t, run.Covered, run.Wall, "covered time never runs ahead of wall time")
	assert.InDelta(t, float64(run.Frames)/run.Wall.Seconds(), run.MeasuredFPS, 1e-9)
}

func TestRun_ZeroViewportSkipsEveryTick(t *testing.T) {
	run, err := Run(context.Background(), Options{
		SceneID:  "bench-blank",
		Duration: 100 * time.Millisecond,
		Config:   benchConfig(100),
	})
	require.NoError(t, err)

	assert.Zero(t, run.Frames)
	assert.Positive(t, run.Skipped)
	assert.Zero(t, run.MeasuredFPS)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown scene", Options{SceneID: "nope", Duration: time.Millisecond, Config: benchConfig(30)}},
		{"zero duration", Options{SceneID: "bench-blank", Config: benchConfig(30)}},
		{"negative size", Options{SceneID: "bench-blank", Duration: time.Millisecond, Width: -1, Config: benchConfig(30)}},
		{"invalid fps", Options{SceneID: "bench-blank", Duration: time.Millisecond, Config: benchConfig(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{SceneID: "bench-blank", Duration: time.Second, Width: 4, Height: 4, Config: benchConfig(30)})
	assert.ErrorIs(t, err, context.Canceled)
}
