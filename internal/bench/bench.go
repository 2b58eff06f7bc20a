// Package bench drives a demo scene through the clock and stage against a
// headless display and reports how well the clock kept pace.
package bench

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/engine"
	"github.com/vovakirdan/tui-stage/internal/registry"
	"github.com/vovakirdan/tui-stage/internal/stage"
	"github.com/vovakirdan/tui-stage/internal/storage"
)

// Options configures a benchmark run.
type Options struct {
	SceneID  string
	Duration time.Duration
	Width    int // Headless viewport width in pixels
	Height   int // Headless viewport height in pixels
	Config   config.Config
	Logger   *log.Logger // Optional
}

// Run benchmarks opts.SceneID for opts.Duration. Cancelling ctx aborts the
// run with ctx.Err().
func Run(ctx context.Context, opts Options) (storage.Run, error) {
	if opts.Duration <= 0 {
		return storage.Run{}, fmt.Errorf("bench duration %v: %w", opts.Duration, core.ErrInvalidArgument)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return storage.Run{}, fmt.Errorf("bench size %dx%d: %w", opts.Width, opts.Height, core.ErrInvalidArgument)
	}

	demo, err := registry.Create(opts.SceneID, opts.Config)
	if err != nil {
		return storage.Run{}, err
	}

	display := stage.NewHeadlessDisplay(opts.Width, opts.Height)
	eng, err := engine.New(opts.Config, display, nil, opts.Logger)
	if err != nil {
		return storage.Run{}, err
	}
	defer eng.Close()
	eng.SetScene(demo)

	start := time.Now()
	runCtx, cancel := context.WithTimeout(ctx, opts.Duration)
	defer cancel()

	eng.Start(runCtx)
	<-eng.Done()
	wall := time.Since(start)

	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}

	cs, ss := eng.Clock().Stats(), eng.Stage().Stats()
	run := storage.Run{
		SceneID:   opts.SceneID,
		TargetFPS: opts.Config.Clock.FPS,
		Width:     opts.Width,
		Height:    opts.Height,
		Wall:      wall,
		Covered:   cs.Covered,
		Batches:   cs.Batches,
		Frames:    ss.Frames,
		Skipped:   ss.SkippedTicks,
		Faults:    cs.Faults,
		CreatedAt: time.Now(),
	}
	if wall > 0 {
		run.MeasuredFPS = float64(ss.Frames) / wall.Seconds()
	}
	return run, nil
}
