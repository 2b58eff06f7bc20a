// Package engine wires a frame clock to a stage. It is the single place the
// CLI, the SSH server and the benchmark build their render pipeline from a
// configuration.
package engine

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/clock"
	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/scene"
	"github.com/vovakirdan/tui-stage/internal/stage"
)

// Engine owns a clock and the stage it drives.
type Engine struct {
	cfg    config.Config
	logger *log.Logger
	clock  *clock.Clock
	stage  *stage.Stage

	closeOnce sync.Once
	remove    func()
}

// New builds an engine presenting on display. input may be nil when the
// display has no input channel. A nil logger discards output.
func New(cfg config.Config, display stage.Display, input stage.InputSurface, logger *log.Logger, opts ...clock.Option) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	filter, err := cfg.Interpolator()
	if err != nil {
		return nil, err
	}

	stageOpts := []stage.Option{
		stage.WithBackground(bg),
		stage.WithFilter(filter),
		stage.WithLogger(logger.WithPrefix("stage")),
	}
	if input != nil {
		stageOpts = append(stageOpts, stage.WithInputSurface(input))
	}
	st := stage.New(display, stageOpts...)

	clockOpts := append([]clock.Option{clock.WithLogger(logger.WithPrefix("clock"))}, opts...)
	c, err := clock.New(cfg.Clock.FPS, clockOpts...)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger,
		clock:  c,
		stage:  st,
	}
	e.remove = c.AddListener(st)
	return e, nil
}

// SetScene stages sc, wrapped in an FPS overlay when stage.show_fps is set.
// nil unstages the current scene.
func (e *Engine) SetScene(sc scene.Scene) {
	if sc != nil && e.cfg.Stage.ShowFPS {
		sc = scene.NewFPSScene(sc, nil)
	}
	e.stage.SetScene(sc)
}

// Start launches the clock. Cancelling ctx stops it.
func (e *Engine) Start(ctx context.Context) {
	e.logger.Debug("engine starting", "fps", e.clock.FramesPerSecond())
	e.clock.Start(ctx)
}

// SetPaused pauses or resumes the clock.
func (e *Engine) SetPaused(paused bool) {
	e.clock.SetPaused(paused)
}

// TogglePause flips the pause state and returns the state the clock ended
// up in. A clock that is not running or paused is left alone.
func (e *Engine) TogglePause() bool {
	e.clock.SetPaused(!e.clock.Paused())
	return e.clock.Paused()
}

// Paused reports whether the clock is paused.
func (e *Engine) Paused() bool {
	return e.clock.Paused()
}

// Close stops the clock and unstages the scene. It does not wait for the
// clock goroutine; use Done for that.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		e.clock.Destroy()
		e.remove()
		e.stage.SetScene(nil)

		cs, ss := e.clock.Stats(), e.stage.Stats()
		e.logger.Debug("engine closed",
			"batches", cs.Batches,
			"frames", ss.Frames,
			"skipped", ss.SkippedTicks,
			"faults", cs.Faults,
		)
	})
}

// Done is closed when the clock goroutine has exited.
func (e *Engine) Done() <-chan struct{} {
	return e.clock.Done()
}

// Clock returns the engine's clock.
func (e *Engine) Clock() *clock.Clock {
	return e.clock
}

// Stage returns the engine's stage.
func (e *Engine) Stage() *stage.Stage {
	return e.stage
}
