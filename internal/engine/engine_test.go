package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/scene"
	"github.com/vovakirdan/tui-stage/internal/stage"
)

type countingScene struct {
	paints atomic.Int64
}

func (s *countingScene) PaintScene(dc *gg.Context, width, height int, _ time.Duration) {
	s.paints.Add(1)
	dc.SetColor(core.ColorRed)
	dc.DrawRectangle(0, 0, float64(width), float64(height))
	dc.Fill()
}

func (s *countingScene) InputListeners() []core.InputListener { return nil }

func fastConfig() config.Config {
	cfg := config.Default()
	cfg.Clock.FPS = 200
	return cfg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Clock.FPS = 0
	_, err := New(cfg, stage.NewHeadlessDisplay(4, 4), nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)

	cfg = config.Default()
	cfg.Stage.Filter = "lanczos"
	_, err = New(cfg, stage.NewHeadlessDisplay(4, 4), nil, nil)
	assert.ErrorIs(t, err, core.ErrInvalidArgument)
}

func TestEngine_PaintsUntilClosed(t *testing.T) {
	display := stage.NewHeadlessDisplay(8, 8)
	e, err := New(fastConfig(), display, nil, nil)
	require.NoError(t, err)

	sc := &countingScene{}
	e.SetScene(sc)
	e.Start(context.Background())

	require.Eventually(t, func() bool { return sc.paints.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Positive(t, display.Redraws())

	e.Close()
	select {
	case <-e.Done():
	case <-time.After(time.Second):
		t.Fatal("clock goroutine did not exit after Close")
	}
	assert.Nil(t, e.Stage().Scene())

	after := sc.paints.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, sc.paints.Load(), "painted after Close")

	e.Close() // idempotent
}

func TestEngine_ContextCancelStops(t *testing.T) {
	e, err := New(fastConfig(), stage.NewHeadlessDisplay(4, 4), nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	e.Start(ctx)
	cancel()

	select {
	case <-e.Done():
	case <-time.After(time.Second):
		t.Fatal("clock goroutine did not exit after cancel")
	}
}

func TestEngine_TogglePause(t *testing.T) {
	e, err := New(fastConfig(), stage.NewHeadlessDisplay(4, 4), nil, nil)
	require.NoError(t, err)
	defer e.Close()

	assert.False(t, e.TogglePause(), "pausing a created clock is a no-op")

	e.Start(context.Background())
	assert.True(t, e.TogglePause())
	assert.True(t, e.Paused())
	assert.False(t, e.TogglePause())
	assert.False(t, e.Paused())

	e.Close()
	assert.False(t, e.TogglePause(), "a closed clock cannot be paused")
	assert.False(t, e.Paused())
}

func TestSetScene_WrapsFPSOverlay(t *testing.T) {
	cfg := fastConfig()
	cfg.Stage.ShowFPS = true
	e, err := New(cfg, stage.NewHeadlessDisplay(4, 4), nil, nil)
	require.NoError(t, err)
	defer e.Close()

	sc := &countingScene{}
	e.SetScene(sc)
	overlay, ok := e.Stage().Scene().(*scene.FPSScene)
	require.True(t, ok, "scene not wrapped in FPSScene")
	assert.Same(t, sc, overlay.Inner())

	e.SetScene(nil)
	assert.Nil(t, e.Stage().Scene())
}

type recordingInput struct {
	added, removed atomic.Int64
}

func (r *recordingInput) AddInputListener(core.InputListener)    { r.added.Add(1) }
func (r *recordingInput) RemoveInputListener(core.InputListener) { r.removed.Add(1) }

type listeningScene struct{ countingScene }

func (s *listeningScene) InputListeners() []core.InputListener {
	return []core.InputListener{s}
}

func TestEngine_RegistersSceneInput(t *testing.T) {
	in := &recordingInput{}
	e, err := New(fastConfig(), stage.NewHeadlessDisplay(4, 4), in, nil)
	require.NoError(t, err)

	e.SetScene(&listeningScene{})
	assert.Equal(t, int64(1), in.added.Load())

	e.Close()
	assert.Equal(t, int64(1), in.removed.Load())
}
