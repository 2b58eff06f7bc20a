// Package clock drives periodic work from a dedicated goroutine. It converts
// elapsed wall time into whole frames at a target rate and broadcasts every
// batch, together with the exact simulated time it covers, to its listeners.
package clock

import (
	"context"
	"fmt"
	"math"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-stage/internal/core"
)

// Uncapped is the frame rate sentinel for "tick as fast as possible".
// Any negative rate is treated the same way.
const Uncapped = -1.0

// DefaultFramesPerSecond is used by callers that have no configured rate.
const DefaultFramesPerSecond = 60.0

// State is the lifecycle state of a Clock.
type State int32

const (
	StateCreated State = iota
	StateRunning
	StatePaused
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// Listener receives tick batches on the clock goroutine.
type Listener interface {
	// Tick reports that frames whole frames elapsed, covering exactly covered
	// simulated time. In uncapped mode frames is always 1.
	Tick(frames int64, covered time.Duration)
}

// ListenerFunc adapts a function to Listener.
// Function values cannot be compared, so remove them with the func returned by
// AddListener rather than with RemoveListener.
type ListenerFunc func(frames int64, covered time.Duration)

// Tick calls f(frames, covered).
func (f ListenerFunc) Tick(frames int64, covered time.Duration) {
	f(frames, covered)
}

// Stats are cumulative dispatch counters.
type Stats struct {
	Batches int64         // Number of tick batches dispatched
	Frames  int64         // Sum of frames over all batches
	Covered time.Duration // Sum of covered time over all batches
	Faults  int64         // Listener panics recovered
}

type entry struct {
	l Listener
}

// Clock is a free-running frame clock.
// The zero value is not usable; create clocks with New.
type Clock struct {
	logger  *log.Logger
	source  TimeSource
	onFault func(error)

	mu          sync.Mutex
	cond        *sync.Cond
	state       State
	fps         float64
	period      time.Duration // 0 when uncapped
	lastSample  time.Time
	accumulated time.Duration

	// listeners is replaced on every mutation and never modified in place,
	// so dispatch can iterate a snapshot without holding listenersMu.
	listenersMu sync.Mutex
	listeners   []*entry

	wake chan struct{}
	done chan struct{}

	batches atomic.Int64
	frames  atomic.Int64
	covered atomic.Int64
	faults  atomic.Int64
}

// New creates a stopped clock ticking at framesPerSecond.
// A zero, NaN or infinite rate fails with core.ErrInvalidArgument.
func New(framesPerSecond float64, opts ...Option) (*Clock, error) {
	c := &Clock{
		logger: log.Default(),
		source: SystemTime{},
		state:  StateCreated,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	c.cond = sync.NewCond(&c.mu)

	for _, opt := range opts {
		opt(c)
	}

	if err := c.SetFramesPerSecond(framesPerSecond); err != nil {
		return nil, err
	}
	return c, nil
}

// periodFor returns the frame period for rate, 0 meaning uncapped.
func periodFor(rate float64) (time.Duration, error) {
	switch {
	case rate == 0 || math.IsNaN(rate) || math.IsInf(rate, 0):
		return 0, fmt.Errorf("clock: frame rate %v: %w", rate, core.ErrInvalidArgument)
	case rate < 0:
		return 0, nil
	}

	period := time.Duration(math.Round(float64(time.Second) / rate))
	if period <= 0 {
		return 0, fmt.Errorf("clock: frame rate %v exceeds nanosecond resolution: %w", rate, core.ErrInvalidArgument)
	}
	return period, nil
}

// SetFramesPerSecond changes the target rate. Negative rates select uncapped
// mode. The accumulated remainder is kept across rate changes.
func (c *Clock) SetFramesPerSecond(rate float64) error {
	period, err := periodFor(rate)
	if err != nil {
		return err
	}
	if rate < 0 {
		rate = Uncapped
	}

	c.mu.Lock()
	c.fps = rate
	c.period = period
	c.mu.Unlock()

	c.signal()
	return nil
}

// FramesPerSecond returns the target rate (Uncapped when uncapped).
func (c *Clock) FramesPerSecond() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fps
}

// FramePeriod returns the duration of one frame, or 0 when uncapped.
func (c *Clock) FramePeriod() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// State returns the current lifecycle state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Stats returns cumulative dispatch counters.
func (c *Clock) Stats() Stats {
	return Stats{
		Batches: c.batches.Load(),
		Frames:  c.frames.Load(),
		Covered: time.Duration(c.covered.Load()),
		Faults:  c.faults.Load(),
	}
}

// AddListener registers l and returns a func that removes exactly this
// registration. It is safe to call from any goroutine, including from inside
// a Tick callback; the change takes effect with the next batch.
func (c *Clock) AddListener(l Listener) (remove func()) {
	e := &entry{l: l}

	c.listenersMu.Lock()
	next := make([]*entry, len(c.listeners), len(c.listeners)+1)
	copy(next, c.listeners)
	c.listeners = append(next, e)
	c.listenersMu.Unlock()

	return func() {
		c.removeWhere(func(x *entry) bool { return x == e })
	}
}

// RemoveListener removes the first registration of l.
// Listeners of non-comparable types are never matched.
func (c *Clock) RemoveListener(l Listener) {
	c.removeWhere(func(x *entry) bool { return core.SameListener(x.l, l) })
}

func (c *Clock) removeWhere(match func(*entry) bool) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	for i, e := range c.listeners {
		if !match(e) {
			continue
		}
		next := make([]*entry, 0, len(c.listeners)-1)
		next = append(next, c.listeners[:i]...)
		c.listeners = append(next, c.listeners[i+1:]...)
		return
	}
}

func (c *Clock) snapshot() []*entry {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()
	return c.listeners
}

// Start launches the clock goroutine. Only the first call on a created clock
// has an effect. Cancelling ctx is equivalent to calling Destroy.
func (c *Clock) Start(ctx context.Context) {
	if !c.begin() {
		return
	}

	go c.run()

	if ctx != nil && ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				c.Destroy()
			case <-c.done:
			}
		}()
	}
}

// begin moves a created clock to running and samples the time baseline.
func (c *Clock) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCreated {
		return false
	}
	c.state = StateRunning
	c.resetBaseline()
	return true
}

// SetPaused transitions between running and paused. Resuming resamples the
// time baseline and resets the accumulator, so paused time never turns into
// covered time. Calls that do not match the current state are no-ops.
func (c *Clock) SetPaused(paused bool) {
	c.mu.Lock()
	switch {
	case paused && c.state == StateRunning:
		c.state = StatePaused
	case !paused && c.state == StatePaused:
		c.state = StateRunning
		c.resetBaseline()
		c.cond.Broadcast()
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.signal()
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.State() == StatePaused
}

// Destroy requests termination. The goroutine exits within one frame period;
// Destroy itself never waits. Subsequent calls are no-ops.
func (c *Clock) Destroy() {
	c.mu.Lock()
	if c.state == StateTerminated {
		c.mu.Unlock()
		return
	}
	neverStarted := c.state == StateCreated
	c.state = StateTerminated
	c.cond.Broadcast()
	c.mu.Unlock()

	if neverStarted {
		close(c.done)
		return
	}
	c.signal()
}

// Done is closed once the clock goroutine has exited.
func (c *Clock) Done() <-chan struct{} {
	return c.done
}

// resetBaseline must be called with mu held.
func (c *Clock) resetBaseline() {
	c.lastSample = c.source.Now()
	c.accumulated = 0
}

// signal interrupts a pending sleep without blocking.
func (c *Clock) signal() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *Clock) run() {
	defer close(c.done)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		if !c.awaitRunning() {
			return
		}

		frames, covered, wait := c.advance(c.source.Now())
		if frames > 0 {
			c.dispatch(frames, covered)
		}
		if wait <= 0 {
			continue
		}

		timer.Reset(wait)
		select {
		case <-timer.C:
		case <-c.wake:
			timer.Stop()
		}
	}
}

// awaitRunning blocks while paused and reports whether the loop should go on.
func (c *Clock) awaitRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for c.state == StatePaused {
		c.cond.Wait()
	}
	return c.state == StateRunning
}

// advance folds the wall time since the last sample into the accumulator and
// returns the batch to dispatch plus how long to sleep before the next sample.
func (c *Clock) advance(now time.Time) (frames int64, covered, wait time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return 0, 0, 0
	}

	if elapsed := now.Sub(c.lastSample); elapsed > 0 {
		c.accumulated += elapsed
	}
	c.lastSample = now

	if c.period <= 0 {
		covered = c.accumulated
		c.accumulated = 0
		return 1, covered, 0
	}

	frames = int64(c.accumulated / c.period)
	covered = time.Duration(frames) * c.period
	c.accumulated -= covered
	return frames, covered, c.period - c.accumulated
}

// dispatch notifies every listener in registration order.
func (c *Clock) dispatch(frames int64, covered time.Duration) {
	c.batches.Add(1)
	c.frames.Add(frames)
	c.covered.Add(int64(covered))

	for _, e := range c.snapshot() {
		c.notify(e.l, frames, covered)
	}
}

// notify runs one listener, recovering and reporting any panic.
func (c *Clock) notify(l Listener, frames int64, covered time.Duration) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		fault := &core.ListenerFault{
			Listener: fmt.Sprintf("%T", l),
			Value:    r,
			Stack:    debug.Stack(),
		}
		c.faults.Add(1)
		c.logger.Error("listener fault", "listener", fault.Listener, "frames", frames, "error", fault)
		if c.onFault != nil {
			c.onFault(fault)
		}
	}()

	l.Tick(frames, covered)
}
