package stage

import "sync/atomic"

// HeadlessDisplay is a display without a screen, used by benchmarks and
// tests. It reports a settable viewport and counts redraw requests.
type HeadlessDisplay struct {
	width   atomic.Int64
	height  atomic.Int64
	redraws atomic.Int64
}

// NewHeadlessDisplay creates a display with a width x height viewport.
func NewHeadlessDisplay(width, height int) *HeadlessDisplay {
	d := &HeadlessDisplay{}
	d.SetViewport(width, height)
	return d
}

// SetViewport changes the reported viewport size.
func (d *HeadlessDisplay) SetViewport(width, height int) {
	d.width.Store(int64(width))
	d.height.Store(int64(height))
}

// Viewport implements Display.
func (d *HeadlessDisplay) Viewport() (int, int) {
	return int(d.width.Load()), int(d.height.Load())
}

// RequestRedraw implements Display.
func (d *HeadlessDisplay) RequestRedraw() {
	d.redraws.Add(1)
}

// Redraws returns the number of redraw requests so far.
func (d *HeadlessDisplay) Redraws() int64 {
	return d.redraws.Load()
}
