package clock

import "time"

// Meter measures a frame rate over one-second windows.
// Call Update once per drawn frame. A Meter is not safe for concurrent use.
type Meter struct {
	window    time.Duration
	remaining time.Duration
	count     int
	rate      float64
}

// NewMeter creates a meter with a one second window.
func NewMeter() *Meter {
	m := &Meter{window: time.Second}
	m.Reset()
	return m
}

// Update records one frame that took elapsed since the previous one.
func (m *Meter) Update(elapsed time.Duration) {
	m.remaining -= elapsed
	m.count++

	if m.remaining <= 0 {
		spent := m.window - m.remaining
		m.rate = float64(m.count) / spent.Seconds()
		m.Reset()
	}
}

// Reset starts a new measuring window; the last rate is kept.
func (m *Meter) Reset() {
	m.remaining = m.window
	m.count = 0
}

// Rate returns the frames per second measured over the last full window.
func (m *Meter) Rate() float64 {
	return m.rate
}
