package clock

import "github.com/charmbracelet/log"

// Option configures a Clock at construction.
type Option func(*Clock)

// WithLogger sets the logger that receives listener faults.
func WithLogger(logger *log.Logger) Option {
	return func(c *Clock) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeSource replaces the system clock, mainly for tests.
func WithTimeSource(source TimeSource) Option {
	return func(c *Clock) {
		if source != nil {
			c.source = source
		}
	}
}

// WithFaultHandler registers fn to be called with every recovered
// *core.ListenerFault, after it has been logged.
func WithFaultHandler(fn func(error)) Option {
	return func(c *Clock) {
		c.onFault = fn
	}
}
