package core

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned synchronously by calls that were given a
// value they cannot honor, such as a zero frame rate or a negative size.
var ErrInvalidArgument = errors.New("invalid argument")

// ListenerFault describes a panic recovered from a listener or scene callback.
// Faults are isolated and logged; they never reach the caller of the dispatch.
type ListenerFault struct {
	Listener string // Description of the faulting callback (type name)
	Value    any    // Recovered panic value
	Stack    []byte // Stack trace captured at recovery
}

// Error implements error.
func (f *ListenerFault) Error() string {
	return fmt.Sprintf("listener %s panicked: %v", f.Listener, f.Value)
}

// Unwrap exposes the recovered value when it is itself an error.
func (f *ListenerFault) Unwrap() error {
	if err, ok := f.Value.(error); ok {
		return err
	}
	return nil
}
