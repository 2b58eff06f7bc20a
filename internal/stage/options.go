package stage

import (
	"image/color"

	"github.com/charmbracelet/log"
	"golang.org/x/image/draw"
)

// Option configures a Stage at construction.
type Option func(*Stage)

// WithInputSurface sets where scene listeners are registered.
func WithInputSurface(in InputSurface) Option {
	return func(s *Stage) {
		s.input = in
	}
}

// WithBackground sets the color painted behind every presented frame.
func WithBackground(c color.Color) Option {
	return func(s *Stage) {
		if c != nil {
			s.background = c
		}
	}
}

// WithFilter sets the interpolator used when the frame is presented at a
// different size than it was painted.
func WithFilter(f draw.Interpolator) Option {
	return func(s *Stage) {
		if f != nil {
			s.filter = f
		}
	}
}

// WithLogger sets the stage logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Stage) {
		if logger != nil {
			s.logger = logger
		}
	}
}
