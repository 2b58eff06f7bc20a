// Package config provides YAML-based configuration loading for the stage,
// its clock and the bundled demo scenes.
package config

// Config is the complete runtime configuration.
type Config struct {
	Clock   ClockConfig   `yaml:"clock"`
	Stage   StageConfig   `yaml:"stage"`
	Logging LoggingConfig `yaml:"logging"`
	Demos   DemosConfig   `yaml:"demos"`
}

// ClockConfig configures the frame clock.
type ClockConfig struct {
	FPS float64 `yaml:"fps"` // Target frames per second, negative for uncapped
}

// StageConfig configures the compositor and presentation.
type StageConfig struct {
	Background        string `yaml:"background"`          // Hex color behind every frame
	Filter            string `yaml:"filter"`              // nearest, approx-bilinear, bilinear, catmull-rom
	Scale             string `yaml:"scale"`               // auto, fill, fit, none
	ShowFPS           bool   `yaml:"show_fps"`            // Paint the FPS overlay
	DrawBoundingBoxes bool   `yaml:"draw_bounding_boxes"` // Outline every demo object
}

// LoggingConfig configures the charmbracelet logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file; empty discards in play mode
}

// DemosConfig groups the per-demo settings.
type DemosConfig struct {
	Bounce  BounceConfig  `yaml:"bounce"`
	Cursor  CursorConfig  `yaml:"cursor"`
	Loading LoadingConfig `yaml:"loading"`
}

// BounceConfig configures the bouncing balls demo.
type BounceConfig struct {
	Width     int     `yaml:"width"`      // Logical scene width
	Height    int     `yaml:"height"`     // Logical scene height
	Balls     int     `yaml:"balls"`      // Initial ball count
	MaxBalls  int     `yaml:"max_balls"`  // Upper bound for + key
	MinRadius float64 `yaml:"min_radius"` // Smallest ball radius
	MaxRadius float64 `yaml:"max_radius"` // Largest ball radius
	Speed     float64 `yaml:"speed"`      // Ball speed in logical pixels per second
	Seed      int64   `yaml:"seed"`       // Random seed, 0 picks one from the clock
}

// CursorConfig configures the pointer demo.
type CursorConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Radius float64 `yaml:"radius"` // Cursor ring radius
	Step   float64 `yaml:"step"`   // Arrow key step in logical pixels
}

// LoadingConfig configures the loading screen demo.
type LoadingConfig struct {
	GridOffset int     `yaml:"grid_offset"` // Distance between grid lines
	Speed      float64 `yaml:"speed"`       // Spinner revolutions per second
	Text       string  `yaml:"text"`
}
