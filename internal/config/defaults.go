package config

import (
	_ "embed"
)

//go:embed defaults/stage.yaml
var defaultStageYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Clock: ClockConfig{
			FPS: 30,
		},
		Stage: StageConfig{
			Background: "#000000",
			Filter:     "nearest",
			Scale:      "auto",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Demos: DemosConfig{
			Bounce: BounceConfig{
				Width:     160,
				Height:    90,
				Balls:     6,
				MaxBalls:  24,
				MinRadius: 4,
				MaxRadius: 10,
				Speed:     40,
			},
			Cursor: CursorConfig{
				Width:  160,
				Height: 90,
				Radius: 7,
				Step:   3,
			},
			Loading: LoadingConfig{
				GridOffset: 8,
				Speed:      0.5,
				Text:       "Loading",
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultStageYAML
}
