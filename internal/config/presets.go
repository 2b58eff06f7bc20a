package config

import "fmt"

// RatePreset is a named clock rate.
type RatePreset string

const (
	PresetCinema   RatePreset = "cinema"
	PresetSmooth   RatePreset = "smooth"
	PresetEco      RatePreset = "eco"
	PresetUncapped RatePreset = "uncapped"
)

// Presets lists the known presets in display order.
var Presets = []RatePreset{PresetEco, PresetCinema, PresetSmooth, PresetUncapped}

// FPSForPreset returns the frame rate of a preset.
func FPSForPreset(preset RatePreset) (float64, bool) {
	switch preset {
	case PresetEco:
		return 15, true
	case PresetCinema:
		return 24, true
	case PresetSmooth:
		return 60, true
	case PresetUncapped:
		return -1, true
	default:
		return 0, false
	}
}

// ApplyPreset modifies the config based on a rate preset.
func ApplyPreset(cfg *Config, preset RatePreset) error {
	fps, ok := FPSForPreset(preset)
	if !ok {
		return fmt.Errorf("unknown preset %q (available: %v)", preset, Presets)
	}
	cfg.Clock.FPS = fps

	// Uncapped runs are for measuring; skip the overlay cost.
	if preset == PresetUncapped {
		cfg.Stage.ShowFPS = false
	}
	return nil
}
