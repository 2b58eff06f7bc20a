package config

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-stage/internal/core"
	"github.com/vovakirdan/tui-stage/internal/scene"
)

// Load loads the stage configuration.
// Search order: customPath -> ~/.stage/config.yaml -> ./configs/stage.yaml -> embedded default
// Files are decoded over Default(), so omitted keys keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/stage.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultStageYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stage", filename)
}

// Validate checks values the clock and stage would reject later.
func (c Config) Validate() error {
	if c.Clock.FPS == 0 || math.IsNaN(c.Clock.FPS) || math.IsInf(c.Clock.FPS, 0) {
		return fmt.Errorf("config clock.fps %v: %w", c.Clock.FPS, core.ErrInvalidArgument)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.Interpolator(); err != nil {
		return err
	}
	if _, err := c.ScaleMode(); err != nil {
		return fmt.Errorf("config stage.scale: %w", err)
	}

	b := c.Demos.Bounce
	if b.Width <= 0 || b.Height <= 0 || b.MinRadius <= 0 || b.MaxRadius < b.MinRadius {
		return fmt.Errorf("config demos.bounce: %w", core.ErrInvalidArgument)
	}
	if cur := c.Demos.Cursor; cur.Width <= 0 || cur.Height <= 0 || cur.Radius <= 0 {
		return fmt.Errorf("config demos.cursor: %w", core.ErrInvalidArgument)
	}
	return nil
}

// BackgroundColor parses stage.background.
func (c Config) BackgroundColor() (color.Color, error) {
	hex := strings.TrimSpace(c.Stage.Background)
	if hex == "" {
		return core.ColorBlack, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, fmt.Errorf("config stage.background %q: %w", c.Stage.Background, core.ErrInvalidArgument)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Interpolator maps stage.filter to a scaler.
func (c Config) Interpolator() (draw.Interpolator, error) {
	switch strings.ToLower(strings.TrimSpace(c.Stage.Filter)) {
	case "", "nearest":
		return draw.NearestNeighbor, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "catmull-rom":
		return draw.CatmullRom, nil
	}
	return nil, fmt.Errorf("config stage.filter %q: %w", c.Stage.Filter, core.ErrInvalidArgument)
}

// ScaleMode parses stage.scale.
func (c Config) ScaleMode() (scene.ScaleMode, error) {
	return scene.ParseScaleMode(c.Stage.Scale)
}
