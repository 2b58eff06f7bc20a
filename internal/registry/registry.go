// Package registry provides a global registry for demo scene factories.
// Demos register themselves in init() functions, allowing the CLI to
// discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-stage/internal/config"
	"github.com/vovakirdan/tui-stage/internal/scene"
)

// Demo is a scene the CLI can stage by name.
type Demo interface {
	scene.Scene

	// ID returns a unique identifier (e.g., "bounce").
	// Used for CLI commands and benchmark storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string
}

// DemoInfo contains metadata about a registered demo.
type DemoInfo struct {
	ID    string
	Title string
}

// ErrUnknownDemo is returned by Create for an unregistered ID.
var ErrUnknownDemo = errors.New("unknown demo")

// Factory creates a new instance of a demo for the given configuration.
type Factory func(cfg config.Config) (Demo, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a demo factory to the registry.
// Typically called from a demo's init() function.
// Panics if a demo with the same ID is already registered or if the factory
// fails for the default configuration.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: demo %q already registered", id))
	}

	// Get title by creating a temporary instance
	d, err := f(config.Default())
	if err != nil {
		panic(fmt.Sprintf("registry: demo %q: %v", id, err))
	}

	factories[id] = f
	titles[id] = d.Title()
}

// List returns information about all registered demos, sorted by ID.
func List() []DemoInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]DemoInfo, 0, len(factories))
	for id := range factories {
		result = append(result, DemoInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new demo by its ID.
// Returns an error if the demo ID is not registered.
func Create(id string, cfg config.Config) (Demo, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownDemo, id)
	}
	return f(cfg)
}

// Exists checks if a demo with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
