// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-forager/internal/assets"
	"github.com/vovakirdan/tui-forager/internal/config"
	"github.com/vovakirdan/tui-forager/internal/core"
)

// Game is the interface every simulation mode implements.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the mode identifier (e.g., "forager", "forager_classic").
	// Used for CLI commands and run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the session state.
	// The RuntimeConfig provides screen dimensions and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one host frame of length dt.
	// Input is read once per call.
	Step(in core.InputFrame, dt time.Duration) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// Crafter is implemented by games that accept out-of-band commands
// from the crafting panel.
type Crafter interface {
	// Craft crafts the recipe at index. Out of range indexes fail.
	Craft(index int) bool
	// ClearInventory zeroes the inventory.
	ClearInventory()
}

// RunSummary is what the host records when a session ends.
type RunSummary struct {
	Collected int
	Level     int
	Crafted   int
	Duration  time.Duration // Game time, pauses excluded
}

// Summarizer is implemented by games that report a run summary.
type Summarizer interface {
	Summary() RunSummary
}

// Observable is implemented by games whose state can be streamed to
// spectators. The returned value must be safe to encode as JSON after
// the next Step.
type Observable interface {
	Observe() any
}

// Options carries the shared collaborators a factory builds a game from.
type Options struct {
	Config config.ForagerConfig
	Logger *log.Logger
	Assets *assets.Library
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func(opts Options) (Game, error)

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory to the registry.
// Typically called from a mode's init() function.
// Panics if a mode with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered modes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
// Returns an error if the ID is not registered or the factory fails.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
