// Package registry provides a global registry for game mode factories.
// Modes register themselves in init() functions, so the platform can
// discover and instantiate them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/vedapath/internal/core"
)

// Game is the interface the platform drives once per tick.
// Implementations contain pure logic with no Bubble Tea dependency;
// the platform handles input mapping, timing and rendering.
type Game interface {
	// ID returns the mode identifier used by the CLI and the run history.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new session. Called once at start and again when the
	// player restarts after the session ended.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// ContentLoader is implemented by games whose content arrives asynchronously.
type ContentLoader interface {
	// ContentRequest reports, once per request, that a load should start.
	// fetch runs off the frame loop and must not touch game state; the
	// continuation it returns is invoked on the frame loop to deliver the result.
	ContentRequest() (fetch func(ctx context.Context) func(), ok bool)
}

// RunReporter is implemented by games that can summarize a session for the run history.
type RunReporter interface {
	Summary() core.RunSummary
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if a mode with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered modes, sorted by ID.
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

// Create instantiates a game by mode ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
