// Package registry provides a global registry of playable puzzles.
// Built-in puzzles register themselves in init() and puzzles found on disk
// are added at startup, so the platform can list and start them by id.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/wordgrid/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the puzzle identifier (e.g., "classic").
	// Used for CLI commands and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or resets the game state.
	// Called once at start and again when the platform restarts the game.
	Reset(cfg core.RuntimeConfig)

	// Step applies the actions collected since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, words).
	State() core.GameState
}

// Closer is implemented by games that hold resources such as timers.
type Closer interface {
	Close()
}

// GameInfo contains metadata about a registered puzzle.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	if !RegisterIfAbsent(id, f) {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
}

// RegisterIfAbsent adds a game factory unless the id is taken.
// It reports whether the factory was added.
func RegisterIfAbsent(id string, f Factory) bool {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return false
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
	if c, ok := g.(Closer); ok {
		c.Close()
	}
	return true
}

// List returns information about all registered games, sorted by ID.
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

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
