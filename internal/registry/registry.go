// Package registry provides the registry of game factories.
// Games register themselves in init() functions, allowing the platform
// to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/edufy/internal/core"
)

// Game is the interface the platform drives.
// Games contain pure logic with no Bubble Tea dependency; the platform
// handles input mapping, timing and rendering.
type Game interface {
	// ID returns the identifier used on the command line (e.g. "emotions").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a fresh session at the configured start level.
	// The RuntimeConfig provides screen dimensions, tick rate and RNG seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one platform tick and applies the input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState

	// Levels describes the level table.
	Levels() []core.LevelInfo
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Levels      int
}

// Factory creates a game instance for one session.
type Factory func(opts core.GameOptions) (Game, error)

// ErrUnknownGame is returned by Create for unregistered ids.
var ErrUnknownGame = errors.New("unknown game")

// Registry maps game ids to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	infos     map[string]GameInfo
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		infos:     make(map[string]GameInfo),
	}
}

// Register adds a game factory.
// Panics if a game with the same ID is already registered.
func (r *Registry) Register(info GameInfo, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if info.ID == "" {
		panic("registry: game id must not be empty")
	}
	if _, exists := r.factories[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	r.factories[info.ID] = f
	r.infos[info.ID] = info
}

// List returns information about all registered games, sorted by ID.
func (r *Registry) List() []GameInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]GameInfo, 0, len(r.infos))
	for _, info := range r.infos {
		result = append(result, info)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Info returns the metadata of a registered game.
func (r *Registry) Info(id string) (GameInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	info, ok := r.infos[id]
	return info, ok
}

// Create instantiates a new game by its ID.
func (r *Registry) Create(id string, opts core.GameOptions) (Game, error) {
	r.mu.RLock()
	f, ok := r.factories[id]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: %q: %w", id, ErrUnknownGame)
	}
	g, err := f(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %q: %w", id, err)
	}
	return g, nil
}

// Exists checks if a game with the given ID is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[id]
	return ok
}

var defaultRegistry = New()

// Register adds a game to the default registry.
// Typically called from a game's init() function.
func Register(info GameInfo, f Factory) { defaultRegistry.Register(info, f) }

// List returns the games of the default registry.
func List() []GameInfo { return defaultRegistry.List() }

// Info returns metadata from the default registry.
func Info(id string) (GameInfo, bool) { return defaultRegistry.Info(id) }

// Create instantiates a game from the default registry.
func Create(id string, opts core.GameOptions) (Game, error) {
	return defaultRegistry.Create(id, opts)
}

// Exists checks the default registry.
func Exists(id string) bool { return defaultRegistry.Exists(id) }
