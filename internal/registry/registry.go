// Package registry maps board ids to game factories.
// Variants register in init(), so the CLI, the menu and the SSH server can
// list and create them without importing any game package directly.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// ErrUnknownGame is returned by Create for IDs that were never registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a playable board driven by fixed ticks.
// Implementations never import a UI library: the platform maps keys to
// actions, runs the clock and turns the screen buffer into terminal output.
type Game interface {
	// ID is the stable key used on the command line and in the score table,
	// e.g. "2048" or "2048_5x5".
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new game sized and seeded from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into dst.
	Render(dst *core.Screen)

	// State reports score, best, and whether the game is over or paused.
	State() core.GameState
}

// Resizer is implemented by games that relayout on terminal resize
// and keep their board.
type Resizer interface {
	Resize(w, h int)
}

// BestScoreSetter is implemented by games that display a stored best score.
type BestScoreSetter interface {
	SetBestScore(best int)
}

// Controller is implemented by games that describe their controls.
type Controller interface {
	Controls() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	mu      sync.RWMutex
	entries []entry        // Registration order
	byID    map[string]int // Index into entries
)

// Register adds a game factory under id. The title is taken from one
// instance created right away. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := byID[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	if byID == nil {
		byID = make(map[string]int)
	}
	byID[id] = len(entries)
	entries = append(entries, entry{
		info:    GameInfo{ID: id, Title: f().Title()},
		factory: f,
	})
}

// List returns every registered game in registration order,
// so a package decides how its variants are presented.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, len(entries))
	for i, e := range entries {
		out[i] = e.info
	}
	return out
}

// Create instantiates a new game by its ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	i, ok := byID[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return entries[i].factory(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byID[id]
	return ok
}
