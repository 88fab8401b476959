package executor

import (
	"fmt"
	"sort"
	"sync"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
)

// Executor owns a game's action registry and is the sole entry point
// for availability, direct performance, and stepwise (pending)
// resolution. One Executor per game, matching spec.md §4.8 ("creates
// the executor" as part of game root construction).
type Executor struct {
	game action.GameAPI

	mu          sync.RWMutex
	definitions map[string]action.Definition
}

// New constructs an Executor bound to game. game is an interface
// (action.GameAPI) rather than *game.Game so pkg/executor never imports
// pkg/game, matching pkg/action's own consumer-defined-interface
// pattern (see DESIGN.md).
func New(game action.GameAPI) *Executor {
	return &Executor{game: game, definitions: make(map[string]action.Definition)}
}

// Register adds def to the registry. Panics on a duplicate name: two
// actions sharing a name is a programmer error, matching the teacher's
// synthesis.Register precedent (pkg/synthesis/synthesizer.go).
func (e *Executor) Register(def action.Definition) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.definitions[def.Name]; exists {
		panic(fmt.Sprintf("executor: action %q already registered", def.Name))
	}
	e.definitions[def.Name] = def
}

// Get returns the named action definition, if registered.
func (e *Executor) Get(name string) (action.Definition, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	def, ok := e.definitions[name]
	return def, ok
}

// Names returns every registered action name, sorted.
func (e *Executor) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]string, 0, len(e.definitions))
	for name := range e.definitions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (e *Executor) baseContext(player *element.Player) action.Context {
	return action.Context{Game: e.game, Player: player, Args: map[string]any{}}
}

// requireDefinition fetches a registered action or a structured
// ACTION_NOT_FOUND error.
func (e *Executor) requireDefinition(name string) (action.Definition, error) {
	def, ok := e.Get(name)
	if !ok {
		return action.Definition{}, boardsmith.ActionNotFoundError(name)
	}
	return def, nil
}
