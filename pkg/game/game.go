package game

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/flowengine"
	"github.com/shufflewick/boardsmith/pkg/rng"
)

// Options configures a new Game at construction time.
type Options struct {
	PlayerCount int
	PlayerNames []string // optional; unset or empty entries default to "Player N"
	Seed        string
	Settings    map[string]any
}

// Definition supplies the rules-specific pieces New needs to assemble a
// playable Game: classes beyond the three built-ins, the action
// registry, and the root flow graph. A game with no flow (Flow == nil)
// is constructed with no Engine; callers that only need the element
// tree and executor (tests, tools) can leave it nil.
type Definition struct {
	RegisterClasses func(*element.Registry)
	RegisterActions func(*executor.Executor)
	Flow            flow.Node
}

// Game embeds the root Space of its element tree (spec.md §4.8), so
// every Space method (ZoneVisibility, OnChildEnter/Exit, and the full
// Element interface via Header) is available directly on the root. The
// embedded pointer is set once, in New, by Tree.NewRoot — the one
// exported path into an Element's otherwise-unexported initHeader (see
// DESIGN.md).
type Game struct {
	*element.Space

	registry *element.Registry
	players  []*element.Player
	rng      *rng.RNG
	phase    string
	messages []Message
	settings map[string]any

	executor *executor.Executor
	engine   *flowengine.Engine
}

// NewRegistry builds the class registry a Game constructed with def
// would use, without constructing a Game — for callers (pkg/session's
// hot-reload path) that need to validate a snapshot against a candidate
// Definition's classes before committing to a full Restore.
func NewRegistry(def Definition) *element.Registry {
	return buildRegistry(def)
}

// buildRegistry assembles the class registry every Game construction
// path (New, Restore) starts from: the three built-in classes, then
// whatever def.RegisterClasses adds.
func buildRegistry(def Definition) *element.Registry {
	registry := element.NewRegistry()
	registry.Register("Space", func() element.Element { return element.NewSpace() })
	registry.Register("Piece", func() element.Element { return element.NewPiece() })
	registry.Register("Player", func() element.Element { return element.NewPlayer() })
	if def.RegisterClasses != nil {
		def.RegisterClasses(registry)
	}
	return registry
}

// New constructs a Game: a fresh element tree rooted at a Space, opts.
// PlayerCount players seated in order with player 1 current, the class
// registry (built-ins plus def.RegisterClasses), the action executor
// (def.RegisterActions), and — if def.Flow is set — the flow engine
// bound to it.
func New(opts Options, def Definition) (*Game, error) {
	registry := buildRegistry(def)

	tree := element.NewTree(registry)
	root, err := tree.NewRoot("Space", "root")
	if err != nil {
		return nil, err
	}
	space, ok := root.(*element.Space)
	if !ok {
		return nil, fmt.Errorf("game: root class %q did not construct an *element.Space", root.ClassName())
	}

	g := &Game{
		Space:    space,
		registry: registry,
		rng:      rng.New(opts.Seed),
		settings: opts.Settings,
	}

	for i := 0; i < opts.PlayerCount; i++ {
		name := fmt.Sprintf("Player %d", i+1)
		if i < len(opts.PlayerNames) && opts.PlayerNames[i] != "" {
			name = opts.PlayerNames[i]
		}
		pe, err := tree.Create(g.Space, "Player", name, nil)
		if err != nil {
			return nil, err
		}
		p := pe.(*element.Player)
		p.SetPosition(i + 1)
		g.players = append(g.players, p)
	}
	if len(g.players) > 0 {
		g.players[0].SetCurrent(true)
	}

	g.executor = executor.New(g)
	if def.RegisterActions != nil {
		def.RegisterActions(g.executor)
	}
	if def.Flow != nil {
		g.engine = flowengine.New(def.Flow, g, g.executor)
	}

	return g, nil
}

// Root returns the tree's root element, satisfying action.GameAPI and
// flow.GameAPI. Identical to g.Space but spelled out explicitly since
// those interfaces are written against element.Element, not *element.
// Space.
func (g *Game) Root() element.Element { return g.Space }

// Pile returns the tree's detached pile.
func (g *Game) Pile() element.Element { return g.Tree().Pile() }

// RNG returns the game's single deterministic random source.
func (g *Game) RNG() *rng.RNG { return g.rng }

// Registry returns the class registry this game's tree resolves class
// names against, for callers (snapshot restore, hot reload) that need
// to inspect or extend it.
func (g *Game) Registry() *element.Registry { return g.registry }

// Executor returns the action executor bound to this game.
func (g *Game) Executor() *executor.Executor { return g.executor }

// Engine returns the flow engine bound to this game, or nil if the game
// was constructed with no flow graph.
func (g *Game) Engine() *flowengine.Engine { return g.engine }

// Players returns every seated player, ordered by position.
func (g *Game) Players() []*element.Player {
	return append([]*element.Player(nil), g.players...)
}

// Player returns the player at the given 1-indexed position.
func (g *Game) Player(position int) (*element.Player, bool) {
	for _, p := range g.players {
		if p.Position() == position {
			return p, true
		}
	}
	return nil, false
}

// CurrentPlayer returns the player whose turn it is, or nil if no
// player is current.
func (g *Game) CurrentPlayer() *element.Player {
	for _, p := range g.players {
		if p.IsCurrent() {
			return p
		}
	}
	return nil
}

// SetCurrentPlayer makes the player at position the sole current
// player, clearing the flag on every other seat. This is the one place
// the "exactly one current player" invariant is enforced (element.
// Player.SetCurrent on its own cannot see its siblings).
func (g *Game) SetCurrentPlayer(position int) error {
	target, ok := g.Player(position)
	if !ok {
		return boardsmith.InvalidPlayerError(position)
	}
	for _, p := range g.players {
		p.SetCurrent(p.ID() == target.ID())
	}
	return nil
}

// Settings returns the game's static configuration map.
func (g *Game) Settings() map[string]any { return g.settings }

// Phase returns the name of the currently active flow phase, or "" if
// no PhaseNode is active.
func (g *Game) Phase() string { return g.phase }

// SetPhase sets the active phase name. Called only by the flow engine's
// PhaseNode handling (flowengine.GameAPI); game code reads Phase but
// never calls SetPhase directly.
func (g *Game) SetPhase(name string) { g.phase = name }
