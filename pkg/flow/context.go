package flow

import "github.com/shufflewick/boardsmith/pkg/element"

// GameAPI is the slice of pkg/game.Game that flow node callbacks
// (conditions, filters, collections, execute functions) may read. Kept
// minimal and defined here, not imported from pkg/game, for the same
// reason as action.GameAPI: pkg/flow must never import pkg/game.
type GameAPI interface {
	Root() element.Element
	Players() []*element.Player
	Player(position int) (*element.Player, bool)
	CurrentPlayer() *element.Player
	Phase() string
}

// Context is passed to every flow node callback. Variables carries
// whatever execute nodes and for-each bindings have accumulated so far
// at this point in the walk; it is the same map the engine persists as
// part of FlowPosition (pkg/wire.FlowPosition).
type Context struct {
	Game          GameAPI
	Variables     map[string]any
	CurrentPlayer *element.Player
}

// Var returns a variable by name.
func (c Context) Var(name string) (any, bool) {
	v, ok := c.Variables[name]
	return v, ok
}
