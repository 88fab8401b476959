package action

import (
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/rng"
)

// GameAPI is the slice of pkg/game.Game that action conditions, legal-set
// functions, and execute callbacks are allowed to touch. It is defined
// here rather than imported from pkg/game so pkg/action never depends on
// pkg/game, mirroring the teacher's pattern of a consumer-defined
// interface implemented by the producer (dungeon.Validator, implemented
// by validation.DefaultValidator).
type GameAPI interface {
	Root() element.Element
	Pile() element.Element
	RNG() *rng.RNG
	Players() []*element.Player
	Player(position int) (*element.Player, bool)
	CurrentPlayer() *element.Player
	Log(key string, data map[string]any)
	Settings() map[string]any
}

// Context is passed to a pick's legal-set function, an action's
// condition, and its execute callback (spec.md §4.3: "context (game,
// acting player, last action result)"). Args accumulates already-
// resolved picks in declaration order as resolution proceeds; it is
// empty when a condition or the first pick's legal-set function runs.
type Context struct {
	Game       GameAPI
	Player     *element.Player
	Args       map[string]any
	LastResult *Result
}

// Arg returns a previously resolved pick's value by name.
func (c Context) Arg(name string) (any, bool) {
	v, ok := c.Args[name]
	return v, ok
}
