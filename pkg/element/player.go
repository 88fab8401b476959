package element

// Player is a 1-indexed participant. Position is fixed at construction;
// Current marks the single player whose turn it is. The "exactly one
// current player" invariant is maintained by the caller that owns the
// full player set (pkg/game.Game.SetCurrentPlayer), not by Player itself
// — a lone Player has no way to see its siblings to clear them.
type Player struct {
	Header

	position int
	current  bool
}

// NewPlayer constructs a detached Player. Tree.Create is the normal
// entry point; pkg/game uses it directly when seating players at
// construction time.
func NewPlayer() *Player { return &Player{} }

// Position returns the player's 1-indexed seat.
func (p *Player) Position() int { return p.position }

// SetPosition sets the player's seat. Exported for pkg/game's
// construction path and for snapshot restore; ordinary game code should
// never need to move a player.
func (p *Player) SetPosition(pos int) { p.position = pos }

// IsCurrent reports whether this is the player whose turn it is.
func (p *Player) IsCurrent() bool { return p.current }

// SetCurrent sets or clears the current flag directly. Prefer
// pkg/game.Game.SetCurrentPlayer, which preserves the "exactly one
// current player" invariant across the whole player set.
func (p *Player) SetCurrent(c bool) { p.current = c }
