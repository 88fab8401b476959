package visibility

// Mode is one of the four visibility modes an element or zone can carry.
type Mode string

const (
	// All is visible to everyone except players listed in ExceptPlayers.
	All Mode = "all"
	// Owner is visible only to its owner and anyone in AddPlayers.
	Owner Mode = "owner"
	// Hidden is visible only to players in AddPlayers.
	Hidden Mode = "hidden"
	// CountOnly reveals an element's id, class, and child count but
	// nothing else.
	CountOnly Mode = "count-only"
)

// Visibility is a tagged record describing how visible an element or a
// Space's default zone visibility is. Explicit distinguishes an element's
// own override from a value inherited from an ancestor Space, which
// matters when walking the parent chain in Resolve.
type Visibility struct {
	Mode          Mode
	AddPlayers    []int
	ExceptPlayers []int
	Explicit      bool
}

// Default is the implicit visibility of an element with no override and
// no ancestor Space imposing a zone visibility: visible to everyone.
var Default = Visibility{Mode: All}

func contains(list []int, p int) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}

// Resolve answers whether a viewer at position p can see an element whose
// effective visibility is v and whose owner (0 if none) is owner. This
// implements the four mode rules in spec.md §4.2 verbatim.
func Resolve(p int, v Visibility, owner int) bool {
	switch v.Mode {
	case Owner:
		return p == owner || contains(v.AddPlayers, p)
	case Hidden:
		return contains(v.AddPlayers, p)
	case CountOnly:
		// CountOnly is a distinct disclosure level, not a yes/no: callers
		// that need the all-or-nothing answer (e.g. "may I descend into
		// this subtree at all") should treat CountOnly as visible (the id
		// and class are visible) and rely on the projector to stop short
		// of real descendants. See pkg/game's projector for the anonymized
		// child emission this implies.
		return true
	case All:
		fallthrough
	default:
		return !contains(v.ExceptPlayers, p)
	}
}
