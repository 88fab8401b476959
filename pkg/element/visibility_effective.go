package element

import "github.com/shufflewick/boardsmith/pkg/visibility"

// EffectiveVisibility walks e's parent chain per spec.md §3's invariant:
// an element's effective visibility is its own explicit override,
// otherwise the nearest ancestor Space's zone visibility, otherwise All.
func EffectiveVisibility(e Element) visibility.Visibility {
	if v := e.Visibility(); v.Explicit {
		return v
	}
	for p := e.Parent(); p != nil; p = p.Parent() {
		if sp, ok := p.(*Space); ok {
			if v, set := sp.ZoneVisibility(); set {
				return v
			}
		}
	}
	return visibility.Default
}

// OwnerPosition returns the 1-indexed position of e's owner, or 0 if e
// has no owner. Visibility.Resolve takes an int owner position rather
// than a *Player so pkg/visibility need not depend on pkg/element.
func OwnerPosition(e Element) int {
	if owner := e.Owner(); owner != nil {
		return owner.Position()
	}
	return 0
}
