package element

import "github.com/shufflewick/boardsmith/pkg/visibility"

// Space is a static container. It may impose a default zone visibility on
// its children and run hooks when a Piece enters or leaves.
type Space struct {
	Header

	zoneVis    visibility.Visibility
	zoneSet    bool
	onEnter    func(child Element)
	onExit     func(child Element)
}

// NewSpace constructs a detached Space. Tree.Create is the normal entry
// point; this constructor exists for ClassFactory implementations and
// for tests that build small trees directly.
func NewSpace() *Space { return &Space{} }

// ZoneVisibility returns the visibility this Space imposes on descendants
// that have no explicit override of their own, and whether it was ever
// set (an unset zone visibility defers to All, per spec.md §4.2).
func (s *Space) ZoneVisibility() (visibility.Visibility, bool) {
	return s.zoneVis, s.zoneSet
}

// SetZoneVisibility sets the default visibility this Space imposes on its
// descendants.
func (s *Space) SetZoneVisibility(v visibility.Visibility) {
	s.zoneVis = v
	s.zoneSet = true
}

// OnChildEnter registers a hook invoked after a Piece is inserted into
// this Space via PutInto.
func (s *Space) OnChildEnter(fn func(child Element)) { s.onEnter = fn }

// OnChildExit registers a hook invoked after a Piece is removed from this
// Space (by PutInto relocating it elsewhere, or by Remove).
func (s *Space) OnChildExit(fn func(child Element)) { s.onExit = fn }
