package element

import "github.com/shufflewick/boardsmith/pkg/rng"

// Create constructs a new child element of className under s, per
// Tree.Create.
func (s *Space) Create(className, name string, attrs map[string]any) (Element, error) {
	return s.Tree().Create(s, className, name, attrs)
}

// Shuffle randomizes s's children order in place using r.
func (s *Space) Shuffle(r *rng.RNG) {
	s.Tree().Shuffle(s, r)
}

// PutInto relocates p into dest, per Tree.PutInto.
func (p *Piece) PutInto(dest Element, position ...int) error {
	return p.Tree().PutInto(p, dest, position...)
}

// Remove moves p to the tree's detached pile.
func (p *Piece) Remove() {
	p.Tree().Remove(p)
}
