package element

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/rng"
)

// Tree owns the id sequence, the live-element index, and the detached
// pile for one game. It is the arena the Design Notes call for: Parent
// and child links are plain weak references, and identity is the id
// Tree hands out, never a pointer (spec.md §9 "Cyclic references").
type Tree struct {
	registry *Registry
	nextID   int
	byID     map[int]Element
	pile     *Space
}

// NewTree constructs an empty Tree backed by registry, with its detached
// pile already created.
func NewTree(registry *Registry) *Tree {
	t := &Tree{registry: registry, byID: make(map[int]Element)}
	t.pile = &Space{}
	t.pile.initHeader(t, t.allocID(), "__pile__")
	t.pile.SetName("__pile__")
	t.byID[t.pile.ID()] = t.pile
	return t
}

func (t *Tree) allocID() int {
	t.nextID++
	return t.nextID
}

// Registry returns the class registry this tree resolves class names
// against.
func (t *Tree) Registry() *Registry { return t.registry }

// Pile returns the detached Space holding removed pieces.
func (t *Tree) Pile() *Space { return t.pile }

// GetElementByID returns the live element with the given id, searching
// both the main tree and the pile, since a removed piece must remain
// discoverable by id (spec.md §8 "Pile invariant").
func (t *Tree) GetElementByID(id int) (Element, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// Create constructs a new child of className under parent, registers it
// with the tree, appends it to parent's children according to parent's
// order discipline, and applies attrs. Creating a Space inside a Piece
// panics: this is a programmer error per spec.md §7, not a condition any
// player input can trigger.
func (t *Tree) Create(parent Element, className, name string, attrs map[string]any) (Element, error) {
	info, ok := t.registry.Get(className)
	if !ok {
		return nil, fmt.Errorf("element: class %q is not registered (registered: %v)", className, t.registry.Names())
	}

	e := info.Factory()
	if _, isSpace := e.(*Space); isSpace {
		if _, parentIsPiece := parent.(*Piece); parentIsPiece {
			panic(fmt.Sprintf("element: cannot create Space %q inside a Piece", className))
		}
	}

	id := t.allocID()
	e.initHeader(t, id, className)
	e.SetName(name)
	for k, v := range attrs {
		e.SetAttr(k, v)
	}

	t.byID[id] = e
	appendChild(parent, e, nil)
	return e, nil
}

// NewRoot constructs a parentless element: the one node in a tree with
// no parent, normally called once by the game root's own constructor.
// Distinct from Create, which always requires a parent.
func (t *Tree) NewRoot(className, name string) (Element, error) {
	info, ok := t.registry.Get(className)
	if !ok {
		return nil, fmt.Errorf("element: class %q is not registered (registered: %v)", className, t.registry.Names())
	}
	e := info.Factory()
	id := t.allocID()
	e.initHeader(t, id, className)
	e.SetName(name)
	t.byID[id] = e
	return e, nil
}

// appendChild attaches child to parent respecting parent's order
// discipline, or an explicit position when given.
func appendChild(parent, child Element, position *int) {
	child.setParent(parent)
	kids := parent.rawChildren()

	switch {
	case position != nil:
		idx := *position
		if idx < 0 {
			idx = 0
		}
		if idx > len(*kids) {
			idx = len(*kids)
		}
		next := make([]Element, 0, len(*kids)+1)
		next = append(next, (*kids)[:idx]...)
		next = append(next, child)
		next = append(next, (*kids)[idx:]...)
		*kids = next
	case parent.Order() == Stacking:
		*kids = append([]Element{child}, (*kids)...)
	default:
		*kids = append(*kids, child)
	}
}

func detachChild(parent, child Element) {
	kids := parent.rawChildren()
	for i, k := range *kids {
		if k.ID() == child.ID() {
			*kids = append((*kids)[:i], (*kids)[i+1:]...)
			return
		}
	}
}

// PutInto relocates piece into dest: removes it from its current parent
// (firing that Space's exit hook), then inserts it into dest at an
// explicit position if given, else at index 0 if dest is stacking, else
// at the end (firing dest's enter hook if it is a Space).
func (t *Tree) PutInto(piece *Piece, dest Element, position ...int) error {
	if dest == nil {
		return fmt.Errorf("element: PutInto destination is nil")
	}

	if old := piece.Parent(); old != nil {
		detachChild(old, piece)
		if sp, ok := old.(*Space); ok && sp.onExit != nil {
			sp.onExit(piece)
		}
	}

	var pos *int
	if len(position) > 0 {
		pos = &position[0]
	}
	appendChild(dest, piece, pos)

	if sp, ok := dest.(*Space); ok && sp.onEnter != nil {
		sp.onEnter(piece)
	}
	return nil
}

// Remove moves piece to the tree's detached pile. It remains discoverable
// by id (GetElementByID) but is absent from the main tree's descendants.
func (t *Tree) Remove(piece *Piece) {
	_ = t.PutInto(piece, t.pile)
}

// Shuffle randomizes container's children order in place using Fisher-
// Yates driven by r.
func (t *Tree) Shuffle(container Element, r *rng.RNG) {
	kids := container.rawChildren()
	r.Shuffle(len(*kids), func(i, j int) {
		(*kids)[i], (*kids)[j] = (*kids)[j], (*kids)[i]
	})
}
