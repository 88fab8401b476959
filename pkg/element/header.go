package element

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/visibility"
)

// Order is the child-insertion discipline a container uses.
type Order string

const (
	// Normal appends new children to the end of the sequence.
	Normal Order = "normal"
	// Stacking prepends new children to the front of the sequence.
	Stacking Order = "stacking"
)

// reservedAttrNames can never be used as user-defined attribute keys:
// they shadow header fields that already have typed accessors. Spec.md
// §7 treats registering a reserved name as a programmer error, so
// SetAttr panics rather than silently overwriting engine state.
var reservedAttrNames = map[string]bool{
	"id": true, "name": true, "owner": true, "visibility": true,
	"parent": true, "children": true, "class": true, "order": true,
}

// Element is any node of the tree: Space, Piece, or Player. Identity is
// always by Id, never by pointer equality — serialization and replay
// produce fresh objects for the same logical entity (spec.md §4.6).
type Element interface {
	ID() int
	Name() string
	SetName(string)
	ClassName() string
	Owner() *Player
	SetOwner(*Player)
	Visibility() visibility.Visibility
	SetVisibility(visibility.Visibility)
	Parent() Element
	Children() []Element
	Order() Order
	SetOrder(Order)
	Attr(key string) (any, bool)
	SetAttr(key string, value any)
	Attrs() map[string]any
	Tree() *Tree

	// initHeader is used only by Tree during construction; it is
	// unexported so external packages cannot forge header state.
	initHeader(tree *Tree, id int, className string)
	setParent(Element)
	rawChildren() *[]Element
}

// Header is the field set every concrete Element kind embeds. Mirrors
// the teacher's pattern of a shared Validate()-able header across
// sibling node kinds (graph.Room / graph.Connector both carry ID +
// validation, see pkg/graph), generalized here to a tree rather than a
// room graph and to three kinds instead of two.
type Header struct {
	tree      *Tree
	id        int
	className string
	name      string
	owner     *Player
	vis       visibility.Visibility
	parent    Element
	children  []Element
	order     Order
	attrs     map[string]any
}

func (h *Header) ID() int           { return h.id }
func (h *Header) ClassName() string { return h.className }
func (h *Header) Name() string      { return h.name }
func (h *Header) SetName(n string)  { h.name = n }

func (h *Header) Owner() *Player        { return h.owner }
func (h *Header) SetOwner(p *Player)    { h.owner = p }
func (h *Header) Visibility() visibility.Visibility {
	return h.vis
}
func (h *Header) SetVisibility(v visibility.Visibility) {
	v.Explicit = true
	h.vis = v
}

func (h *Header) Parent() Element     { return h.parent }
func (h *Header) Children() []Element { return append([]Element(nil), h.children...) }
func (h *Header) Order() Order        { return h.order }
func (h *Header) SetOrder(o Order)    { h.order = o }
func (h *Header) Tree() *Tree         { return h.tree }

func (h *Header) Attr(key string) (any, bool) {
	v, ok := h.attrs[key]
	return v, ok
}

func (h *Header) SetAttr(key string, value any) {
	if reservedAttrNames[key] {
		panic(fmt.Sprintf("element: %q is a reserved attribute name", key))
	}
	if h.attrs == nil {
		h.attrs = make(map[string]any)
	}
	h.attrs[key] = value
}

func (h *Header) Attrs() map[string]any {
	out := make(map[string]any, len(h.attrs))
	for k, v := range h.attrs {
		out[k] = v
	}
	return out
}

func (h *Header) initHeader(tree *Tree, id int, className string) {
	h.tree = tree
	h.id = id
	h.className = className
	h.order = Normal
}

func (h *Header) setParent(p Element) { h.parent = p }

func (h *Header) rawChildren() *[]Element { return &h.children }
