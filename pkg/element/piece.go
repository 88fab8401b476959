package element

// Piece is a movable element. It can be relocated between containers via
// PutInto and removed to the tree's detached pile via Remove. A Piece can
// never contain a Space; Tree.Create enforces this (spec.md §4.6).
type Piece struct {
	Header
}

// NewPiece constructs a detached Piece. Tree.Create is the normal entry
// point for game code; this constructor exists for ClassFactory
// implementations and direct tree-building in tests.
func NewPiece() *Piece { return &Piece{} }
