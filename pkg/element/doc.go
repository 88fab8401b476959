// Package element implements the content-addressed scene graph every
// BoardSmith game state is built from: a tree of Elements rooted at a
// game, with ownership, visibility, ordering, and identity-by-id.
//
// Element is a sum type realized as an interface with three concrete
// kinds sharing a common Header: Space (static container), Piece
// (movable, relocatable between containers), and Player (the mandatory
// 1-indexed participant). Class names used for serialization are a
// separate string tag held in the registry, never host-language runtime
// type information — see Registry.
//
// Ownership of the tree is arena-style: a Tree owns the monotonically
// increasing id sequence and the detached pile; Parent and sibling links
// are plain fields on Header, not reference-counted, since the tree has a
// single owner at a time (pkg/game.Game) and is never shared across
// goroutines concurrently (see pkg/game's concurrency notes).
package element
