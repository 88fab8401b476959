// Package boardsmith defines the error taxonomy shared across the engine.
//
// Every boundary failure the action executor and session layer produce is
// a *Error carrying a stable Code, so hosts can branch on failure kind
// without parsing message text. Programmer errors (a Space created inside
// a Piece, a reserved attribute name, a flow graph that never terminates)
// are not part of this taxonomy: those panic, because they indicate a bug
// in the game definition rather than a condition a player or host can
// recover from.
package boardsmith
