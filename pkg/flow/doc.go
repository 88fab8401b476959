// Package flow defines the composable flow graph a game's turn
// structure is built from (spec.md §4.7): sequence, loop, each-player,
// for-each, if, switch, execute, phase, action-step, and
// simultaneous-action-step nodes. Construction uses fluent, composable
// functions (Sequence, Loop, ...) that return an immutable Node;
// pkg/flowengine is the stack interpreter that walks the graph these
// functions build. Node is a Go interface standing in for the sum type
// spec.md §9 calls for, since Go has no tagged unions.
package flow
