// Package flowengine is the single-threaded stack interpreter over a
// pkg/flow graph (spec.md §4.7). State is an ordered frame stack plus a
// variables map; each tick pops a completed frame or advances the top
// frame, possibly pushing a child. The walk halts when awaiting player
// input, when the root completes, or after an absolute 10,000-iteration
// safety cap aborts with the current stack trace (spec.md §7). The only
// suspension points are action-step and simultaneous-action-step
// barriers (spec.md §5); every other node is pure control flow that
// resolves in the same tick it is entered or re-entered.
package flowengine
