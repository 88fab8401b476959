// Package game wires together a single game instance: the element tree
// (spec.md §3), the action executor (spec.md §4.4), the flow engine
// (spec.md §4.7), and the ambient bits every game needs regardless of
// its rules — RNG, players, phase, a deferred-substitution message log,
// and per-viewer projection (spec.md §4.2, §4.8).
//
// Game is the object every other BoardSmith package is written against
// through a narrow consumer-defined interface (action.GameAPI,
// flow.GameAPI, flowengine.GameAPI); Game itself is the one place all
// three are satisfied at once, grounded on the teacher's
// pkg/dungeon.DefaultGenerator as "the object that owns and orchestrates
// every other subsystem, constructed via a validated Config" (see
// DESIGN.md).
package game
