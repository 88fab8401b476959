// Package executor turns a pkg/action.Definition into validated,
// atomic mutations: availability computation with a debug trace
// (spec.md §4.4), declaration-order pick resolution (legal sets are
// not grouped by a pick's DependsOn names), skipIfOnlyOne
// auto-selection, bounds enforcement,
// and the pending (multi-step) state machine for actions that need
// intermediate server round-trips, including repeating picks and
// follow-up chaining (spec.md §4.5).
package executor
