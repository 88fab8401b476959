// Package snapshot captures a game's full state into a plain,
// serializable record tree (spec.md §4.10) and rebuilds live objects
// from one. Capture walks the element tree once; Rebuild walks a
// Snapshot's records once, in two passes (materialize, then resolve
// attribute references) mirroring pkg/wire.ResolveReferences's own
// two-pass contract. Validator checks a Snapshot against a class
// registry before Rebuild is trusted, the way pkg/session's checkpoint
// manager uses it to decide between a fast restore and a full replay.
package snapshot
