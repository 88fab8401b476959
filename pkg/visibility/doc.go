// Package visibility resolves what a given player may see of a given
// element. It imports no other BoardSmith package, so pkg/element,
// pkg/wire, and pkg/game can all depend on it without a cycle.
package visibility
