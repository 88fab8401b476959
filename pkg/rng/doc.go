// Package rng provides the deterministic random number source a Game uses
// for every random decision: shuffles, weighted choices, dice.
//
// # Overview
//
// An RNG is constructed from a single finite string seed and exposes one
// primitive operation, Float64, returning a uniform value in [0,1). Every
// other helper (Intn, Shuffle, WeightedChoice, Bool) is built on top of
// that primitive. The point of a single primitive is determinism: replay
// (see pkg/session) reconstructs a game by reapplying its action history
// against a fresh RNG built from the same seed string, so the exact
// sequence Float64 produces is part of the engine's wire contract, not an
// implementation detail.
//
// # Algorithm
//
// The seed string is folded into a 32-bit accumulator the way a simple
// string hash does, then advanced with the mulberry32 generator. Both
// steps use wrapping 32-bit arithmetic; see rng.go for the exact formula.
// This is intentionally NOT math/rand: math/rand's output is not part of
// any cross-language contract, and a future non-Go client replaying the
// same action history must derive the identical sequence from the same
// seed string.
//
// # Usage
//
//	r := rng.New("abc")
//	v := r.Float64()          // first draw, deterministic given "abc"
//	i := r.Intn(6)            // die roll in [0,6)
//	r.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
//
// # Thread safety
//
// An RNG is not safe for concurrent use. Games are single-threaded
// cooperative (see pkg/game), so each Game owns exactly one RNG and every
// entry point that consumes randomness runs to completion before another
// can begin.
package rng
