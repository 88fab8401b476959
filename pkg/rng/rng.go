package rng

import "unicode/utf16"

// RNG is a deterministic uniform [0,1) generator seeded from a string. See
// the package doc for why the algorithm is fixed rather than delegated to
// math/rand.
type RNG struct {
	seed string
	acc  uint32
}

// New constructs an RNG from a finite string seed. The same seed always
// produces the same Float64 sequence, on any platform, forever.
func New(seed string) *RNG {
	return &RNG{seed: seed, acc: foldSeed(seed)}
}

// Seed returns the string this RNG was constructed from, so callers (and
// replay) can reconstruct an identical RNG without threading the original
// value through separately.
func (r *RNG) Seed() string { return r.seed }

// State returns the current accumulator value, so a checkpoint can
// resume an RNG mid-sequence rather than only from its initial seed.
func (r *RNG) State() uint32 { return r.acc }

// Resume reconstructs an RNG at a specific point in its sequence: the
// original seed string plus the accumulator value State returned
// earlier. Two RNGs built this way from the same (seed, state) pair
// produce identical subsequent draws.
func Resume(seed string, state uint32) *RNG {
	return &RNG{seed: seed, acc: state}
}

// foldSeed folds a string's UTF-16 code units into a 32-bit accumulator.
// This mirrors the classic `(seed<<5) - seed + code` string-hash fold,
// computed with wrapping uint32 arithmetic throughout.
func foldSeed(s string) uint32 {
	var h uint32
	for _, code := range utf16.Encode([]rune(s)) {
		h = h<<5 - h + uint32(code)
	}
	return h
}

// Float64 returns the next uniform value in [0,1). This is the one
// primitive operation every other helper on RNG is built from.
//
// The update is mulberry32: advance the accumulator by a fixed odd
// constant, then run it through two xorshift-multiply rounds. Every step
// uses 32-bit arithmetic that wraps on overflow, which Go's uint32 type
// does natively.
func (r *RNG) Float64() float64 {
	r.acc += 0x6D2B79F5
	t := r.acc
	t = (t ^ (t >> 15)) * (t | 1)
	t = (t + (t^(t>>7))*(t|61)) ^ t
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns a deterministic value in [0,n). Panics if n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	return int(r.Float64() * float64(n))
}

// IntRange returns a deterministic value in [min,max], inclusive on both
// ends. Panics if max < min.
func (r *RNG) IntRange(min, max int) int {
	if max < min {
		panic("rng: IntRange called with max < min")
	}
	return min + r.Intn(max-min+1)
}

// Float64Range returns a deterministic value in [min,max). Panics if max
// < min.
func (r *RNG) Float64Range(min, max float64) float64 {
	if max < min {
		panic("rng: Float64Range called with max < min")
	}
	return min + r.Float64()*(max-min)
}

// Bool returns a deterministic coin flip.
func (r *RNG) Bool() bool {
	return r.Float64() < 0.5
}

// Shuffle permutes n elements in place via swap using Fisher-Yates driven
// by this RNG. The signature matches sort.Interface-style shuffles so
// callers can plug it directly into slice shuffling; pkg/collection's
// Shuffle and pkg/element's Tree.Shuffle (which Space.Shuffle delegates
// to) both call through here.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}

// WeightedChoice picks an index in [0,len(weights)) with probability
// proportional to its weight. Returns -1 if weights is empty or every
// weight is zero. Panics if any weight is negative.
func (r *RNG) WeightedChoice(weights []float64) int {
	var total float64
	for _, w := range weights {
		if w < 0 {
			panic("rng: WeightedChoice called with a negative weight")
		}
		total += w
	}
	if total <= 0 {
		return -1
	}
	draw := r.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if draw < cum {
			return i
		}
	}
	return len(weights) - 1
}
