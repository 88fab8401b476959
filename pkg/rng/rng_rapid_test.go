package rng

import (
	"testing"

	"pgregory.net/rapid"
)

// TestProperty_SameSeedSameSequence checks that any two RNGs built from
// the same seed draw the identical sequence of Float64 values and end
// with the same accumulator state. Intn, IntRange, Bool, and Shuffle
// all draw through Float64.
func TestProperty_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.String().Draw(t, "seed")
		draws := rapid.IntRange(1, 50).Draw(t, "draws")

		r1 := New(seed)
		r2 := New(seed)

		for i := 0; i < draws; i++ {
			if v1, v2 := r1.Float64(), r2.Float64(); v1 != v2 {
				t.Fatalf("draw %d diverged: %v vs %v", i, v1, v2)
			}
		}
		if r1.State() != r2.State() {
			t.Fatalf("final state diverged: %d vs %d", r1.State(), r2.State())
		}
	})
}

// TestProperty_ResumeContinuesTheSameSequence checks that Resume picks
// up exactly where the original RNG left off: drawing k values then
// resuming from (seed, state) and drawing the rest must equal drawing
// all of them from a single unbroken RNG.
func TestProperty_ResumeContinuesTheSameSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.String().Draw(t, "seed")
		before := rapid.IntRange(0, 20).Draw(t, "before")
		after := rapid.IntRange(1, 20).Draw(t, "after")

		reference := New(seed)
		var checkpointState uint32
		for i := 0; i < before+after; i++ {
			if i == before {
				checkpointState = reference.State()
			}
			reference.Float64()
		}

		resumed := Resume(seed, checkpointState)
		live := New(seed)
		for i := 0; i < before; i++ {
			live.Float64()
		}

		for i := 0; i < after; i++ {
			if v1, v2 := resumed.Float64(), live.Float64(); v1 != v2 {
				t.Fatalf("draw %d after resume diverged: %v vs %v", i, v1, v2)
			}
		}
	})
}

// TestProperty_IntnAlwaysInRange checks Intn(n) never escapes [0, n).
func TestProperty_IntnAlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.String().Draw(t, "seed")
		n := rapid.IntRange(1, 1000).Draw(t, "n")
		r := New(seed)
		for i := 0; i < 30; i++ {
			v := r.Intn(n)
			if v < 0 || v >= n {
				t.Fatalf("Intn(%d) = %d, out of range", n, v)
			}
		}
	})
}

// TestProperty_ShufflePreservesMultiset checks that Shuffle permutes a
// slice without losing or duplicating any element, for any length and
// any seed.
func TestProperty_ShufflePreservesMultiset(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.String().Draw(t, "seed")
		n := rapid.IntRange(0, 100).Draw(t, "n")

		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		seen := make([]int, n)
		copy(seen, items)

		r := New(seed)
		r.Shuffle(len(seen), func(i, j int) { seen[i], seen[j] = seen[j], seen[i] })

		counts := make(map[int]int, n)
		for _, v := range items {
			counts[v]++
		}
		for _, v := range seen {
			counts[v]--
		}
		for v, c := range counts {
			if c != 0 {
				t.Fatalf("value %d count changed by %d after shuffle", v, c)
			}
		}
	})
}
