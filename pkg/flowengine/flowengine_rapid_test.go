package flowengine_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/flowengine"
)

// TestProperty_BoundedLoopsAlwaysCompleteAndCountExactly checks that any
// sequence of MaxIterations-bound loops, nested or sibling, always runs
// to completion and fires its body exactly as many times as the bounds
// call for — the safety cap (spec.md's 10,000-tick guard) should never
// need to intervene on a flow that is itself finite.
func TestProperty_BoundedLoopsAlwaysCompleteAndCountExactly(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		game := newFakeGame(t, 1)
		ex := executor.New(game)

		numLoops := rapid.IntRange(1, 5).Draw(t, "numLoops")
		counts := make([]int, numLoops)
		bounds := make([]int, numLoops)
		steps := make([]flow.Node, numLoops)

		for i := 0; i < numLoops; i++ {
			bounds[i] = rapid.IntRange(1, 20).Draw(t, "bound")
			idx := i
			steps[i] = flow.Loop(flow.LoopNode{
				MaxIterations: bounds[i],
				Do: flow.Execute(func(flow.Context) map[string]any {
					counts[idx]++
					return nil
				}),
			})
		}

		eng := flowengine.New(flow.Sequence(steps...), game, ex)
		if err := eng.Run(); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if !eng.IsComplete() {
			t.Fatal("expected a sequence of bounded loops to complete")
		}
		for i, got := range counts {
			if got != bounds[i] {
				t.Fatalf("loop %d ran %d times, want %d", i, got, bounds[i])
			}
		}
	})
}
