package session_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/shufflewick/boardsmith/pkg/game"
	"github.com/shufflewick/boardsmith/pkg/session"
)

// TestProperty_ReplayReproducesTheSameState checks that replaying any
// recorded history of "increment" actions under a fresh Definition
// always reaches exactly the state the original session reached,
// regardless of how many actions were performed or which of the two
// seated players performed each one.
func TestProperty_ReplayReproducesTheSameState(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.String().Draw(t, "seed")
		n := rapid.IntRange(0, 30).Draw(t, "n")

		opts := session.Options{Options: game.Options{PlayerCount: 2, Seed: seed}}
		def := countingDefinition()
		s, err := session.New(opts, def, nil, nil)
		require.NoError(t, err)

		for i := 0; i < n; i++ {
			player := rapid.SampledFrom([]int{1, 2}).Draw(t, "player")
			_, err := s.PerformAction(player, "increment", nil)
			require.NoError(t, err)
		}

		replayed, err := session.Replay(opts, def, s.History())
		require.NoError(t, err)

		originalCount, _ := s.Game().Root().Attr("count")
		replayedCount, _ := replayed.Root().Attr("count")
		require.Equal(t, originalCount, replayedCount)
		require.Equal(t, n, len(s.History().Actions))
	})
}
