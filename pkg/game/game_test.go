package game_test

import (
	"testing"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/game"
)

func newTestGame(t *testing.T, playerCount int, def game.Definition) *game.Game {
	t.Helper()
	g, err := game.New(game.Options{
		PlayerCount: playerCount,
		Seed:        "game-test",
	}, def)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNew_SeatsPlayersWithFirstCurrent(t *testing.T) {
	g := newTestGame(t, 3, game.Definition{})

	players := g.Players()
	if len(players) != 3 {
		t.Fatalf("expected 3 players, got %d", len(players))
	}
	for i, p := range players {
		if p.Position() != i+1 {
			t.Fatalf("expected player %d at position %d, got %d", i, i+1, p.Position())
		}
	}
	if !players[0].IsCurrent() {
		t.Fatal("expected player 1 to be current by default")
	}
	if g.CurrentPlayer().Position() != 1 {
		t.Fatalf("expected CurrentPlayer to be position 1, got %d", g.CurrentPlayer().Position())
	}
}

func TestNew_PlayerNamesOverrideDefaults(t *testing.T) {
	g, err := game.New(game.Options{
		PlayerCount: 2,
		PlayerNames: []string{"Alice", ""},
	}, game.Definition{})
	if err != nil {
		t.Fatal(err)
	}
	p1, _ := g.Player(1)
	p2, _ := g.Player(2)
	if p1.Name() != "Alice" {
		t.Fatalf("expected explicit name Alice, got %q", p1.Name())
	}
	if p2.Name() != "Player 2" {
		t.Fatalf("expected default name Player 2, got %q", p2.Name())
	}
}

func TestSetCurrentPlayer_EnforcesExactlyOne(t *testing.T) {
	g := newTestGame(t, 3, game.Definition{})

	if err := g.SetCurrentPlayer(3); err != nil {
		t.Fatal(err)
	}
	for _, p := range g.Players() {
		want := p.Position() == 3
		if p.IsCurrent() != want {
			t.Fatalf("position %d: IsCurrent()=%v, want %v", p.Position(), p.IsCurrent(), want)
		}
	}

	if err := g.SetCurrentPlayer(99); err == nil {
		t.Fatal("expected an error for an out-of-range position")
	}
}

func TestRoot_IsTheSpaceGameEmbeds(t *testing.T) {
	g := newTestGame(t, 1, game.Definition{})
	if g.Root() != element.Element(g.Space) {
		t.Fatal("expected Root() to return the embedded Space")
	}
	if g.Root().ClassName() != "Space" {
		t.Fatalf("expected root class Space, got %q", g.Root().ClassName())
	}
	// Players are children of the root.
	kids := g.Root().Children()
	if len(kids) != 1 {
		t.Fatalf("expected 1 child (the player), got %d", len(kids))
	}
}

func TestLog_RendersPlaceholdersWithDisplayNames(t *testing.T) {
	g, err := game.New(game.Options{
		PlayerCount: 1,
		PlayerNames: []string{"Alice"},
	}, game.Definition{})
	if err != nil {
		t.Fatal(err)
	}
	p, _ := g.Player(1)
	g.Log("{{player}} drew {{count}} cards", map[string]any{"player": p, "count": 3})

	msgs := g.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	got := msgs[0].Render()
	want := "Alice drew 3 cards"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLog_UnresolvedPlaceholderIsLeftAlone(t *testing.T) {
	g := newTestGame(t, 1, game.Definition{})
	g.Log("{{missing}} happened", nil)
	if got := g.Messages()[0].Render(); got != "{{missing}} happened" {
		t.Fatalf("expected untouched placeholder, got %q", got)
	}
}

func TestProject_ListsAvailableActionsAndPicks(t *testing.T) {
	def := game.Definition{
		RegisterActions: func(ex *executor.Executor) {
			ex.Register(action.NewBuilder("draw").
				NumberPick("count", action.Bounds(1, 3)).
				ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(nil) }).
				Build())
		},
	}
	g := newTestGame(t, 2, def)

	state := g.Project(1)
	if state.Phase != "" {
		t.Fatalf("expected empty phase, got %q", state.Phase)
	}
	if len(state.Players) != 2 {
		t.Fatalf("expected 2 players in projection, got %d", len(state.Players))
	}
	if state.CurrentPlayerPosition != 1 {
		t.Fatalf("expected current player position 1, got %d", state.CurrentPlayerPosition)
	}
	if len(state.AvailableActions) != 1 || state.AvailableActions[0] != "draw" {
		t.Fatalf("expected only draw available, got %v", state.AvailableActions)
	}
	meta, ok := state.ActionMetadata["draw"]
	if !ok {
		t.Fatal("expected action metadata for draw")
	}
	if len(meta.Picks) != 1 || meta.Picks[0].Kind != "number" {
		t.Fatalf("expected one number pick, got %+v", meta.Picks)
	}
	if meta.Picks[0].Min != 1 || meta.Picks[0].Max != 3 {
		t.Fatalf("expected bounds [1,3], got [%d,%d]", meta.Picks[0].Min, meta.Picks[0].Max)
	}
}

func TestGame_DrivesAFlowThroughTheEngine(t *testing.T) {
	def := game.Definition{
		RegisterActions: func(ex *executor.Executor) {
			ex.Register(action.NewBuilder("pass").
				ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(nil) }).
				Build())
		},
		Flow: flow.ActionStep(flow.ActionStepNode{
			Actions:  []string{"pass"},
			MaxMoves: 1,
		}),
	}
	g := newTestGame(t, 1, def)

	eng := g.Engine()
	if eng == nil {
		t.Fatal("expected a non-nil engine when Definition.Flow is set")
	}
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if !eng.AwaitingInput() {
		t.Fatal("expected the action-step to raise a barrier")
	}
	if _, err := eng.Resume("pass", nil); err != nil {
		t.Fatal(err)
	}
	if !eng.IsComplete() {
		t.Fatal("expected the flow to complete after the single move")
	}
}

func TestRNG_SameSeedProducesTheSameSequence(t *testing.T) {
	a := newTestGame(t, 1, game.Definition{})
	b := newTestGame(t, 1, game.Definition{})

	for i := 0; i < 5; i++ {
		av, bv := a.RNG().Float64(), b.RNG().Float64()
		if av != bv {
			t.Fatalf("draw %d diverged: %v vs %v", i, av, bv)
		}
	}
}

func TestSnapshot_RestoreRoundTrip(t *testing.T) {
	def := game.Definition{
		RegisterActions: func(ex *executor.Executor) {
			ex.Register(action.NewBuilder("pass").
				ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(nil) }).
				Build())
		},
	}
	g, err := game.New(game.Options{
		PlayerCount: 2,
		PlayerNames: []string{"Alice", "Bob"},
		Seed:        "restore-test",
	}, def)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.SetCurrentPlayer(2); err != nil {
		t.Fatal(err)
	}
	p2, _ := g.Player(2)
	g.Log("{{player}} passed", map[string]any{"player": p2})
	wantNext := g.RNG().Float64() // advance the sequence before capturing state

	restored, err := game.Restore(g.Snapshot(), def)
	if err != nil {
		t.Fatal(err)
	}

	if restored.CurrentPlayer().Position() != 2 {
		t.Fatalf("expected restored current player 2, got %d", restored.CurrentPlayer().Position())
	}
	rp2, ok := restored.Player(2)
	if !ok || rp2.Name() != "Bob" {
		t.Fatalf("expected restored player 2 named Bob, got %+v", rp2)
	}
	if got := restored.Messages()[0].Render(); got != "Bob passed" {
		t.Fatalf("expected restored message %q, got %q", "Bob passed", got)
	}
	if got := restored.RNG().Float64(); got == wantNext {
		t.Fatalf("expected the restored RNG to resume after the captured draw, not repeat it")
	}

	if restored.Executor() == nil {
		t.Fatal("expected Restore to re-register actions from the passed-in Definition")
	}
	if len(restored.Executor().AvailableActions(rp2)) != 1 {
		t.Fatal("expected the pass action to be available on the restored game")
	}
}
