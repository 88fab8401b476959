package flowengine_test

import (
	"testing"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/flowengine"
	"github.com/shufflewick/boardsmith/pkg/rng"
)

// fakeGame is a minimal flowengine.GameAPI, mirroring pkg/executor's own
// test fixture plus a mutable phase for PhaseNode.
type fakeGame struct {
	root    element.Element
	pile    element.Element
	rng     *rng.RNG
	players []*element.Player
	current *element.Player
	phase   string
	logged  []string
}

func (g *fakeGame) Root() element.Element { return g.root }
func (g *fakeGame) Pile() element.Element { return g.pile }
func (g *fakeGame) RNG() *rng.RNG         { return g.rng }
func (g *fakeGame) Players() []*element.Player {
	return append([]*element.Player(nil), g.players...)
}
func (g *fakeGame) Player(position int) (*element.Player, bool) {
	for _, p := range g.players {
		if p.Position() == position {
			return p, true
		}
	}
	return nil, false
}
func (g *fakeGame) CurrentPlayer() *element.Player      { return g.current }
func (g *fakeGame) Log(key string, data map[string]any) { g.logged = append(g.logged, key) }
func (g *fakeGame) Settings() map[string]any            { return nil }
func (g *fakeGame) Phase() string                       { return g.phase }
func (g *fakeGame) SetPhase(name string)                { g.phase = name }

func newFakeGame(t *testing.T, playerCount int) *fakeGame {
	t.Helper()
	reg := element.NewRegistry()
	reg.Register("Space", func() element.Element { return element.NewSpace() })
	reg.Register("Piece", func() element.Element { return element.NewPiece() })
	reg.Register("Player", func() element.Element { return element.NewPlayer() })
	tr := element.NewTree(reg)

	root, err := tr.Create(tr.Pile(), "Space", "root", nil)
	if err != nil {
		t.Fatal(err)
	}

	game := &fakeGame{root: root, pile: tr.Pile(), rng: rng.New("flow-test")}
	for i := 1; i <= playerCount; i++ {
		pe, _ := tr.Create(root, "Player", "player", nil)
		p := pe.(*element.Player)
		p.SetPosition(i)
		game.players = append(game.players, p)
	}
	game.current = game.players[0]
	game.players[0].SetCurrent(true)
	return game
}

func TestEngine_SequenceAndExecute_MergesVariablesAndCompletes(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)

	root := flow.Sequence(
		flow.Execute(func(flow.Context) map[string]any { return map[string]any{"a": 1} }),
		flow.Execute(func(ctx flow.Context) map[string]any {
			a, _ := ctx.Var("a")
			return map[string]any{"b": a.(int) + 1}
		}),
	)

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if !eng.IsComplete() {
		t.Fatal("expected sequence of pure executes to complete in one Run call")
	}
}

func TestEngine_Loop_RespectsMaxIterations(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)

	count := 0
	root := flow.Loop(flow.LoopNode{
		MaxIterations: 3,
		Do: flow.Execute(func(flow.Context) map[string]any {
			count++
			return nil
		}),
	})

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Fatalf("expected exactly 3 iterations, got %d", count)
	}
	if !eng.IsComplete() {
		t.Fatal("expected loop to complete once MaxIterations is reached")
	}
}

func TestEngine_If_ChoosesBranch(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)

	var took string
	root := flow.If(flow.IfNode{
		Condition: func(flow.Context) bool { return false },
		Then:      flow.Execute(func(flow.Context) map[string]any { took = "then"; return nil }),
		Else:      flow.Execute(func(flow.Context) map[string]any { took = "else"; return nil }),
	})

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if took != "else" {
		t.Fatalf("expected the else branch, got %q", took)
	}
}

func TestEngine_SafetyCap_AbortsRunawayLoop(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)

	root := flow.Loop(flow.LoopNode{
		While: func(flow.Context) bool { return true },
		Do:    flow.Sequence(),
	})

	eng := flowengine.New(root, game, ex)

	defer func() {
		if recover() == nil {
			t.Fatal("expected the 10,000-tick safety cap to panic on a runaway loop")
		}
	}()
	eng.Run()
}

func registerAB(ex *executor.Executor, onA func(ctx action.Context) action.Result) {
	ex.Register(action.NewBuilder("A").
		ExecuteFn(onA).
		Build())
	ex.Register(action.NewBuilder("B").
		ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(map[string]any{"did": "B"}) }).
		Build())
}

func TestEngine_ActionStep_FollowUpDoesNotCountAsAMove(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)
	registerAB(ex, func(ctx action.Context) action.Result {
		return action.Ok(map[string]any{"did": "A"}).WithFollowUp("B", nil)
	})

	root := flow.ActionStep(flow.ActionStepNode{
		Actions:  []string{"A", "B"},
		MaxMoves: 2,
	})

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if !eng.AwaitingInput() {
		t.Fatal("expected the action-step to raise a barrier")
	}
	if got := eng.AwaitingActions(); len(got) != 2 {
		t.Fatalf("expected both A and B offered, got %v", got)
	}

	result, err := eng.Resume("A", nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.FollowUp == nil || result.FollowUp.Action != "B" {
		t.Fatalf("expected A to chain into a B follow-up, got %+v", result)
	}
	if !eng.AwaitingInput() {
		t.Fatal("expected the engine to re-raise the barrier for the follow-up")
	}
	if got := eng.AwaitingActions(); len(got) != 1 || got[0] != "B" {
		t.Fatalf("expected only the follow-up action B offered, got %v", got)
	}

	if _, err := eng.Resume("B", nil); err != nil {
		t.Fatal(err)
	}
	// A->B follow-up chain counts as one move; maxMoves is 2, so the
	// step must still be awaiting a second move.
	if !eng.AwaitingInput() {
		t.Fatal("expected the action-step to still need a second move")
	}
	if got := eng.AwaitingActions(); len(got) != 2 {
		t.Fatalf("expected both A and B offered again for the second move, got %v", got)
	}

	if _, err := eng.Resume("A", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Resume("B", nil); err != nil {
		t.Fatal(err)
	}
	if !eng.IsComplete() {
		t.Fatal("expected the action-step to complete after its second move")
	}
}

func TestEngine_ActionStep_RepeatUntilEndsTheStepBeforeMaxMovesIsReached(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)
	stop := false
	ex.Register(action.NewBuilder("A").
		ExecuteFn(func(ctx action.Context) action.Result {
			stop = true
			return action.Ok(nil)
		}).
		Build())

	// MaxMoves caps the step at 3, but RepeatUntil holds after the very
	// first move — the step must end there rather than waiting for
	// MaxMoves, since the two conditions are independent, not mutually
	// exclusive.
	root := flow.ActionStep(flow.ActionStepNode{
		Actions:  []string{"A"},
		MaxMoves: 3,
		RepeatUntil: func(flow.Context) bool {
			return stop
		},
	})

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.Resume("A", nil); err != nil {
		t.Fatal(err)
	}
	if !eng.IsComplete() {
		t.Fatal("expected RepeatUntil to end the step after one move despite MaxMoves allowing three")
	}
}

func TestEngine_SimultaneousActionStep_WaitsForEveryPlayer(t *testing.T) {
	game := newFakeGame(t, 3)
	ex := executor.New(game)
	ex.Register(action.NewBuilder("discard").
		ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(nil) }).
		Build())

	root := flow.SimultaneousActionStep(flow.SimultaneousActionStepNode{
		Actions: []string{"discard"},
	})

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if !eng.AwaitingInput() {
		t.Fatal("expected a simultaneous barrier")
	}
	if len(eng.AwaitingPlayers()) != 3 {
		t.Fatalf("expected all 3 players awaiting, got %d", len(eng.AwaitingPlayers()))
	}

	p1, _ := game.Player(1)
	p2, _ := game.Player(2)
	p3, _ := game.Player(3)

	if _, err := eng.ResumeSimultaneous(p1, "discard", nil); err != nil {
		t.Fatal(err)
	}
	if eng.IsComplete() {
		t.Fatal("expected the step to still be waiting on players 2 and 3")
	}
	if _, err := eng.ResumeSimultaneous(p2, "discard", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := eng.ResumeSimultaneous(p3, "discard", nil); err != nil {
		t.Fatal(err)
	}
	if !eng.IsComplete() {
		t.Fatal("expected the simultaneous step to complete once every player has moved")
	}
}

func TestEngine_PositionAndRestore_ResumesAtTheSameBarrier(t *testing.T) {
	game := newFakeGame(t, 1)
	ex := executor.New(game)
	ex.Register(action.NewBuilder("play").
		ExecuteFn(func(ctx action.Context) action.Result { return action.Ok(nil) }).
		Build())

	root := flow.Sequence(
		flow.Execute(func(flow.Context) map[string]any { return map[string]any{"started": true} }),
		flow.ActionStep(flow.ActionStepNode{Actions: []string{"play"}, MaxMoves: 1}),
	)

	eng := flowengine.New(root, game, ex)
	if err := eng.Run(); err != nil {
		t.Fatal(err)
	}
	if !eng.AwaitingInput() {
		t.Fatal("expected to pause at the action-step barrier")
	}
	pos := eng.Position()
	if len(pos.Path) != 2 {
		t.Fatalf("expected a 2-deep path (sequence, action-step), got %v", pos.Path)
	}
	if started, _ := pos.Variables["started"]; started != true {
		t.Fatalf("expected the execute node's variable to survive into the position, got %+v", pos.Variables)
	}

	restored, err := flowengine.Restore(root, pos, game, ex)
	if err != nil {
		t.Fatal(err)
	}
	if !restored.AwaitingInput() {
		t.Fatal("expected the restored engine to resume awaiting the same barrier")
	}
	if got := restored.AwaitingActions(); len(got) != 1 || got[0] != "play" {
		t.Fatalf("expected the restored barrier to still offer play, got %v", got)
	}

	if _, err := restored.Resume("play", nil); err != nil {
		t.Fatal(err)
	}
	if !restored.IsComplete() {
		t.Fatal("expected the restored engine to complete after its single move")
	}
}
