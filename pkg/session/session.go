package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/game"
	"github.com/shufflewick/boardsmith/pkg/snapshot"
	"github.com/shufflewick/boardsmith/pkg/wire"
)

// Options configures a new Session. It embeds game.Options (spec.md's
// generalized dungeon.Config) and adds PlayerConfigs, which carries
// lobby-derived per-player data (AI difficulty, chosen color, whatever a
// host's lobby collects) forward through every reconstruction path —
// New, Replay, and SwapClasses's fallback replay all see the same
// PlayerConfigs a fresh construction would.
type Options struct {
	game.Options
	PlayerConfigs []map[string]any
}

// BroadcastFunc pushes one viewer's serialized projection to whatever
// transport a host wires up. Session has no opinion on that transport —
// spec.md §1 places websocket framing and network transports out of
// scope, so this is deliberately the narrowest possible seam: a
// position and a JSON payload.
type BroadcastFunc func(viewerPosition int, projection []byte)

// Session owns one live *game.Game, the serialized history that
// produced it, and the ambient bookkeeping (broadcast, AI circuit
// breaker, checkpoints) spec.md §4.9 assigns to the session layer
// rather than the game itself.
type Session struct {
	mu sync.Mutex

	opts Options
	def  game.Definition
	g    *game.Game

	history     wire.ActionHistory
	broadcast   BroadcastFunc
	advisor     AIAdvisor
	aiFailures  int
	aiTripped   bool
	checkpoints *checkpointManager
}

// New constructs a fresh game from opts and def and wraps it in a
// Session. broadcast and advisor may both be nil: a nil broadcast means
// PerformAction never pushes projections, a nil advisor means the
// cooperative AI check is never run.
func New(opts Options, def game.Definition, broadcast BroadcastFunc, advisor AIAdvisor) (*Session, error) {
	g, err := game.New(opts.Options, def)
	if err != nil {
		return nil, err
	}
	return &Session{
		opts:        opts,
		def:         def,
		g:           g,
		history:     wire.ActionHistory{CreatedAt: time.Now().UnixMilli()},
		broadcast:   broadcast,
		advisor:     advisor,
		checkpoints: newCheckpointManager(),
	}, nil
}

// Game returns the session's current live game. Callers must not retain
// it across a Rewind or SwapClasses call, which replace it outright.
func (s *Session) Game() *game.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g
}

// History returns the action history that produced the current game
// state.
func (s *Session) History() wire.ActionHistory {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

// AICircuitTripped reports whether three consecutive AI-advisor
// failures have disabled further checks for this session.
func (s *Session) AICircuitTripped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.aiTripped
}

// PerformAction routes name/args to the flow engine if the game has
// one, or directly to the executor otherwise, appends the result to
// history on success, then broadcasts and runs the cooperative AI check.
// A failed action leaves history, the checkpoint window, and the live
// game entirely unchanged, matching spec.md §7's "no partial-commit
// path" policy.
func (s *Session) PerformAction(playerPos int, name string, args map[string]any) (action.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := applyAction(s.g, playerPos, name, args)
	if err != nil {
		return action.Result{}, err
	}

	s.history = s.history.Append(wire.SerializedAction{Name: name, Player: playerPos, Args: args})
	s.checkpoints.maybeCapture(len(s.history.Actions), s.g.Snapshot)
	s.broadcastAllLocked()
	s.checkAILocked(playerPos)
	return result, nil
}

// applyAction is the single place that decides how one serialized
// action gets applied to a *game.Game, shared by PerformAction and
// every replay path so the two can never disagree about routing.
func applyAction(g *game.Game, playerPos int, name string, args map[string]any) (action.Result, error) {
	eng := g.Engine()
	if eng == nil {
		player, ok := g.Player(playerPos)
		if !ok {
			return action.Result{}, boardsmith.InvalidPlayerError(playerPos)
		}
		return g.Executor().PerformDirect(player, name, args)
	}

	if awaiting := eng.AwaitingPlayers(); len(awaiting) > 0 {
		var player *element.Player
		for _, p := range awaiting {
			if p.Position() == playerPos {
				player = p
				break
			}
		}
		if player == nil {
			return action.Result{}, boardsmith.NotYourTurnError(playerPos, 0)
		}
		return eng.ResumeSimultaneous(player, name, args)
	}

	if awaitingPlayer := eng.AwaitingPlayer(); awaitingPlayer != nil {
		if awaitingPlayer.Position() != playerPos {
			return action.Result{}, boardsmith.NotYourTurnError(playerPos, awaitingPlayer.Position())
		}
		return eng.Resume(name, args)
	}

	return action.Result{}, boardsmith.InternalErrorf("flow engine is not awaiting any input")
}

// BeginAction starts stepwise resolution of name for the player at
// playerPos without driving it to completion, for a UI that needs
// contingent pick data before committing to execute (spec.md §4.9's
// "stepwise pick choices fetch"). Use Session.PickChoices and
// Session.StepAction to drive the returned PendingAction; a non-nil
// *action.Result means every pick auto-resolved and the action already
// ran — callers must still route that outcome through PerformAction's
// bookkeeping via CompleteAction.
func (s *Session) BeginAction(playerPos int, name string) (*executor.PendingAction, *action.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.g.Player(playerPos)
	if !ok {
		return nil, nil, boardsmith.InvalidPlayerError(playerPos)
	}
	return s.g.Executor().Begin(player, name)
}

// PickChoices returns the legal value set for the pick pending is
// currently awaiting, without submitting anything.
func (s *Session) PickChoices(pending *executor.PendingAction) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pick, ok := pending.CurrentPick()
	if !ok {
		return nil, boardsmith.InternalErrorf("pending action %q has no current pick", pending.Definition.Name)
	}
	ctx := action.Context{Game: s.g, Player: pending.Player, Args: pending.Args}
	return pick.LegalSet(ctx), nil
}

// StepAction submits one value to pending's current pick. A non-nil
// *action.Result means the action completed; the caller is responsible
// for then calling CompleteAction so the session records it the same
// way PerformAction would.
func (s *Session) StepAction(pending *executor.PendingAction, pickName string, value any) (*executor.PendingAction, *action.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.g.Executor().Step(pending, pickName, value)
}

// CompleteAction records a stepwise action's result into history and
// runs the same broadcast/AI-check bookkeeping PerformAction runs after
// a direct completion.
func (s *Session) CompleteAction(playerPos int, name string, args map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = s.history.Append(wire.SerializedAction{Name: name, Player: playerPos, Args: args})
	s.checkpoints.maybeCapture(len(s.history.Actions), s.g.Snapshot)
	s.broadcastAllLocked()
	s.checkAILocked(playerPos)
}

func (s *Session) broadcastAllLocked() {
	if s.broadcast == nil {
		return
	}
	for _, p := range s.g.Players() {
		proj := s.g.Project(p.Position())
		payload, err := json.Marshal(proj)
		if err != nil {
			continue
		}
		s.broadcast(p.Position(), payload)
	}
}

func (s *Session) checkAILocked(actorPos int) {
	if s.advisor == nil || s.aiTripped {
		return
	}
	proj := s.g.Project(actorPos)
	ok, err := s.advisor.Check(context.Background(), actorPos, proj)
	if err != nil || !ok {
		s.aiFailures++
		if s.aiFailures >= 3 {
			s.aiTripped = true
		}
		return
	}
	s.aiFailures = 0
}

// Replay reconstructs a game from scratch: a fresh game.New(opts, def)
// followed by applyAction for every entry in history, in order. A
// registry mismatch or any other divergence fails fast with a
// boardsmith.ReplayFailedError naming the offending action's index.
func Replay(opts Options, def game.Definition, history wire.ActionHistory) (*game.Game, error) {
	g, err := game.New(opts.Options, def)
	if err != nil {
		return nil, err
	}
	for i, a := range history.Actions {
		if _, err := applyAction(g, a.Player, a.Name, a.Args); err != nil {
			return nil, boardsmith.ReplayFailedError(fmt.Sprintf("action %d (%s)", i, a.Name), err)
		}
	}
	return g, nil
}

// partialReplay restores from entry's snapshot and applies only the
// actions after it, the fast path Rewind and SwapClasses prefer over a
// full Replay.
func partialReplay(entry checkpointEntry, def game.Definition, actions []wire.SerializedAction) (*game.Game, error) {
	g, err := game.Restore(entry.snap, def)
	if err != nil {
		return nil, err
	}
	for _, a := range actions {
		if _, err := applyAction(g, a.Player, a.Name, a.Args); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Rewind discards history after index to and restores the game to the
// state it was in right after the to-th action (0 means the initial,
// pre-action state). It prefers the nearest checkpoint at or before to
// when that checkpoint's classes still validate against the session's
// current Definition, falling back to a full Replay otherwise.
func (s *Session) Rewind(to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.history.Actions)
	if to < 0 {
		return boardsmith.InvalidActionIndexError(to, current)
	}
	if to > current {
		return boardsmith.CannotRewindForwardError(to, current)
	}

	if entry, ok := s.checkpoints.nearest(to); ok {
		registry := game.NewRegistry(s.def)
		report, verr := snapshot.NewValidator().Validate(context.Background(), entry.snap, registry)
		if verr == nil && report.Passed {
			if g, err := partialReplay(entry, s.def, s.history.Actions[entry.index:to]); err == nil {
				s.g = g
				s.history = s.history.Truncate(to)
				s.checkpoints.invalidateAfter(to)
				return nil
			}
		}
	}

	g, err := Replay(s.opts, s.def, s.history.Truncate(to))
	if err != nil {
		return err
	}
	s.g = g
	s.history = s.history.Truncate(to)
	s.checkpoints.invalidateAfter(to)
	return nil
}

// Undo rewinds by exactly one action.
func (s *Session) Undo() error {
	s.mu.Lock()
	n := len(s.history.Actions)
	s.mu.Unlock()
	if n == 0 {
		return boardsmith.NoActionsToUndoError()
	}
	return s.Rewind(n - 1)
}

// SwapClasses hot-reloads the session's Definition (spec.md §4.9 "hot
// reload"): it validates the current game's snapshot against the new
// Definition's class registry, restores directly if every class
// resolves, and falls back to a full replay of the entire history under
// the new Definition otherwise (spec.md §8 scenario 6). Either path
// ends in the same state a full replay under the new Definition would
// have produced; only the cost differs.
func (s *Session) SwapClasses(def game.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.g.Snapshot()
	registry := game.NewRegistry(def)
	report, err := snapshot.NewValidator().Validate(context.Background(), snap, registry)
	if err == nil && report.Passed {
		if g, restoreErr := game.Restore(snap, def); restoreErr == nil {
			s.def = def
			s.g = g
			s.checkpoints.invalidateAfter(len(s.history.Actions))
			return nil
		}
	}

	g, err := Replay(s.opts, def, s.history)
	if err != nil {
		return fmt.Errorf("session: hot reload fallback replay failed: %w", err)
	}
	s.def = def
	s.g = g
	s.checkpoints.reset()
	return nil
}
