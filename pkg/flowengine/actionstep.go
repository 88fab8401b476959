package flowengine

import (
	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/flow"
)

// availableTo filters candidates to the names the executor currently
// reports available to player.
func (e *Engine) availableTo(player *element.Player, candidates []string) []string {
	var out []string
	for _, name := range candidates {
		if e.executor.IsAvailable(player, name).Available {
			out = append(out, name)
		}
	}
	return out
}

func (e *Engine) advanceActionStep(top *frame, n flow.ActionStepNode) {
	if _, entered := top.data["entered"]; !entered {
		top.data["entered"] = true
		top.data["moveCount"] = 0
		if n.SkipIf != nil && n.SkipIf(e.ctx()) {
			top.completed = true
			return
		}
	}

	ctx := e.ctx()
	player := e.currentPlayer()
	if n.Player != nil {
		player = n.Player(ctx)
	}
	top.data["player"] = player

	var actions []string
	if fu, ok := top.data["pendingFollowUp"].(string); ok {
		actions = []string{fu}
	} else {
		actions = e.availableTo(player, n.Actions)
	}

	if len(actions) == 0 {
		top.completed = true
		return
	}

	e.awaiting = true
	e.awaitingKind = flow.KindActionStep
	e.awaitingPlayer = player
	e.awaitingActions = actions
}

// Resume submits actionName with args on behalf of the player an
// action-step barrier is currently waiting on, then re-advances the
// engine until the next barrier or completion.
func (e *Engine) Resume(actionName string, args map[string]any) (action.Result, error) {
	if !e.awaiting || e.awaitingKind != flow.KindActionStep {
		return action.Result{}, boardsmith.InternalErrorf("flow engine is not awaiting an action-step input")
	}
	top := e.top()
	n := top.node.(flow.ActionStepNode)
	player := top.data["player"].(*element.Player)

	if !containsString(e.awaitingActions, actionName) {
		return action.Result{}, boardsmith.ActionNotAvailableError(actionName, player.Position())
	}

	effectiveArgs := args
	if seed, ok := top.data["pendingFollowUpArgs"].(map[string]any); ok {
		effectiveArgs = mergeArgs(seed, args)
	}

	result, err := e.executor.PerformDirect(player, actionName, effectiveArgs)
	if err != nil {
		return action.Result{}, err
	}

	e.awaiting = false
	if result.FollowUp != nil {
		top.data["pendingFollowUp"] = result.FollowUp.Action
		top.data["pendingFollowUpArgs"] = result.FollowUp.Args
	} else {
		delete(top.data, "pendingFollowUp")
		delete(top.data, "pendingFollowUpArgs")
		moveCount := top.data["moveCount"].(int) + 1
		top.data["moveCount"] = moveCount

		if n.MaxMoves > 0 && moveCount >= n.MaxMoves {
			top.completed = true
		} else if n.RepeatUntil != nil && moveCount >= n.MinMoves && n.RepeatUntil(e.ctx()) {
			top.completed = true
		} else if n.MaxMoves <= 0 && n.RepeatUntil == nil {
			// Neither MaxMoves nor RepeatUntil configured: one move
			// completes the step.
			top.completed = true
		}
	}

	if runErr := e.Run(); runErr != nil {
		return result, runErr
	}
	return result, nil
}

func (e *Engine) advanceSimultaneousActionStep(top *frame, n flow.SimultaneousActionStepNode) {
	ctx := e.ctx()

	if _, entered := top.data["entered"]; !entered {
		top.data["entered"] = true
		top.data["players"] = simultaneousPlayers(ctx, n)
		top.data["done"] = map[int]bool{}
		top.data["followUps"] = map[int]string{}
		top.data["followUpArgs"] = map[int]map[string]any{}
	}

	if n.AllDone != nil && n.AllDone(ctx) {
		top.completed = true
		return
	}

	players, _ := top.data["players"].([]*element.Player)
	done, _ := top.data["done"].(map[int]bool)
	followUps, _ := top.data["followUps"].(map[int]string)

	for _, p := range players {
		if done[p.Position()] {
			continue
		}
		if n.PlayerDone != nil && n.PlayerDone(ctx, p) {
			done[p.Position()] = true
		}
	}

	byPlayer := make(map[int][]string)
	var remaining []*element.Player
	for _, p := range players {
		if done[p.Position()] {
			continue
		}
		var avail []string
		if fu, ok := followUps[p.Position()]; ok {
			avail = []string{fu}
		} else {
			avail = e.availableTo(p, n.Actions)
			if len(avail) == 0 {
				// Nothing left for this player to legally do; treat as
				// done rather than stalling the whole step.
				done[p.Position()] = true
				continue
			}
		}
		byPlayer[p.Position()] = avail
		remaining = append(remaining, p)
	}

	if len(remaining) == 0 {
		top.completed = true
		return
	}

	e.awaiting = true
	e.awaitingKind = flow.KindSimultaneousActionStep
	e.awaitingPlayers = remaining
	top.data["actionsByPlayer"] = byPlayer
}

// AwaitingActionsFor returns the action names currently offered to
// player at a simultaneous-action-step barrier.
func (e *Engine) AwaitingActionsFor(player *element.Player) []string {
	top := e.top()
	if top == nil {
		return nil
	}
	byPlayer, _ := top.data["actionsByPlayer"].(map[int][]string)
	return byPlayer[player.Position()]
}

// ResumeSimultaneous submits actionName with args on behalf of one
// still-awaiting player in a simultaneous-action-step barrier. Other
// players remain awaiting until they each submit their own move.
func (e *Engine) ResumeSimultaneous(player *element.Player, actionName string, args map[string]any) (action.Result, error) {
	if !e.awaiting || e.awaitingKind != flow.KindSimultaneousActionStep {
		return action.Result{}, boardsmith.InternalErrorf("flow engine is not awaiting a simultaneous-action-step input")
	}
	top := e.top()
	n := top.node.(flow.SimultaneousActionStepNode)

	allowed := e.AwaitingActionsFor(player)
	if !containsString(allowed, actionName) {
		return action.Result{}, boardsmith.ActionNotAvailableError(actionName, player.Position())
	}

	followUpArgs, _ := top.data["followUpArgs"].(map[int]map[string]any)
	effectiveArgs := args
	if seed, ok := followUpArgs[player.Position()]; ok {
		effectiveArgs = mergeArgs(seed, args)
	}

	result, err := e.executor.PerformDirect(player, actionName, effectiveArgs)
	if err != nil {
		return action.Result{}, err
	}

	e.awaiting = false
	followUps, _ := top.data["followUps"].(map[int]string)
	done, _ := top.data["done"].(map[int]bool)

	if result.FollowUp != nil {
		followUps[player.Position()] = result.FollowUp.Action
		followUpArgs[player.Position()] = result.FollowUp.Args
	} else {
		delete(followUps, player.Position())
		delete(followUpArgs, player.Position())
		if n.PlayerDone != nil {
			if n.PlayerDone(e.ctx(), player) {
				done[player.Position()] = true
			}
		} else {
			done[player.Position()] = true
		}
	}

	if runErr := e.Run(); runErr != nil {
		return result, runErr
	}
	return result, nil
}

// simultaneousPlayers computes the SkipPlayer-filtered candidate list for
// a simultaneous-action-step node, factored out so Restore can rebuild
// the same list deterministically.
func simultaneousPlayers(ctx flow.Context, n flow.SimultaneousActionStepNode) []*element.Player {
	var players []*element.Player
	if n.Players != nil {
		players = n.Players(ctx)
	} else {
		players = ctx.Game.Players()
	}
	if n.SkipPlayer != nil {
		filtered := players[:0:0]
		for _, p := range players {
			if !n.SkipPlayer(ctx, p) {
				filtered = append(filtered, p)
			}
		}
		players = filtered
	}
	return players
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func mergeArgs(seed, override map[string]any) map[string]any {
	merged := make(map[string]any, len(seed)+len(override))
	for k, v := range seed {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}
