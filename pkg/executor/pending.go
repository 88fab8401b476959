package executor

import (
	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
)

// PendingAction is the in-flight, multi-step resolution state for one
// action instance (spec.md §4.5 "Pending (multi-step) execution").
// Index points at the pick currently awaiting a Step call.
type PendingAction struct {
	Definition      action.Definition
	Player          *element.Player
	Args            map[string]any
	Index           int
	repeatCollected []any
}

// CurrentPick returns the pick PendingAction is awaiting, or false if
// resolution is already complete (which Begin/Step never return, since
// they invoke Execute and discard the pending state instead).
func (p *PendingAction) CurrentPick() (action.Pick, bool) {
	if p.Index >= len(p.Definition.Picks) {
		return action.Pick{}, false
	}
	return p.Definition.Picks[p.Index], true
}

func (p *PendingAction) ctx(e *Executor) action.Context {
	return action.Context{Game: e.game, Player: p.Player, Args: p.Args}
}

// Begin starts resolving name for player: validates availability, then
// auto-advances through any leading optional-and-absent or
// skipIfOnlyOne picks. It returns either a completed Result (when every
// pick auto-resolved, including the zero-pick case) or a PendingAction
// awaiting the next Step.
func (e *Executor) Begin(player *element.Player, name string) (*PendingAction, *action.Result, error) {
	def, err := e.requireDefinition(name)
	if err != nil {
		return nil, nil, err
	}
	if avail := e.computeAvailability(def, player); !avail.Available {
		return nil, nil, boardsmith.ActionNotAvailableError(name, player.Position())
	}

	pending := &PendingAction{Definition: def, Player: player, Args: map[string]any{}}
	return e.autoAdvance(pending)
}

// autoAdvance resolves every pick at the front of pending's pick list
// that needs no player input: optional picks whose legal set is empty,
// and skipIfOnlyOne picks whose legal set has exactly one member. It
// stops at the first pick that genuinely needs a Step call, or runs the
// action to completion if every pick auto-resolved.
func (e *Executor) autoAdvance(pending *PendingAction) (*PendingAction, *action.Result, error) {
	for {
		pick, ok := pending.CurrentPick()
		if !ok {
			result := pending.Definition.Execute(pending.ctx(e))
			return nil, &result, nil
		}

		switch pick.Kind {
		case action.Number, action.Text:
			return pending, nil, nil
		}

		legal := legalSetFor(pending.ctx(e), pick)
		switch {
		case len(legal) == 0 && pick.Optional:
			pending.Index++
			continue
		case len(legal) == 0 && !pick.Optional:
			return nil, nil, boardsmith.InvalidPickError(pick.Name, "no legal choices")
		case pick.SkipIfOnlyOne && len(legal) == 1 && pick.Repeat == nil:
			value := legal[0]
			if pick.OnSelect != nil {
				if err := pick.OnSelect(pending.ctx(e), value); err != nil {
					return nil, nil, boardsmith.InvalidPickError(pick.Name, err.Error())
				}
			}
			pending.Args[pick.Name] = value
			pending.Index++
			continue
		default:
			return pending, nil, nil
		}
	}
}

// Step applies one player-submitted value to the pick pending is
// currently awaiting, identified by pickName (which must match, or
// PickNotFoundError). For a repeating pick, Step collects one more
// value unless raw equals the pick's TerminatorValue or the pick's
// Until predicate is now satisfied, in which case the accumulated
// slice becomes the pick's final argument. Returns a completed Result
// once every pick is resolved, discarding the pending state.
func (e *Executor) Step(pending *PendingAction, pickName string, raw any) (*PendingAction, *action.Result, error) {
	pick, ok := pending.CurrentPick()
	if !ok {
		return nil, nil, boardsmith.InternalErrorf("pending action %q has no current pick", pending.Definition.Name)
	}
	if pick.Name != pickName {
		return nil, nil, boardsmith.PickNotFoundError(pickName)
	}

	ctx := pending.ctx(e)
	legal := legalSetFor(ctx, pick)

	if pick.Repeat != nil {
		done, err := e.stepRepeating(pending, pick, ctx, legal, raw)
		if err != nil {
			return nil, nil, err
		}
		if !done {
			return pending, nil, nil
		}
		pending.Args[pick.Name] = pending.repeatCollected
		pending.repeatCollected = nil
		pending.Index++
		return e.autoAdvance(pending)
	}

	var value any
	var err error
	if pick.Kind == action.Elements && pick.MultiSelect {
		value, err = resolveElementsList(ctx, raw, legal)
	} else {
		value, err = resolveSingleValue(ctx, pick, raw, legal)
	}
	if err != nil {
		return nil, nil, boardsmith.InvalidPickError(pick.Name, err.Error())
	}
	if pick.OnSelect != nil {
		if err := pick.OnSelect(ctx, value); err != nil {
			return nil, nil, boardsmith.InvalidPickError(pick.Name, err.Error())
		}
	}
	pending.Args[pick.Name] = value
	pending.Index++
	return e.autoAdvance(pending)
}

// stepRepeating applies one submission to a repeating pick's
// accumulator and reports whether the pick is now finished.
func (e *Executor) stepRepeating(pending *PendingAction, pick action.Pick, ctx action.Context, legal []any, raw any) (bool, error) {
	cfg := pick.Repeat
	if cfg.TerminatorValue != nil && raw == cfg.TerminatorValue {
		return true, nil
	}

	value, err := resolveSingleValue(ctx, pick, raw, legal)
	if err != nil {
		return false, boardsmith.InvalidPickError(pick.Name, err.Error())
	}
	pending.repeatCollected = append(pending.repeatCollected, value)
	if cfg.OnEach != nil {
		if err := cfg.OnEach(ctx, value); err != nil {
			return false, boardsmith.InvalidPickError(pick.Name, err.Error())
		}
	}

	if cfg.Until != nil && cfg.Until(ctx, pending.repeatCollected) {
		return true, nil
	}
	return false, nil
}
