package executor

import (
	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/boardsmith"
	"github.com/shufflewick/boardsmith/pkg/element"
)

// PerformDirect drives Begin/Step to completion in one call using a
// fully-specified args map (spec.md §4.8 "action performance (direct
// and serialized)"). Each non-auto-resolved pick must have an entry in
// args keyed by its name; a repeating pick's entry must be a []any of
// per-iteration raw values, each fed through Step in order with the
// pick's TerminatorValue (if configured) submitted implicitly once the
// slice is exhausted and Until has not already fired.
func (e *Executor) PerformDirect(player *element.Player, name string, args map[string]any) (action.Result, error) {
	pending, result, err := e.Begin(player, name)
	if err != nil {
		return action.Result{}, err
	}
	for pending != nil {
		pick, ok := pending.CurrentPick()
		if !ok {
			return action.Result{}, boardsmith.InternalErrorf("pending action %q stalled with no current pick", name)
		}

		raw, supplied := args[pick.Name]
		if !supplied {
			return action.Result{}, boardsmith.InvalidPickError(pick.Name, "no value supplied")
		}

		if pick.Repeat != nil {
			values, ok := raw.([]any)
			if !ok {
				return action.Result{}, boardsmith.InvalidPickError(pick.Name, "repeating pick requires a list of values")
			}
			for _, v := range values {
				pending, result, err = e.Step(pending, pick.Name, v)
				if err != nil {
					return action.Result{}, err
				}
				if pending == nil {
					break
				}
				if _, stillOnSamePick := pending.CurrentPick(); !stillOnSamePick {
					break
				}
			}
			if pending != nil {
				if cur, ok := pending.CurrentPick(); ok && cur.Name == pick.Name {
					if pick.Repeat.TerminatorValue == nil {
						return action.Result{}, boardsmith.InvalidPickError(pick.Name, "repeating pick did not terminate: supply a TerminatorValue or enough values to satisfy Until")
					}
					pending, result, err = e.Step(pending, pick.Name, pick.Repeat.TerminatorValue)
					if err != nil {
						return action.Result{}, err
					}
				}
			}
			continue
		}

		pending, result, err = e.Step(pending, pick.Name, raw)
		if err != nil {
			return action.Result{}, err
		}
	}
	return *result, nil
}
