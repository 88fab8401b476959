package flowengine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/wire"
)

// Position serializes the engine's current location as a
// wire.FlowPosition a host can persist and later hand to Restore
// (spec.md §6). Reserved "$"-prefixed variable keys carry the leaf
// barrier's own bookkeeping (move count, a pending follow-up, which
// simultaneous players have already finished); they are engine-private
// and never visible to flow node callbacks, which only ever see the
// plain keys through Context.Variables.
func (e *Engine) Position() wire.FlowPosition {
	pos := wire.NewFlowPosition()
	for i, f := range e.stack {
		pos.Path = append(pos.Path, f.index)
		if _, ok := f.node.(flow.LoopNode); ok {
			pos.Iterations[pathKey(pos.Path[:i+1])] = f.index
		}
	}
	if p := e.currentPlayer(); p != nil {
		idx := p.Position()
		pos.PlayerIndex = &idx
	}
	for k, v := range e.variables {
		pos.Variables[k] = v
	}

	if top := e.top(); top != nil {
		switch top.node.(type) {
		case flow.ActionStepNode:
			if mc, ok := top.data["moveCount"].(int); ok {
				pos.Variables["$moveCount"] = mc
			}
			if fu, ok := top.data["pendingFollowUp"].(string); ok {
				pos.Variables["$pendingFollowUp"] = fu
			}
		case flow.SimultaneousActionStepNode:
			if done, ok := top.data["done"].(map[int]bool); ok {
				var donePositions []int
				for p, v := range done {
					if v {
						donePositions = append(donePositions, p)
					}
				}
				pos.Variables["$done"] = donePositions
			}
		}
	}
	return pos
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, v := range path {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ".")
}

// Restore reconstructs an Engine's frame stack by walking root along
// pos.Path. Every ancestor frame's active child is re-derived the same
// deterministic way it was first chosen: a static index for sequence, a
// re-evaluated filter or collection for each-player/for-each/if/switch.
// This holds as long as those callbacks are pure functions of game
// state, the same assumption flow's own replay determinism already
// requires (spec.md §4.7). Restoring mid-flight into a
// simultaneous-action-step barrier recovers which players have already
// finished but not an individual player's own in-flight follow-up chain,
// since follow-ups are expected to resolve synchronously within one
// request and never span a persisted checkpoint boundary.
func Restore(root flow.Node, pos wire.FlowPosition, game GameAPI, ex *executor.Executor) (*Engine, error) {
	e := &Engine{game: game, executor: ex, variables: make(map[string]any)}
	for k, v := range pos.Variables {
		if strings.HasPrefix(k, "$") {
			continue
		}
		e.variables[k] = v
	}

	if len(pos.Path) == 0 {
		e.stack = nil
		return e, nil
	}

	node := root
	for depth, idx := range pos.Path {
		f := newFrame(node)
		f.index = idx
		e.stack = append(e.stack, f)

		if depth == len(pos.Path)-1 {
			break
		}
		next, err := e.descend(node, f, idx)
		if err != nil {
			return nil, fmt.Errorf("flowengine: restoring path %v at depth %d: %w", pos.Path, depth, err)
		}
		node = next
	}

	if top := e.top(); top != nil {
		e.restoreLeaf(top, pos)
	}
	if err := e.Run(); err != nil {
		return nil, err
	}
	return e, nil
}

// descend returns the child node that was active at depth+1 given that
// the frame at depth (for node) had reached index idx when serialized.
func (e *Engine) descend(node flow.Node, f *frame, idx int) (flow.Node, error) {
	ctx := e.ctx()
	switch n := node.(type) {
	case flow.SequenceNode:
		if idx < 1 || idx > len(n.Steps) {
			return nil, fmt.Errorf("sequence index %d out of range [1,%d]", idx, len(n.Steps))
		}
		return n.Steps[idx-1], nil
	case flow.LoopNode:
		if n.Do == nil {
			return nil, fmt.Errorf("loop has no Do to descend into")
		}
		return n.Do, nil
	case flow.EachPlayerNode:
		order := eachPlayerOrder(ctx, n)
		f.data["order"] = order
		if idx < 1 || idx > len(order) {
			return nil, fmt.Errorf("each-player index %d out of range [1,%d]", idx, len(order))
		}
		f.data["currentPlayer"] = order[idx-1]
		return n.Do, nil
	case flow.ForEachNode:
		var items []any
		if n.Collection != nil {
			items = n.Collection(ctx)
		}
		f.data["items"] = items
		if idx < 1 || idx > len(items) {
			return nil, fmt.Errorf("for-each index %d out of range [1,%d]", idx, len(items))
		}
		if n.As != "" {
			e.variables[n.As] = items[idx-1]
		}
		return n.Do, nil
	case flow.IfNode:
		if idx != 1 {
			return nil, fmt.Errorf("if frame mid-restore must be at index 1, got %d", idx)
		}
		if n.Condition != nil && n.Condition(ctx) {
			if n.Then == nil {
				return nil, fmt.Errorf("if condition true but Then is nil")
			}
			return n.Then, nil
		}
		if n.Else == nil {
			return nil, fmt.Errorf("if condition false but Else is nil")
		}
		return n.Else, nil
	case flow.SwitchNode:
		if idx != 1 {
			return nil, fmt.Errorf("switch frame mid-restore must be at index 1, got %d", idx)
		}
		for _, c := range n.Cases {
			if c.When != nil && c.When(ctx) {
				return c.Then, nil
			}
		}
		if n.Default == nil {
			return nil, fmt.Errorf("switch matched no case and has no Default")
		}
		return n.Default, nil
	case flow.PhaseNode:
		if n.Do == nil {
			return nil, fmt.Errorf("phase has no Do to descend into")
		}
		e.phaseStack = append(e.phaseStack, n.Name)
		e.game.SetPhase(n.Name)
		return n.Do, nil
	default:
		return nil, fmt.Errorf("node kind %q has no mid-path child; only container nodes may appear above the stack's top frame", node.Kind())
	}
}

func (e *Engine) restoreLeaf(top *frame, pos wire.FlowPosition) {
	switch n := top.node.(type) {
	case flow.ActionStepNode:
		top.data["entered"] = true
		top.data["moveCount"] = 0
		if mc, ok := toInt(pos.Variables["$moveCount"]); ok {
			top.data["moveCount"] = mc
		}
		if fu, ok := pos.Variables["$pendingFollowUp"].(string); ok {
			top.data["pendingFollowUp"] = fu
		}
	case flow.SimultaneousActionStepNode:
		top.data["entered"] = true
		top.data["players"] = simultaneousPlayers(e.ctx(), n)
		done := map[int]bool{}
		for _, v := range toIntSlice(pos.Variables["$done"]) {
			done[v] = true
		}
		top.data["done"] = done
		top.data["followUps"] = map[int]string{}
		top.data["followUpArgs"] = map[int]map[string]any{}
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func toIntSlice(v any) []int {
	switch s := v.(type) {
	case []int:
		return s
	case []any:
		out := make([]int, 0, len(s))
		for _, item := range s {
			if n, ok := toInt(item); ok {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}
