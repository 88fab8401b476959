package flowengine

import (
	"sort"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/flow"
)

func (e *Engine) advanceSequence(top *frame, n flow.SequenceNode) {
	if top.index >= len(n.Steps) {
		top.completed = true
		return
	}
	child := n.Steps[top.index]
	top.index++
	e.pushFrame(child)
}

func (e *Engine) advanceLoop(top *frame, n flow.LoopNode) {
	cap := n.MaxIterations
	if cap <= 0 {
		cap = maxTicks
	}
	if top.index >= cap {
		top.completed = true
		return
	}
	if n.While != nil && !n.While(e.ctx()) {
		top.completed = true
		return
	}
	top.index++
	if n.Do == nil {
		return
	}
	e.pushFrame(n.Do)
}

// eachPlayerOrder computes (once, on first entry) the players this node
// will visit: Filter-matched, rotated to start at StartingPlayer's
// result, reversed if Direction is Backward.
func eachPlayerOrder(ctx flow.Context, n flow.EachPlayerNode) []*element.Player {
	all := ctx.Game.Players()
	matched := make([]*element.Player, 0, len(all))
	for _, p := range all {
		if n.Filter == nil || n.Filter(ctx, p) {
			matched = append(matched, p)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Position() < matched[j].Position() })

	start := ctx.Game.CurrentPlayer()
	if n.StartingPlayer != nil {
		start = n.StartingPlayer(ctx)
	}
	if start != nil {
		for i, p := range matched {
			if p.Position() == start.Position() {
				matched = append(append([]*element.Player(nil), matched[i:]...), matched[:i]...)
				break
			}
		}
	}

	if n.Direction == flow.Backward {
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
	}
	return matched
}

func (e *Engine) advanceEachPlayer(top *frame, n flow.EachPlayerNode) {
	order, ok := top.data["order"].([]*element.Player)
	if !ok {
		order = eachPlayerOrder(e.ctx(), n)
		top.data["order"] = order
	}
	if top.index >= len(order) {
		top.completed = true
		return
	}
	player := order[top.index]
	top.index++
	top.data["currentPlayer"] = player
	if n.Do == nil {
		return
	}
	e.pushFrame(n.Do)
}

func (e *Engine) advanceForEach(top *frame, n flow.ForEachNode) {
	items, ok := top.data["items"].([]any)
	if !ok {
		if n.Collection != nil {
			items = n.Collection(e.ctx())
		}
		top.data["items"] = items
	}
	if top.index >= len(items) {
		top.completed = true
		return
	}
	item := items[top.index]
	top.index++
	if n.As != "" {
		e.variables[n.As] = item
	}
	if n.Do == nil {
		return
	}
	e.pushFrame(n.Do)
}

func (e *Engine) advanceIf(top *frame, n flow.IfNode) {
	switch top.index {
	case 0:
		top.index = 1
		var branch flow.Node
		if n.Condition != nil && n.Condition(e.ctx()) {
			branch = n.Then
		} else {
			branch = n.Else
		}
		if branch == nil {
			top.completed = true
			return
		}
		e.pushFrame(branch)
	default:
		top.completed = true
	}
}

func (e *Engine) advanceSwitch(top *frame, n flow.SwitchNode) {
	switch top.index {
	case 0:
		top.index = 1
		ctx := e.ctx()
		var branch flow.Node
		for _, c := range n.Cases {
			if c.When != nil && c.When(ctx) {
				branch = c.Then
				break
			}
		}
		if branch == nil {
			branch = n.Default
		}
		if branch == nil {
			top.completed = true
			return
		}
		e.pushFrame(branch)
	default:
		top.completed = true
	}
}

func (e *Engine) advanceExecute(top *frame, n flow.ExecuteNode) {
	if n.Fn != nil {
		vars := n.Fn(e.ctx())
		for k, v := range vars {
			e.variables[k] = v
		}
	}
	top.completed = true
}

func (e *Engine) advancePhase(top *frame, n flow.PhaseNode) {
	switch top.index {
	case 0:
		e.phaseStack = append(e.phaseStack, n.Name)
		e.game.SetPhase(n.Name)
		if n.OnEnter != nil {
			n.OnEnter(e.ctx())
		}
		if n.Do == nil {
			e.exitPhase(n)
			top.completed = true
			return
		}
		top.index = 1
		e.pushFrame(n.Do)
	default:
		e.exitPhase(n)
		top.completed = true
	}
}

// exitPhase runs OnExit and restores whatever phase was active before
// this one was entered (the empty string if this was the outermost
// phase), since phases nest (flow.PhaseNode's doc comment).
func (e *Engine) exitPhase(n flow.PhaseNode) {
	if n.OnExit != nil {
		n.OnExit(e.ctx())
	}
	e.phaseStack = e.phaseStack[:len(e.phaseStack)-1]
	if len(e.phaseStack) == 0 {
		e.game.SetPhase("")
		return
	}
	e.game.SetPhase(e.phaseStack[len(e.phaseStack)-1])
}
