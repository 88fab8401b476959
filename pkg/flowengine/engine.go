package flowengine

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
)

// maxTicks is the absolute safety cap on ticks per Run call (spec.md §7):
// a flow graph that never reaches a barrier or completion aborts rather
// than looping the host process forever.
const maxTicks = 10000

// GameAPI is the slice of pkg/game.Game the flow engine needs: both
// action.GameAPI (to drive the executor) and flow.GameAPI (for node
// callbacks), plus a phase setter the engine uses to implement
// PhaseNode. Defined here rather than imported from pkg/game for the
// same reason as action.GameAPI and flow.GameAPI (see DESIGN.md).
type GameAPI interface {
	action.GameAPI
	flow.GameAPI
	SetPhase(name string)
}

// Engine is the stack interpreter over a single flow graph, bound to one
// game and its executor. One Engine per session (spec.md §4.7).
type Engine struct {
	game     GameAPI
	executor *executor.Executor

	stack     []*frame
	variables map[string]any

	phaseStack []string

	awaiting        bool
	awaitingKind    flow.Kind
	awaitingPlayer  *element.Player
	awaitingActions []string
	awaitingPlayers []*element.Player // simultaneous-action-step only
}

// New constructs an Engine that will walk root when Run is first called.
func New(root flow.Node, game GameAPI, ex *executor.Executor) *Engine {
	e := &Engine{
		game:      game,
		executor:  ex,
		variables: make(map[string]any),
	}
	e.stack = []*frame{newFrame(root)}
	return e
}

// IsComplete reports whether the root node has finished and the engine
// has nothing left to walk.
func (e *Engine) IsComplete() bool {
	return len(e.stack) == 0
}

// AwaitingInput reports whether Run stopped at an input barrier.
func (e *Engine) AwaitingInput() bool {
	return e.awaiting
}

// AwaitingPlayer is the player an action-step barrier is waiting on. It
// is nil for a simultaneous-action-step barrier (use AwaitingPlayers).
func (e *Engine) AwaitingPlayer() *element.Player {
	return e.awaitingPlayer
}

// AwaitingPlayers is the still-undone player list for a
// simultaneous-action-step barrier.
func (e *Engine) AwaitingPlayers() []*element.Player {
	return append([]*element.Player(nil), e.awaitingPlayers...)
}

// AwaitingActions is the action names currently offered at the barrier.
func (e *Engine) AwaitingActions() []string {
	return append([]string(nil), e.awaitingActions...)
}

func (e *Engine) ctx() flow.Context {
	return flow.Context{
		Game:          e.game,
		Variables:     e.variables,
		CurrentPlayer: e.currentPlayer(),
	}
}

// currentPlayer walks the frame stack from the top down looking for the
// nearest enclosing each-player iteration's chosen player, falling back
// to the game's own current player. This is how a nested action-step or
// execute node inside an each-player's Do sees "the" current player for
// that iteration without each node needing its own player-threading.
func (e *Engine) currentPlayer() *element.Player {
	for i := len(e.stack) - 1; i >= 0; i-- {
		if p, ok := e.stack[i].data["currentPlayer"].(*element.Player); ok {
			return p
		}
	}
	return e.game.CurrentPlayer()
}

// Run ticks the engine until it is awaiting input, the root completes,
// or the safety cap is hit.
func (e *Engine) Run() error {
	e.awaiting = false
	e.awaitingPlayer = nil
	e.awaitingActions = nil
	e.awaitingPlayers = nil

	for ticks := 0; ; ticks++ {
		if ticks >= maxTicks {
			panic(fmt.Sprintf("flowengine: exceeded %d ticks without reaching a barrier or completing; stack trace: %v", maxTicks, e.trace()))
		}
		if len(e.stack) == 0 {
			return nil
		}
		top := e.top()
		if top.completed {
			e.pop()
			continue
		}
		if err := e.advance(top); err != nil {
			return err
		}
		if e.awaiting {
			return nil
		}
	}
}

// trace renders the current stack's node kinds, innermost last, for the
// safety-cap error message.
func (e *Engine) trace() []flow.Kind {
	kinds := make([]flow.Kind, len(e.stack))
	for i, f := range e.stack {
		kinds[i] = f.node.Kind()
	}
	return kinds
}

// advance dispatches one non-completed frame to its kind-specific step
// function. Every branch either pushes exactly one child frame, marks
// top completed, or (action-step/simultaneous-action-step only) raises
// the awaiting barrier and returns with the frame left exactly as it
// was so the next Resume call picks up from here.
func (e *Engine) advance(top *frame) error {
	switch n := top.node.(type) {
	case flow.SequenceNode:
		e.advanceSequence(top, n)
	case flow.LoopNode:
		e.advanceLoop(top, n)
	case flow.EachPlayerNode:
		e.advanceEachPlayer(top, n)
	case flow.ForEachNode:
		e.advanceForEach(top, n)
	case flow.IfNode:
		e.advanceIf(top, n)
	case flow.SwitchNode:
		e.advanceSwitch(top, n)
	case flow.ExecuteNode:
		e.advanceExecute(top, n)
	case flow.PhaseNode:
		e.advancePhase(top, n)
	case flow.ActionStepNode:
		e.advanceActionStep(top, n)
	case flow.SimultaneousActionStepNode:
		e.advanceSimultaneousActionStep(top, n)
	default:
		return fmt.Errorf("flowengine: unknown node kind %q", top.node.Kind())
	}
	return nil
}
