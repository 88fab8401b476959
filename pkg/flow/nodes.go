package flow

import "github.com/shufflewick/boardsmith/pkg/element"

// SequenceNode pushes Steps in order, one per tick, completing when
// every step is done (spec.md §4.7).
type SequenceNode struct {
	Steps []Node
}

func (SequenceNode) Kind() Kind { return KindSequence }

// Sequence constructs a SequenceNode from its steps.
func Sequence(steps ...Node) SequenceNode {
	return SequenceNode{Steps: steps}
}

// LoopNode re-enters Do while While holds (default true if nil) and the
// iteration count stays under MaxIterations (0 means inherit the
// engine's default cap of 10,000).
type LoopNode struct {
	While         func(ctx Context) bool
	MaxIterations int
	Do            Node
}

func (LoopNode) Kind() Kind { return KindLoop }

// Loop constructs a LoopNode.
func Loop(cfg LoopNode) LoopNode { return cfg }

// Direction controls each-player iteration order.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// EachPlayerNode visits every player matching Filter (all, if nil),
// rotated to start at StartingPlayer's result (the game's current
// player, if nil), in Direction order, pushing Do once per player
// (spec.md §4.7, §8 "Each-player fairness").
type EachPlayerNode struct {
	Filter         func(ctx Context, p *element.Player) bool
	Direction      Direction
	StartingPlayer func(ctx Context) *element.Player
	Do             Node
}

func (EachPlayerNode) Kind() Kind { return KindEachPlayer }

// EachPlayer constructs an EachPlayerNode.
func EachPlayer(cfg EachPlayerNode) EachPlayerNode { return cfg }

// ForEachNode evaluates Collection once, binds each entry to As in
// Variables, and pushes Do once per entry.
type ForEachNode struct {
	Collection func(ctx Context) []any
	As         string
	Do         Node
}

func (ForEachNode) Kind() Kind { return KindForEach }

// ForEach constructs a ForEachNode.
func ForEach(cfg ForEachNode) ForEachNode { return cfg }

// IfNode pushes Then when Condition holds, else Else (which may be
// nil, completing immediately).
type IfNode struct {
	Condition func(ctx Context) bool
	Then      Node
	Else      Node
}

func (IfNode) Kind() Kind { return KindIf }

// If constructs an IfNode.
func If(cfg IfNode) IfNode { return cfg }

// SwitchCase is one branch of a SwitchNode: the first case whose When
// holds is entered.
type SwitchCase struct {
	When func(ctx Context) bool
	Then Node
}

// SwitchNode pushes the first matching case's Then, or Default if none
// match (which may be nil, completing immediately).
type SwitchNode struct {
	Cases   []SwitchCase
	Default Node
}

func (SwitchNode) Kind() Kind { return KindSwitch }

// Switch constructs a SwitchNode.
func Switch(cases []SwitchCase, def Node) SwitchNode {
	return SwitchNode{Cases: cases, Default: def}
}

// ExecuteNode runs Fn as a side effect and merges its returned map back
// into the frame's variables, completing immediately.
type ExecuteNode struct {
	Fn func(ctx Context) map[string]any
}

func (ExecuteNode) Kind() Kind { return KindExecute }

// Execute constructs an ExecuteNode.
func Execute(fn func(ctx Context) map[string]any) ExecuteNode {
	return ExecuteNode{Fn: fn}
}

// PhaseNode sets the game's current phase to Name, invokes OnEnter,
// pushes Do, then on completion invokes OnExit and restores the
// previous phase. Phases nest.
type PhaseNode struct {
	Name    string
	OnEnter func(ctx Context)
	OnExit  func(ctx Context)
	Do      Node
}

func (PhaseNode) Kind() Kind { return KindPhase }

// Phase constructs a PhaseNode.
func Phase(cfg PhaseNode) PhaseNode { return cfg }

// ActionStepNode raises an input barrier offering Actions (filtered to
// those available to Player, the current player if Player is nil) until
// a termination rule fires (spec.md §4.7). MinMoves/MaxMoves of 0 mean
// unconfigured, per the node's own termination-rule table.
type ActionStepNode struct {
	Player      func(ctx Context) *element.Player
	Actions     []string
	RepeatUntil func(ctx Context) bool
	SkipIf      func(ctx Context) bool
	MinMoves    int
	MaxMoves    int
}

func (ActionStepNode) Kind() Kind { return KindActionStep }

// ActionStep constructs an ActionStepNode.
func ActionStep(cfg ActionStepNode) ActionStepNode { return cfg }

// SimultaneousActionStepNode builds a per-player awaiting list (all
// players, if Players is nil) each with their own filtered action set,
// completing when AllDone holds or every listed player is PlayerDone
// (spec.md §4.7, §8 "Simultaneous discard").
type SimultaneousActionStepNode struct {
	Players    func(ctx Context) []*element.Player
	Actions    []string
	PlayerDone func(ctx Context, p *element.Player) bool
	AllDone    func(ctx Context) bool
	SkipPlayer func(ctx Context, p *element.Player) bool
}

func (SimultaneousActionStepNode) Kind() Kind { return KindSimultaneousActionStep }

// SimultaneousActionStep constructs a SimultaneousActionStepNode.
func SimultaneousActionStep(cfg SimultaneousActionStepNode) SimultaneousActionStepNode {
	return cfg
}
