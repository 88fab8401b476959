package flow

// Kind identifies a Node's variant. Go has no sum types, so Node is an
// interface and Kind lets the flow engine switch on variant without a
// type-switch over every concrete node type (spec.md §9 "Polymorphic
// element hierarchy" retarget applies equally here).
type Kind string

const (
	KindSequence                Kind = "sequence"
	KindLoop                    Kind = "loop"
	KindEachPlayer              Kind = "each-player"
	KindForEach                 Kind = "for-each"
	KindIf                      Kind = "if"
	KindSwitch                  Kind = "switch"
	KindExecute                 Kind = "execute"
	KindPhase                   Kind = "phase"
	KindActionStep              Kind = "action-step"
	KindSimultaneousActionStep  Kind = "simultaneous-action-step"
)

// Node is one element of the flow graph.
type Node interface {
	Kind() Kind
}
