package action

// ConditionFunc gates an action's availability beyond its picks'
// legal sets (spec.md §4.4).
type ConditionFunc func(ctx Context) bool

// ExecuteFunc performs the action's effect once every pick is resolved
// and validated, returning a structured Result (spec.md §4.3).
type ExecuteFunc func(ctx Context) Result

// Definition is the immutable product of Builder.Build: a name, an
// optional availability condition, picks in declaration order, and an
// execute callback. pkg/executor consumes Definition; nothing in this
// package resolves picks or computes availability.
type Definition struct {
	Name      string
	Prompt    string
	Condition ConditionFunc
	Picks     []Pick
	Execute   ExecuteFunc
}

// Pick returns the named pick and whether it exists.
func (d Definition) Pick(name string) (Pick, bool) {
	for _, p := range d.Picks {
		if p.Name == name {
			return p, true
		}
	}
	return Pick{}, false
}
