package action

// Builder accumulates picks in declaration order and produces an
// immutable Definition. Methods return the same *Builder so calls
// chain; Build is the only way to obtain a Definition, matching the
// teacher's fluent-then-finalize shape in pkg/synthesis's grammar
// builders.
type Builder struct {
	def Definition
}

// NewBuilder starts a Definition for the named action.
func NewBuilder(name string) *Builder {
	return &Builder{def: Definition{Name: name}}
}

// Prompt sets the action's own prompt (shown before any pick prompt).
func (b *Builder) Prompt(prompt string) *Builder {
	b.def.Prompt = prompt
	return b
}

// Condition sets the action's availability condition.
func (b *Builder) Condition(fn ConditionFunc) *Builder {
	b.def.Condition = fn
	return b
}

func (b *Builder) addPick(name string, kind Kind, legal LegalSetFunc, opts []PickOption) *Builder {
	p := Pick{Name: name, Kind: kind, LegalSet: legal}
	for _, opt := range opts {
		opt(&p)
	}
	b.def.Picks = append(b.def.Picks, p)
	return b
}

// ChoicePick appends a choice pick whose legal set is computed by legal.
func (b *Builder) ChoicePick(name string, legal LegalSetFunc, opts ...PickOption) *Builder {
	return b.addPick(name, Choice, legal, opts)
}

// ElementPick appends a single-element pick.
func (b *Builder) ElementPick(name string, legal LegalSetFunc, opts ...PickOption) *Builder {
	return b.addPick(name, Element, legal, opts)
}

// ElementsPick appends a multi-element pick (see MultiSelect and
// Repeating for the two ways to collect more than one value).
func (b *Builder) ElementsPick(name string, legal LegalSetFunc, opts ...PickOption) *Builder {
	return b.addPick(name, Elements, legal, opts)
}

// NumberPick appends a numeric pick; use Bounds to constrain its range.
func (b *Builder) NumberPick(name string, opts ...PickOption) *Builder {
	return b.addPick(name, Number, nil, opts)
}

// TextPick appends a free-text pick; use Length to constrain its range.
func (b *Builder) TextPick(name string, opts ...PickOption) *Builder {
	return b.addPick(name, Text, nil, opts)
}

// PlayerPick appends a pick whose legal set is a subset of the game's
// players.
func (b *Builder) PlayerPick(name string, legal LegalSetFunc, opts ...PickOption) *Builder {
	return b.addPick(name, Player, legal, opts)
}

// ExecuteFn sets the action's execute callback.
func (b *Builder) ExecuteFn(fn ExecuteFunc) *Builder {
	b.def.Execute = fn
	return b
}

// Build finalizes the Definition. Panics if no execute callback was
// set: an action with no effect is a programmer error, not a condition
// any player input can trigger.
func (b *Builder) Build() Definition {
	if b.def.Execute == nil {
		panic("action: " + b.def.Name + " has no Execute callback")
	}
	return b.def
}
