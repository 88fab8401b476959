package action

// Kind is the pick's selection kind: choice, element, elements, number,
// text, or player (spec.md GLOSSARY "Pick").
type Kind string

const (
	Choice   Kind = "choice"
	Element  Kind = "element"
	Elements Kind = "elements"
	Number   Kind = "number"
	Text     Kind = "text"
	Player   Kind = "player"
)

// LegalSetFunc computes the legal set for a choice, element, elements,
// or player pick as a function of the game, the acting player, and the
// already-collected args (spec.md §4.5). Element picks yield
// element.Element values, player picks yield *element.Player values,
// choice picks yield arbitrary JSON-comparable values.
type LegalSetFunc func(ctx Context) []any

// OnSelectFunc is invoked when a pending pick's value is applied,
// before the executor advances to the next pick (spec.md §4.5 "Pending
// (multi-step) execution").
type OnSelectFunc func(ctx Context, value any) error

// RepeatConfig turns a pick into a repeating pick: values accumulate
// until Until reports true or the caller submits TerminatorValue.
// OnEach, if set, runs once per accepted value and may mutate game
// state, which is why every repeating step triggers its own broadcast
// even though the action has not completed (spec.md §4.5).
type RepeatConfig struct {
	Until           func(ctx Context, collected []any) bool
	OnEach          func(ctx Context, value any) error
	TerminatorValue any
}

// Pick is one declared selection an action requires. Fields not
// applicable to a given Kind are left zero; e.g. Min/Max only apply to
// Number, LegalSet only to Choice/Element/Elements/Player.
type Pick struct {
	Name          string
	Kind          Kind
	Prompt        string
	Optional      bool
	SkipIfOnlyOne bool
	MultiSelect   bool
	DependsOn     []string

	LegalSet LegalSetFunc

	Min *float64
	Max *float64

	MinLength *int
	MaxLength *int

	OnSelect OnSelectFunc
	Repeat   *RepeatConfig
}

// PickOption configures optional Pick fields via functional options,
// keeping the builder's per-kind methods to a single required legal-set
// argument (spec.md §4.3's "stepwise constructor" retarget for languages
// without structural typing, spec.md §9).
type PickOption func(*Pick)

// DependsOn marks this pick's legal set as contingent on earlier picks
// named here. The names are recorded on the Pick and reported in its
// projected metadata; the executor does not group the legal set by
// those picks' values.
func DependsOn(names ...string) PickOption {
	return func(p *Pick) { p.DependsOn = append([]string(nil), names...) }
}

// Optional marks a pick as skippable; if omitted, its arg is left unset.
func Optional() PickOption {
	return func(p *Pick) { p.Optional = true }
}

// SkipIfOnlyOne auto-selects the pick's sole legal value without
// prompting, when exactly one is legal at resolution time.
func SkipIfOnlyOne() PickOption {
	return func(p *Pick) { p.SkipIfOnlyOne = true }
}

// MultiSelect allows an Elements pick to accept more than one selection
// in a single step, rather than repeating.
func MultiSelect() PickOption {
	return func(p *Pick) { p.MultiSelect = true }
}

// WithOnSelect attaches a side-effecting hook invoked when this pick's
// value is applied during pending (multi-step) resolution.
func WithOnSelect(fn OnSelectFunc) PickOption {
	return func(p *Pick) { p.OnSelect = fn }
}

// Repeating turns the pick into a repeating pick governed by cfg.
func Repeating(cfg RepeatConfig) PickOption {
	c := cfg
	return func(p *Pick) { p.Repeat = &c }
}

// Bounds sets a Number pick's inclusive legal range.
func Bounds(min, max float64) PickOption {
	return func(p *Pick) { p.Min, p.Max = &min, &max }
}

// Length sets a Text pick's inclusive length range.
func Length(min, max int) PickOption {
	return func(p *Pick) { p.MinLength, p.MaxLength = &min, &max }
}

// Prompted sets the pick's prompt text.
func Prompted(prompt string) PickOption {
	return func(p *Pick) { p.Prompt = prompt }
}
