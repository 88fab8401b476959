package executor

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
)

// asInt accepts int and float64 (the shape a JSON-decoded numeric value
// takes), since args commonly arrive already decoded from a wire form.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func legalContainsValue(legal []any, v any) bool {
	for _, candidate := range legal {
		if candidate == v {
			return true
		}
	}
	return false
}

func legalContainsElement(legal []any, el element.Element) bool {
	for _, candidate := range legal {
		if ce, ok := candidate.(element.Element); ok && ce.ID() == el.ID() {
			return true
		}
	}
	return false
}

func legalContainsPlayer(legal []any, p *element.Player) bool {
	for _, candidate := range legal {
		if cp, ok := candidate.(*element.Player); ok && cp.ID() == p.ID() {
			return true
		}
	}
	return false
}

// resolveSingleElement resolves a raw numeric id to a live element,
// validating membership in legal.
func resolveSingleElement(ctx action.Context, raw any, legal []any) (element.Element, error) {
	id, ok := asInt(raw)
	if !ok {
		return nil, fmt.Errorf("expected a numeric element id, got %T", raw)
	}
	el, ok := ctx.Game.Root().Tree().GetElementByID(id)
	if !ok {
		return nil, fmt.Errorf("no element with id %d", id)
	}
	if !legalContainsElement(legal, el) {
		return nil, fmt.Errorf("element %d is not a legal choice", id)
	}
	return el, nil
}

func resolvePlayer(ctx action.Context, raw any, legal []any) (*element.Player, error) {
	pos, ok := asInt(raw)
	if !ok {
		return nil, fmt.Errorf("expected a numeric player position, got %T", raw)
	}
	p, ok := ctx.Game.Player(pos)
	if !ok {
		return nil, fmt.Errorf("no player at position %d", pos)
	}
	if !legalContainsPlayer(legal, p) {
		return nil, fmt.Errorf("player %d is not a legal choice", pos)
	}
	return p, nil
}

func resolveChoice(raw any, legal []any) (any, error) {
	if !legalContainsValue(legal, raw) {
		return nil, fmt.Errorf("%v is not a legal choice", raw)
	}
	return raw, nil
}

func resolveElementsList(ctx action.Context, raw any, legal []any) ([]element.Element, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of element ids, got %T", raw)
	}
	out := make([]element.Element, 0, len(items))
	for _, item := range items {
		el, err := resolveSingleElement(ctx, item, legal)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

func validateNumber(p action.Pick, raw any) (float64, error) {
	n, ok := asFloat(raw)
	if !ok {
		return 0, fmt.Errorf("expected a number, got %T", raw)
	}
	if p.Min != nil && n < *p.Min {
		return 0, fmt.Errorf("%v is below the minimum %v", n, *p.Min)
	}
	if p.Max != nil && n > *p.Max {
		return 0, fmt.Errorf("%v is above the maximum %v", n, *p.Max)
	}
	return n, nil
}

func validateText(p action.Pick, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("expected text, got %T", raw)
	}
	if p.MinLength != nil && len(s) < *p.MinLength {
		return "", fmt.Errorf("text is shorter than the minimum length %d", *p.MinLength)
	}
	if p.MaxLength != nil && len(s) > *p.MaxLength {
		return "", fmt.Errorf("text is longer than the maximum length %d", *p.MaxLength)
	}
	return s, nil
}

// resolveSingleValue resolves one raw value against pick's kind and
// legal set, used both for single-value picks and for one iteration of
// a repeating pick (whose Kind is still Element/Elements/Player/Choice
// but whose values are submitted one at a time).
func resolveSingleValue(ctx action.Context, p action.Pick, raw any, legal []any) (any, error) {
	switch p.Kind {
	case action.Choice:
		return resolveChoice(raw, legal)
	case action.Element, action.Elements:
		return resolveSingleElement(ctx, raw, legal)
	case action.Player:
		return resolvePlayer(ctx, raw, legal)
	case action.Number:
		return validateNumber(p, raw)
	case action.Text:
		return validateText(p, raw)
	default:
		return nil, fmt.Errorf("unknown pick kind %q", p.Kind)
	}
}

func legalSetFor(ctx action.Context, p action.Pick) []any {
	if p.LegalSet == nil {
		return nil
	}
	return p.LegalSet(ctx)
}
