package wire

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shufflewick/boardsmith/pkg/element"
)

// ResolveReferences implements the two-pass element-reference restore
// spec.md §9 calls for: snapshot.Rebuild materializes every element by
// id first (pass one), then this walks every live element's attribute
// graph and rewrites ElementRefPath/ElementIDRef/PlayerRef envelopes
// into live element.Element (or *element.Player) values (pass two).
// maxDepth bounds recursion into nested attribute structures, guarding
// against pathological or accidentally-cyclic attribute graphs.
func ResolveReferences(root element.Element, maxDepth int) error {
	players := element.NewQuery().Class("Player").All(root)
	targets := append([]element.Element{root}, element.NewQuery().All(root)...)
	if pile := root.Tree().Pile(); pile != nil {
		targets = append(targets, pile)
		targets = append(targets, element.NewQuery().All(pile)...)
	}

	for _, e := range targets {
		attrs := e.Attrs()
		var changedKeys map[string]any
		for k, v := range attrs {
			resolved, changed, err := resolveValue(root, players, v, maxDepth)
			if err != nil {
				return fmt.Errorf("wire: resolving attribute %q on element %d: %w", k, e.ID(), err)
			}
			if changed {
				if changedKeys == nil {
					changedKeys = make(map[string]any)
				}
				changedKeys[k] = resolved
			}
		}
		for k, v := range changedKeys {
			e.SetAttr(k, v)
		}
	}
	return nil
}

func resolveValue(root element.Element, players []element.Element, v any, depth int) (any, bool, error) {
	if depth <= 0 {
		return nil, false, fmt.Errorf("exceeded max reference-resolution depth")
	}

	switch val := v.(type) {
	case map[string]any:
		if ref, ok := decodeElementRefPath(val); ok {
			target, err := resolvePath(root, ref.Path)
			return target, true, err
		}
		if ref, ok := decodeElementIDRef(val); ok {
			target, ok := root.Tree().GetElementByID(ref.ID)
			if !ok {
				return nil, false, fmt.Errorf("element id %d not found", ref.ID)
			}
			return target, true, nil
		}
		if ref, ok := decodePlayerRef(val); ok {
			for _, p := range players {
				if player, ok := p.(*element.Player); ok && player.Position() == ref.Position {
					return player, true, nil
				}
			}
			return nil, false, fmt.Errorf("player at position %d not found", ref.Position)
		}

		changed := false
		out := make(map[string]any, len(val))
		for k, child := range val {
			rv, didChange, err := resolveValue(root, players, child, depth-1)
			if err != nil {
				return nil, false, err
			}
			if didChange {
				changed = true
				out[k] = rv
			} else {
				out[k] = child
			}
		}
		if !changed {
			return val, false, nil
		}
		return out, true, nil

	case []any:
		changed := false
		out := make([]any, len(val))
		for i, child := range val {
			rv, didChange, err := resolveValue(root, players, child, depth-1)
			if err != nil {
				return nil, false, err
			}
			if didChange {
				changed = true
			}
			out[i] = rv
		}
		if !changed {
			return val, false, nil
		}
		return out, true, nil

	default:
		return v, false, nil
	}
}

// resolvePath walks a slash-separated child-index path from root, e.g.
// "2/0/5" means root.Children()[2].Children()[0].Children()[5]. An empty
// path resolves to root itself.
func resolvePath(root element.Element, path string) (element.Element, error) {
	if path == "" {
		return root, nil
	}
	cur := root
	for _, segment := range strings.Split(path, "/") {
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q in %q: %w", segment, path, err)
		}
		kids := cur.Children()
		if idx < 0 || idx >= len(kids) {
			return nil, fmt.Errorf("path %q: index %d out of range (%d children)", path, idx, len(kids))
		}
		cur = kids[idx]
	}
	return cur, nil
}
