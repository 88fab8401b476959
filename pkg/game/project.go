package game

import (
	"strings"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/visibility"
	"github.com/shufflewick/boardsmith/pkg/wire"
)

// Project builds the broadcast payload for one viewer (spec.md §4.2,
// §6): the phase, the visibility-filtered element tree, the player
// roster, and every action currently available to that viewer with
// enough per-pick metadata for a client to render it. UndoAvailable,
// ActionsThisTurn, and the animation queue are session-level
// bookkeeping Game has no notion of; pkg/session fills them in on top
// of the state this returns.
func (g *Game) Project(viewer int) *wire.ProjectedState {
	players := make([]wire.PlayerDescriptor, 0, len(g.players))
	for _, p := range g.players {
		players = append(players, wire.PlayerDescriptor{
			Position:  p.Position(),
			Name:      p.Name(),
			IsCurrent: p.IsCurrent(),
		})
	}

	var currentPos int
	if cp := g.CurrentPlayer(); cp != nil {
		currentPos = cp.Position()
	}

	state := &wire.ProjectedState{
		Phase:                 g.phase,
		Board:                 projectElement(g.Root(), viewer),
		Players:               players,
		CurrentPlayerPosition: currentPos,
		ActionMetadata:        make(map[string]wire.ActionMetadata),
	}

	viewerPlayer, ok := g.Player(viewer)
	if !ok || g.executor == nil {
		return state
	}

	for _, name := range g.executor.AvailableActions(viewerPlayer) {
		def, ok := g.executor.Get(name)
		if !ok {
			continue
		}
		state.AvailableActions = append(state.AvailableActions, name)
		state.ActionMetadata[name] = actionMetadata(g, def, viewerPlayer)
	}

	return state
}

// actionMetadata renders def's picks for viewer. Legal sets are
// computed against an empty Args prefix, mirroring Executor.IsAvailable
// (spec.md §4.4): a later pick's legal set never actually depends on an
// earlier pick's resolved value at the availability-check stage, only
// during real stepwise resolution.
func actionMetadata(g *Game, def action.Definition, viewer *element.Player) wire.ActionMetadata {
	ctx := action.Context{Game: g, Player: viewer, Args: map[string]any{}}

	meta := wire.ActionMetadata{Name: def.Name}
	for _, p := range def.Picks {
		pm := wire.PickMetadata{
			Name:      p.Name,
			Kind:      string(p.Kind),
			DependsOn: p.DependsOn,
			Optional:  p.Optional,
		}
		if p.Min != nil {
			pm.Min = int(*p.Min)
		}
		if p.Max != nil {
			pm.Max = int(*p.Max)
		}

		switch p.Kind {
		case action.Number, action.Text:
			// No enumerable legal set.
		default:
			legal := p.LegalSet(ctx)
			pm.Legal = make([]any, len(legal))
			for i, v := range legal {
				pm.Legal[i] = wireValue(v)
			}
			if !p.Optional && len(legal) == 0 {
				pm.Disabled = true
				pm.DisabledReason = "no legal choices"
			}
		}
		meta.Picks = append(meta.Picks, pm)
	}
	return meta
}

// projectElement walks e and its descendants into the filtered tree
// viewer is allowed to see (spec.md §4.2). An element viewer cannot see
// at all becomes a placeholder: id, class, and any "$"-prefixed system
// attributes survive, but its name, real attributes, and descendants do
// not. A Space whose zone visibility is count-only is emitted itself,
// but its real children are replaced by anonymized placeholders with
// synthetic negative ids -(parentID*1000+childIndex) so the count is
// visible without the contents; an element whose own effective mode is
// count-only is treated the same way and also loses its name, owner,
// and attributes. Everything else is emitted in full, recursing the
// same way.
func projectElement(e element.Element, viewer int) wire.ElementSnapshot {
	vis := element.EffectiveVisibility(e)
	owner := element.OwnerPosition(e)

	if !visibility.Resolve(viewer, vis, owner) {
		return wire.ElementSnapshot{
			ID:     e.ID(),
			Class:  e.ClassName(),
			Attrs:  systemAttrs(e.Attrs()),
			Hidden: true,
		}
	}

	snap := wire.ElementSnapshot{
		ID:    e.ID(),
		Class: e.ClassName(),
		Name:  e.Name(),
		Owner: owner,
		Attrs: encodeAttrs(e.Attrs()),
	}

	children := e.Children()
	countOnly := vis.Mode == visibility.CountOnly
	if countOnly {
		snap.Name, snap.Owner, snap.Attrs = "", 0, nil
	}
	if sp, ok := e.(*element.Space); ok {
		if zv, set := sp.ZoneVisibility(); set && zv.Mode == visibility.CountOnly {
			countOnly = true
		}
	}
	if countOnly {
		for i := range children {
			snap.Children = append(snap.Children, wire.ElementSnapshot{
				ID:     -(e.ID()*1000 + i),
				Hidden: true,
			})
		}
		return snap
	}

	for _, c := range children {
		snap.Children = append(snap.Children, projectElement(c, viewer))
	}
	return snap
}

// systemAttrs keeps only the "$"-prefixed entries of attrs — the
// rendering/system hints a hidden placeholder is still allowed to carry
// (spec.md §4.2) — encoding any live element/player references the same
// way a fully visible node's attributes are encoded.
func systemAttrs(attrs map[string]any) map[string]any {
	var out map[string]any
	for k, v := range attrs {
		if !strings.HasPrefix(k, "$") {
			continue
		}
		if out == nil {
			out = make(map[string]any)
		}
		out[k] = encodeAttrValue(v)
	}
	return out
}

// encodeAttrs copies attrs, replacing any live element/player reference
// with its wire envelope so the result marshals safely.
func encodeAttrs(attrs map[string]any) map[string]any {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, v := range attrs {
		out[k] = encodeAttrValue(v)
	}
	return out
}

// encodeAttrValue replaces a live element/player value with its wire
// reference envelope, recursing into nested maps and slices; anything
// else passes through unchanged.
func encodeAttrValue(v any) any {
	switch x := v.(type) {
	case *element.Player, element.Element:
		return wireValue(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = encodeAttrValue(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = encodeAttrValue(item)
		}
		return out
	default:
		return v
	}
}

// wireValue renders a legal-set value the way it must cross the wire:
// an element by id reference, a player by position reference, anything
// else as itself.
func wireValue(v any) any {
	switch x := v.(type) {
	case *element.Player:
		return wire.PlayerRef{PlayerRef: x.Position(), Position: x.Position(), Name: x.Name()}
	case element.Element:
		return wire.ElementIDRef{ID: x.ID()}
	default:
		return v
	}
}
