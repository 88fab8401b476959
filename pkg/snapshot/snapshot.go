package snapshot

import (
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/visibility"
)

// ElementRecord is one element's plain, serializable record: everything
// Rebuild needs to recreate it and reattach it at the right place in the
// tree. ParentID is 0 for the two roots (the tree root and the pile);
// InPile distinguishes "root of the pile" from "root of the main tree"
// for those two records. Attrs has already had any live element/player
// values replaced by wire reference envelopes (see encodeValue) so the
// whole Snapshot round-trips through encoding/json unchanged.
type ElementRecord struct {
	ID         int
	Class      string
	Name       string
	ParentID   int
	InPile     bool
	OwnerID    int
	Visibility *visibility.Visibility
	Order      element.Order
	Attrs      map[string]any
	Children   []int

	// Position and Current are meaningful only when Class == "Player".
	Position int
	Current  bool
}

// MessageRecord is one logged message's plain, serializable record
// (game.Message, encoded the same way ElementRecord.Attrs is).
type MessageRecord struct {
	Template string
	Data     map[string]any
}

// Snapshot is a game's entire restorable state at one point in time
// (spec.md §4.10): the element tree (main tree plus pile), the message
// log, the active phase, and settings. It deliberately excludes
// anything a Definition supplies in code (class factories, action
// definitions, the flow graph) — Rebuild always takes those from the
// caller, never from the snapshot.
type Snapshot struct {
	RootID   int
	PileID   int
	Phase    string
	Messages []MessageRecord
	Settings map[string]any
	RNGSeed  string
	RNGState uint32
	Elements map[int]ElementRecord
}

// Capture walks root and pile and records every descendant. rngSeed and
// rngState come from rng.RNG.Seed/State so Rebuild can resume the exact
// same draw sequence rather than restarting it.
func Capture(root, pile element.Element, phase string, messages []MessageRecord, settings map[string]any, rngSeed string, rngState uint32) *Snapshot {
	snap := &Snapshot{
		RootID:   root.ID(),
		PileID:   pile.ID(),
		Phase:    phase,
		Settings: encodeMap(settings),
		RNGSeed:  rngSeed,
		RNGState: rngState,
		Elements: make(map[int]ElementRecord),
	}
	captureElement(snap, root, false)
	captureElement(snap, pile, true)
	for _, m := range messages {
		snap.Messages = append(snap.Messages, MessageRecord{Template: m.Template, Data: encodeMap(m.Data)})
	}
	return snap
}

func captureElement(snap *Snapshot, e element.Element, inPile bool) {
	rec := ElementRecord{
		ID:     e.ID(),
		Class:  e.ClassName(),
		Name:   e.Name(),
		InPile: inPile,
		Order:  e.Order(),
		Attrs:  encodeMap(e.Attrs()),
	}
	if parent := e.Parent(); parent != nil {
		rec.ParentID = parent.ID()
	}
	if owner := e.Owner(); owner != nil {
		rec.OwnerID = owner.ID()
	}
	if v := e.Visibility(); v.Explicit {
		vv := v
		rec.Visibility = &vv
	}
	if p, ok := e.(*element.Player); ok {
		rec.Position = p.Position()
		rec.Current = p.IsCurrent()
	}
	for _, c := range e.Children() {
		rec.Children = append(rec.Children, c.ID())
	}
	snap.Elements[e.ID()] = rec

	for _, c := range e.Children() {
		captureElement(snap, c, inPile)
	}
}

// encodeValue replaces a live element.Element or *element.Player value
// with the wire reference envelope pkg/wire.ResolveReferences knows how
// to decode back, recursing into nested maps and slices. Any other
// value passes through unchanged.
func encodeValue(v any) any {
	switch x := v.(type) {
	case *element.Player:
		return map[string]any{"__playerRef": x.Position(), "position": x.Position(), "name": x.Name()}
	case element.Element:
		return map[string]any{"__elementId": x.ID()}
	case map[string]any:
		return encodeMap(x)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = encodeValue(item)
		}
		return out
	default:
		return v
	}
}

func encodeMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = encodeValue(v)
	}
	return out
}
