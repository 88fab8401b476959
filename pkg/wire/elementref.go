package wire

// ElementRefPath is a reference to an element by slash-separated
// child-index path from the tree root, e.g. "2/0/5" means
// root.Children()[2].Children()[0].Children()[5]. Used when a path is
// more stable across a restore than the id the element happened to get.
type ElementRefPath struct {
	Path string `json:"__elementRef"`
}

// ElementIDRef is a direct reference to an element by id.
type ElementIDRef struct {
	ID int `json:"__elementId"`
}

// PlayerRef references a player by 1-indexed position, carrying a
// denormalized hint payload (Position/Name/Color) so a UI can render the
// reference without a second lookup. __playerRef and Position hold the
// same value; the spec's wire form keeps both (spec.md §6).
type PlayerRef struct {
	PlayerRef int    `json:"__playerRef"`
	Position  int    `json:"position"`
	Name      string `json:"name"`
	Color     string `json:"color,omitempty"`
}

// decodeElementRefPath reports whether m is an ElementRefPath envelope.
func decodeElementRefPath(m map[string]any) (ElementRefPath, bool) {
	raw, ok := m["__elementRef"]
	if !ok {
		return ElementRefPath{}, false
	}
	path, ok := raw.(string)
	if !ok {
		return ElementRefPath{}, false
	}
	return ElementRefPath{Path: path}, true
}

// decodeElementIDRef reports whether m is an ElementIDRef envelope.
func decodeElementIDRef(m map[string]any) (ElementIDRef, bool) {
	raw, ok := m["__elementId"]
	if !ok {
		return ElementIDRef{}, false
	}
	id, ok := asInt(raw)
	if !ok {
		return ElementIDRef{}, false
	}
	return ElementIDRef{ID: id}, true
}

// decodePlayerRef reports whether m is a PlayerRef envelope.
func decodePlayerRef(m map[string]any) (PlayerRef, bool) {
	raw, ok := m["__playerRef"]
	if !ok {
		return PlayerRef{}, false
	}
	pos, ok := asInt(raw)
	if !ok {
		return PlayerRef{}, false
	}
	ref := PlayerRef{PlayerRef: pos, Position: pos}
	if name, ok := m["name"].(string); ok {
		ref.Name = name
	}
	if color, ok := m["color"].(string); ok {
		ref.Color = color
	}
	return ref, true
}

// asInt accepts both int (set by Go callers) and float64 (the shape any
// value decoded from JSON takes), since element references commonly
// round-trip through encoding/json before reaching ResolveReferences.
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
