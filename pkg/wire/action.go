package wire

// SerializedAction is the wire form of one performed action: a name, the
// 1-indexed position of the player who performed it, and its resolved
// pick arguments. Elements inside Args are represented by numeric id,
// not by an ElementRef/ElementID envelope — those envelopes are only
// needed for references buried inside arbitrary attribute graphs
// (spec.md §6), not for the top-level args map.
type SerializedAction struct {
	Name   string         `json:"name"`
	Player int            `json:"player"`
	Args   map[string]any `json:"args"`
}

// ActionHistory is exactly a sequence of SerializedAction records plus a
// per-game creation timestamp, as spec.md §6 requires. CreatedAt is a
// Unix milliseconds timestamp rather than time.Time so that replay
// comparisons (spec.md §8 "Replay determinism") stay byte-identical
// across runs without depending on time.Time's monotonic-reading quirks
// surviving a JSON round trip.
type ActionHistory struct {
	CreatedAt int64              `json:"createdAt"`
	Actions   []SerializedAction `json:"actions"`
}

// Append returns a new ActionHistory with a appended. ActionHistory
// values are treated as immutable once built, matching how session
// replays rebuild the slice rather than mutate it in place.
func (h ActionHistory) Append(a SerializedAction) ActionHistory {
	next := make([]SerializedAction, len(h.Actions), len(h.Actions)+1)
	copy(next, h.Actions)
	next = append(next, a)
	return ActionHistory{CreatedAt: h.CreatedAt, Actions: next}
}

// Truncate returns a new ActionHistory containing only the first n
// actions, used by session rewind (spec.md §8 "Rewind invariance").
func (h ActionHistory) Truncate(n int) ActionHistory {
	if n < 0 {
		n = 0
	}
	if n > len(h.Actions) {
		n = len(h.Actions)
	}
	next := make([]SerializedAction, n)
	copy(next, h.Actions[:n])
	return ActionHistory{CreatedAt: h.CreatedAt, Actions: next}
}
