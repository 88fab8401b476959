package wire

// FlowPosition is the flow engine's persisted, opaque position: the
// frame-index path down the node stack, a per-loop-node iteration
// counter keyed by the loop's path so resumption knows where each
// nested loop left off, the player index for in-progress each-player
// iteration, and whatever scalar variables the flow's execute callbacks
// stashed (spec.md §6).
type FlowPosition struct {
	Path        []int          `json:"path"`
	Iterations  map[string]int `json:"iterations"`
	PlayerIndex *int           `json:"playerIndex,omitempty"`
	Variables   map[string]any `json:"variables"`
}

// NewFlowPosition returns a zero-value FlowPosition ready to accumulate
// path segments, with its maps initialized so callers can assign into
// them directly.
func NewFlowPosition() FlowPosition {
	return FlowPosition{
		Iterations: make(map[string]int),
		Variables:  make(map[string]any),
	}
}

// Clone returns a deep-enough copy: Path, Iterations, and Variables are
// all independent from the receiver, since flow frames snapshot position
// at every pause and must not alias engine-owned maps.
func (p FlowPosition) Clone() FlowPosition {
	out := FlowPosition{
		Path:       append([]int(nil), p.Path...),
		Iterations: make(map[string]int, len(p.Iterations)),
		Variables:  make(map[string]any, len(p.Variables)),
	}
	for k, v := range p.Iterations {
		out.Iterations[k] = v
	}
	for k, v := range p.Variables {
		out.Variables[k] = v
	}
	if p.PlayerIndex != nil {
		idx := *p.PlayerIndex
		out.PlayerIndex = &idx
	}
	return out
}
