package wire

// PlayerDescriptor is one player's entry in a ProjectedState's ordered
// player list: position, display name, whether it is this player's
// turn, and whatever public attributes the game attaches (spec.md §6).
type PlayerDescriptor struct {
	Position   int            `json:"position"`
	Name       string         `json:"name"`
	IsCurrent  bool           `json:"isCurrent"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// PickMetadata describes one pick of an available action as the client
// needs to render it: its legal set, whether it depends on an earlier
// pick's resolved value, multi-select bounds, and why it is disabled
// when it is.
type PickMetadata struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Legal          []any    `json:"legal,omitempty"`
	DependsOn      []string `json:"dependsOn,omitempty"`
	Min            int      `json:"min,omitempty"`
	Max            int      `json:"max,omitempty"`
	Optional       bool     `json:"optional,omitempty"`
	Disabled       bool     `json:"disabled,omitempty"`
	DisabledReason string   `json:"disabledReason,omitempty"`
}

// ActionMetadata is the per-action entry keyed by name in a
// ProjectedState's ActionMetadata map.
type ActionMetadata struct {
	Name  string         `json:"name"`
	Picks []PickMetadata `json:"picks"`
}

// AnimationEvent is one entry in a ProjectedState's pending animation
// queue. Data is whatever shape the emitting action chose; the engine
// never interprets it.
type AnimationEvent struct {
	ID   int            `json:"id"`
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// ElementSnapshot is one node of a ProjectedState's filtered element
// tree: exactly as much of an element as the viewer that tree was
// projected for is allowed to see (spec.md §4.2).
//
// A node the viewer cannot see at all is emitted with Hidden set, no
// Name, and Attrs limited to whatever "$"-prefixed system/rendering
// hints the element carries — the placeholder still reveals Class and
// ID (spec.md §8 scenario 2's "3 hidden-child placeholders with
// __hidden: true and no name"). A Space whose zone visibility is
// count-only is emitted itself, but its real children are replaced by
// anonymized placeholders carrying synthetic negative ids, one per
// real child, so a client can render "N cards" without correlating
// them to any other projection. Every other node is emitted in full,
// recursing into its own children the same way.
type ElementSnapshot struct {
	ID       int               `json:"id"`
	Class    string            `json:"class"`
	Name     string            `json:"name,omitempty"`
	Owner    int               `json:"owner,omitempty"`
	Attrs    map[string]any    `json:"attrs,omitempty"`
	Children []ElementSnapshot `json:"children,omitempty"`
	Hidden   bool              `json:"__hidden,omitempty"`
}

// ProjectedState is the broadcast payload for one viewer: phase, the
// ordered player roster, which actions are currently available and how
// to render their picks, undo/move-count bookkeeping, and optionally an
// animation queue and a theatre view — the pre-animation projected tree
// a client should render while truth has already moved on (spec.md §6,
// GLOSSARY "Theatre view").
type ProjectedState struct {
	Phase                  string                    `json:"phase"`
	Board                  ElementSnapshot           `json:"board"`
	Players                []PlayerDescriptor        `json:"players"`
	CurrentPlayerPosition  int                       `json:"currentPlayerPosition"`
	AvailableActions       []string                  `json:"availableActions"`
	ActionMetadata         map[string]ActionMetadata `json:"actionMetadata"`
	UndoAvailable          bool                      `json:"undoAvailable"`
	ActionsThisTurn        int                       `json:"actionsThisTurn"`
	PendingAnimationEvents []AnimationEvent          `json:"pendingAnimationEvents,omitempty"`
	LastAnimationEventID   int                       `json:"lastAnimationEventId,omitempty"`
	TheatreView            *ProjectedState           `json:"theatreView,omitempty"`
}
