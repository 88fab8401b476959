package executor

import (
	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/element"
)

// PickTrace records one pick's availability contribution: whether it
// has a satisfiable legal set and, if not, why — the debug data spec.md
// §4.4 calls for ("computed defensively per-pick to produce a trace").
type PickTrace struct {
	Name      string
	Available bool
	Reason    string
	LegalSize int
}

// Availability is the result of checking whether an action is available
// to a player: an overall verdict plus a per-pick trace.
type Availability struct {
	Available bool
	Reason    string
	Picks     []PickTrace
}

// IsAvailable computes whether name is available to player: its
// condition (if any) returns true, and every non-optional pick has at
// least one legal choice given an empty args prefix (spec.md §4.4).
// Number and Text picks have no enumerable legal set and never gate
// availability on their own.
func (e *Executor) IsAvailable(player *element.Player, name string) Availability {
	def, ok := e.Get(name)
	if !ok {
		return Availability{Available: false, Reason: "action not registered"}
	}
	return e.computeAvailability(def, player)
}

func (e *Executor) computeAvailability(def action.Definition, player *element.Player) Availability {
	ctx := e.baseContext(player)

	if def.Condition != nil && !def.Condition(ctx) {
		return Availability{Available: false, Reason: "condition not met"}
	}

	avail := Availability{Available: true}
	for _, p := range def.Picks {
		trace := PickTrace{Name: p.Name, Available: true}

		switch p.Kind {
		case action.Number, action.Text:
			// No enumerable legal set; always contributes availability.
		default:
			legal := p.LegalSet(ctx)
			trace.LegalSize = len(legal)
			if !p.Optional && len(legal) == 0 {
				trace.Available = false
				trace.Reason = "no legal choices"
				avail.Available = false
			}
		}
		avail.Picks = append(avail.Picks, trace)
	}
	return avail
}

// AvailableActions returns the sorted names of every action currently
// available to player.
func (e *Executor) AvailableActions(player *element.Player) []string {
	var out []string
	for _, name := range e.Names() {
		if e.IsAvailable(player, name).Available {
			out = append(out, name)
		}
	}
	return out
}
