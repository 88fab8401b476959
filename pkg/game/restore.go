package game

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flowengine"
	"github.com/shufflewick/boardsmith/pkg/rng"
	"github.com/shufflewick/boardsmith/pkg/snapshot"
)

// Snapshot captures g's entire restorable state: the element tree
// (rooted at g.Space, plus the detached pile), the message log, the
// active phase, settings, and the RNG's seed and current position in
// its sequence. The returned value carries no reference to g's
// Definition — Restore always takes that from its caller.
func (g *Game) Snapshot() *snapshot.Snapshot {
	messages := make([]snapshot.MessageRecord, len(g.messages))
	for i, m := range g.messages {
		messages[i] = snapshot.MessageRecord{Template: m.Template, Data: m.Data}
	}
	return snapshot.Capture(g.Space, g.Pile(), g.phase, messages, g.settings, g.rng.Seed(), g.rng.State())
}

// Restore rebuilds a Game from a snapshot taken by Snapshot, wiring it
// to def the same way New wires a freshly constructed Game. The
// rebuilt RNG resumes from snap's recorded seed and accumulator rather
// than restarting the sequence, so draws after a restore continue
// exactly where the captured game left off.
func Restore(snap *snapshot.Snapshot, def Definition) (*Game, error) {
	registry := buildRegistry(def)

	_, root, players, err := snapshot.Rebuild(snap, registry)
	if err != nil {
		return nil, fmt.Errorf("game: restore: %w", err)
	}
	space, ok := root.(*element.Space)
	if !ok {
		return nil, fmt.Errorf("game: restore: root class %q did not rebuild an *element.Space", root.ClassName())
	}

	messages := make([]Message, len(snap.Messages))
	for i, m := range snap.Messages {
		data := make(map[string]any, len(m.Data))
		for k, v := range m.Data {
			data[k] = v
			ref, _ := v.(map[string]any)
			if id, ok := ref["__elementId"].(int); ok {
				if el, found := root.Tree().GetElementByID(id); found {
					data[k] = el
				}
			}
			if pos, ok := ref["__playerRef"].(int); ok && pos >= 1 && pos <= len(players) && players[pos-1].Position() == pos {
				data[k] = players[pos-1]
			}
		}
		messages[i] = Message{Template: m.Template, Data: data}
	}

	g := &Game{
		Space:    space,
		registry: registry,
		players:  players,
		rng:      rng.Resume(snap.RNGSeed, snap.RNGState),
		phase:    snap.Phase,
		messages: messages,
		settings: snap.Settings,
	}

	g.executor = executor.New(g)
	if def.RegisterActions != nil {
		def.RegisterActions(g.executor)
	}
	if def.Flow != nil {
		g.engine = flowengine.New(def.Flow, g, g.executor)
	}

	return g, nil
}
