// Command boardsmithdemo plays a few rounds of a minimal card game
// (Trade Row) through the full boardsmith stack — element tree,
// executor, flow engine, game, session, snapshot — and optionally
// writes a debug SVG of one player's projected element tree, the same
// way the teacher's cmd/dungeongen writes a debug SVG of a generated
// dungeon graph.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/shufflewick/boardsmith/internal/config"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/game"
	"github.com/shufflewick/boardsmith/pkg/session"
)

var (
	manifestPath = flag.String("manifest", "", "Path to a YAML piece manifest (uses a built-in default if empty)")
	seed         = flag.String("seed", "trade-row-demo", "RNG seed")
	players      = flag.Int("players", 3, "Number of players")
	svgOut       = flag.String("svg", "", "If set, write a debug SVG of the final state to this path")
	svgViewer    = flag.Int("svg-viewer", 1, "Player position whose view the debug SVG renders")
)

func defaultManifest() *config.Manifest {
	m := &config.Manifest{
		Name:        "trade-row-demo",
		PlayerCount: config.PlayerCountRange{Min: 2, Max: 6},
		Pieces: []config.PieceSpec{
			{Class: "Piece", Name: "Ox", Count: 6, Attributes: map[string]any{"value": 3}},
			{Class: "Piece", Name: "Iron Works", Count: 4, Attributes: map[string]any{"value": 5}},
			{Class: "Piece", Name: "Grain Cart", Count: 8, Attributes: map[string]any{"value": 1}},
			{Class: "Piece", Name: "Silver Mine", Count: 2, Attributes: map[string]any{"value": 9}},
		},
	}
	if err := m.Validate(); err != nil {
		log.Fatalf("boardsmithdemo: built-in manifest failed validation: %v", err)
	}
	return m
}

func loadManifest() *config.Manifest {
	if *manifestPath == "" {
		return defaultManifest()
	}
	m, err := config.Load(*manifestPath)
	if err != nil {
		log.Fatalf("boardsmithdemo: loading manifest: %v", err)
	}
	return m
}

func main() {
	flag.Parse()

	manifest := loadManifest()
	if !manifest.PlayerCount.InRange(*players) {
		log.Fatalf("boardsmithdemo: %d players is outside %s's configured range [%d, %d]",
			*players, manifest.Name, manifest.PlayerCount.Min, manifest.PlayerCount.Max)
	}

	var broadcastCount int
	broadcast := func(viewer int, payload []byte) {
		broadcastCount++
	}

	sess, err := session.New(session.Options{
		Options: game.Options{PlayerCount: *players, Seed: *seed},
	}, NewDefinition(), broadcast, nil)
	if err != nil {
		log.Fatalf("boardsmithdemo: creating session: %v", err)
	}

	if err := setupBoard(sess.Game(), manifest); err != nil {
		log.Fatalf("boardsmithdemo: setting up board: %v", err)
	}

	playOutGame(sess)

	printFinalScores(sess)

	if *svgOut != "" {
		writeDebugSVG(sess, *svgViewer, *svgOut)
	}
}

// playOutGame drives the flow engine to completion by performing, at
// every barrier, the action chooseAction picks from those offered
// (play over draw over pass), demonstrating the
// Session.PerformAction routing path end to end rather than an
// interactive loop a real client would drive instead.
func playOutGame(sess *session.Session) {
	eng := sess.Game().Engine()
	if eng == nil {
		log.Fatal("boardsmithdemo: game has no flow engine")
	}

	const maxSteps = 100000
	for step := 0; step < maxSteps; step++ {
		if eng.IsComplete() {
			return
		}
		if !eng.AwaitingInput() {
			// Run ticks the engine on its own inside PerformAction/Resume;
			// if it isn't awaiting input and isn't complete, nothing else
			// can move it forward.
			log.Fatal("boardsmithdemo: flow engine stalled with no pending input and no completion")
		}

		player := eng.AwaitingPlayer()
		if player == nil {
			log.Fatal("boardsmithdemo: demo game never raises a simultaneous barrier")
		}

		actionName := chooseAction(eng.AwaitingActions())
		args := buildArgs(player, actionName)

		if _, err := sess.PerformAction(player.Position(), actionName, args); err != nil {
			log.Fatalf("boardsmithdemo: performing %q for player %d: %v", actionName, player.Position(), err)
		}
	}
	log.Fatal("boardsmithdemo: exceeded the demo's own step cap without completing")
}

// chooseAction prefers playing a card, then drawing, then passing —
// just enough of a policy to exercise every action at least once across
// a full game.
func chooseAction(available []string) string {
	priority := []string{"play", "draw", "pass"}
	for _, want := range priority {
		for _, got := range available {
			if got == want {
				return want
			}
		}
	}
	return available[0]
}

func buildArgs(player *element.Player, name string) map[string]any {
	if name != "play" {
		return nil
	}
	hand := handCollection(player)
	first, ok := hand.First()
	if !ok {
		return nil
	}
	return map[string]any{"card": first.ID()}
}

func printFinalScores(sess *session.Session) {
	for _, p := range sess.Game().Players() {
		score, _ := p.Attr("score")
		log.Printf("%s: score=%v", p.Name(), score)
	}
	proj := sess.Game().Project(1)
	data, err := json.MarshalIndent(proj, "", "  ")
	if err != nil {
		log.Printf("boardsmithdemo: marshaling player 1's projection: %v", err)
		return
	}
	log.Printf("player 1 projection:\n%s", data)
}

func writeDebugSVG(sess *session.Session, viewer int, path string) {
	data, err := exportProjectedTreeSVG(sess.Game().Root(), viewer, defaultDebugSVGOptions())
	if err != nil {
		log.Printf("boardsmithdemo: rendering debug SVG: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("boardsmithdemo: writing debug SVG to %s: %v", path, err)
		return
	}
	log.Printf("wrote debug SVG to %s", path)
}
