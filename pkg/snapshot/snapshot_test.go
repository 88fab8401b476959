package snapshot_test

import (
	"context"
	"testing"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/snapshot"
	"github.com/shufflewick/boardsmith/pkg/visibility"
)

func newRegistry() *element.Registry {
	reg := element.NewRegistry()
	reg.Register("Space", func() element.Element { return element.NewSpace() })
	reg.Register("Piece", func() element.Element { return element.NewPiece() })
	reg.Register("Player", func() element.Element { return element.NewPlayer() })
	return reg
}

// buildGame constructs a small tree: root -> {player1, player2, hand(Space)
// -> card(Piece, owned by player1, hidden)}, returning the live pieces a
// test wants to assert against after a round trip.
func buildGame(t *testing.T) (tree *element.Tree, root element.Element, p1, p2 *element.Player, card element.Element) {
	t.Helper()
	reg := newRegistry()
	tree = element.NewTree(reg)

	rootEl, err := tree.NewRoot("Space", "root")
	if err != nil {
		t.Fatal(err)
	}
	root = rootEl

	p1e, _ := tree.Create(root, "Player", "Alice", nil)
	p1 = p1e.(*element.Player)
	p1.SetPosition(1)
	p1.SetCurrent(true)

	p2e, _ := tree.Create(root, "Player", "Bob", nil)
	p2 = p2e.(*element.Player)
	p2.SetPosition(2)

	hand, _ := tree.Create(root, "Space", "hand", nil)
	hand.SetOrder(element.Stacking)

	card, _ = tree.Create(hand, "Piece", "card", map[string]any{"rank": "K", "holder": p1})
	card.SetOwner(p1)
	card.SetVisibility(visibility.Visibility{Mode: visibility.Owner})

	return tree, root, p1, p2, card
}

func TestCapture_Rebuild_RoundTrip(t *testing.T) {
	tree, root, p1, _, card := buildGame(t)

	snap := snapshot.Capture(root, tree.Pile(), "main", nil, map[string]any{"rules": "basic"}, "seed-1", 42)

	reg := newRegistry()
	report, err := snapshot.NewValidator().Validate(context.Background(), snap, reg)
	if err != nil {
		t.Fatal(err)
	}
	if !report.Passed {
		t.Fatalf("expected a passing validation report, got issues: %+v", report.Issues)
	}

	_, newRoot, players, err := snapshot.Rebuild(snap, reg)
	if err != nil {
		t.Fatal(err)
	}
	if newRoot.ID() != root.ID() {
		t.Fatalf("expected root id %d, got %d", root.ID(), newRoot.ID())
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].Position() != 1 || !players[0].IsCurrent() {
		t.Fatalf("expected player 1 current, got position=%d current=%v", players[0].Position(), players[0].IsCurrent())
	}
	if players[1].IsCurrent() {
		t.Fatal("expected player 2 not current")
	}

	hand, ok := element.NewQuery().Class("Space").Refine(element.ByName("hand")).First(newRoot)
	if !ok {
		t.Fatal("expected a rebuilt hand space")
	}
	if hand.Order() != element.Stacking {
		t.Fatal("expected the hand's stacking order to survive the round trip")
	}

	rebuiltCard, ok := element.NewQuery().Class("Piece").First(newRoot)
	if !ok {
		t.Fatal("expected a rebuilt card")
	}
	if rebuiltCard.ID() != card.ID() {
		t.Fatalf("expected card id %d, got %d", card.ID(), rebuiltCard.ID())
	}
	if rank, _ := rebuiltCard.Attr("rank"); rank != "K" {
		t.Fatalf("expected rank K, got %v", rank)
	}
	if owner := rebuiltCard.Owner(); owner == nil || owner.Position() != p1.Position() {
		t.Fatal("expected the card's owner to survive the round trip")
	}
	holder, ok := rebuiltCard.Attr("holder")
	if !ok {
		t.Fatal("expected the holder attribute to survive the round trip")
	}
	if holderPlayer, ok := holder.(*element.Player); !ok || holderPlayer.Position() != 1 {
		t.Fatalf("expected holder to resolve to a live *element.Player at position 1, got %#v", holder)
	}
	ownerPos := element.OwnerPosition(rebuiltCard)
	if visibility.Resolve(2, element.EffectiveVisibility(rebuiltCard), ownerPos) {
		t.Fatal("expected the card to remain hidden from player 2 after rebuild")
	}
	if !visibility.Resolve(1, element.EffectiveVisibility(rebuiltCard), ownerPos) {
		t.Fatal("expected the card to remain visible to its owner after rebuild")
	}
}

func TestValidate_FlagsMissingClass(t *testing.T) {
	tree, root, _, _, _ := buildGame(t)
	snap := snapshot.Capture(root, tree.Pile(), "", nil, nil, "s", 0)

	reg := element.NewRegistry()
	reg.Register("Space", func() element.Element { return element.NewSpace() })
	// Piece and Player deliberately left unregistered.

	report, err := snapshot.NewValidator().Validate(context.Background(), snap, reg)
	if err != nil {
		t.Fatal(err)
	}
	if report.Passed {
		t.Fatal("expected validation to fail when classes are missing")
	}
	foundMissing := false
	for _, issue := range report.Issues {
		if issue.Category == snapshot.MissingClass {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Fatalf("expected at least one missing-class issue, got %+v", report.Issues)
	}
}

func TestValidate_FlagsDuplicatePlayerPosition(t *testing.T) {
	tree, root, _, p2, _ := buildGame(t)
	p2.SetPosition(1) // now collides with player 1
	snap := snapshot.Capture(root, tree.Pile(), "", nil, nil, "s", 0)

	report, err := snapshot.NewValidator().Validate(context.Background(), snap, newRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if report.Passed {
		t.Fatal("expected validation to fail on a duplicate player position")
	}
}

func TestValidate_FlagsSchemaErrors(t *testing.T) {
	tree, root, p1, _, _ := buildGame(t)
	snap := snapshot.Capture(root, tree.Pile(), "", nil, nil, "s", 0)

	// Corrupt the root record away entirely, and give player 1 a
	// non-positive position, so both schema-error checks fire in one
	// pass without disturbing the rest of the tree.
	delete(snap.Elements, root.ID())
	p1rec := snap.Elements[p1.ID()]
	p1rec.Position = 0
	snap.Elements[p1.ID()] = p1rec

	report, err := snapshot.NewValidator().Validate(context.Background(), snap, newRegistry())
	if err != nil {
		t.Fatal(err)
	}
	if report.Passed {
		t.Fatal("expected validation to fail on a missing root record and a bad player position")
	}

	var sawMissingRoot, sawBadPosition bool
	for _, issue := range report.Issues {
		if issue.Category != snapshot.SchemaError {
			continue
		}
		switch issue.ElementID {
		case root.ID():
			sawMissingRoot = true
		case p1.ID():
			sawBadPosition = true
		}
	}
	if !sawMissingRoot {
		t.Errorf("expected a schema-error issue for the missing root record, got %+v", report.Issues)
	}
	if !sawBadPosition {
		t.Errorf("expected a schema-error issue for the non-positive player position, got %+v", report.Issues)
	}
}
