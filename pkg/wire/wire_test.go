package wire_test

import (
	"testing"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/wire"
)

func TestActionHistory_AppendAndTruncate(t *testing.T) {
	h := wire.ActionHistory{CreatedAt: 1000}
	h = h.Append(wire.SerializedAction{Name: "draw", Player: 1, Args: map[string]any{}})
	h = h.Append(wire.SerializedAction{Name: "play", Player: 2, Args: map[string]any{}})

	if len(h.Actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(h.Actions))
	}

	truncated := h.Truncate(1)
	if len(truncated.Actions) != 1 || truncated.Actions[0].Name != "draw" {
		t.Fatalf("Truncate(1) did not keep only the first action: %+v", truncated)
	}
	if len(h.Actions) != 2 {
		t.Fatal("Truncate should not mutate the receiver")
	}
}

func newResolveFixture(t *testing.T) (element.Element, *element.Tree, []element.Element) {
	t.Helper()
	reg := element.NewRegistry()
	reg.Register("Space", func() element.Element { return element.NewSpace() })
	reg.Register("Piece", func() element.Element { return element.NewPiece() })
	reg.Register("Player", func() element.Element { return element.NewPlayer() })
	tr := element.NewTree(reg)

	root, err := tr.Create(tr.Pile(), "Space", "root", nil)
	if err != nil {
		t.Fatal(err)
	}
	// Detach root from the pile conceptually: tests only need root to be
	// a valid container reachable via Tree(), not actually off-pile.

	p1e, err := tr.Create(root, "Player", "Alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	p1 := p1e.(*element.Player)
	p1.SetPosition(1)

	hand, err := tr.Create(root, "Space", "hand", nil)
	if err != nil {
		t.Fatal(err)
	}
	card, err := tr.Create(hand, "Piece", "card", nil)
	if err != nil {
		t.Fatal(err)
	}

	return root, tr, []element.Element{p1, hand, card}
}

func TestResolveReferences_ElementIDRef(t *testing.T) {
	root, tr, refs := newResolveFixture(t)
	card := refs[2]

	holder, err := tr.Create(root, "Piece", "holder", nil)
	if err != nil {
		t.Fatal(err)
	}
	holder.SetAttr("linkedCard", map[string]any{"__elementId": card.ID()})

	if err := wire.ResolveReferences(root, 100); err != nil {
		t.Fatal(err)
	}

	resolved, ok := holder.Attr("linkedCard")
	if !ok {
		t.Fatal("linkedCard attribute missing after resolve")
	}
	resolvedElem, ok := resolved.(element.Element)
	if !ok || resolvedElem.ID() != card.ID() {
		t.Fatalf("expected linkedCard to resolve to element %d, got %#v", card.ID(), resolved)
	}
}

func TestResolveReferences_ElementRefPath(t *testing.T) {
	root, tr, _ := newResolveFixture(t)

	holder, err := tr.Create(root, "Piece", "holder", nil)
	if err != nil {
		t.Fatal(err)
	}
	// root's children so far: [player(0), hand(1), holder(2)]; hand's
	// only child is card at index 0.
	holder.SetAttr("linkedCard", map[string]any{"__elementRef": "1/0"})

	if err := wire.ResolveReferences(root, 100); err != nil {
		t.Fatal(err)
	}

	resolved, ok := holder.Attr("linkedCard")
	if !ok {
		t.Fatal("linkedCard attribute missing after resolve")
	}
	resolvedElem, ok := resolved.(element.Element)
	if !ok || resolvedElem.Name() != "card" {
		t.Fatalf("expected linkedCard to resolve to the card, got %#v", resolved)
	}
}

func TestResolveReferences_PlayerRef(t *testing.T) {
	root, tr, refs := newResolveFixture(t)
	p1 := refs[0]

	holder, err := tr.Create(root, "Piece", "holder", nil)
	if err != nil {
		t.Fatal(err)
	}
	holder.SetAttr("controller", map[string]any{
		"__playerRef": 1,
		"position":    1,
		"name":        "Alice",
	})

	if err := wire.ResolveReferences(root, 100); err != nil {
		t.Fatal(err)
	}

	resolved, ok := holder.Attr("controller")
	if !ok {
		t.Fatal("controller attribute missing after resolve")
	}
	player, ok := resolved.(*element.Player)
	if !ok || player.ID() != p1.ID() {
		t.Fatalf("expected controller to resolve to player %d, got %#v", p1.ID(), resolved)
	}
}

func TestResolveReferences_NestedInSlice(t *testing.T) {
	root, tr, refs := newResolveFixture(t)
	card := refs[2]

	holder, err := tr.Create(root, "Piece", "holder", nil)
	if err != nil {
		t.Fatal(err)
	}
	holder.SetAttr("combo", []any{
		map[string]any{"__elementId": card.ID()},
		"plain-value",
	})

	if err := wire.ResolveReferences(root, 100); err != nil {
		t.Fatal(err)
	}

	resolved, ok := holder.Attr("combo")
	if !ok {
		t.Fatal("combo attribute missing after resolve")
	}
	list, ok := resolved.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("expected a 2-element slice, got %#v", resolved)
	}
	if _, ok := list[0].(element.Element); !ok {
		t.Fatalf("expected first slice element resolved to an element.Element, got %#v", list[0])
	}
	if list[1] != "plain-value" {
		t.Fatalf("expected second slice element untouched, got %#v", list[1])
	}
}

func TestResolveReferences_UnknownIDErrors(t *testing.T) {
	root, tr, _ := newResolveFixture(t)

	holder, err := tr.Create(root, "Piece", "holder", nil)
	if err != nil {
		t.Fatal(err)
	}
	holder.SetAttr("linkedCard", map[string]any{"__elementId": 999999})

	if err := wire.ResolveReferences(root, 100); err == nil {
		t.Fatal("expected an error resolving an unknown element id")
	}
}
