package game_test

import (
	"testing"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/game"
	"github.com/shufflewick/boardsmith/pkg/visibility"
)

// handsDefinition registers a Hand class (a Space) alongside the
// built-ins.
func handsDefinition() game.Definition {
	return game.Definition{
		RegisterClasses: func(reg *element.Registry) {
			reg.Register("Hand", func() element.Element { return element.NewSpace() })
		},
	}
}

// dealHands gives each of g's two players an owner-visible Hand
// containing 3 cards, each explicitly owned via SetOwner — zone
// visibility alone does not propagate ownership onto children
// (element.OwnerPosition reads only the element's own owner), so the
// Definition must assign it itself.
func dealHands(t *testing.T, g *game.Game) (hand1, hand2 element.Element) {
	t.Helper()
	p1, _ := g.Player(1)
	p2, _ := g.Player(2)

	hand1, err := g.Tree().Create(g.Root(), "Hand", "hand1", nil)
	if err != nil {
		t.Fatal(err)
	}
	hand1.(*element.Space).SetZoneVisibility(visibility.Visibility{Mode: visibility.Owner})
	hand1.SetOwner(p1)

	hand2, err = g.Tree().Create(g.Root(), "Hand", "hand2", nil)
	if err != nil {
		t.Fatal(err)
	}
	hand2.(*element.Space).SetZoneVisibility(visibility.Visibility{Mode: visibility.Owner})
	hand2.SetOwner(p2)

	for i := 0; i < 3; i++ {
		c1, err := g.Tree().Create(hand1, "Piece", "card", map[string]any{"rank": i + 1})
		if err != nil {
			t.Fatal(err)
		}
		c1.SetOwner(p1)

		c2, err := g.Tree().Create(hand2, "Piece", "card", map[string]any{"rank": i + 1})
		if err != nil {
			t.Fatal(err)
		}
		c2.SetOwner(p2)
	}
	return hand1, hand2
}

func TestProject_HiddenHandShowsOnlyAnonymizedPlaceholders(t *testing.T) {
	g := newTestGame(t, 2, handsDefinition())
	dealHands(t, g)

	p1View := g.Project(1)

	var found bool
	for _, c := range p1View.Board.Children {
		if c.Name != "hand2" {
			continue
		}
		found = true
		if c.Hidden {
			t.Fatal("expected the hand2 Space itself to be visible (only its cards are owner-hidden)")
		}
		if len(c.Children) != 3 {
			t.Fatalf("expected 3 hidden-card placeholders under hand2, got %d", len(c.Children))
		}
		for _, card := range c.Children {
			if !card.Hidden {
				t.Fatal("expected every card in player 2's hand to be hidden from player 1")
			}
			if card.Name != "" {
				t.Fatalf("expected a hidden placeholder to carry no name, got %q", card.Name)
			}
		}
	}
	if !found {
		t.Fatal("expected to find hand2 in player 1's projection")
	}

	p2View := g.Project(2)
	for _, c := range p2View.Board.Children {
		if c.Name != "hand2" {
			continue
		}
		if len(c.Children) != 3 {
			t.Fatalf("expected 3 cards under player 2's own hand, got %d", len(c.Children))
		}
		for _, card := range c.Children {
			if card.Hidden {
				t.Fatal("expected player 2 to see their own cards in full")
			}
			if card.Name != "card" {
				t.Fatalf("expected the card's real name to survive, got %q", card.Name)
			}
			if card.Attrs["rank"] == nil {
				t.Fatal("expected the card's real attributes to survive for its owner")
			}
		}
	}
}

func TestProject_CountOnlyZoneAnonymizesChildrenWithNegativeIDs(t *testing.T) {
	def := game.Definition{
		RegisterClasses: func(reg *element.Registry) {
			reg.Register("Deck", func() element.Element { return element.NewSpace() })
		},
	}
	g := newTestGame(t, 1, def)

	deck, err := g.Tree().Create(g.Root(), "Deck", "deck", nil)
	if err != nil {
		t.Fatal(err)
	}
	deck.(*element.Space).SetZoneVisibility(visibility.Visibility{Mode: visibility.CountOnly})

	for i := 0; i < 4; i++ {
		if _, err := g.Tree().Create(deck, "Piece", "card", nil); err != nil {
			t.Fatal(err)
		}
	}

	view := g.Project(1)
	for _, c := range view.Board.Children {
		if c.Name != "deck" {
			continue
		}
		if c.Hidden {
			t.Fatal("expected the count-only zone itself to be visible")
		}
		if len(c.Children) != 4 {
			t.Fatalf("expected 4 anonymized placeholders, got %d", len(c.Children))
		}
		seen := map[int]bool{}
		for i, child := range c.Children {
			if !child.Hidden {
				t.Fatal("expected every count-only child to be a hidden placeholder")
			}
			want := -(c.ID*1000 + i)
			if child.ID != want {
				t.Fatalf("expected synthetic id %d for child %d, got %d", want, i, child.ID)
			}
			if seen[child.ID] {
				t.Fatal("expected every synthetic id to be unique")
			}
			seen[child.ID] = true
		}
	}
}
