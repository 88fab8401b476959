package main

import (
	"fmt"

	"github.com/shufflewick/boardsmith/pkg/action"
	"github.com/shufflewick/boardsmith/pkg/collection"
	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/executor"
	"github.com/shufflewick/boardsmith/pkg/flow"
	"github.com/shufflewick/boardsmith/pkg/game"
	"github.com/shufflewick/boardsmith/pkg/visibility"

	"github.com/shufflewick/boardsmith/internal/config"
)

// handSpaceName and related constants name the fixed supply zones every
// player and the shared board carry, mirroring the teacher's convention
// of naming dungeon zones by role (entrance, boss, treasure) rather than
// position.
const (
	deckSpaceName   = "deck"
	marketSpaceName = "market"
	handSpaceName   = "hand"
)

// buildDeck expands a manifest's piece catalog into Piece elements
// sitting in dest, one per PieceSpec.Expand() copy.
func buildDeck(tree *element.Tree, dest element.Element, manifest *config.Manifest) error {
	for _, spec := range manifest.Pieces {
		for i := 0; i < spec.Expand(); i++ {
			attrs := make(map[string]any, len(spec.Attributes))
			for k, v := range spec.Attributes {
				attrs[k] = v
			}
			if _, err := tree.Create(dest, spec.Class, spec.Name, attrs); err != nil {
				return fmt.Errorf("demo: creating piece %q: %w", spec.Name, err)
			}
		}
	}
	return nil
}

// NewDefinition builds the game.Definition for the Trade Row demo: a
// shared hidden deck, one hidden hand per player, and a public market
// every played card lands face-up in. Players draw, play a card from
// their hand into the market for its value, or pass to end their turn;
// a round ends once the deck runs dry.
func NewDefinition() game.Definition {
	return game.Definition{
		RegisterActions: registerActions,
		Flow:            buildFlow(),
	}
}

func registerActions(ex *executor.Executor) {
	ex.Register(action.NewBuilder("draw").
		Prompt("Draw a card from the deck").
		Condition(func(ctx action.Context) bool {
			deck := findSpace(ctx.Game.Root(), deckSpaceName)
			return deck != nil && len(deck.Children()) > 0
		}).
		ExecuteFn(func(ctx action.Context) action.Result {
			deck := findSpace(ctx.Game.Root(), deckSpaceName)
			hand := findSpace(ctx.Player, handSpaceName)
			if deck == nil || len(deck.Children()) == 0 {
				return action.Fail("the deck is empty")
			}
			top := deck.Children()[0]
			piece, ok := top.(*element.Piece)
			if !ok {
				return action.Fail("top of deck is not a piece")
			}
			if err := ctx.Game.Root().Tree().PutInto(piece, hand); err != nil {
				return action.Fail(err.Error())
			}
			return action.Ok(map[string]any{"card": piece.ID()}).
				WithMessage("{{player}} drew a card")
		}).
		Build())

	ex.Register(action.NewBuilder("play").
		Prompt("Play a card from your hand into the market").
		Condition(func(ctx action.Context) bool {
			hand := findSpace(ctx.Player, handSpaceName)
			return hand != nil && len(hand.Children()) > 0
		}).
		ElementPick("card", func(ctx action.Context) []any {
			hand := findSpace(ctx.Player, handSpaceName)
			if hand == nil {
				return nil
			}
			out := make([]any, 0, len(hand.Children()))
			for _, c := range hand.Children() {
				out = append(out, c)
			}
			return out
		}).
		ExecuteFn(func(ctx action.Context) action.Result {
			raw, _ := ctx.Arg("card")
			piece, ok := raw.(*element.Piece)
			if !ok {
				return action.Fail("card did not resolve to a piece")
			}
			market := findSpace(ctx.Game.Root(), marketSpaceName)
			if err := ctx.Game.Root().Tree().PutInto(piece, market); err != nil {
				return action.Fail(err.Error())
			}
			value, _ := piece.Attr("value")
			points, _ := value.(int)
			score, _ := ctx.Player.Attr("score")
			current, _ := score.(int)
			ctx.Player.SetAttr("score", current+points)
			return action.Ok(map[string]any{"card": piece.ID(), "value": points}).
				WithMessage("{{player}} played a card")
		}).
		Build())

	ex.Register(action.NewBuilder("pass").
		Prompt("End your turn").
		ExecuteFn(func(ctx action.Context) action.Result {
			ctx.Player.SetAttr("turnDone", true)
			return action.Ok(nil).WithMessage("{{player}} passed")
		}).
		Build())
}

// buildFlow constructs the turn structure: while the deck still has
// cards, every player in seat order takes one turn consisting of as
// many draw/play actions as they like, ending with pass.
func buildFlow() flow.Node {
	return flow.Phase(flow.PhaseNode{
		Name: "trading",
		Do: flow.Loop(flow.LoopNode{
			While: func(ctx flow.Context) bool {
				deck := findSpace(ctx.Game.Root(), deckSpaceName)
				return deck != nil && len(deck.Children()) > 0
			},
			Do: flow.EachPlayer(flow.EachPlayerNode{
				Do: flow.Sequence(
					flow.Execute(func(ctx flow.Context) map[string]any {
						if ctx.CurrentPlayer != nil {
							ctx.CurrentPlayer.SetAttr("turnDone", false)
						}
						return nil
					}),
					flow.ActionStep(flow.ActionStepNode{
						Actions: []string{"draw", "play", "pass"},
						RepeatUntil: func(ctx flow.Context) bool {
							if ctx.CurrentPlayer == nil {
								return true
							}
							done, _ := ctx.CurrentPlayer.Attr("turnDone")
							b, _ := done.(bool)
							return b
						},
					}),
				),
			}),
		}),
	})
}

// setupBoard creates the deck, market, and per-player hand spaces a
// fresh Trade Row game needs, then shuffles manifest's pieces into the
// deck. Called once, right after game.New, since spec.md keeps board
// setup out of game.Definition itself (a Definition only wires classes,
// actions, and flow — not initial placement, which varies per manifest).
func setupBoard(g *game.Game, manifest *config.Manifest) error {
	tree := g.Root().Tree()

	deck, err := tree.Create(g.Root(), "Space", deckSpaceName, nil)
	if err != nil {
		return err
	}
	deckSpace := deck.(*element.Space)
	deckSpace.SetOrder(element.Stacking)
	deckSpace.SetZoneVisibility(visibility.Visibility{Mode: visibility.Hidden})

	market, err := tree.Create(g.Root(), "Space", marketSpaceName, nil)
	if err != nil {
		return err
	}
	_ = market

	for _, p := range g.Players() {
		hand, err := tree.Create(p, "Space", handSpaceName, nil)
		if err != nil {
			return err
		}
		handSpace := hand.(*element.Space)
		handSpace.SetZoneVisibility(visibility.Visibility{Mode: visibility.Owner})
	}

	if err := buildDeck(tree, deckSpace, manifest); err != nil {
		return err
	}
	tree.Shuffle(deckSpace, g.RNG())
	return nil
}

// findSpace looks for a child Space named name among parent's direct
// children only (deck and market live one level below root; hands live
// one level below their owning player).
func findSpace(parent element.Element, name string) *element.Space {
	if parent == nil {
		return nil
	}
	for _, c := range parent.Children() {
		if sp, ok := c.(*element.Space); ok && sp.Name() == name {
			return sp
		}
	}
	return nil
}

// handCollection is a small convenience wrapper for callers (buildArgs
// in main.go) that want a collection.Collection view of a player's
// hand rather than a raw []element.Element slice.
func handCollection(p element.Element) collection.Collection {
	hand := findSpace(p, handSpaceName)
	if hand == nil {
		return collection.New(nil)
	}
	return collection.New(hand.Children())
}
