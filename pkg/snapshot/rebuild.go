package snapshot

import (
	"fmt"
	"sort"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/wire"
)

// maxResolveDepth bounds the attribute-reference resolution pass the
// same way pkg/wire's own two-pass restore contract does.
const maxResolveDepth = 32

// Rebuild materializes a fresh element tree from snap against registry,
// in two passes exactly mirroring pkg/wire.ResolveReferences's own
// two-pass contract: every element is created first (in ascending id
// order, which is always a valid parent-before-child order since a
// Tree only ever hands out an id after the parent it attaches to
// already exists), then every attribute reference embedded in an
// element's Attrs is resolved into a live pointer. snap's message
// records are left as captured; game.Restore resolves the top-level
// references in their Data.
//
// Rebuild trusts that snap's ids came from a freshly allocated Tree in
// original creation order: it recreates elements by calling Tree.Create
// in that same order and requires each one to land on the id the
// snapshot recorded, erroring out rather than silently drifting if it
// does not.
func Rebuild(snap *Snapshot, registry *element.Registry) (*element.Tree, element.Element, []*element.Player, error) {
	tree := element.NewTree(registry)
	pile := tree.Pile()
	if pile.ID() != snap.PileID {
		return nil, nil, nil, fmt.Errorf("snapshot: pile id %d does not match the rebuilt tree's pile id %d", snap.PileID, pile.ID())
	}

	rootRec, ok := snap.Elements[snap.RootID]
	if !ok {
		return nil, nil, nil, fmt.Errorf("snapshot: no record for root element %d", snap.RootID)
	}
	root, err := tree.NewRoot(rootRec.Class, rootRec.Name)
	if err != nil {
		return nil, nil, nil, err
	}
	if root.ID() != snap.RootID {
		return nil, nil, nil, fmt.Errorf("snapshot: root id %d does not match the rebuilt tree's root id %d", snap.RootID, root.ID())
	}

	byID := map[int]element.Element{root.ID(): root, pile.ID(): pile}
	applyOrderAttrsVisibility(root, rootRec)
	if pileRec, ok := snap.Elements[snap.PileID]; ok {
		applyOrderAttrsVisibility(pile, pileRec)
	}

	ids := make([]int, 0, len(snap.Elements))
	for id := range snap.Elements {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		if id == snap.RootID || id == snap.PileID {
			continue
		}
		rec := snap.Elements[id]
		parent, ok := byID[rec.ParentID]
		if !ok {
			return nil, nil, nil, fmt.Errorf("snapshot: element %d references parent %d, which was not yet created — ids must be in creation order", id, rec.ParentID)
		}
		child, err := tree.Create(parent, rec.Class, rec.Name, nil)
		if err != nil {
			return nil, nil, nil, err
		}
		if child.ID() != id {
			return nil, nil, nil, fmt.Errorf("snapshot: rebuilt id %d does not match recorded id %d; the snapshot was not captured from a freshly allocated tree", child.ID(), id)
		}
		byID[id] = child
		applyOrderAttrsVisibility(child, rec)
	}

	var players []*element.Player
	for id, rec := range snap.Elements {
		e := byID[id]
		if rec.OwnerID != 0 {
			if ownerElem, ok := byID[rec.OwnerID]; ok {
				if owner, ok := ownerElem.(*element.Player); ok {
					e.SetOwner(owner)
				}
			}
		}
		if p, ok := e.(*element.Player); ok {
			p.SetPosition(rec.Position)
			p.SetCurrent(rec.Current)
			players = append(players, p)
		}
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Position() < players[j].Position() })

	if err := wire.ResolveReferences(root, maxResolveDepth); err != nil {
		return nil, nil, nil, err
	}
	return tree, root, players, nil
}

// applyOrderAttrsVisibility sets the fields that must be correct before
// any of e's children are created: Order affects where Tree.Create
// inserts a new child (Stacking prepends), so it cannot wait for a
// later pass the way Owner and Player fields can.
func applyOrderAttrsVisibility(e element.Element, rec ElementRecord) {
	e.SetOrder(rec.Order)
	for k, v := range rec.Attrs {
		e.SetAttr(k, v)
	}
	if rec.Visibility != nil {
		e.SetVisibility(*rec.Visibility)
	}
}
