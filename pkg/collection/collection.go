package collection

import (
	"sort"

	"github.com/shufflewick/boardsmith/pkg/element"
	"github.com/shufflewick/boardsmith/pkg/rng"
)

// Collection is an immutable snapshot of a query result. Every method
// that "changes" a Collection returns a new one; none mutates the
// receiver or the underlying tree.
type Collection struct {
	items []element.Element
}

// New wraps items (e.g. the output of element.Query.All) as a Collection.
func New(items []element.Element) Collection {
	return Collection{items: append([]element.Element(nil), items...)}
}

// Len returns the number of items.
func (c Collection) Len() int { return len(c.items) }

// Items returns a defensive copy of the underlying slice.
func (c Collection) Items() []element.Element {
	return append([]element.Element(nil), c.items...)
}

// Filter returns the subset matching pred.
func (c Collection) Filter(pred func(element.Element) bool) Collection {
	out := make([]element.Element, 0, len(c.items))
	for _, e := range c.items {
		if pred(e) {
			out = append(out, e)
		}
	}
	return Collection{items: out}
}

// Sort returns a copy ordered by less. The sort is stable, so callers
// that chain multiple Sort calls get predictable, deterministic results
// regardless of Go's map-iteration nondeterminism upstream.
func (c Collection) Sort(less func(a, b element.Element) bool) Collection {
	items := append([]element.Element(nil), c.items...)
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	return Collection{items: items}
}

// First returns the first item, if any.
func (c Collection) First() (element.Element, bool) {
	if len(c.items) == 0 {
		return nil, false
	}
	return c.items[0], true
}

// Last returns the last item, if any.
func (c Collection) Last() (element.Element, bool) {
	if len(c.items) == 0 {
		return nil, false
	}
	return c.items[len(c.items)-1], true
}

// Shuffle returns a copy in an order permuted by r, via Fisher-Yates
// (pkg/rng.RNG.Shuffle).
func (c Collection) Shuffle(r *rng.RNG) Collection {
	items := append([]element.Element(nil), c.items...)
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	return Collection{items: items}
}

// Sum totals value(e) over every item.
func (c Collection) Sum(value func(element.Element) float64) float64 {
	var total float64
	for _, e := range c.items {
		total += value(e)
	}
	return total
}

// IndexOf returns the index of the element sharing e's id, or -1. Always
// compares by id, never by pointer (see package doc).
func (c Collection) IndexOf(e element.Element) int {
	if e == nil {
		return -1
	}
	return c.indexOfID(e.ID())
}

func (c Collection) indexOfID(id int) int {
	for i, item := range c.items {
		if item.ID() == id {
			return i
		}
	}
	return -1
}

// Contains reports whether e (by id) is in the collection.
func (c Collection) Contains(e element.Element) bool {
	return c.IndexOf(e) >= 0
}

// FindByID returns the element with the given id, if present.
func (c Collection) FindByID(id int) (element.Element, bool) {
	idx := c.indexOfID(id)
	if idx < 0 {
		return nil, false
	}
	return c.items[idx], true
}
