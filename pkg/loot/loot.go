// Package loot picks the items that appear in an opened container.
//
// Selection is weighted sampling without replacement over a [WeightedPool]:
// every allowed item is entered once per unit of its grade weight, and each
// draw removes the single occurrence it hit. An item with weight w therefore
// has w independent chances and may be drawn more than once.
package loot

import (
	"math/rand/v2"

	"github.com/matzehuels/lootgrid/pkg/catalog"
)

// WeightedPool is a multiset of item indices consumed by [WeightedPool.Draw].
type WeightedPool struct {
	entries []int
}

// NewPool expands items into a pool where item i appears weight(item) times.
// Non-positive weights leave the item out.
func NewPool(items []catalog.Item, weight func(catalog.Item) int) *WeightedPool {
	p := &WeightedPool{}
	for i, it := range items {
		for range max(weight(it), 0) {
			p.entries = append(p.entries, i)
		}
	}
	return p
}

// Len returns the number of remaining occurrences.
func (p *WeightedPool) Len() int { return len(p.entries) }

// Draw removes one uniformly chosen occurrence and returns its item index.
// The pool must not be empty.
func (p *WeightedPool) Draw(rng *rand.Rand) int {
	i := rng.IntN(len(p.entries))
	v := p.entries[i]
	last := len(p.entries) - 1
	p.entries[i] = p.entries[last]
	p.entries = p.entries[:last]
	return v
}

// Allowed returns the items whose second class c accepts, in catalog order.
func Allowed(c catalog.Container, items []catalog.Item) []catalog.Item {
	var out []catalog.Item
	for _, it := range items {
		if c.Allows(it.SecondClass) {
			out = append(out, it)
		}
	}
	return out
}

// Count returns how many items to draw from a pool of poolSize for c.
func Count(rng *rand.Rand, c catalog.Container, poolSize int) int {
	lo, hi := c.ItemRange()
	return min(poolSize, lo+rng.IntN(hi-lo+1))
}

// Select draws the items for one opening of c, in draw order.
func Select(rng *rand.Rand, c catalog.Container, items []catalog.Item) []catalog.Item {
	allowed := Allowed(c, items)
	pool := NewPool(allowed, func(it catalog.Item) int { return c.Weight(it.Grade) })
	if pool.Len() == 0 {
		return nil
	}

	n := Count(rng, c, pool.Len())
	selected := make([]catalog.Item, 0, n)
	for range n {
		selected = append(selected, allowed[pool.Draw(rng)])
	}
	return selected
}
