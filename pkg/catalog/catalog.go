package catalog

import (
	"maps"
	"slices"
	"sort"
)

// Catalog is an immutable snapshot of containers and items.
type Catalog struct {
	containers map[string]Container
	items      []Item
}

// New builds a Catalog from already-decoded records. Container keys are
// taken from the map and written into each Container. Items keep their
// order; a later item with a duplicate ID replaces the earlier one in place.
func New(containers map[string]Container, items []Item) *Catalog {
	cs := make(map[string]Container, len(containers))
	for k, c := range containers {
		c.Key = k
		c.AllowTypes = slices.Clone(c.AllowTypes)
		c.GradeWeights = maps.Clone(c.GradeWeights)
		cs[k] = c
	}

	pos := make(map[int]int, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if i, ok := pos[it.ID]; ok {
			out[i] = it
			continue
		}
		pos[it.ID] = len(out)
		out = append(out, it)
	}
	return &Catalog{containers: cs, items: out}
}

// Container looks up a container by key.
func (c *Catalog) Container(key string) (Container, bool) {
	ct, ok := c.containers[key]
	return ct, ok
}

// Items returns the catalog items. The returned slice must not be modified.
func (c *Catalog) Items() []Item {
	return c.items
}

// Keys returns all container keys in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.containers))
	for k := range c.containers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ContainerCount returns the number of containers.
func (c *Catalog) ContainerCount() int { return len(c.containers) }

// ItemCount returns the number of distinct items.
func (c *Catalog) ItemCount() int { return len(c.items) }
