package catalog

import (
	"fmt"

	"github.com/matzehuels/lootgrid/pkg/errors"
)

// Problem describes a questionable catalog entry. Problems never prevent a
// render; they are reported so a catalog author can fix the data.
type Problem struct {
	Container string
	ItemID    int
	Message   string
}

func (p Problem) String() string {
	if p.Container != "" {
		return fmt.Sprintf("container %s: %s", p.Container, p.Message)
	}
	return fmt.Sprintf("item %d: %s", p.ItemID, p.Message)
}

// Validate checks the catalog for entries the renderer will handle with a
// fallback policy: inverted item ranges are clamped, oversized or empty
// footprints are never placed, unknown grades get the default colour.
// A container with a non-positive grid size is a hard error since no canvas
// can be built for it.
func (c *Catalog) Validate() ([]Problem, error) {
	var problems []Problem
	for _, key := range c.Keys() {
		ct := c.containers[key]
		if ct.GridSize <= 0 {
			return problems, errors.New(errors.ErrCodeInvalidCatalog,
				"container %s: grid_size must be positive, got %d", key, ct.GridSize)
		}
		if ct.MaxItems < ct.MinItems {
			problems = append(problems, Problem{Container: key,
				Message: fmt.Sprintf("max_items %d < min_items %d, clamped to %d", ct.MaxItems, ct.MinItems, ct.MinItems)})
		}
		if len(ct.AllowTypes) == 0 {
			problems = append(problems, Problem{Container: key, Message: "allow_types is empty, container always opens empty"})
		}
		for grade, w := range ct.GradeWeights {
			if w <= 0 {
				problems = append(problems, Problem{Container: key,
					Message: fmt.Sprintf("grade %d has weight %d, its items are never selected", grade, w)})
			}
		}
	}
	for _, it := range c.items {
		if it.Width <= 0 || it.Length <= 0 {
			problems = append(problems, Problem{ItemID: it.ID,
				Message: fmt.Sprintf("footprint %dx%d is not placeable", it.Width, it.Length)})
		}
		if it.Grade < MinGrade || it.Grade > MaxGrade {
			problems = append(problems, Problem{ItemID: it.ID,
				Message: fmt.Sprintf("grade %d outside %d-%d", it.Grade, MinGrade, MaxGrade)})
		}
	}
	return problems, nil
}
