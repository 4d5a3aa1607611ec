package catalog

import (
	"slices"
)

// Grade bounds. Grades outside this range are accepted but fall back to the
// default weight and background colour.
const (
	MinGrade = 1
	MaxGrade = 6
)

// DefaultWeight is the selection weight of a grade that a container does not
// configure.
const DefaultWeight = 1

// Item is a single lootable object.
type Item struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"objectName" yaml:"objectName"`
	Grade       int    `json:"grade" yaml:"grade"`
	Width       int    `json:"width" yaml:"width"`
	Length      int    `json:"length" yaml:"length"`
	SecondClass string `json:"secondClass" yaml:"secondClass"`
	Pic         string `json:"pic" yaml:"pic"`
}

// Container describes a loot container: its grid, the item classes it may
// hold and how grades are weighted during selection.
type Container struct {
	Key          string      `json:"-" yaml:"-"`
	Name         string      `json:"name" yaml:"name"`
	GridSize     int         `json:"grid_size" yaml:"grid_size"`
	AllowTypes   []string    `json:"allow_types" yaml:"allow_types"`
	GradeWeights map[int]int `json:"grade_weights,omitempty" yaml:"grade_weights,omitempty"`
	MinItems     int         `json:"min_items" yaml:"min_items"`
	MaxItems     int         `json:"max_items" yaml:"max_items"`
	Icon         string      `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// DisplayName returns the container name, or its key when unnamed.
func (c Container) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Key
}

// Allows reports whether items of the given second class may appear in c.
func (c Container) Allows(secondClass string) bool {
	return slices.Contains(c.AllowTypes, secondClass)
}

// Weight returns the selection weight of grade in c.
func (c Container) Weight(grade int) int {
	if w, ok := c.GradeWeights[grade]; ok {
		return w
	}
	return DefaultWeight
}

// ItemRange returns the inclusive item count bounds of c. When MaxItems is
// below MinItems the range collapses to MinItems; negative bounds are
// treated as zero.
func (c Container) ItemRange() (lo, hi int) {
	lo = max(c.MinItems, 0)
	hi = max(c.MaxItems, lo)
	return lo, hi
}
