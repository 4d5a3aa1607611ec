// Package grid places rectangular footprints on a square cell grid.
//
// Packing is greedy first-fit: footprints are handled in the order given,
// anchors are scanned row-major from the top-left cell, and the first
// anchor whose rectangle is inside the grid and entirely free is taken.
// A footprint that fits nowhere is dropped. The result is not an optimal
// packing, it only guarantees that no two placed footprints overlap.
package grid

// Size is a footprint in cells.
type Size struct {
	Width  int
	Length int
}

// Point is a cell coordinate; X is the column and Y the row.
type Point struct {
	X, Y int
}

// Placement records where footprint Index was anchored.
type Placement struct {
	Index  int
	Anchor Point
	Size   Size
}

// Occupancy is an N×N matrix of occupied cells.
type Occupancy struct {
	n     int
	cells []bool
}

// NewOccupancy returns an all-free n×n grid.
func NewOccupancy(n int) *Occupancy {
	n = max(n, 0)
	return &Occupancy{n: n, cells: make([]bool, n*n)}
}

// Size returns the grid edge length.
func (o *Occupancy) Size() int { return o.n }

// Occupied reports whether cell (x, y) is taken. Cells outside the grid
// count as occupied.
func (o *Occupancy) Occupied(x, y int) bool {
	if x < 0 || y < 0 || x >= o.n || y >= o.n {
		return true
	}
	return o.cells[y*o.n+x]
}

// Fits reports whether a footprint of size s anchored at p lies inside the
// grid and covers only free cells. It does not modify o.
func (o *Occupancy) Fits(p Point, s Size) bool {
	if s.Width <= 0 || s.Length <= 0 {
		return false
	}
	if p.X < 0 || p.Y < 0 || p.X+s.Width > o.n || p.Y+s.Length > o.n {
		return false
	}
	for y := p.Y; y < p.Y+s.Length; y++ {
		for x := p.X; x < p.X+s.Width; x++ {
			if o.cells[y*o.n+x] {
				return false
			}
		}
	}
	return true
}

// Mark occupies the rectangle of size s at p. The caller must have checked
// [Occupancy.Fits].
func (o *Occupancy) Mark(p Point, s Size) {
	for y := p.Y; y < p.Y+s.Length; y++ {
		for x := p.X; x < p.X+s.Width; x++ {
			o.cells[y*o.n+x] = true
		}
	}
}

// FirstFit returns the first anchor in row-major order where s fits.
func (o *Occupancy) FirstFit(s Size) (Point, bool) {
	if s.Width <= 0 || s.Length <= 0 {
		return Point{}, false
	}
	for y := 0; y+s.Length <= o.n; y++ {
		for x := 0; x+s.Width <= o.n; x++ {
			if p := (Point{X: x, Y: y}); o.Fits(p, s) {
				return p, true
			}
		}
	}
	return Point{}, false
}
