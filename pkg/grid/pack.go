package grid

// Result is the outcome of [Pack].
type Result struct {
	// Placements are in input order and only contain placed footprints.
	Placements []Placement
	// Dropped holds the input indices that fit nowhere.
	Dropped []int
	// Owners maps each cell (row-major) to the input index covering it, or -1.
	Owners []int
	// GridSize is the edge length of the packed grid.
	GridSize int
}

// Owner returns the input index covering cell (x, y), or -1.
func (r Result) Owner(x, y int) int {
	return r.Owners[y*r.GridSize+x]
}

// Pack places sizes on an n×n grid in order. It is deterministic: the same
// inputs always produce the same result.
func Pack(n int, sizes []Size) Result {
	occ := NewOccupancy(n)
	res := Result{GridSize: occ.Size(), Owners: make([]int, occ.Size()*occ.Size())}
	for i := range res.Owners {
		res.Owners[i] = -1
	}

	for i, s := range sizes {
		p, ok := occ.FirstFit(s)
		if !ok {
			res.Dropped = append(res.Dropped, i)
			continue
		}
		occ.Mark(p, s)
		for y := p.Y; y < p.Y+s.Length; y++ {
			for x := p.X; x < p.X+s.Width; x++ {
				res.Owners[y*res.GridSize+x] = i
			}
		}
		res.Placements = append(res.Placements, Placement{Index: i, Anchor: p, Size: s})
	}
	return res
}
