package render

import (
	"runtime"

	"golang.org/x/image/font/opentype"
)

const (
	// DefaultCellSize is the edge of one grid cell in pixels.
	DefaultCellSize = 64

	// DefaultCellTexture is the resource-relative cell texture file.
	DefaultCellTexture = "cell.png"
)

// Options configures a Renderer. Zero values select defaults.
type Options struct {
	// CellSize is the cell edge in pixels.
	CellSize int
	// Workers bounds concurrent thumbnail preparation.
	Workers int
	// Header stacks a title band above the grid.
	Header bool
	// Font is the header font; nil uses Go Regular.
	Font *opentype.Font
	// FontSize is the header text size in points.
	FontSize float64
	// CellTexture is the resource-relative cell texture; "-" disables it.
	CellTexture string
	// Seed returns the seed for one render. Nil draws a random seed.
	Seed func() uint64
}

func (o Options) withDefaults() Options {
	if o.CellSize <= 0 {
		o.CellSize = DefaultCellSize
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.CellTexture == "" {
		o.CellTexture = DefaultCellTexture
	}
	return o
}

// FixedSeed returns a seed source that always yields seed.
func FixedSeed(seed uint64) func() uint64 {
	return func() uint64 { return seed }
}
