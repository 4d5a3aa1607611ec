// Package compose paints loot grids.
//
// A grid image is built in painter's order: the [Background] of tiled cell
// textures (or a flat dark fill), then one [Thumbnail] per placed item at its
// anchor, then an optional [Header] band stacked on top. All images are
// *image.NRGBA and sizes are in pixels; callers convert cells with the cell
// size.
//
// Item thumbnails sit on a tile coloured by grade. When a cell texture is
// available it is tiled over the grade colour with an overlay blend, so the
// texture's light and dark areas shade the colour instead of hiding it.
package compose
