package compose

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// Background returns an n×n grid of cell-sized squares. With a texture each
// square is the texture resized to cell×cell; without one the whole grid is
// filled with CanvasColor.
func Background(n, cell int, texture image.Image) *image.NRGBA {
	side := n * cell
	if texture == nil {
		return imaging.New(side, side, CanvasColor)
	}
	bg := imaging.New(side, side, color.NRGBA{})
	tileOver(bg, imaging.Resize(texture, cell, cell, imaging.Lanczos))
	return bg
}

// Placeholder returns a w×h image filled with PlaceholderColor.
func Placeholder(w, h int) *image.NRGBA {
	return imaging.New(w, h, PlaceholderColor)
}

// Fit scales src to fit inside w×h keeping its aspect ratio and returns the
// scaled image with the offset that centres it in the box.
func Fit(src image.Image, w, h int) (*image.NRGBA, image.Point) {
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return imaging.New(w, h, color.NRGBA{}), image.Point{}
	}
	scale := math.Min(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	nw := clamp(int(math.Round(float64(b.Dx())*scale)), 1, w)
	nh := clamp(int(math.Round(float64(b.Dy())*scale)), 1, h)

	fitted := imaging.Resize(src, nw, nh, imaging.Lanczos)
	return fitted, image.Pt((w-nw)/2, (h-nh)/2)
}

// Tile returns the w×h background of an item with the given grade. A
// non-nil texture is tiled from the top-left corner at its own size and
// overlay-blended onto the grade colour.
func Tile(grade, w, h int, texture image.Image) *image.NRGBA {
	tile := imaging.New(w, h, GradeColor(grade))
	if texture != nil {
		tileBlend(tile, imaging.Clone(texture))
	}
	return tile
}

// Thumbnail renders src fitted and centred on the grade tile of a w×h
// footprint.
func Thumbnail(src image.Image, grade, w, h int, texture image.Image) *image.NRGBA {
	tile := Tile(grade, w, h, texture)
	fitted, off := Fit(src, w, h)
	draw.Draw(tile, fitted.Bounds().Add(off), fitted, image.Point{}, draw.Over)
	return tile
}

// Place composites img onto dst with its top-left corner at at.
func Place(dst draw.Image, img image.Image, at image.Point) {
	draw.Draw(dst, img.Bounds().Sub(img.Bounds().Min).Add(at), img, img.Bounds().Min, draw.Over)
}

// Stack places top above bottom in a new image as wide as the wider one.
func Stack(top, bottom image.Image) *image.NRGBA {
	tb, bb := top.Bounds(), bottom.Bounds()
	out := imaging.New(max(tb.Dx(), bb.Dx()), tb.Dy()+bb.Dy(), color.NRGBA{})
	Place(out, top, image.Point{})
	Place(out, bottom, image.Pt(0, tb.Dy()))
	return out
}

// Encode returns img as PNG bytes.
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// tileOver repeats src across dst with normal alpha compositing.
func tileOver(dst *image.NRGBA, src *image.NRGBA) {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}
	db := dst.Bounds()
	for y := db.Min.Y; y < db.Max.Y; y += sh {
		for x := db.Min.X; x < db.Max.X; x += sw {
			draw.Draw(dst, image.Rect(x, y, x+sw, y+sh), src, src.Bounds().Min, draw.Over)
		}
	}
}

// tileBlend repeats src across dst using the overlay blend mode.
func tileBlend(dst *image.NRGBA, src *image.NRGBA) {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}
	db := dst.Bounds()
	for y := 0; y < db.Dy(); y++ {
		for x := 0; x < db.Dx(); x++ {
			si := src.PixOffset(x%sw, y%sh)
			di := dst.PixOffset(db.Min.X+x, db.Min.Y+y)
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]
			for c := 0; c < 3; c++ {
				d[c] = mix(d[c], overlay(d[c], s[c]), s[3])
			}
			d[3] = uint8(int(s[3]) + int(d[3])*(255-int(s[3]))/255)
		}
	}
}

// overlay blends top onto base: multiply where base is dark, screen where
// it is light.
func overlay(base, top uint8) uint8 {
	b, t := int(base), int(top)
	if b < 128 {
		return uint8(2 * b * t / 255)
	}
	return uint8(255 - 2*(255-b)*(255-t)/255)
}

// mix interpolates from a to b by alpha.
func mix(a, b, alpha uint8) uint8 {
	return uint8((int(a)*(255-int(alpha)) + int(b)*int(alpha) + 127) / 255)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
