package compose

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// HeaderHeight is the height of the header band in pixels.
const HeaderHeight = 48

const headerPadding = 8

// Header draws a band of the given width with an optional icon at the left
// and title text after it. A nil face skips the text.
func Header(width int, title string, icon image.Image, face font.Face) *image.NRGBA {
	band := imaging.New(width, HeaderHeight, HeaderColor)
	textX := headerPadding

	if icon != nil {
		side := HeaderHeight - 2*headerPadding
		fitted, off := Fit(icon, side, side)
		Place(band, fitted, off.Add(image.Pt(headerPadding, headerPadding)))
		textX += side + headerPadding
	}

	if face != nil && title != "" {
		m := face.Metrics()
		// Baseline that centres the ascent+descent box vertically.
		baseline := (fixed.I(HeaderHeight) + m.Ascent - m.Descent) / 2
		d := &font.Drawer{
			Dst:  band,
			Src:  image.NewUniform(TextColor),
			Face: face,
			Dot:  fixed.Point26_6{X: fixed.I(textX), Y: baseline},
		}
		d.DrawString(title)
	}
	return band
}

// Title formats the header text for a container opened by requester.
func Title(container, requester string) string {
	if requester == "" {
		return container
	}
	return container + " · " + requester
}
