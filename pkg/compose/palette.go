package compose

import "image/color"

var (
	// CanvasColor fills the grid when no cell texture is available.
	CanvasColor = color.NRGBA{R: 28, G: 33, B: 34, A: 204}

	// PlaceholderColor fills the image of an item whose asset could not be
	// resolved.
	PlaceholderColor = color.NRGBA{R: 255, G: 0, B: 0, A: 128}

	// HeaderColor is the header band background.
	HeaderColor = color.NRGBA{R: 18, G: 21, B: 22, A: 255}

	// TextColor is the header text colour.
	TextColor = color.NRGBA{R: 232, G: 236, B: 236, A: 255}

	// UnknownGradeColor is used for grades outside the palette.
	UnknownGradeColor = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

var gradeColors = map[int]color.NRGBA{
	1: {R: 206, G: 213, B: 213, A: 255},
	2: {R: 56, G: 139, B: 35, A: 255},
	3: {R: 110, G: 137, B: 203, A: 255},
	4: {R: 151, G: 99, B: 197, A: 255},
	5: {R: 224, G: 170, B: 88, A: 255},
	6: {R: 191, G: 83, B: 78, A: 255},
}

// GradeColor returns the tile colour for an item grade.
func GradeColor(grade int) color.NRGBA {
	if c, ok := gradeColors[grade]; ok {
		return c
	}
	return UnknownGradeColor
}
