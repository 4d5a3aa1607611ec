// Package fonts provides font faces for header text on rendered images.
//
// The default font is Go Regular, which ships inside golang.org/x/image and
// needs no files on disk. Container names outside Latin script need a custom
// font loaded with [Load].
package fonts

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultSize is the header text size in points at 72 DPI.
const DefaultSize = 20

// Parsed default font (computed once on first access).
var (
	defaultFont     *opentype.Font
	defaultFontErr  error
	defaultFontOnce sync.Once
)

// Default returns the parsed Go Regular font.
func Default() (*opentype.Font, error) {
	defaultFontOnce.Do(func() {
		defaultFont, defaultFontErr = opentype.Parse(goregular.TTF)
	})
	return defaultFont, defaultFontErr
}

// Load parses a TTF or OTF file.
func Load(path string) (*opentype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}

// Face creates a face for f at size points. A nil f uses [Default].
// Callers close the face when done.
func Face(f *opentype.Font, size float64) (font.Face, error) {
	if f == nil {
		var err error
		if f, err = Default(); err != nil {
			return nil, err
		}
	}
	if size <= 0 {
		size = DefaultSize
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
