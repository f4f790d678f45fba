package overlook

import (
	"bytes"
	"fmt"

	text "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps a TTF face source for UI text drawing. A single Font serves all
// text sizes; faces are derived per draw call.
type Font struct {
	source *text.GoTextFaceSource
}

// LoadFont parses TTF data into a Font.
func LoadFont(ttfData []byte) (*Font, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	return &Font{source: src}, nil
}

// face returns a sized face for this font.
func (f *Font) face(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: f.source, Size: size}
}

// Measure returns the rendered dimensions of a single line of text at the
// given size.
func (f *Font) Measure(s string, size float64) (width, height float64) {
	face := f.face(size)
	return text.Measure(s, face, face.Metrics().HLineGap+face.Metrics().HAscent+face.Metrics().HDescent)
}

var defaultFont *Font

// DefaultFont returns the built-in UI font (Go Regular), loading it on first
// use. Panics if the embedded font data fails to parse, which would be a
// build defect rather than a runtime condition.
func DefaultFont() *Font {
	if defaultFont == nil {
		f, err := LoadFont(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("overlook: built-in font failed to load: %v", err))
		}
		defaultFont = f
	}
	return defaultFont
}
