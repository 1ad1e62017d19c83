package game

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts caches text faces of the UI font by size.
type Fonts struct {
	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace
}

// NewFonts parses the bundled Go Regular font.
func NewFonts() (*Fonts, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source: %w", err)
	}
	return &Fonts{source: source, faces: make(map[float64]*text.GoTextFace)}, nil
}

// Face returns the face of the given size, creating it on first use.
func (f *Fonts) Face(size float64) *text.GoTextFace {
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := &text.GoTextFace{
		Source:    f.source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	f.faces[size] = face
	return face
}
