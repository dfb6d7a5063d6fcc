package entity

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// Alignment controls where a text line sits relative to its anchor x.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// String returns the string representation of the alignment
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseAlignment converts a config value ("left", "center", "right") to an Alignment
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center", "centre", "":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q", s)
}

// GlyphRef points at one tile of a font atlas.
type GlyphRef struct {
	Atlas uint16 // atlas registered with the renderer
	Index uint16 // tile index inside the atlas strip
}

// Sprite is one placed glyph. Its position is fixed at creation.
type Sprite struct {
	Pos   fixed.Point26_6
	Glyph GlyphRef
}

// TextRequest is a single layout call of a scene.
type TextRequest struct {
	Font   Font
	Align  Alignment
	Anchor fixed.Point26_6
	Text   string
}

// SceneDef describes one screen of text
type SceneDef struct {
	Name     string
	Requests []TextRequest
}

// ToFloat converts a 26.6 fixed value to float64 for drawing.
func ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
