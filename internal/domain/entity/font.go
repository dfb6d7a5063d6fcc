package entity

import (
	"fmt"
	"unicode/utf8"
)

// DefaultCharset lists every character a sprite font may map, in strip order.
// Space is absent: it never has a glyph and only advances the cursor.
const DefaultCharset = "!\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~" +
	"ÁÉÍÓÚÜÑáéíóúüñ¡¿"

// Font is the read-only glyph provider used by the layout engine.
type Font interface {
	GlyphWidth() int
	GlyphHeight() int
	// Glyph returns the glyph for r. ok is false when the font has no mapping.
	Glyph(r rune) (ref GlyphRef, ok bool)
}

const asciiGlyphCount = 128

// SpriteFont is a fixed-width font whose glyphs are tiles of a vertical strip.
type SpriteFont struct {
	name    string
	width   int
	height  int
	atlas   uint16
	charset string

	ascii    [asciiGlyphCount]uint16
	asciiSet [asciiGlyphCount]bool
	ext      map[rune]uint16
}

// NewSpriteFont builds a font whose charset order is the strip tile order.
// Spaces in charset are ignored; duplicate characters are an error.
func NewSpriteFont(name string, atlas uint16, width, height int, charset string) (*SpriteFont, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("font %s: invalid glyph size %dx%d", name, width, height)
	}
	if !utf8.ValidString(charset) {
		return nil, fmt.Errorf("font %s: charset is not valid UTF-8", name)
	}

	f := &SpriteFont{
		name:   name,
		width:  width,
		height: height,
		atlas:  atlas,
		ext:    make(map[rune]uint16),
	}

	var index uint16
	kept := make([]rune, 0, len(charset))
	for _, r := range charset {
		if r == ' ' {
			continue
		}
		if _, dup := f.Glyph(r); dup {
			return nil, fmt.Errorf("font %s: duplicate character %q in charset", name, r)
		}
		if r < asciiGlyphCount {
			f.ascii[r] = index
			f.asciiSet[r] = true
		} else {
			f.ext[r] = index
		}
		kept = append(kept, r)
		index++
	}
	f.charset = string(kept)

	return f, nil
}

// Name returns the font name
func (f *SpriteFont) Name() string { return f.name }

// GlyphWidth returns the fixed glyph advance in pixels
func (f *SpriteFont) GlyphWidth() int { return f.width }

// GlyphHeight returns the glyph height, which is also the line advance
func (f *SpriteFont) GlyphHeight() int { return f.height }

// Atlas returns the atlas id the font's glyphs live in
func (f *SpriteFont) Atlas() uint16 { return f.atlas }

// Charset returns the mapped characters in tile order
func (f *SpriteFont) Charset() string { return f.charset }

// GlyphCount returns the number of tiles in the font strip
func (f *SpriteFont) GlyphCount() int { return utf8.RuneCountInString(f.charset) }

// Glyph returns the tile for r, or false if r is not mapped.
func (f *SpriteFont) Glyph(r rune) (GlyphRef, bool) {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return GlyphRef{Atlas: f.atlas, Index: f.ascii[r]}, true
		}
		return GlyphRef{}, false
	}
	if idx, ok := f.ext[r]; ok {
		return GlyphRef{Atlas: f.atlas, Index: idx}, true
	}
	return GlyphRef{}, false
}
