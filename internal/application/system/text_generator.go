package system

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/textscenes/internal/domain/entity"
)

// TextGenerator lays out fixed-width text as one sprite per mapped glyph
type TextGenerator struct {
	font  entity.Font
	align entity.Alignment
}

// NewTextGenerator creates a left-aligned generator for font
func NewTextGenerator(font entity.Font) *TextGenerator {
	return &TextGenerator{font: font, align: entity.AlignLeft}
}

// Font returns the generator's font
func (g *TextGenerator) Font() entity.Font {
	return g.font
}

// Alignment returns the current alignment
func (g *TextGenerator) Alignment() entity.Alignment {
	return g.align
}

// SetAlignment changes how lines are placed relative to the anchor x
func (g *TextGenerator) SetAlignment(a entity.Alignment) {
	g.align = a
}

// SetCenterAlignment is shorthand for SetAlignment(entity.AlignCenter)
func (g *TextGenerator) SetCenterAlignment() {
	g.align = entity.AlignCenter
}

// Count returns how many sprites Generate would emit for text
func (g *TextGenerator) Count(text string) int {
	n := 0
	for _, r := range text {
		if r == '\n' {
			continue
		}
		if _, ok := g.font.Glyph(r); ok {
			n++
		}
	}
	return n
}

// LineWidth returns the rendered width of a single line, unmapped characters included
func (g *TextGenerator) LineWidth(line string) fixed.Int26_6 {
	return fixed.I(g.font.GlyphWidth() * utf8.RuneCountInString(line))
}

// Generate appends the sprites for text anchored at (x, y) to pool.
//
// Lines are separated by '\n' and advance downward by the glyph height.
// Characters without a glyph take up space but emit no sprite.
// If the pool cannot hold every sprite, nothing is appended and the returned
// error wraps entity.ErrPoolFull.
func (g *TextGenerator) Generate(x, y fixed.Int26_6, text string, pool *entity.SpritePool) error {
	need := g.Count(text)
	if need > pool.Free() {
		return fmt.Errorf("text %q needs %d sprites, %d of %d free: %w",
			text, need, pool.Free(), pool.Cap(), entity.ErrPoolFull)
	}

	w := g.font.GlyphWidth()
	lineY := y
	for line := range strings.SplitSeq(text, "\n") {
		startX := g.lineStart(x, g.LineWidth(line))

		i := 0
		for _, r := range line {
			if ref, ok := g.font.Glyph(r); ok {
				pos := fixed.Point26_6{X: startX + fixed.I(i*w), Y: lineY}
				if _, err := pool.Add(entity.Sprite{Pos: pos, Glyph: ref}); err != nil {
					return fmt.Errorf("text %q: %w", text, err)
				}
			}
			i++
		}

		lineY += fixed.I(g.font.GlyphHeight())
	}

	return nil
}

func (g *TextGenerator) lineStart(x, width fixed.Int26_6) fixed.Int26_6 {
	switch g.align {
	case entity.AlignCenter:
		return x - width/2
	case entity.AlignRight:
		return x - width
	default:
		return x
	}
}

// MissingGlyphs returns the distinct characters of text that font cannot draw,
// in first-seen order. Spaces and line breaks are never reported.
func MissingGlyphs(font entity.Font, text string) []rune {
	var missing []rune
	for _, r := range text {
		if r == ' ' || r == '\n' {
			continue
		}
		if _, ok := font.Glyph(r); ok {
			continue
		}
		if !slices.Contains(missing, r) {
			missing = append(missing, r)
		}
	}
	return missing
}
