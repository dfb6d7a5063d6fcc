package fontconv

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"
)

// PaletteSize is the colour count of a converted strip, transparent index included
const PaletteSize = 16

// BuildStrip stacks glyph tiles into a size-wide vertical strip, one
// size×size cell per glyph. Tiles larger than the cell are clipped.
func BuildStrip(glyphs []Glyph, size int) *image.RGBA {
	strip := image.NewRGBA(image.Rect(0, 0, size, size*len(glyphs)))
	for i, g := range glyphs {
		cell := image.Rect(0, i*size, size, (i+1)*size)
		draw.Draw(strip, cell, g.Tile, g.Tile.Bounds().Min, draw.Over)
	}
	return strip
}

// Quantize converts img to a PaletteSize-colour paletted image.
// Index 0 holds a colour the image never uses and marks transparent pixels;
// the opaque colours are reduced to the most frequent PaletteSize-1 entries.
func Quantize(img *image.RGBA) (*image.Paletted, error) {
	b := img.Bounds()

	counts := make(map[color.RGBA]int)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			c.A = 255
			counts[c]++
		}
	}

	key, err := unusedColor(counts)
	if err != nil {
		return nil, err
	}

	opaque := make([]color.RGBA, 0, len(counts))
	for c := range counts {
		opaque = append(opaque, c)
	}
	slices.SortFunc(opaque, func(a, b color.RGBA) int {
		if d := cmp.Compare(counts[b], counts[a]); d != 0 {
			return d
		}
		return cmp.Compare(packRGB(a), packRGB(b))
	})
	if len(opaque) > PaletteSize-1 {
		opaque = opaque[:PaletteSize-1]
	}

	pal := make(color.Palette, 0, PaletteSize)
	pal = append(pal, key)
	for _, c := range opaque {
		pal = append(pal, c)
	}
	for len(pal) < PaletteSize {
		pal = append(pal, key)
	}

	// nearest lookups must never land on the transparent entry
	opaquePal := pal[1 : 1+len(opaque)]

	out := image.NewPaletted(b, pal)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			if c.A == 0 || len(opaquePal) == 0 {
				out.SetColorIndex(x, y, 0)
				continue
			}
			c.A = 255
			out.SetColorIndex(x, y, uint8(1+opaquePal.Index(c)))
		}
	}
	return out, nil
}

func unusedColor(used map[color.RGBA]int) (color.RGBA, error) {
	for v := 0; v < 1<<24; v++ {
		c := color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}
		if _, ok := used[c]; !ok {
			return c, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("no unused colour left for transparency")
}

func packRGB(c color.RGBA) int {
	return int(c.R)<<16 | int(c.G)<<8 | int(c.B)
}
