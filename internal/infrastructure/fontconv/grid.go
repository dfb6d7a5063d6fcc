package fontconv

import (
	"fmt"
	"image"
	"slices"
	"strings"

	"golang.org/x/image/draw"

	"github.com/younwookim/textscenes/internal/domain/entity"
)

// Grid layout of the source glyph sheets
const (
	GridColumns = 26
	GridRows    = 11
)

// SupportedCharset is every character a converted font may keep, in strip order
const SupportedCharset = " " + entity.DefaultCharset

// Glyph is one extracted tile
type Glyph struct {
	Char rune
	Tile *image.RGBA
}

// Grid is the result of cutting a glyph sheet into tiles
type Grid struct {
	Glyphs     []Glyph // sorted by SupportedCharset order
	MaxContent image.Point
}

// Charset returns the kept characters in strip order
func (g Grid) Charset() string {
	var b strings.Builder
	for _, gl := range g.Glyphs {
		b.WriteRune(gl.Char)
	}
	return b.String()
}

// ExtractGrid cuts sheet into tileW×tileH cells, row by row, assigning
// charset characters in order. Spaces take no cell. Characters outside
// SupportedCharset consume their cell but are dropped, as are repeats.
func ExtractGrid(sheet image.Image, charset string, tileW, tileH int) (Grid, error) {
	if tileW <= 0 || tileH <= 0 {
		return Grid{}, fmt.Errorf("invalid tile size %dx%d", tileW, tileH)
	}

	chars := make([]rune, 0, len(charset))
	for _, r := range charset {
		if r != ' ' {
			chars = append(chars, r)
		}
	}
	if len(chars) > GridColumns*GridRows {
		return Grid{}, fmt.Errorf("charset of %d characters does not fit a %dx%d grid",
			len(chars), GridColumns, GridRows)
	}

	var grid Grid
	seen := make(map[rune]bool)
	origin := sheet.Bounds().Min
	for i, r := range chars {
		if !strings.ContainsRune(SupportedCharset, r) || seen[r] {
			continue
		}
		seen[r] = true

		col, row := i%GridColumns, i/GridColumns
		cell := image.Rect(col*tileW, row*tileH, (col+1)*tileW, (row+1)*tileH).Add(origin)
		if !cell.In(sheet.Bounds()) {
			return Grid{}, fmt.Errorf("cell %d (%q) lies outside the %v sheet", i, r, sheet.Bounds().Size())
		}

		tile := image.NewRGBA(image.Rect(0, 0, tileW, tileH))
		draw.Draw(tile, tile.Bounds(), sheet, cell.Min, draw.Src)

		if box := ContentBounds(tile); !box.Empty() {
			grid.MaxContent.X = max(grid.MaxContent.X, box.Dx())
			grid.MaxContent.Y = max(grid.MaxContent.Y, box.Dy())
		}
		grid.Glyphs = append(grid.Glyphs, Glyph{Char: r, Tile: tile})
	}

	slices.SortStableFunc(grid.Glyphs, func(a, b Glyph) int {
		return strings.IndexRune(SupportedCharset, a.Char) - strings.IndexRune(SupportedCharset, b.Char)
	})
	return grid, nil
}

// ContentBounds returns the smallest rectangle holding every non-transparent pixel
func ContentBounds(img *image.RGBA) image.Rectangle {
	b := img.Bounds()
	box := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			box = box.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return box
}

// SpriteSize rounds the larger of w and h up to a hardware sprite size
func SpriteSize(w, h int) (int, error) {
	d := max(w, h)
	for _, size := range []int{8, 16, 32, 64} {
		if d <= size {
			return size, nil
		}
	}
	return 0, fmt.Errorf("glyph size %dx%d exceeds the 64x64 sprite limit", w, h)
}

// ContentSize is the size a converted glyph needs: the measured content box
// when it is non-empty and smaller than the tile, otherwise the tile itself.
func ContentSize(tileW, tileH int, content image.Point) (int, int) {
	w, h := tileW, tileH
	if content.X > 0 && content.X < tileW {
		w = content.X
	}
	if content.Y > 0 && content.Y < tileH {
		h = content.Y
	}
	return w, h
}
