package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

var faceData = map[string][]byte{
	"gomono":    gomono.TTF,
	"gobold":    gobold.TTF,
	"goregular": goregular.TTF,
}

// FaceNames returns the built-in face names, sorted
func FaceNames() []string {
	names := make([]string, 0, len(faceData))
	for name := range faceData {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFace parses a built-in face at the given point size
func LoadFace(name string, size float64) (*text.GoTextFace, error) {
	data, ok := faceData[name]
	if !ok {
		return nil, fmt.Errorf("unknown face %q (have %s)", name, strings.Join(FaceNames(), ", "))
	}
	if size <= 0 {
		return nil, fmt.Errorf("face %s: invalid size %v", name, size)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse face %s: %w", name, err)
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// GlyphRect returns the tile of glyph index in a vertical strip of w×h tiles
func GlyphRect(index, w, h int) image.Rectangle {
	return image.Rect(0, index*h, w, (index+1)*h)
}

// Atlas is a vertical strip of equally sized glyph tiles
type Atlas struct {
	Image *ebiten.Image
	TileW int
	TileH int
}

// Tiles returns how many tiles fit in the strip
func (a Atlas) Tiles() int {
	if a.TileH <= 0 {
		return 0
	}
	return a.Image.Bounds().Dy() / a.TileH
}

// BuildFaceAtlas rasterizes each non-space rune of charset into a w×h tile,
// in charset order, centred in its tile.
func BuildFaceAtlas(face *text.GoTextFace, w, h int, charset string, clr color.Color) Atlas {
	runes := make([]rune, 0, len(charset))
	for _, r := range charset {
		if r != ' ' {
			runes = append(runes, r)
		}
	}

	img := ebiten.NewImage(w, max(1, len(runes))*h)
	m := face.Metrics()
	lineH := m.HAscent + m.HDescent

	op := &text.DrawOptions{}
	for i, r := range runes {
		s := string(r)
		adv := text.Advance(s, face)

		op.GeoM.Reset()
		op.GeoM.Translate((float64(w)-adv)/2, float64(i*h)+(float64(h)-lineH)/2)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(clr)
		text.Draw(img, s, face, op)
	}

	return Atlas{Image: img, TileW: w, TileH: h}
}

// NewStripAtlas wraps a decoded strip image with tiles of w×h
func NewStripAtlas(src image.Image, w, h int) (Atlas, error) {
	b := src.Bounds()
	if w <= 0 || h <= 0 || b.Dx() < w || b.Dy()%h != 0 {
		return Atlas{}, fmt.Errorf("strip of %dx%d does not hold %dx%d tiles", b.Dx(), b.Dy(), w, h)
	}
	return Atlas{Image: ebiten.NewImageFromImage(src), TileW: w, TileH: h}, nil
}
