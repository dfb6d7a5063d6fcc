// Package render draws sprite pools with ebiten.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/textscenes/internal/domain/entity"
)

// DefaultCacheSize bounds the number of glyph sub-images kept around
const DefaultCacheSize = 512

// Renderer draws each sprite as a tile of its atlas on a cleared screen.
// Sprite positions are relative to the screen centre.
type Renderer struct {
	atlases    map[uint16]Atlas
	glyphs     *lru.Cache[entity.GlyphRef, *ebiten.Image]
	background color.Color
	screenW    int
	screenH    int
	op         ebiten.DrawImageOptions
	misses     int
}

// NewRenderer creates a renderer for a screenW×screenH logical screen
func NewRenderer(screenW, screenH int, background color.Color, cacheSize int) (*Renderer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[entity.GlyphRef, *ebiten.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create glyph cache: %w", err)
	}

	return &Renderer{
		atlases:    make(map[uint16]Atlas),
		glyphs:     cache,
		background: background,
		screenW:    screenW,
		screenH:    screenH,
	}, nil
}

// AddAtlas registers the strip used by glyphs referring to id
func (r *Renderer) AddAtlas(id uint16, a Atlas) {
	r.atlases[id] = a
	for _, ref := range r.glyphs.Keys() {
		if ref.Atlas == id {
			r.glyphs.Remove(ref)
		}
	}
}

// Draw clears screen to the background colour and draws every sprite.
func (r *Renderer) Draw(screen *ebiten.Image, sprites *entity.SpritePool) {
	screen.Fill(r.background)

	for _, s := range sprites.All() {
		img := r.glyph(s.Glyph)
		if img == nil {
			continue
		}
		x, y := ScreenPosition(s.Pos, r.screenW, r.screenH)

		r.op.GeoM.Reset()
		r.op.GeoM.Translate(x, y)
		screen.DrawImage(img, &r.op)
	}
}

// Misses returns how many sprites referred to an unknown atlas or tile
func (r *Renderer) Misses() int {
	return r.misses
}

// CachedGlyphs returns the number of sub-images currently cached
func (r *Renderer) CachedGlyphs() int {
	return r.glyphs.Len()
}

func (r *Renderer) glyph(ref entity.GlyphRef) *ebiten.Image {
	if img, ok := r.glyphs.Get(ref); ok {
		return img
	}

	a, ok := r.atlases[ref.Atlas]
	if !ok || int(ref.Index) >= a.Tiles() {
		r.misses++
		return nil
	}

	img := a.Image.SubImage(GlyphRect(int(ref.Index), a.TileW, a.TileH)).(*ebiten.Image)
	r.glyphs.Add(ref, img)
	return img
}

// ScreenPosition converts a centre-origin sprite position to screen pixels
func ScreenPosition(pos fixed.Point26_6, screenW, screenH int) (float64, float64) {
	return float64(screenW)/2 + entity.ToFloat(pos.X), float64(screenH)/2 + entity.ToFloat(pos.Y)
}
