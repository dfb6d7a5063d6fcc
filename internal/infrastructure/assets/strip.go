// Package assets loads sprite strip fonts produced by fontconv.
package assets

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"io/fs"
	"path"

	"golang.org/x/image/bmp"
)

// SpriteItem describes the tile size of a sprite strip
type SpriteItem struct {
	Type   string `json:"type"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// CharWidth is the advance of a single character
type CharWidth struct {
	Char  string `json:"char"`
	Width int    `json:"width"`
}

// StripDescriptor is the font descriptor written next to a strip
type StripDescriptor struct {
	Name    string      `json:"name"`
	Size    string      `json:"size"`  // e.g. "16x16"
	Image   string      `json:"image"` // strip BMP, relative to the descriptor
	Sprite  SpriteItem  `json:"sprite"`
	Charset string      `json:"charset"`
	Spacing int         `json:"spacing,omitempty"`
	Widths  []CharWidth `json:"widths"`
}

// Encode writes d as indented JSON
func (d StripDescriptor) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode descriptor %s: %w", d.Name, err)
	}
	return nil
}

// StripFont is a decoded strip with its descriptor
type StripFont struct {
	Descriptor StripDescriptor
	Image      image.Image
}

// LoadStripFont reads a descriptor and the strip it points to from fsys.
// Palette index 0 of a paletted strip is made transparent.
func LoadStripFont(fsys fs.FS, descPath string) (*StripFont, error) {
	data, err := fs.ReadFile(fsys, descPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", descPath, err)
	}

	var desc StripDescriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", descPath, err)
	}
	if desc.Sprite.Width <= 0 || desc.Sprite.Height <= 0 {
		return nil, fmt.Errorf("%s: invalid sprite size %dx%d", descPath, desc.Sprite.Width, desc.Sprite.Height)
	}
	if desc.Image == "" {
		return nil, fmt.Errorf("%s: no strip image", descPath)
	}

	imgPath := path.Join(path.Dir(descPath), desc.Image)
	f, err := fsys.Open(imgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open strip %s: %w", imgPath, err)
	}
	defer func() { _ = f.Close() }()

	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode strip %s: %w", imgPath, err)
	}

	if p, ok := img.(*image.Paletted); ok && len(p.Palette) > 0 {
		pal := make(color.Palette, len(p.Palette))
		copy(pal, p.Palette)
		pal[0] = color.RGBA{}
		p.Palette = pal
	}

	return &StripFont{Descriptor: desc, Image: img}, nil
}
