package config

import "image/color"

// AppConfig is the root config for display.json
type AppConfig struct {
	Display DisplayConfig `json:"display"`
	Pool    PoolConfig    `json:"pool"`
	Input   InputConfig   `json:"input"`
}

type DisplayConfig struct {
	ScreenWidth  int         `json:"screenWidth"`
	ScreenHeight int         `json:"screenHeight"`
	Scale        int         `json:"scale"`
	Framerate    int         `json:"framerate"`
	Title        string      `json:"title"`
	Background   ColorConfig `json:"background"`
}

// ColorConfig is a colour with Bits bits per channel (5 on GBA-class hardware, 8 otherwise)
type ColorConfig struct {
	R    int `json:"r"`
	G    int `json:"g"`
	B    int `json:"b"`
	Bits int `json:"bits"`
}

// RGBA expands the colour to 8 bits per channel
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{expand(c.R, c.Bits), expand(c.G, c.Bits), expand(c.B, c.Bits), 255}
}

func expand(v, bits int) uint8 {
	if bits <= 0 || bits >= 8 {
		return uint8(max(0, min(v, 255)))
	}
	limit := 1<<bits - 1
	v = max(0, min(v, limit))
	return uint8(v * 255 / limit)
}

// PoolConfig sizes the scene sprite pool
type PoolConfig struct {
	Capacity int `json:"capacity"` // Max sprites per scene
}

type InputConfig struct {
	ConfirmKeys    []string `json:"confirmKeys"`    // ebiten key names, e.g. "Enter"
	ConfirmGamepad bool     `json:"confirmGamepad"` // Standard gamepad start button
}

// FontsConfig is the root config for fonts.json
type FontsConfig struct {
	Fonts map[string]FontConfig `json:"fonts"`
}

// FontConfig describes one sprite font. Either Face or Strip selects the glyph source.
type FontConfig struct {
	GlyphWidth  int     `json:"glyphWidth"`
	GlyphHeight int     `json:"glyphHeight"`
	Face        string  `json:"face,omitempty"`    // gomono, gobold, goregular
	Size        float64 `json:"size,omitempty"`    // Face point size
	Charset     string  `json:"charset,omitempty"` // Defaults to entity.DefaultCharset
	Strip       string  `json:"strip,omitempty"`   // fontconv descriptor, relative to the config root
}

// ScenesConfig is the root config for scene list files
type ScenesConfig struct {
	ID     string        `json:"id"`
	Scenes []SceneConfig `json:"scenes"`
}

type SceneConfig struct {
	Name  string       `json:"name"`
	Font  string       `json:"font"`
	Align string       `json:"align"`
	Texts []TextConfig `json:"texts"`
}

type TextConfig struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Text string  `json:"text"`
}
