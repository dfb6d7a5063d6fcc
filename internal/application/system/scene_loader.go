package system

import (
	"fmt"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/younwookim/textscenes/internal/domain/entity"
	"github.com/younwookim/textscenes/internal/infrastructure/config"
)

// LoadScenes converts a ScenesConfig into scene definitions, resolving font names
func LoadScenes(cfg *config.ScenesConfig, fonts map[string]entity.Font) ([]entity.SceneDef, error) {
	if len(cfg.Scenes) == 0 {
		return nil, fmt.Errorf("scene list %s is empty", cfg.ID)
	}

	defs := make([]entity.SceneDef, 0, len(cfg.Scenes))
	for i, sc := range cfg.Scenes {
		def, err := LoadScene(sc, fonts)
		if err != nil {
			return nil, fmt.Errorf("scene list %s, scene %d: %w", cfg.ID, i, err)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadScene converts a single SceneConfig into a SceneDef
func LoadScene(cfg config.SceneConfig, fonts map[string]entity.Font) (entity.SceneDef, error) {
	font, ok := fonts[cfg.Font]
	if !ok {
		return entity.SceneDef{}, fmt.Errorf("scene %s: unknown font %q", cfg.Name, cfg.Font)
	}

	align, err := entity.ParseAlignment(cfg.Align)
	if err != nil {
		return entity.SceneDef{}, fmt.Errorf("scene %s: %w", cfg.Name, err)
	}

	def := entity.SceneDef{
		Name:     cfg.Name,
		Requests: make([]entity.TextRequest, 0, len(cfg.Texts)),
	}
	for _, t := range cfg.Texts {
		def.Requests = append(def.Requests, entity.TextRequest{
			Font:   font,
			Align:  align,
			Anchor: fixed.Point26_6{X: toFixed(t.X), Y: toFixed(t.Y)},
			Text:   t.Text,
		})
	}
	return def, nil
}

// toFixed rounds a config coordinate to the nearest 1/64 pixel
func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
