package main

import (
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"sort"

	"github.com/younwookim/textscenes/internal/application/game"
	"github.com/younwookim/textscenes/internal/application/replay"
	"github.com/younwookim/textscenes/internal/application/scene"
	"github.com/younwookim/textscenes/internal/application/scene/textscreen"
	"github.com/younwookim/textscenes/internal/application/system"
	"github.com/younwookim/textscenes/internal/domain/entity"
	"github.com/younwookim/textscenes/internal/infrastructure/assets"
	"github.com/younwookim/textscenes/internal/infrastructure/config"
	"github.com/younwookim/textscenes/internal/infrastructure/render"
)

// glyphColor tints rasterized faces; strip fonts keep their own palette
var glyphColor = color.White

// App holds everything loaded at startup
type App struct {
	Config  *config.GameConfig
	Scenes  string
	Fonts   map[string]entity.Font
	Atlases map[uint16]render.Atlas // empty when loaded headless
	Defs    []entity.SceneDef
	Pool    *entity.SpritePool
}

// LoadApp reads the configs in fsys and resolves the scene list.
// With rasterize false no ebiten images are created.
func LoadApp(fsys fs.FS, scenes string, rasterize bool) (*App, error) {
	loader := config.NewFSLoader(fsys, "configs")
	cfg, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &App{
		Config:  cfg,
		Scenes:  scenes,
		Fonts:   make(map[string]entity.Font),
		Atlases: make(map[uint16]render.Atlas),
		Pool:    entity.NewSpritePool(cfg.App.Pool.Capacity),
	}
	if err := a.loadFonts(loader, rasterize); err != nil {
		return nil, err
	}

	scenesCfg, err := loader.LoadScenes(scenes)
	if err != nil {
		return nil, err
	}
	a.Defs, err = system.LoadScenes(scenesCfg, a.Fonts)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// loadFonts assigns atlas ids in font name order
func (a *App) loadFonts(loader *config.Loader, rasterize bool) error {
	names := make([]string, 0, len(a.Config.Fonts.Fonts))
	for name := range a.Config.Fonts.Fonts {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		fc := a.Config.Fonts.Fonts[name]
		id := uint16(i)

		var err error
		if fc.Strip != "" {
			err = a.loadStripFont(loader, name, id, fc, rasterize)
		} else {
			err = a.loadFaceFont(name, id, fc, rasterize)
		}
		if err != nil {
			return fmt.Errorf("font %s: %w", name, err)
		}
	}
	return nil
}

func (a *App) loadFaceFont(name string, id uint16, fc config.FontConfig, rasterize bool) error {
	charset := fc.Charset
	if charset == "" {
		charset = entity.DefaultCharset
	}
	font, err := entity.NewSpriteFont(name, id, fc.GlyphWidth, fc.GlyphHeight, charset)
	if err != nil {
		return err
	}

	face, err := render.LoadFace(fc.Face, fc.Size)
	if err != nil {
		return err
	}
	if rasterize {
		a.Atlases[id] = render.BuildFaceAtlas(face, fc.GlyphWidth, fc.GlyphHeight, font.Charset(), glyphColor)
	}
	a.Fonts[name] = font
	return nil
}

func (a *App) loadStripFont(loader *config.Loader, name string, id uint16, fc config.FontConfig, rasterize bool) error {
	strip, err := assets.LoadStripFont(loader.FS(), fc.Strip)
	if err != nil {
		return err
	}
	desc := strip.Descriptor

	// the advance defaults to the tile size
	w, h := fc.GlyphWidth, fc.GlyphHeight
	if w <= 0 {
		w = desc.Sprite.Width
	}
	if h <= 0 {
		h = desc.Sprite.Height
	}
	charset := desc.Charset
	if fc.Charset != "" {
		charset = fc.Charset
	}

	font, err := entity.NewSpriteFont(name, id, w, h, charset)
	if err != nil {
		return err
	}
	if rasterize {
		atlas, err := render.NewStripAtlas(strip.Image, desc.Sprite.Width, desc.Sprite.Height)
		if err != nil {
			return err
		}
		a.Atlases[id] = atlas
	}
	a.Fonts[name] = font
	return nil
}

// Sequencer builds a fresh sequencer over the scene list
func (a *App) Sequencer(input textscreen.Confirmer, logger *log.Logger) (*game.Sequencer, error) {
	factories := make([]scene.Factory, 0, len(a.Defs))
	for _, def := range a.Defs {
		factories = append(factories, textscreen.Factory(def, a.Pool, input))
	}

	seq, err := game.NewSequencer(a.Pool, factories...)
	if err != nil {
		return nil, err
	}
	seq.SetLogger(logger)
	return seq, nil
}

// WarnMissingGlyphs logs every character a scene uses that its font cannot
// draw and returns how many were found.
func (a *App) WarnMissingGlyphs(logger *log.Logger) int {
	n := 0
	for _, def := range a.Defs {
		for _, req := range def.Requests {
			for _, r := range system.MissingGlyphs(req.Font, req.Text) {
				logger.Printf("warning: scene %s: font %s has no glyph for %q", def.Name, fontName(req.Font), r)
				n++
			}
		}
	}
	return n
}

// Check lays out every scene once without running any frames
func (a *App) Check(logger *log.Logger) error {
	seq, err := a.Sequencer(system.NewConfirmInput(system.LevelFunc(func() bool { return false })), logger)
	if err != nil {
		return err
	}
	return seq.Preflight()
}

// Replay runs the scene list headlessly against recorded input.
// With paced set, frames advance at the configured frame rate.
func (a *App) Replay(data *replay.ReplayData, paced bool, logger *log.Logger) (*game.Sequencer, error) {
	player := replay.NewReplayer(*data)
	seq, err := a.Sequencer(system.NewConfirmInput(player), logger)
	if err != nil {
		return nil, err
	}

	var clock game.FrameClock = player
	if paced {
		pc := game.NewPacedClock(a.Config.App.Display.Framerate)
		defer pc.Stop()
		clock = pacedReplay{paced: pc, replay: player}
	}

	if err := seq.Run(clock); err != nil {
		return seq, err
	}
	return seq, nil
}

// pacedReplay waits for real frame boundaries until the recording ends
type pacedReplay struct {
	paced  *game.PacedClock
	replay *replay.Replayer
}

func (c pacedReplay) Tick() error {
	if err := c.replay.Tick(); err != nil {
		return err
	}
	return c.paced.Tick()
}

func fontName(f entity.Font) string {
	if n, ok := f.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "?"
}
