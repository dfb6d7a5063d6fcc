package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/younwookim/textscenes/internal/infrastructure/script"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	App   *AppConfig
	Fonts *FontsConfig
}

// Loader loads configuration from JSON files and scene scripts using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// FS returns the filesystem the loader reads from
func (l *Loader) FS() fs.FS {
	return l.fsys
}

// LoadApp loads display.json
func (l *Loader) LoadApp() (*AppConfig, error) {
	var cfg AppConfig
	if err := l.readJSON("display.json", &cfg); err != nil {
		return nil, err
	}
	if cfg.Pool.Capacity <= 0 {
		return nil, fmt.Errorf("display.json: pool capacity must be positive, got %d", cfg.Pool.Capacity)
	}
	return &cfg, nil
}

// LoadFonts loads fonts.json
func (l *Loader) LoadFonts() (*FontsConfig, error) {
	var cfg FontsConfig
	if err := l.readJSON("fonts.json", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadScenes loads a scene list. scenes/<name>.scn takes precedence over scenes/<name>.json.
func (l *Loader) LoadScenes(name string) (*ScenesConfig, error) {
	scnPath := "scenes/" + name + ".scn"
	data, err := fs.ReadFile(l.fsys, scnPath)
	switch {
	case err == nil:
		return l.parseScript(name, scnPath, data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read scenes %s: %w", name, err)
	}

	var cfg ScenesConfig
	if err := l.readJSON("scenes/"+name+".json", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load scenes %s: %w", name, err)
	}
	if cfg.ID == "" {
		cfg.ID = name
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (display, fonts)
func (l *Loader) LoadAll() (*GameConfig, error) {
	app, err := l.LoadApp()
	if err != nil {
		return nil, err
	}

	fonts, err := l.LoadFonts()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		App:   app,
		Fonts: fonts,
	}, nil
}

func (l *Loader) readJSON(path string, v any) error {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func (l *Loader) parseScript(name, path string, data []byte) (*ScenesConfig, error) {
	s, err := script.Parse(path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	cfg := &ScenesConfig{ID: s.ID, Scenes: make([]SceneConfig, 0, len(s.Scenes))}
	if cfg.ID == "" {
		cfg.ID = name
	}
	for _, sc := range s.Scenes {
		scene := SceneConfig{
			Name:  sc.Name,
			Font:  sc.Font,
			Align: sc.Align,
			Texts: make([]TextConfig, 0, len(sc.Texts)),
		}
		for _, t := range sc.Texts {
			scene.Texts = append(scene.Texts, TextConfig{X: t.X, Y: t.Y, Text: t.Value})
		}
		cfg.Scenes = append(cfg.Scenes, scene)
	}
	return cfg, nil
}
