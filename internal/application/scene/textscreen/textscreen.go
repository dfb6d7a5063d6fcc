// Package textscreen provides the text card scene: laid-out sprite text that
// stays on screen until the confirm control is pressed.
package textscreen

import (
	"fmt"

	"github.com/younwookim/textscenes/internal/application/scene"
	"github.com/younwookim/textscenes/internal/application/state"
	"github.com/younwookim/textscenes/internal/application/system"
	"github.com/younwookim/textscenes/internal/domain/entity"
)

// Confirmer reports a rising edge of the confirm control. Queried once per frame.
type Confirmer interface {
	EdgeObserved() bool
}

// Screen is a text card scene
type Screen struct {
	def   entity.SceneDef
	pool  *entity.SpritePool
	input Confirmer
	state state.SceneState
}

// New creates a text card scene that lays def out into pool
func New(def entity.SceneDef, pool *entity.SpritePool, input Confirmer) *Screen {
	return &Screen{
		def:   def,
		pool:  pool,
		input: input,
		state: state.StateEntered,
	}
}

// Factory returns a scene.Factory producing a fresh Screen for each pass
func Factory(def entity.SceneDef, pool *entity.SpritePool, input Confirmer) scene.Factory {
	return func() scene.Scene {
		return New(def, pool, input)
	}
}

// Name returns the scene name
func (s *Screen) Name() string {
	return s.def.Name
}

// State returns the current lifecycle state
func (s *Screen) State() state.SceneState {
	return s.state
}

// OnEnter acquires the sprite pool and lays out every text request once.
// On failure the pool is released before the error is returned.
func (s *Screen) OnEnter() error {
	s.state = state.StateEntered
	if err := s.pool.Acquire(); err != nil {
		return fmt.Errorf("scene %s: %w", s.def.Name, err)
	}

	for i, req := range s.def.Requests {
		gen := system.NewTextGenerator(req.Font)
		gen.SetAlignment(req.Align)
		if err := gen.Generate(req.Anchor.X, req.Anchor.Y, req.Text, s.pool); err != nil {
			s.pool.Release()
			return fmt.Errorf("scene %s, text %d: %w", s.def.Name, i, err)
		}
	}

	s.state = state.StateRendered
	return nil
}

// Update checks the confirm edge. Nothing is laid out again.
func (s *Screen) Update() (bool, error) {
	switch s.state {
	case state.StateRendered, state.StateWaiting:
		if s.input.EdgeObserved() {
			s.state = state.StateAdvancing
			return true, nil
		}
		s.state = state.StateWaiting
		return false, nil
	case state.StateAdvancing:
		return true, nil
	default:
		return false, fmt.Errorf("scene %s: update before layout (state %s)", s.def.Name, s.state)
	}
}

// OnExit destroys every sprite of the scene
func (s *Screen) OnExit() {
	s.pool.Release()
}
