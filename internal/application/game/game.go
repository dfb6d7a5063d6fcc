// Package game drives the scene sequence, either from ebiten's frame loop or
// from a blocking loop over a FrameClock.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/textscenes/internal/domain/entity"
)

// Renderer draws the contents of the sprite pool
type Renderer interface {
	Draw(screen *ebiten.Image, sprites *entity.SpritePool)
}

// Game implements ebiten.Game on top of a Sequencer.
type Game struct {
	seq      *Sequencer
	renderer Renderer
	screenW  int
	screenH  int
	onUpdate func() error
}

// New creates a Game stepping seq once per ebiten update.
// renderer may be nil for headless use.
func New(seq *Sequencer, renderer Renderer, screenW, screenH int) *Game {
	return &Game{
		seq:      seq,
		renderer: renderer,
		screenW:  screenW,
		screenH:  screenH,
	}
}

// OnUpdate registers a hook run before each frame step.
// Returning ebiten.Termination from it stops the game.
func (g *Game) OnUpdate(fn func() error) {
	g.onUpdate = fn
}

// Sequencer returns the underlying sequencer
func (g *Game) Sequencer() *Sequencer {
	return g.seq
}

// Update advances the sequence by one frame.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.onUpdate != nil {
		if err := g.onUpdate(); err != nil {
			return err
		}
	}
	return g.seq.Step()
}

// Draw renders the pool.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.renderer != nil {
		g.renderer.Draw(screen, g.seq.Pool())
	}
}

// Layout returns the logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
