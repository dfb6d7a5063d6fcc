package game

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/textscenes/internal/application/scene"
	"github.com/younwookim/textscenes/internal/domain/entity"
)

// FrameClock blocks until the next frame boundary.
// Returning ebiten.Termination ends Run cleanly.
type FrameClock interface {
	Tick() error
}

// PacedClock ticks at a fixed frame rate
type PacedClock struct {
	ticker *time.Ticker
}

// NewPacedClock creates a clock running at fps frames per second
func NewPacedClock(fps int) *PacedClock {
	if fps <= 0 {
		fps = 60
	}
	return &PacedClock{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

// Tick waits for the next frame
func (c *PacedClock) Tick() error {
	<-c.ticker.C
	return nil
}

// Stop releases the underlying ticker
func (c *PacedClock) Stop() {
	c.ticker.Stop()
}

// Sequencer cycles through scenes forever, one frame per Step.
// Every scene shares one sprite pool.
type Sequencer struct {
	factories []scene.Factory
	pool      *entity.SpritePool
	logger    *log.Logger

	index   int
	current scene.Scene

	frames    int
	completed int
	cycles    int
}

// NewSequencer creates a sequencer over factories in order.
// pool is the arena every scene lays out into.
func NewSequencer(pool *entity.SpritePool, factories ...scene.Factory) (*Sequencer, error) {
	if len(factories) == 0 {
		return nil, fmt.Errorf("sequencer needs at least one scene")
	}
	if pool == nil {
		return nil, fmt.Errorf("sequencer needs a sprite pool")
	}
	return &Sequencer{factories: factories, pool: pool}, nil
}

// SetLogger enables scene transition traces. nil disables them.
func (s *Sequencer) SetLogger(l *log.Logger) {
	s.logger = l
}

// Pool returns the shared sprite pool
func (s *Sequencer) Pool() *entity.SpritePool { return s.pool }

// Current returns the active scene, or nil between scenes
func (s *Sequencer) Current() scene.Scene { return s.current }

// Index returns the position of the active (or next) scene
func (s *Sequencer) Index() int { return s.index }

// Frames returns how many frames have been stepped
func (s *Sequencer) Frames() int { return s.frames }

// ScenesCompleted returns how many scenes have advanced
func (s *Sequencer) ScenesCompleted() int { return s.completed }

// Cycles returns how many times the whole list has been played
func (s *Sequencer) Cycles() int { return s.cycles }

// Step runs one frame: enter the scene if none is active, update it, and
// move on to the next scene once it reports done.
func (s *Sequencer) Step() error {
	s.frames++

	if s.current == nil {
		next := s.factories[s.index]()
		if err := next.OnEnter(); err != nil {
			return fmt.Errorf("failed to enter scene %d (%s): %w", s.index, next.Name(), err)
		}
		s.current = next
		s.tracef("enter %d %s (%d sprites)", s.index, next.Name(), s.pool.Len())
	}

	done, err := s.current.Update()
	if err != nil {
		return fmt.Errorf("scene %s: %w", s.current.Name(), err)
	}
	if !done {
		return nil
	}

	return s.advance()
}

func (s *Sequencer) advance() error {
	name := s.current.Name()
	s.current.OnExit()
	s.current = nil
	if n := s.pool.Len(); n != 0 {
		return fmt.Errorf("scene %s left %d sprites in the pool", name, n)
	}

	s.completed++
	s.index++
	if s.index == len(s.factories) {
		s.index = 0
		s.cycles++
	}
	s.tracef("exit %s, next %d (cycle %d, high-water %d/%d)",
		name, s.index, s.cycles, s.pool.HighWater(), s.pool.Cap())
	return nil
}

// Run steps forever, waiting on clock between frames.
// It returns nil when clock reports ebiten.Termination and any other error as is.
func (s *Sequencer) Run(clock FrameClock) error {
	defer s.Close()

	for {
		if err := s.Step(); err != nil {
			return err
		}
		if err := clock.Tick(); err != nil {
			if errors.Is(err, ebiten.Termination) {
				return nil
			}
			return err
		}
	}
}

// Close exits the active scene, releasing the pool
func (s *Sequencer) Close() {
	if s.current == nil {
		return
	}
	s.current.OnExit()
	s.current = nil
}

// Preflight enters and exits every scene once without updating it.
// All layout failures are reported together.
func (s *Sequencer) Preflight() error {
	var errs []error
	for i, f := range s.factories {
		sc := f()
		if err := sc.OnEnter(); err != nil {
			errs = append(errs, fmt.Errorf("scene %d (%s): %w", i, sc.Name(), err))
			continue
		}
		s.tracef("preflight %d %s: %d/%d sprites", i, sc.Name(), s.pool.Len(), s.pool.Cap())
		sc.OnExit()
	}
	return errors.Join(errs...)
}

func (s *Sequencer) tracef(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
