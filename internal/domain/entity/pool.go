package entity

import (
	"errors"
	"iter"
)

var (
	// ErrPoolFull is returned when content needs more sprites than the pool holds.
	// It means scene content and pool capacity disagree and is never retried.
	ErrPoolFull = errors.New("sprite pool capacity exceeded")

	// ErrPoolInUse is returned when a scene acquires a pool that was not released.
	ErrPoolInUse = errors.New("sprite pool already acquired")
)

// SpritePool is a fixed-capacity slot arena of sprites owned by the running scene.
// The backing slots are allocated once; the pool never grows.
type SpritePool struct {
	slots     []Sprite
	count     int
	held      bool
	highWater int
}

// NewSpritePool creates a pool with the given capacity
func NewSpritePool(capacity int) *SpritePool {
	if capacity < 0 {
		capacity = 0
	}
	return &SpritePool{slots: make([]Sprite, capacity)}
}

// Acquire marks the pool as owned by a scene.
func (p *SpritePool) Acquire() error {
	if p.held {
		return ErrPoolInUse
	}
	p.held = true
	return nil
}

// Release destroys every sprite and returns the pool to the unowned state.
func (p *SpritePool) Release() {
	p.Clear()
	p.held = false
}

// Held reports whether a scene currently owns the pool
func (p *SpritePool) Held() bool { return p.held }

// Add appends a sprite and returns its slot index.
func (p *SpritePool) Add(s Sprite) (int, error) {
	if p.count >= len(p.slots) {
		return -1, ErrPoolFull
	}
	slot := p.count
	p.slots[slot] = s
	p.count++
	if p.count > p.highWater {
		p.highWater = p.count
	}
	return slot, nil
}

// Clear zeroes all occupied slots.
func (p *SpritePool) Clear() {
	clear(p.slots[:p.count])
	p.count = 0
}

// Len returns the number of sprites in the pool
func (p *SpritePool) Len() int { return p.count }

// Cap returns the pool capacity
func (p *SpritePool) Cap() int { return len(p.slots) }

// Free returns the number of unused slots
func (p *SpritePool) Free() int { return len(p.slots) - p.count }

// HighWater returns the peak occupancy since the pool was created
func (p *SpritePool) HighWater() int { return p.highWater }

// At returns the sprite in slot i. It panics if i is out of range.
func (p *SpritePool) At(i int) Sprite {
	return p.slots[:p.count][i]
}

// All iterates occupied slots in insertion order.
func (p *SpritePool) All() iter.Seq2[int, Sprite] {
	return func(yield func(int, Sprite) bool) {
		for i := 0; i < p.count; i++ {
			if !yield(i, p.slots[i]) {
				return
			}
		}
	}
}
