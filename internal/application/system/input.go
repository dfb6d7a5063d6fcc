package system

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/textscenes/internal/infrastructure/config"
)

// LevelSource reports whether the confirm control is held down right now
type LevelSource interface {
	ConfirmHeld() bool
}

// LevelFunc adapts a plain function to LevelSource
type LevelFunc func() bool

// ConfirmHeld calls f
func (f LevelFunc) ConfirmHeld() bool { return f() }

// KeyboardSource reads the confirm level from ebiten keys and gamepad start buttons
type KeyboardSource struct {
	keys       []ebiten.Key
	gamepad    bool
	gamepadIDs []ebiten.GamepadID
}

// NewKeyboardSource creates a keyboard source from the input config
func NewKeyboardSource(cfg config.InputConfig) (*KeyboardSource, error) {
	keys := make([]ebiten.Key, 0, len(cfg.ConfirmKeys))
	for _, name := range cfg.ConfirmKeys {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			return nil, fmt.Errorf("invalid confirm key %q: %w", name, err)
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 && !cfg.ConfirmGamepad {
		return nil, fmt.Errorf("no confirm input configured")
	}
	return &KeyboardSource{keys: keys, gamepad: cfg.ConfirmGamepad}, nil
}

// Keys returns the configured confirm keys
func (s *KeyboardSource) Keys() []ebiten.Key {
	return s.keys
}

// ConfirmHeld reports whether any confirm key or gamepad start button is down
func (s *KeyboardSource) ConfirmHeld() bool {
	for _, k := range s.keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	if !s.gamepad {
		return false
	}

	s.gamepadIDs = ebiten.AppendGamepadIDs(s.gamepadIDs[:0])
	for _, id := range s.gamepadIDs {
		if ebiten.IsStandardGamepadLayoutAvailable(id) &&
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

// ConfirmInput turns a level source into rising-edge detection.
// An edge is a held sample that follows a released sample. The first sample
// can never be an edge, so a control held before anyone looks does not count.
type ConfirmInput struct {
	source LevelSource
	armed  bool
	edges  int
}

// NewConfirmInput creates an edge detector over source
func NewConfirmInput(source LevelSource) *ConfirmInput {
	return &ConfirmInput{source: source}
}

// EdgeObserved samples the source once and reports a rising edge.
// Call it at most once per frame.
func (c *ConfirmInput) EdgeObserved() bool {
	held := c.source.ConfirmHeld()
	edge := held && c.armed
	c.armed = !held
	if edge {
		c.edges++
	}
	return edge
}

// Edges returns the number of rising edges seen so far
func (c *ConfirmInput) Edges() int {
	return c.edges
}
