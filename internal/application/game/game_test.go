package game

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"

	"github.com/younwookim/textscenes/internal/application/scene"
	"github.com/younwookim/textscenes/internal/application/scene/textscreen"
	"github.com/younwookim/textscenes/internal/application/system"
	"github.com/younwookim/textscenes/internal/domain/entity"
)

// mockScene is a test double for the Scene interface
type mockScene struct {
	name        string
	pool        *entity.SpritePool
	sprites     int
	doneAfter   int
	enterErr    error
	updateErr   error
	updates     int
	enterCalls  int
	exitCalls   int
	seenOnEnter int // pool length observed before layout
}

func (m *mockScene) Name() string { return m.name }

func (m *mockScene) OnEnter() error {
	m.enterCalls++
	if m.enterErr != nil {
		return m.enterErr
	}
	m.seenOnEnter = m.pool.Len()
	if err := m.pool.Acquire(); err != nil {
		return err
	}
	for i := 0; i < m.sprites; i++ {
		if _, err := m.pool.Add(entity.Sprite{}); err != nil {
			m.pool.Release()
			return err
		}
	}
	return nil
}

func (m *mockScene) Update() (bool, error) {
	m.updates++
	if m.updateErr != nil {
		return false, m.updateErr
	}
	return m.updates >= m.doneAfter, nil
}

func (m *mockScene) OnExit() {
	m.exitCalls++
	m.pool.Release()
}

// reuse returns a factory that always hands back the same mock
func reuse(m *mockScene) scene.Factory {
	return func() scene.Scene {
		m.updates = 0
		return m
	}
}

// frameLimit terminates after n ticks
type frameLimit struct {
	n     int
	ticks int
}

func (c *frameLimit) Tick() error {
	c.ticks++
	if c.ticks >= c.n {
		return ebiten.Termination
	}
	return nil
}

type recordingRenderer struct {
	draws int
	last  *entity.SpritePool
}

func (r *recordingRenderer) Draw(_ *ebiten.Image, sprites *entity.SpritePool) {
	r.draws++
	r.last = sprites
}

func TestNewSequencer_Validation(t *testing.T) {
	_, err := NewSequencer(entity.NewSpritePool(4))
	assert.Error(t, err)

	_, err = NewSequencer(nil, reuse(&mockScene{}))
	assert.Error(t, err)
}

func TestSequencer_Step_AdvancesAndWraps(t *testing.T) {
	pool := entity.NewSpritePool(8)
	a := &mockScene{name: "a", pool: pool, sprites: 3, doneAfter: 2}
	b := &mockScene{name: "b", pool: pool, sprites: 5, doneAfter: 1}

	seq, err := NewSequencer(pool, reuse(a), reuse(b))
	require.NoError(t, err)

	require.NoError(t, seq.Step())
	assert.Equal(t, 1, a.enterCalls)
	assert.Equal(t, 3, pool.Len())
	assert.Equal(t, 0, seq.Index())

	require.NoError(t, seq.Step())
	assert.Equal(t, 1, a.exitCalls)
	assert.Nil(t, seq.Current())
	assert.Equal(t, 1, seq.Index())
	assert.Equal(t, 0, pool.Len())

	require.NoError(t, seq.Step())
	assert.Equal(t, 1, b.enterCalls)
	assert.Equal(t, 0, b.seenOnEnter, "pool is empty before the next layout")
	assert.Equal(t, 0, seq.Index(), "wraps after the last scene")
	assert.Equal(t, 1, seq.Cycles())
	assert.Equal(t, 2, seq.ScenesCompleted())
	assert.Equal(t, 3, seq.Frames())
	assert.Equal(t, 5, pool.HighWater())
}

func TestSequencer_SingleSceneRepeats(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "a", pool: pool, sprites: 4, doneAfter: 1}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, seq.Step())
	}
	assert.Equal(t, 5, a.enterCalls)
	assert.Equal(t, 5, a.exitCalls)
	assert.Equal(t, 5, seq.Cycles())
}

func TestSequencer_EnterErrorPropagates(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "broken", pool: pool, enterErr: entity.ErrPoolFull}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	err = seq.Step()
	require.ErrorIs(t, err, entity.ErrPoolFull)
	assert.Contains(t, err.Error(), "broken")
	assert.Nil(t, seq.Current())
}

func TestSequencer_UpdateErrorPropagates(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "a", pool: pool, updateErr: assert.AnError}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	assert.ErrorIs(t, seq.Step(), assert.AnError)
}

func TestSequencer_Run_Termination(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "a", pool: pool, sprites: 2, doneAfter: 3}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	clock := &frameLimit{n: 10}
	require.NoError(t, seq.Run(clock))

	assert.Equal(t, 10, seq.Frames())
	assert.Equal(t, 3, seq.ScenesCompleted())
	assert.False(t, pool.Held(), "Run releases the active scene on the way out")
	assert.Equal(t, 0, pool.Len())
}

func TestSequencer_Run_ClockError(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "a", pool: pool, doneAfter: 100}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	clockErr := errors.New("display lost")
	err = seq.Run(clockFunc(func() error { return clockErr }))
	assert.ErrorIs(t, err, clockErr)
}

type clockFunc func() error

func (f clockFunc) Tick() error { return f() }

func TestSequencer_Preflight(t *testing.T) {
	pool := entity.NewSpritePool(4)
	ok := &mockScene{name: "ok", pool: pool, sprites: 4}
	big := &mockScene{name: "big", pool: pool, sprites: 5}
	bad := &mockScene{name: "bad", pool: pool, enterErr: assert.AnError}

	seq, err := NewSequencer(pool, reuse(ok), reuse(big), reuse(bad))
	require.NoError(t, err)

	err = seq.Preflight()
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrPoolFull)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotContains(t, err.Error(), "scene 0")

	assert.Equal(t, 0, ok.updates, "preflight never updates")
	assert.Equal(t, 0, pool.Len())
	assert.False(t, pool.Held())
	assert.Equal(t, 0, seq.Frames())
}

func TestSequencer_Logger(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "intro", pool: pool, sprites: 1, doneAfter: 1}

	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	var buf bytes.Buffer
	seq.SetLogger(log.New(&buf, "", 0))
	require.NoError(t, seq.Step())

	assert.Contains(t, buf.String(), "enter 0 intro")
	assert.Contains(t, buf.String(), "exit intro")
}

func createScreens(t *testing.T, pool *entity.SpritePool, input textscreen.Confirmer) []scene.Factory {
	t.Helper()
	happy, err := entity.NewSpriteFont("happy", 0, 16, 16, entity.DefaultCharset)
	require.NoError(t, err)
	kinder, err := entity.NewSpriteFont("kindergarden", 1, 18, 32, entity.DefaultCharset)
	require.NoError(t, err)

	defs := []entity.SceneDef{
		{
			Name: "happy_text",
			Requests: []entity.TextRequest{
				{Font: happy, Align: entity.AlignCenter, Anchor: fixed.P(0, -48), Text: "Happy"},
				{Font: happy, Align: entity.AlignCenter, Anchor: fixed.P(0, 48), Text: "PRESS START"},
			},
		},
		{
			Name: "kindergarden_text",
			Requests: []entity.TextRequest{
				{Font: kinder, Align: entity.AlignCenter, Anchor: fixed.P(0, 0), Text: "Kindergarden"},
			},
		},
	}

	factories := make([]scene.Factory, 0, len(defs))
	for _, def := range defs {
		factories = append(factories, textscreen.Factory(def, pool, input))
	}
	return factories
}

func TestSequencer_TextScreens_BoundedOverManyCycles(t *testing.T) {
	pool := entity.NewSpritePool(32)

	// tap confirm every other frame
	frame := 0
	input := system.NewConfirmInput(system.LevelFunc(func() bool {
		frame++
		return frame%2 == 0
	}))

	seq, err := NewSequencer(pool, createScreens(t, pool, input)...)
	require.NoError(t, err)
	require.NoError(t, seq.Preflight())

	const cycles = 2000
	for seq.Cycles() < cycles {
		require.NoError(t, seq.Step())
		require.LessOrEqual(t, pool.Len(), pool.Cap())
		if seq.Current() == nil {
			assert.Equal(t, 0, pool.Len(), "pool empty between scenes")
		}
	}

	assert.Equal(t, 2*cycles, seq.ScenesCompleted())
	assert.Equal(t, 15, pool.HighWater())
}

func TestSequencer_TextScreens_HeldButtonNeverAdvances(t *testing.T) {
	pool := entity.NewSpritePool(32)
	input := system.NewConfirmInput(system.LevelFunc(func() bool { return true }))

	seq, err := NewSequencer(pool, createScreens(t, pool, input)...)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		require.NoError(t, seq.Step())
	}
	assert.Equal(t, 0, seq.ScenesCompleted())
	assert.Equal(t, "happy_text", seq.Current().Name())
	assert.Equal(t, 15, pool.Len())
}

func TestSequencer_TextScreens_ReleaseThenPress(t *testing.T) {
	pool := entity.NewSpritePool(32)
	levels := []bool{true, true, false, true, true, false, false, true}
	i := 0
	input := system.NewConfirmInput(system.LevelFunc(func() bool {
		if i >= len(levels) {
			return false
		}
		v := levels[i]
		i++
		return v
	}))

	seq, err := NewSequencer(pool, createScreens(t, pool, input)...)
	require.NoError(t, err)

	for range levels {
		require.NoError(t, seq.Step())
	}
	assert.Equal(t, 2, seq.ScenesCompleted())
	assert.Equal(t, 1, seq.Cycles())
}

func TestGame_UpdateStepsSequencer(t *testing.T) {
	pool := entity.NewSpritePool(4)
	a := &mockScene{name: "a", pool: pool, sprites: 1, doneAfter: 2}
	seq, err := NewSequencer(pool, reuse(a))
	require.NoError(t, err)

	g := New(seq, nil, 240, 160)
	require.NoError(t, g.Update())
	require.NoError(t, g.Update())

	assert.Equal(t, 2, seq.Frames())
	assert.Equal(t, 1, seq.ScenesCompleted())
	assert.Same(t, seq, g.Sequencer())
}

func TestGame_OnUpdateHook(t *testing.T) {
	pool := entity.NewSpritePool(4)
	seq, err := NewSequencer(pool, reuse(&mockScene{name: "a", pool: pool, doneAfter: 9}))
	require.NoError(t, err)

	g := New(seq, nil, 240, 160)
	g.OnUpdate(func() error { return ebiten.Termination })

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, 0, seq.Frames(), "hook runs before the step")
}

func TestGame_DrawDelegatesToRenderer(t *testing.T) {
	pool := entity.NewSpritePool(4)
	seq, err := NewSequencer(pool, reuse(&mockScene{name: "a", pool: pool}))
	require.NoError(t, err)

	r := &recordingRenderer{}
	g := New(seq, r, 240, 160)
	g.Draw(nil)

	assert.Equal(t, 1, r.draws)
	assert.Same(t, pool, r.last)

	// no renderer is a no-op
	New(seq, nil, 240, 160).Draw(nil)
}

func TestGame_Layout(t *testing.T) {
	pool := entity.NewSpritePool(4)
	seq, err := NewSequencer(pool, reuse(&mockScene{name: "a", pool: pool}))
	require.NoError(t, err)

	g := New(seq, nil, 240, 160)
	w, h := g.Layout(720, 480)
	assert.Equal(t, 240, w)
	assert.Equal(t, 160, h)
}
