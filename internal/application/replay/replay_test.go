package replay

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/textscenes/internal/application/system"
)

func TestFrameInput_OmitsReleased(t *testing.T) {
	data, err := json.Marshal(FrameInput{F: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":3}`, string(data))

	data, err = json.Marshal(FrameInput{F: 4, C: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":4,"c":true}`, string(data))
}

func TestReplayData_Presses(t *testing.T) {
	tests := []struct {
		name   string
		levels []bool
		want   int
	}{
		{"empty", nil, 0},
		{"held from the start", []bool{true, true, true}, 0},
		{"single tap", []bool{false, true, false}, 1},
		{"held then tap", []bool{true, false, true, true, false, true}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := CreateTestReplayData("demo", tt.levels...)
			assert.Equal(t, tt.want, data.Presses())
		})
	}
}

func TestReplayer_ConfirmHeld(t *testing.T) {
	data := CreateTestReplayData("demo", false, true, false)
	replayer := NewReplayer(data)

	assert.False(t, replayer.ConfirmHeld())
	assert.True(t, replayer.ConfirmHeld())
	assert.False(t, replayer.Done())
	assert.False(t, replayer.ConfirmHeld())
	assert.True(t, replayer.Done())

	// past the end reads as released
	assert.False(t, replayer.ConfirmHeld())
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayer_Tick(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData("demo", true, true))

	replayer.ConfirmHeld()
	assert.NoError(t, replayer.Tick())

	replayer.ConfirmHeld()
	assert.ErrorIs(t, replayer.Tick(), ebiten.Termination)
}

func TestReplayer_TotalFramesAndScenes(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData("alignment", make([]bool, 10)...))

	assert.Equal(t, 10, replayer.TotalFrames())
	assert.Equal(t, "alignment", replayer.Scenes())
}

func TestReplayer_Reset(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData("demo", true, false))

	replayer.ConfirmHeld()
	replayer.ConfirmHeld()
	require.True(t, replayer.Done())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.True(t, replayer.ConfirmHeld())
}

func TestCreateTestReplayData(t *testing.T) {
	data := CreateTestReplayData("demo", false, true)

	assert.Equal(t, "1.0", data.Version)
	assert.Equal(t, "demo", data.Scenes)
	assert.NotEmpty(t, data.StartTime)
	require.Len(t, data.Frames, 2)
	for i, frame := range data.Frames {
		assert.Equal(t, i, frame.F, "Frame number mismatch at index %d", i)
	}
	assert.True(t, data.Frames[1].C)
}

func TestRecorder_TapsSource(t *testing.T) {
	levels := []bool{false, true, true, false}
	i := 0
	src := system.LevelFunc(func() bool {
		v := levels[i]
		i++
		return v
	})

	rec := NewRecorder("demo", src)
	for _, want := range levels {
		assert.Equal(t, want, rec.ConfirmHeld(), "levels pass through unchanged")
	}

	assert.Equal(t, 4, rec.FrameCount())
	data := rec.Data()
	assert.Equal(t, "demo", data.Scenes)
	assert.Equal(t, 3, data.Frames[3].F)
	assert.Equal(t, 1, data.Presses())
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder("demo", system.LevelFunc(func() bool { return true }))
	rec.ConfirmHeld()

	rec.Stop()
	assert.False(t, rec.IsRecording())
	assert.True(t, rec.ConfirmHeld(), "source is still read after stop")
	assert.Equal(t, 1, rec.FrameCount())
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder("demo", system.LevelFunc(func() bool { return false }))

	path := filepath.Join(t.TempDir(), "replay.json")
	assert.Error(t, rec.Save(path), "nothing recorded yet")

	rec.RecordFrame(false)
	rec.RecordFrame(true)
	require.NoError(t, rec.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, rec.Data().Frames, loaded.Frames)
	assert.Equal(t, "demo", loaded.Scenes)
}

func TestRecordThenReplay_SameLevels(t *testing.T) {
	levels := []bool{false, false, true, true, false, true}
	i := 0
	rec := NewRecorder("demo", system.LevelFunc(func() bool {
		v := levels[i]
		i++
		return v
	}))

	live := system.NewConfirmInput(rec)
	var liveEdges []bool
	for range levels {
		liveEdges = append(liveEdges, live.EdgeObserved())
	}

	var buf bytes.Buffer
	require.NoError(t, rec.Encode(&buf))
	data, err := Decode(&buf)
	require.NoError(t, err)

	replayed := system.NewConfirmInput(NewReplayer(*data))
	var replayEdges []bool
	for range levels {
		replayEdges = append(replayEdges, replayed.EdgeObserved())
	}

	assert.Equal(t, liveEdges, replayEdges)
	assert.Equal(t, 2, replayed.Edges())
}

func TestLoadReplay_Errors(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = Decode(bytes.NewBufferString("{not json"))
	assert.Error(t, err)
}
