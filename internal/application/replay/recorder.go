package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/younwookim/textscenes/internal/application/system"
)

// Recorder captures one confirm level per frame from a live source.
// It is itself a system.LevelSource, so it can sit between the device and
// the edge detector.
type Recorder struct {
	source    system.LevelSource
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder tapping source
func NewRecorder(scenes string, source system.LevelSource) *Recorder {
	return &Recorder{
		source: source,
		data: ReplayData{
			Version:   "1.0",
			Scenes:    scenes,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
		frame:     0,
	}
}

// ConfirmHeld reads the live source and records the level
func (r *Recorder) ConfirmHeld() bool {
	held := r.source.ConfirmHeld()
	r.RecordFrame(held)
	return held
}

// RecordFrame records a single frame's confirm level
func (r *Recorder) RecordFrame(held bool) {
	if !r.recording {
		return
	}

	r.data.Frames = append(r.data.Frames, FrameInput{F: r.frame, C: held})
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return r.Encode(file)
}

// Encode writes the replay data as indented JSON
func (r *Recorder) Encode(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the recorded replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
