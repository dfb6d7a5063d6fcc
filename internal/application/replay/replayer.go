package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Replayer plays back recorded confirm levels, one per frame
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// Decode reads replay data from r
func Decode(r io.Reader) (*ReplayData, error) {
	var data ReplayData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	return &data, nil
}

// ConfirmHeld returns the recorded level for the current frame and advances.
// Past the end of the recording the control reads as released.
func (r *Replayer) ConfirmHeld() bool {
	if r.frame >= len(r.data.Frames) {
		return false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.C
}

// Tick ends the frame loop once every recorded frame has been consumed
func (r *Replayer) Tick() error {
	if r.Done() {
		return ebiten.Termination
	}
	return nil
}

// Done reports whether every recorded frame has been played
func (r *Replayer) Done() bool {
	return r.frame >= len(r.data.Frames)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Scenes returns the scene list the replay was recorded against
func (r *Replayer) Scenes() string {
	return r.data.Scenes
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data from a sequence of confirm levels
func CreateTestReplayData(scenes string, levels ...bool) ReplayData {
	data := ReplayData{
		Version:   "1.0",
		Scenes:    scenes,
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, len(levels)),
	}

	for i, held := range levels {
		data.Frames[i] = FrameInput{F: i, C: held}
	}

	return data
}
