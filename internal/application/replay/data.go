package replay

// FrameInput records the confirm level for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	C bool `json:"c,omitempty"` // Confirm held
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Scenes    string       `json:"scenes"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}

// Presses counts the frames where confirm goes from released to held
func (d ReplayData) Presses() int {
	n := 0
	prev := true
	for _, f := range d.Frames {
		if f.C && !prev {
			n++
		}
		prev = f.C
	}
	return n
}
