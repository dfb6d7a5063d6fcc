package state

// SceneState is the lifecycle phase of the running scene
type SceneState int

const (
	StateEntered SceneState = iota
	StateRendered
	StateWaiting
	StateAdvancing
)

// String returns the string representation of the scene state
func (s SceneState) String() string {
	switch s {
	case StateEntered:
		return "Entered"
	case StateRendered:
		return "Rendered"
	case StateWaiting:
		return "Waiting"
	case StateAdvancing:
		return "Advancing"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the scene has finished and may be released
func (s SceneState) Terminal() bool {
	return s == StateAdvancing
}
