// Package scene defines the Scene interface for full-screen presentations.
//
// Each screen (title card, prompt, credits, etc.) implements the Scene
// interface. The sequencer owns the order; a scene only decides when it is done.
package scene

// Scene represents one screen of content.
//
// Lifecycle: OnEnter once, Update once per frame until it reports done,
// then OnExit once. OnExit is only called after a successful OnEnter.
type Scene interface {
	// Name identifies the scene in logs and errors.
	Name() string

	// OnEnter is called when entering this scene.
	// Use this to acquire resources and do all one-shot work such as layout.
	// Returns an error to abort the scene; the scene must have released
	// anything it acquired before returning the error.
	OnEnter() error

	// Update runs one frame of the scene.
	// Returns done=true once the scene has finished and may be exited.
	// Returns an error to terminate the sequencer.
	Update() (done bool, err error)

	// OnExit is called when leaving this scene.
	// Use this for resource release. It must leave nothing behind.
	OnExit()
}

// Factory creates a fresh scene instance for one pass of the sequencer.
type Factory func() Scene
