// Package game runs the exploration session and the terminal loop around it.
package game

// State represents the session lifecycle.
type State int

const (
	// StateLoading is a session that has not been started.
	StateLoading State = iota
	// StateExplore is the normal mode: the player walks the world.
	StateExplore
	// StateQuit ends the loop.
	StateQuit
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateExplore:
		return "explore"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}
