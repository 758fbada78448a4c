package questionslist

// State is the presentation state of the controller.
type State int

const (
	// StateIdle means no activation cycle is running.
	StateIdle State = iota
	// StateLoading means a fetch is in flight and progress is shown.
	StateLoading
	// StateLoaded means questions are bound to the view.
	StateLoaded
	// StateError means the last fetch of the cycle failed.
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
