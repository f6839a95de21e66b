package workflow

import "fmt"

type State int

const (
	StateIdle State = iota
	StateImageSelected
	StateSubmitting
	StateResultShown
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateImageSelected:
		return "image_selected"
	case StateSubmitting:
		return "submitting"
	case StateResultShown:
		return "result_shown"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type event string

const (
	eventSelect  event = "select"
	eventSubmit  event = "submit"
	eventSuccess event = "success"
	eventFailure event = "failure"
)

// transitions lists every legal move. Idle has no submit edge, so a submission
// without a selection cannot be expressed. Selecting while Submitting keeps the
// state: the new image is used by the next submission.
var transitions = map[State]map[event]State{
	StateIdle: {
		eventSelect: StateImageSelected,
	},
	StateImageSelected: {
		eventSelect: StateImageSelected,
		eventSubmit: StateSubmitting,
	},
	StateSubmitting: {
		eventSelect:  StateSubmitting,
		eventSuccess: StateResultShown,
		eventFailure: StateError,
	},
	StateResultShown: {
		eventSelect: StateImageSelected,
		eventSubmit: StateSubmitting,
	},
	StateError: {
		eventSelect: StateImageSelected,
		eventSubmit: StateSubmitting,
	},
}

func next(current State, e event) (State, bool) {
	to, ok := transitions[current][e]
	return to, ok
}
