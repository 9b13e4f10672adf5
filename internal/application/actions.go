package application

import "errors"

// Action is a user intent resolved from a key press.
type Action int

const (
	ActionSelectNext Action = iota + 1
	ActionSelectPrev
	ActionClearSelection
	ActionLike
	ActionReshare
	ActionQuit
)

var ErrUnknownAction = errors.New("unknown action")

func (a Action) String() string {
	switch a {
	case ActionSelectNext:
		return "select_next"
	case ActionSelectPrev:
		return "select_prev"
	case ActionClearSelection:
		return "clear_selection"
	case ActionLike:
		return "like"
	case ActionReshare:
		return "reshare"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
