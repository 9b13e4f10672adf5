package events

import "errors"

// Key is a canonical key name such as "j", "up", "esc", "enter" or "ctrl+c".
type Key string

type EventType int

const (
	EventInput EventType = iota + 1
	EventTick
)

type Event struct {
	Type EventType
	Key  Key
}

func Input(key Key) Event {
	return Event{Type: EventInput, Key: key}
}

func Tick() Event {
	return Event{Type: EventTick}
}

func (e Event) String() string {
	switch e.Type {
	case EventInput:
		return "input(" + string(e.Key) + ")"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// ErrUndecodable is returned by a KeyReader for input that maps to no key.
// The input producer skips it and keeps reading.
var ErrUndecodable = errors.New("undecodable input")

// KeyReader yields decoded keys. ReadKey may block indefinitely.
type KeyReader interface {
	ReadKey() (Key, error)
}
