package monome

import "fmt"

// EventKind is the kind of an input event.
type EventKind uint8

const (
	ButtonUp EventKind = iota
	ButtonDown
)

func (k EventKind) String() string {
	switch k {
	case ButtonUp:
		return "button up"
	case ButtonDown:
		return "button down"
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// Event is a button event in logical grid coordinates.
type Event struct {
	Kind EventKind
	X    uint8
	Y    uint8
}

// Down reports whether the event is a button press.
func (e Event) Down() bool { return e.Kind == ButtonDown }

func (e Event) String() string {
	return fmt.Sprintf("%s %d/%d", e.Kind, e.X, e.Y)
}
