package input

import (
	"github.com/Carmen-Shannon/oxy-ui/common"
)

// EventKind tags a normalized event handed to the GUI each frame.
type EventKind int

const (
	// EventPointerMove carries a new pointer position.
	EventPointerMove EventKind = iota

	// EventPointerButton carries a button press or release at a position.
	EventPointerButton

	// EventScroll carries scroll motion.
	EventScroll

	// EventKey carries a physical key press or release.
	EventKey

	// EventText carries committed text (typed characters and IME commits).
	EventText

	// EventCopy asks the GUI to copy its current selection.
	EventCopy

	// EventCut asks the GUI to cut its current selection.
	EventCut

	// EventPaste carries text read from the system clipboard.
	EventPaste
)

// Event is one normalized input event in the frame's queue. Kind selects
// which payload fields are meaningful.
type Event struct {
	// Kind tags the payload.
	Kind EventKind

	// Pos is the pointer position in points (pointer events).
	Pos [2]float32

	// Button is the pointer button (EventPointerButton).
	Button PointerButton

	// Pressed distinguishes press from release (button and key events).
	Pressed bool

	// Delta is scroll motion in points (EventScroll).
	Delta [2]float32

	// Key is the physical key (EventKey).
	Key common.Key

	// Modifiers is the modifier state at the time of the event.
	Modifiers common.Modifiers

	// Text is the payload for EventText and EventPaste.
	Text string
}
