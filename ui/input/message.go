package input

import (
	"github.com/Carmen-Shannon/oxy-ui/common"
)

// MessageKind tags a platform message offered to the translator.
type MessageKind int

const (
	// MsgPointerMove reports a pointer position in points.
	MsgPointerMove MessageKind = iota

	// MsgPointerButton reports a button press or release.
	MsgPointerButton

	// MsgScroll reports scroll wheel motion in points.
	MsgScroll

	// MsgKeyDown reports a physical key press.
	MsgKeyDown

	// MsgKeyUp reports a physical key release.
	MsgKeyUp

	// MsgChar reports a translated text character.
	MsgChar

	// MsgCompositionStart opens an IME composition session.
	MsgCompositionStart

	// MsgCompositionUpdate replaces the in-progress composition string.
	MsgCompositionUpdate

	// MsgCompositionCommit finalizes the composition with its committed text.
	MsgCompositionCommit

	// MsgCompositionCancel discards the in-progress composition.
	MsgCompositionCancel

	// MsgPaste requests a paste from the system clipboard.
	MsgPaste

	// MsgCopy requests a copy of the current GUI selection.
	MsgCopy

	// MsgCut requests a cut of the current GUI selection.
	MsgCut

	// MsgResize reports a new target size in pixels. Never consumed.
	MsgResize

	// MsgFocusGained reports keyboard focus arriving. Never consumed.
	MsgFocusGained

	// MsgFocusLost reports keyboard focus leaving. Never consumed.
	MsgFocusLost
)

// String returns the message kind name used in diagnostics.
func (k MessageKind) String() string {
	switch k {
	case MsgPointerMove:
		return "pointer_move"
	case MsgPointerButton:
		return "pointer_button"
	case MsgScroll:
		return "scroll"
	case MsgKeyDown:
		return "key_down"
	case MsgKeyUp:
		return "key_up"
	case MsgChar:
		return "char"
	case MsgCompositionStart:
		return "composition_start"
	case MsgCompositionUpdate:
		return "composition_update"
	case MsgCompositionCommit:
		return "composition_commit"
	case MsgCompositionCancel:
		return "composition_cancel"
	case MsgPaste:
		return "paste"
	case MsgCopy:
		return "copy"
	case MsgCut:
		return "cut"
	case MsgResize:
		return "resize"
	case MsgFocusGained:
		return "focus_gained"
	case MsgFocusLost:
		return "focus_lost"
	default:
		return "unknown"
	}
}

// PointerButton identifies a pointer button.
type PointerButton int

const (
	// ButtonPrimary is the left / primary button.
	ButtonPrimary PointerButton = iota

	// ButtonSecondary is the right / secondary button.
	ButtonSecondary

	// ButtonMiddle is the middle button.
	ButtonMiddle
)

// Message is one platform message in normalized form. Kind selects which
// payload fields are meaningful; the rest are zero.
type Message struct {
	// Kind tags the payload.
	Kind MessageKind

	// X, Y is the pointer position in points (MsgPointerMove).
	X, Y float32

	// Button is the pointer button (MsgPointerButton).
	Button PointerButton

	// Pressed distinguishes press from release (MsgPointerButton).
	Pressed bool

	// ScrollX, ScrollY is scroll motion in points (MsgScroll).
	ScrollX, ScrollY float32

	// Key is the physical key (MsgKeyDown, MsgKeyUp).
	Key common.Key

	// Modifiers is the modifier state reported with the message.
	Modifiers common.Modifiers

	// Rune is the translated character (MsgChar).
	Rune rune

	// Text is the composition trial or committed string
	// (MsgCompositionStart/Update/Commit).
	Text string

	// Width, Height is the new target size in pixels (MsgResize).
	Width, Height uint32
}
