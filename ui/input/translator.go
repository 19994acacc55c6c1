package input

import (
	"log"
	"sync"
	"unicode"

	"github.com/Carmen-Shannon/oxy-ui/common"
)

// translator is the implementation of the Translator interface.
type translator struct {
	mu *sync.Mutex

	events    []Event
	modifiers common.Modifiers
	pointer   [2]float32

	// wantsInput mirrors the GUI's verdict from the previous frame; it gates
	// the consumed return of HandleMessage, nothing else.
	wantsInput bool

	composing bool
	trial     string

	clipboard Clipboard
	quiet     bool
}

// Translator turns platform messages into the per-frame event queue the GUI
// consumes. It is safe to call HandleMessage from a window message hook while
// the render thread drains.
type Translator interface {
	// HandleMessage offers one platform message to the translator. State
	// (pointer position, modifiers, composition, queued events) always
	// updates; the consumed verdict is true only while the GUI wants input,
	// so an uninterested GUI lets every message fall through to the host.
	// Resize and focus messages are never consumed.
	//
	// Parameters:
	//   - msg: the normalized platform message
	//
	// Returns:
	//   - bool: true when the host should stop propagating the message
	HandleMessage(msg Message) bool

	// Drain returns every queued event in insertion order and clears the
	// queue atomically.
	//
	// Returns:
	//   - []Event: the queued events, possibly empty
	Drain() []Event

	// SetWantsInput updates the GUI's interest flag. The Backend calls this
	// once per frame from the driver's output.
	//
	// Parameters:
	//   - wants: true while the GUI wants pointer and keyboard input
	SetWantsInput(wants bool)

	// Modifiers returns the current modifier state.
	//
	// Returns:
	//   - common.Modifiers: the modifier bitset
	Modifiers() common.Modifiers

	// PointerPos returns the last known pointer position in points.
	//
	// Returns:
	//   - [2]float32: the pointer position
	PointerPos() [2]float32

	// Clipboard returns the configured clipboard, or nil when none is set.
	//
	// Returns:
	//   - Clipboard: the clipboard implementation
	Clipboard() Clipboard
}

var _ Translator = &translator{}

// NewTranslator creates a Translator with an empty queue and idle
// composition state.
//
// Parameters:
//   - options: functional options to configure the translator
//
// Returns:
//   - Translator: the configured translator
func NewTranslator(options ...TranslatorBuilderOption) Translator {
	t := &translator{
		mu: &sync.Mutex{},
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *translator) HandleMessage(msg Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch msg.Kind {
	case MsgPointerMove:
		t.pointer = [2]float32{msg.X, msg.Y}
		t.events = append(t.events, Event{
			Kind:      EventPointerMove,
			Pos:       t.pointer,
			Modifiers: t.modifiers,
		})
		return t.wantsInput

	case MsgPointerButton:
		t.events = append(t.events, Event{
			Kind:      EventPointerButton,
			Pos:       t.pointer,
			Button:    msg.Button,
			Pressed:   msg.Pressed,
			Modifiers: t.modifiers,
		})
		return t.wantsInput

	case MsgScroll:
		t.events = append(t.events, Event{
			Kind:      EventScroll,
			Delta:     [2]float32{msg.ScrollX, msg.ScrollY},
			Modifiers: t.modifiers,
		})
		return t.wantsInput

	case MsgKeyDown, MsgKeyUp:
		pressed := msg.Kind == MsgKeyDown
		if bit := modifierBit(msg.Key); bit != 0 {
			if pressed {
				t.modifiers |= bit
			} else {
				t.modifiers &^= bit
			}
			return t.wantsInput
		}
		t.modifiers = msg.Modifiers
		t.events = append(t.events, Event{
			Kind:      EventKey,
			Key:       msg.Key,
			Pressed:   pressed,
			Modifiers: t.modifiers,
		})
		return t.wantsInput

	case MsgChar:
		// While composing, the character is part of the trial string and the
		// final text arrives with the commit; emitting here would double it.
		if t.composing {
			return t.wantsInput
		}
		if unicode.IsControl(msg.Rune) {
			return t.wantsInput
		}
		t.events = append(t.events, Event{
			Kind:      EventText,
			Text:      string(msg.Rune),
			Modifiers: t.modifiers,
		})
		return t.wantsInput

	case MsgCompositionStart:
		t.composing = true
		t.trial = msg.Text
		return t.wantsInput

	case MsgCompositionUpdate:
		if t.composing {
			t.trial = msg.Text
		}
		return t.wantsInput

	case MsgCompositionCommit:
		t.composing = false
		t.trial = ""
		if msg.Text != "" {
			t.events = append(t.events, Event{
				Kind:      EventText,
				Text:      msg.Text,
				Modifiers: t.modifiers,
			})
		}
		return t.wantsInput

	case MsgCompositionCancel:
		t.composing = false
		t.trial = ""
		return t.wantsInput

	case MsgPaste:
		t.handlePaste()
		return t.wantsInput

	case MsgCopy:
		t.events = append(t.events, Event{Kind: EventCopy, Modifiers: t.modifiers})
		return t.wantsInput

	case MsgCut:
		t.events = append(t.events, Event{Kind: EventCut, Modifiers: t.modifiers})
		return t.wantsInput

	case MsgFocusLost:
		// Losing focus invalidates held modifiers and any open composition.
		t.modifiers = 0
		t.composing = false
		t.trial = ""
		return false

	case MsgFocusGained, MsgResize:
		return false

	default:
		return false
	}
}

// handlePaste reads the clipboard and queues a paste event. An unavailable or
// empty clipboard produces no event; that is not an error condition.
func (t *translator) handlePaste() {
	if t.clipboard == nil {
		return
	}
	text, err := t.clipboard.ReadText()
	if err != nil {
		if !t.quiet {
			log.Printf("input: clipboard read failed: %v", err)
		}
		return
	}
	if text == "" {
		return
	}
	t.events = append(t.events, Event{
		Kind:      EventPaste,
		Text:      text,
		Modifiers: t.modifiers,
	})
}

func (t *translator) Drain() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.events) == 0 {
		return nil
	}
	drained := t.events
	t.events = nil
	return drained
}

func (t *translator) SetWantsInput(wants bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.wantsInput = wants
}

func (t *translator) Modifiers() common.Modifiers {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.modifiers
}

func (t *translator) PointerPos() [2]float32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pointer
}

func (t *translator) Clipboard() Clipboard {
	return t.clipboard
}

// modifierBit maps a modifier key to its bitset flag, or 0 for ordinary keys.
func modifierBit(key common.Key) common.Modifiers {
	switch key {
	case common.KeyLeftShift, common.KeyRightShift:
		return common.ModShift
	case common.KeyLeftCtrl, common.KeyRightCtrl:
		return common.ModCtrl
	case common.KeyLeftAlt, common.KeyRightAlt:
		return common.ModAlt
	case common.KeyLeftSuper, common.KeyRightSuper:
		return common.ModSuper
	default:
		return 0
	}
}
