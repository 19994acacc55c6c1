package input

import (
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/common"
)

// fakeClipboard is an in-memory clipboard that can be made to fail.
type fakeClipboard struct {
	text    string
	failGet bool
	written []string
}

func (c *fakeClipboard) ReadText() (string, error) {
	if c.failGet {
		return "", fmt.Errorf("clipboard unavailable")
	}
	return c.text, nil
}

func (c *fakeClipboard) WriteText(text string) error {
	c.written = append(c.written, text)
	return nil
}

func wanting(t *testing.T, options ...TranslatorBuilderOption) Translator {
	t.Helper()
	tr := NewTranslator(append(options, WithQuietDiagnostics(true))...)
	tr.SetWantsInput(true)
	return tr
}

func TestConsumedGatedByWantsInput(t *testing.T) {
	tr := NewTranslator(WithQuietDiagnostics(true))

	move := Message{Kind: MsgPointerMove, X: 10, Y: 20}
	if tr.HandleMessage(move) {
		t.Fatal("message consumed while the GUI does not want input")
	}
	// State still tracks even when not consumed.
	if got := tr.PointerPos(); got != [2]float32{10, 20} {
		t.Fatalf("pointer pos = %v, want tracked position", got)
	}

	tr.SetWantsInput(true)
	if !tr.HandleMessage(move) {
		t.Fatal("message not consumed while the GUI wants input")
	}
}

func TestResizeAndFocusNeverConsumed(t *testing.T) {
	tr := wanting(t)

	for _, msg := range []Message{
		{Kind: MsgResize, Width: 800, Height: 600},
		{Kind: MsgFocusGained},
		{Kind: MsgFocusLost},
	} {
		if tr.HandleMessage(msg) {
			t.Errorf("%v must never be consumed", msg.Kind)
		}
	}
}

func TestDrainOrderAndAtomicity(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgPointerMove, X: 1, Y: 1})
	tr.HandleMessage(Message{Kind: MsgPointerButton, Button: ButtonPrimary, Pressed: true})
	tr.HandleMessage(Message{Kind: MsgChar, Rune: 'a'})
	tr.HandleMessage(Message{Kind: MsgScroll, ScrollY: -3})

	events := tr.Drain()
	wantKinds := []EventKind{EventPointerMove, EventPointerButton, EventText, EventScroll}
	if len(events) != len(wantKinds) {
		t.Fatalf("drained %d events, want %d", len(events), len(wantKinds))
	}
	for i, ev := range events {
		if ev.Kind != wantKinds[i] {
			t.Errorf("event %d kind = %v, want %v", i, ev.Kind, wantKinds[i])
		}
	}

	if second := tr.Drain(); second != nil {
		t.Fatalf("second drain returned %d events, want none", len(second))
	}
}

func TestButtonEventsCarryPointerPosition(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgPointerMove, X: 42, Y: 17})
	tr.HandleMessage(Message{Kind: MsgPointerButton, Button: ButtonSecondary, Pressed: true})

	events := tr.Drain()
	btn := events[1]
	if btn.Pos != [2]float32{42, 17} {
		t.Fatalf("button event pos = %v, want pointer position", btn.Pos)
	}
	if btn.Button != ButtonSecondary || !btn.Pressed {
		t.Fatalf("button event = %+v, want secondary press", btn)
	}
}

func TestCompositionCommitEmitsExactlyOneText(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgCompositionStart, Text: "n"})
	tr.HandleMessage(Message{Kind: MsgCompositionUpdate, Text: "ni"})
	// The OS may deliver chars mid-composition; they fold into the trial.
	tr.HandleMessage(Message{Kind: MsgChar, Rune: 'x'})
	tr.HandleMessage(Message{Kind: MsgCompositionUpdate, Text: "nih"})

	if events := tr.Drain(); len(events) != 0 {
		t.Fatalf("composition in progress emitted %d events, want 0", len(events))
	}

	tr.HandleMessage(Message{Kind: MsgCompositionCommit, Text: "你好"})
	events := tr.Drain()
	if len(events) != 1 {
		t.Fatalf("commit emitted %d events, want exactly 1", len(events))
	}
	if events[0].Kind != EventText || events[0].Text != "你好" {
		t.Fatalf("commit event = %+v, want text 你好", events[0])
	}

	// Composition is idle again: plain chars emit directly.
	tr.HandleMessage(Message{Kind: MsgChar, Rune: 'z'})
	if events := tr.Drain(); len(events) != 1 || events[0].Text != "z" {
		t.Fatalf("post-commit char events = %+v", events)
	}
}

func TestCompositionCancelDiscardsSilently(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgCompositionStart, Text: "a"})
	tr.HandleMessage(Message{Kind: MsgCompositionUpdate, Text: "ab"})
	tr.HandleMessage(Message{Kind: MsgCompositionCancel})

	if events := tr.Drain(); len(events) != 0 {
		t.Fatalf("cancelled composition emitted %d events, want 0", len(events))
	}
}

func TestModifierTracking(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgKeyDown, Key: common.KeyLeftShift})
	tr.HandleMessage(Message{Kind: MsgKeyDown, Key: common.KeyLeftCtrl})
	if mods := tr.Modifiers(); !mods.Has(common.ModShift | common.ModCtrl) {
		t.Fatalf("modifiers = %b, want shift+ctrl", mods)
	}

	tr.HandleMessage(Message{Kind: MsgKeyUp, Key: common.KeyLeftShift})
	if mods := tr.Modifiers(); mods.Has(common.ModShift) || !mods.Has(common.ModCtrl) {
		t.Fatalf("modifiers = %b, want ctrl only", mods)
	}

	// Modifier keys update state without queueing key events.
	if events := tr.Drain(); len(events) != 0 {
		t.Fatalf("modifier keys emitted %d events, want 0", len(events))
	}

	// Focus loss invalidates held modifiers.
	tr.HandleMessage(Message{Kind: MsgFocusLost})
	if mods := tr.Modifiers(); mods != 0 {
		t.Fatalf("modifiers after focus loss = %b, want 0", mods)
	}
}

func TestControlRunesFiltered(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgChar, Rune: '\x08'})
	tr.HandleMessage(Message{Kind: MsgChar, Rune: '\x7f'})
	tr.HandleMessage(Message{Kind: MsgChar, Rune: 'q'})

	events := tr.Drain()
	if len(events) != 1 || events[0].Text != "q" {
		t.Fatalf("events = %+v, want single q", events)
	}
}

func TestPasteReadsClipboard(t *testing.T) {
	clip := &fakeClipboard{text: "hello"}
	tr := wanting(t, WithClipboard(clip))

	tr.HandleMessage(Message{Kind: MsgPaste})
	events := tr.Drain()
	if len(events) != 1 || events[0].Kind != EventPaste || events[0].Text != "hello" {
		t.Fatalf("events = %+v, want one paste of hello", events)
	}
}

func TestPasteFailsSoft(t *testing.T) {
	cases := []struct {
		name string
		clip Clipboard
	}{
		{"no clipboard", nil},
		{"read failure", &fakeClipboard{failGet: true}},
		{"empty clipboard", &fakeClipboard{text: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var opts []TranslatorBuilderOption
			if tc.clip != nil {
				opts = append(opts, WithClipboard(tc.clip))
			}
			tr := wanting(t, opts...)
			if !tr.HandleMessage(Message{Kind: MsgPaste}) {
				t.Error("paste message should still be consumed")
			}
			if events := tr.Drain(); len(events) != 0 {
				t.Fatalf("failed paste emitted %d events, want 0", len(events))
			}
		})
	}
}

func TestCopyAndCutEmitEvents(t *testing.T) {
	tr := wanting(t)

	tr.HandleMessage(Message{Kind: MsgCopy})
	tr.HandleMessage(Message{Kind: MsgCut})

	events := tr.Drain()
	if len(events) != 2 || events[0].Kind != EventCopy || events[1].Kind != EventCut {
		t.Fatalf("events = %+v, want copy then cut", events)
	}
}
