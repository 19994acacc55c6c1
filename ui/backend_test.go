package ui

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/atlas"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/shader"
)

// fakeDriver records frame inputs and returns a scripted output.
type fakeDriver struct {
	calls  int
	inputs []FrameInput
	out    FrameOutput
	err    error
}

func (d *fakeDriver) RunFrame(in FrameInput) (FrameOutput, error) {
	d.calls++
	d.inputs = append(d.inputs, in)
	return d.out, d.err
}

// fakePainter records paint calls and returns a scripted error.
type fakePainter struct {
	calls    int
	commands [][]common.DrawCommand
	deltas   [][]common.TextureDelta
	targets  []painter.RenderTarget
	err      error
	released bool
}

var _ painter.Painter = &fakePainter{}

func (p *fakePainter) Paint(target painter.RenderTarget, cmds []common.DrawCommand, deltas []common.TextureDelta) error {
	p.calls++
	p.targets = append(p.targets, target)
	p.commands = append(p.commands, cmds)
	p.deltas = append(p.deltas, deltas)
	return p.err
}

func (p *fakePainter) Atlas() atlas.Atlas      { return nil }
func (p *fakePainter) Shaders() shader.Manager { return nil }
func (p *fakePainter) Release()                { p.released = true }

// fakeClipboard is an in-memory clipboard for copy-out tests.
type fakeClipboard struct {
	written   []string
	failWrite bool
}

func (c *fakeClipboard) ReadText() (string, error) { return "", nil }

func (c *fakeClipboard) WriteText(text string) error {
	if c.failWrite {
		return fmt.Errorf("clipboard busy")
	}
	c.written = append(c.written, text)
	return nil
}

func testTarget() painter.RenderTarget {
	return painter.RenderTarget{Width: 800, Height: 600, PixelsPerPoint: 1}
}

func quietBackend(d Driver, p painter.Painter, options ...BackendBuilderOption) Backend {
	opts := append([]BackendBuilderOption{
		WithErrorReporter(func(err error) {}),
	}, options...)
	return NewBackend(d, p, opts...)
}

func TestFrameRunsFullSequence(t *testing.T) {
	driver := &fakeDriver{
		out: FrameOutput{
			Commands: []common.DrawCommand{{Clip: common.NewRect(0, 0, 10, 10)}},
			Deltas:   []common.TextureDelta{{Id: 1, Free: true}},
			Platform: PlatformOutput{WantsInput: true},
		},
	}
	p := &fakePainter{}
	tr := input.NewTranslator(input.WithQuietDiagnostics(true))
	b := quietBackend(driver, p, WithTranslator(tr))

	tr.HandleMessage(input.Message{Kind: input.MsgPointerMove, X: 5, Y: 6})

	out, err := b.Frame(testTarget())
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if !out.Platform.WantsInput {
		t.Fatal("frame output not returned to caller")
	}

	// The driver saw the drained events and the frame snapshot.
	if driver.calls != 1 {
		t.Fatalf("driver called %d times, want 1", driver.calls)
	}
	in := driver.inputs[0]
	if len(in.Events) != 1 || in.Events[0].Kind != input.EventPointerMove {
		t.Fatalf("driver events = %+v, want the queued pointer move", in.Events)
	}
	if in.PointerPos != [2]float32{5, 6} {
		t.Fatalf("driver pointer pos = %v", in.PointerPos)
	}

	// The painter received exactly the driver's output.
	if p.calls != 1 {
		t.Fatalf("painter called %d times, want 1", p.calls)
	}
	if len(p.commands[0]) != 1 || len(p.deltas[0]) != 1 {
		t.Fatal("painter did not receive the driver's commands and deltas")
	}

	// The queue was drained atomically.
	if events := tr.Drain(); len(events) != 0 {
		t.Fatalf("%d events left after frame, want 0", len(events))
	}

	// WantsInput propagated: the next message is consumed.
	if !tr.HandleMessage(input.Message{Kind: input.MsgPointerMove, X: 1, Y: 1}) {
		t.Fatal("wants-input verdict did not reach the translator")
	}
}

func TestScreenSizeReportedInPoints(t *testing.T) {
	driver := &fakeDriver{}
	b := quietBackend(driver, &fakePainter{})

	target := painter.RenderTarget{Width: 1600, Height: 1200, PixelsPerPoint: 2}
	if _, err := b.Frame(target); err != nil {
		t.Fatal(err)
	}

	in := driver.inputs[0]
	if in.ScreenSize != [2]float32{800, 600} {
		t.Fatalf("screen size = %v, want points (800, 600)", in.ScreenSize)
	}
	if in.PixelsPerPoint != 2 {
		t.Fatalf("pixels per point = %v, want 2", in.PixelsPerPoint)
	}
}

func TestCopiedTextReachesClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	tr := input.NewTranslator(input.WithClipboard(clip), input.WithQuietDiagnostics(true))
	driver := &fakeDriver{out: FrameOutput{Platform: PlatformOutput{CopiedText: "copied"}}}
	b := quietBackend(driver, &fakePainter{}, WithTranslator(tr))

	if _, err := b.Frame(testTarget()); err != nil {
		t.Fatal(err)
	}
	if len(clip.written) != 1 || clip.written[0] != "copied" {
		t.Fatalf("clipboard writes = %v, want [copied]", clip.written)
	}

	// Empty copied text writes nothing.
	driver.out.Platform.CopiedText = ""
	if _, err := b.Frame(testTarget()); err != nil {
		t.Fatal(err)
	}
	if len(clip.written) != 1 {
		t.Fatal("empty copied text must not touch the clipboard")
	}
}

func TestClipboardWriteFailureReportedNotRaised(t *testing.T) {
	clip := &fakeClipboard{failWrite: true}
	tr := input.NewTranslator(input.WithClipboard(clip), input.WithQuietDiagnostics(true))
	driver := &fakeDriver{out: FrameOutput{Platform: PlatformOutput{CopiedText: "x"}}}

	var reported []error
	b := NewBackend(driver, &fakePainter{},
		WithTranslator(tr),
		WithErrorReporter(func(err error) { reported = append(reported, err) }),
	)

	if _, err := b.Frame(testTarget()); err != nil {
		t.Fatalf("clipboard failure must not fail the frame: %v", err)
	}
	if len(reported) != 1 {
		t.Fatalf("reported %d errors, want 1", len(reported))
	}
	var ce *input.ClipboardError
	if !errors.As(reported[0], &ce) {
		t.Fatalf("reported %v, want *input.ClipboardError", reported[0])
	}
}

func TestCompileErrorLatches(t *testing.T) {
	driver := &fakeDriver{}
	p := &fakePainter{err: &shader.CompileError{Stage: shader.StageVertex, Key: "gui_vertex", Diagnostics: "bad"}}
	b := quietBackend(driver, p)

	_, err := b.Frame(testTarget())
	if err == nil {
		t.Fatal("want compile error")
	}

	// Latched: the next frame refuses without running the driver.
	_, err2 := b.Frame(testTarget())
	if err2 == nil {
		t.Fatal("latched init error must keep failing")
	}
	if driver.calls != 1 {
		t.Fatalf("driver called %d times, want 1 (latch skips the frame)", driver.calls)
	}

	// Clearing the latch re-attempts.
	p.err = nil
	b.ClearInitError()
	if _, err := b.Frame(testTarget()); err != nil {
		t.Fatalf("frame after clearing latch: %v", err)
	}
	if driver.calls != 2 {
		t.Fatalf("driver called %d times after clear, want 2", driver.calls)
	}
}

func TestRenderErrorDoesNotLatch(t *testing.T) {
	driver := &fakeDriver{}
	p := &fakePainter{err: &painter.RenderError{Err: fmt.Errorf("surface lost")}}
	b := quietBackend(driver, p)

	if _, err := b.Frame(testTarget()); err == nil {
		t.Fatal("want render error")
	}

	// The backend stays valid: the next frame runs the full sequence again.
	p.err = nil
	if _, err := b.Frame(testTarget()); err != nil {
		t.Fatalf("retry after render error: %v", err)
	}
	if driver.calls != 2 {
		t.Fatalf("driver called %d times, want 2", driver.calls)
	}
}

func TestDriverErrorSkipsPaint(t *testing.T) {
	driver := &fakeDriver{err: fmt.Errorf("layout panic")}
	p := &fakePainter{}
	b := quietBackend(driver, p)

	if _, err := b.Frame(testTarget()); err == nil {
		t.Fatal("want driver error")
	}
	if p.calls != 0 {
		t.Fatal("painter must not run when the driver fails")
	}
}

func TestReleaseForwardsToPainter(t *testing.T) {
	p := &fakePainter{}
	b := quietBackend(&fakeDriver{}, p)
	b.Release()
	if !p.released {
		t.Fatal("release must reach the painter")
	}
}
