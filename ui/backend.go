package ui

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-ui/ui/input"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/shader"
)

// backend implements the Backend interface.
// Coordinates the per-frame GUI lifecycle on the render thread.
type backend struct {
	mu *sync.Mutex

	driver     Driver
	painter    painter.Painter
	translator input.Translator

	reportError func(err error)

	// initErr latches a shader or pipeline build failure; rendering refuses
	// until it is cleared. Transient device errors do not latch.
	initErr error

	stats        *frameStats
	statsEnabled bool

	start time.Time
}

// Backend drives one immediate-mode GUI frame at a time: it drains translated
// input, runs the external GUI driver, forwards its platform requests, and
// paints its output onto the caller's render target. It never owns the swap
// chain or the host's main loop.
type Backend interface {
	// Frame renders one GUI frame onto the given target. Runs the full
	// sequence on the calling thread: drain input, run the driver, update
	// the translator's interest flag, write copied text to the clipboard,
	// then paint commands and deltas.
	//
	// Parameters:
	//   - target: the frame's render target view and size
	//
	// Returns:
	//   - FrameOutput: the driver's output for host use (cursor, repaint hint)
	//   - error: the latched init error, a driver error, or a per-frame
	//     paint error; on per-frame errors the backend stays valid for retry
	Frame(target painter.RenderTarget) (FrameOutput, error)

	// Translator returns the input translator the host feeds messages into.
	//
	// Returns:
	//   - input.Translator: the translator instance
	Translator() input.Translator

	// Painter returns the underlying painter.
	//
	// Returns:
	//   - painter.Painter: the painter instance
	Painter() painter.Painter

	// EnableStats enables frame timing output to the log.
	EnableStats()

	// DisableStats disables frame timing output.
	DisableStats()

	// ClearInitError clears a latched shader or pipeline build failure so the
	// next Frame attempts rendering again (for example after a blob cache fix).
	ClearInitError()

	// Release frees all GPU resources owned by the backend's painter.
	Release()
}

var _ Backend = &backend{}

// NewBackend creates a Backend around an external GUI driver and a painter.
//
// Parameters:
//   - driver: the GUI library boundary (must not be nil)
//   - p: the painter rendering the driver's output (must not be nil)
//   - options: functional options for backend configuration
//
// Returns:
//   - Backend: the newly created backend
func NewBackend(driver Driver, p painter.Painter, options ...BackendBuilderOption) Backend {
	if driver == nil || p == nil {
		panic("ui: driver and painter must not be nil")
	}

	b := &backend{
		mu:      &sync.Mutex{},
		driver:  driver,
		painter: p,
		stats:   newFrameStats(),
		start:   time.Now(),
	}

	for _, opt := range options {
		opt(b)
	}

	if b.translator == nil {
		b.translator = input.NewTranslator()
	}
	if b.reportError == nil {
		b.reportError = func(err error) {
			log.Printf("ui: %v", err)
		}
	}

	return b
}

func (b *backend) Frame(target painter.RenderTarget) (FrameOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initErr != nil {
		return FrameOutput{}, b.initErr
	}

	frameStart := time.Now()

	if target.PixelsPerPoint <= 0 {
		target.PixelsPerPoint = 1
	}

	in := FrameInput{
		Events: b.translator.Drain(),
		ScreenSize: [2]float32{
			float32(target.Width) / target.PixelsPerPoint,
			float32(target.Height) / target.PixelsPerPoint,
		},
		PixelsPerPoint: target.PixelsPerPoint,
		Time:           time.Since(b.start).Seconds(),
		Modifiers:      b.translator.Modifiers(),
		PointerPos:     b.translator.PointerPos(),
	}

	out, err := b.driver.RunFrame(in)
	if err != nil {
		b.reportError(err)
		return FrameOutput{}, err
	}

	b.translator.SetWantsInput(out.Platform.WantsInput)
	b.writeCopiedText(out.Platform.CopiedText)

	if err := b.painter.Paint(target, out.Commands, out.Deltas); err != nil {
		var ce *shader.CompileError
		if errors.As(err, &ce) {
			// A broken shader will not fix itself next frame.
			b.initErr = err
		}
		b.reportError(err)
		return out, err
	}

	if b.statsEnabled {
		b.stats.tick(time.Since(frameStart))
	}

	return out, nil
}

// writeCopiedText forwards the GUI's copied text to the clipboard. Failures
// are reported, never raised; a missing clipboard drops the text silently.
func (b *backend) writeCopiedText(text string) {
	if text == "" {
		return
	}
	clipboard := b.translator.Clipboard()
	if clipboard == nil {
		return
	}
	if err := clipboard.WriteText(text); err != nil {
		var cerr *input.ClipboardError
		if !errors.As(err, &cerr) {
			err = &input.ClipboardError{Op: "write", Err: err}
		}
		b.reportError(err)
	}
}

func (b *backend) Translator() input.Translator {
	return b.translator
}

func (b *backend) Painter() painter.Painter {
	return b.painter
}

// EnableStats enables frame timing output to the log.
func (b *backend) EnableStats() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statsEnabled = true
}

// DisableStats disables frame timing output.
func (b *backend) DisableStats() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statsEnabled = false
}

func (b *backend) ClearInitError() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initErr = nil
}

func (b *backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.painter.Release()
}
