package ui

import (
	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
)

// CursorIcon is the pointer shape the GUI requests for this frame. The host
// decides how (and whether) to apply it.
type CursorIcon int

const (
	// CursorDefault is the platform arrow cursor.
	CursorDefault CursorIcon = iota

	// CursorText is the text-selection beam.
	CursorText

	// CursorPointer is the clickable-link hand.
	CursorPointer

	// CursorCrosshair is the precision crosshair.
	CursorCrosshair

	// CursorResizeEW is the horizontal resize cursor.
	CursorResizeEW

	// CursorResizeNS is the vertical resize cursor.
	CursorResizeNS
)

// FrameInput is everything the GUI driver receives for one frame.
type FrameInput struct {
	// Events is the frame's drained input queue in arrival order.
	Events []input.Event

	// ScreenSize is the target size in points.
	ScreenSize [2]float32

	// PixelsPerPoint is the UI scale factor.
	PixelsPerPoint float32

	// Time is seconds since the backend was created.
	Time float64

	// Modifiers is the modifier state at frame start.
	Modifiers common.Modifiers

	// PointerPos is the pointer position in points at frame start.
	PointerPos [2]float32
}

// PlatformOutput is the GUI's per-frame requests back to the platform.
type PlatformOutput struct {
	// CopiedText, when non-empty, is written to the system clipboard.
	CopiedText string

	// Cursor is the requested pointer shape.
	Cursor CursorIcon

	// WantsInput is true while the GUI wants pointer and keyboard input;
	// it gates message consumption in the translator for the next messages.
	WantsInput bool

	// WantsRepaint is true when the GUI wants another frame soon (running
	// animations); hosts that render on demand can use it to schedule one.
	WantsRepaint bool
}

// FrameOutput is everything the GUI driver produces for one frame.
type FrameOutput struct {
	// Commands is the frame's draw list in paint order.
	Commands []common.DrawCommand

	// Deltas is the frame's texture updates, applied before any draw.
	Deltas []common.TextureDelta

	// Platform carries the GUI's platform requests.
	Platform PlatformOutput
}

// Driver is the upstream immediate-mode GUI library boundary. The backend
// calls RunFrame exactly once per rendered frame on the render thread.
type Driver interface {
	// RunFrame builds one frame of GUI from the given input.
	//
	// Parameters:
	//   - in: the frame's input snapshot
	//
	// Returns:
	//   - FrameOutput: the frame's draw list, texture deltas, and platform output
	//   - error: an error if the GUI failed to build the frame
	RunFrame(in FrameInput) (FrameOutput, error)
}
