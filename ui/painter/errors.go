package painter

import "fmt"

// DeviceError reports a GPU allocation or upload rejected by the device.
// Fatal for the current frame only: the frame is dropped, not partially
// drawn, and pool/atlas state stays valid for a retry next frame.
type DeviceError struct {
	// Op names the device operation that failed.
	Op string
	// Err is the underlying device error.
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("painter: device rejected %s: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}

// RenderError reports a failure that invalidates the whole frame during draw
// submission. Surfaced once per frame; remaining commands are abandoned so a
// torn frame is never reported as success.
type RenderError struct {
	// Err is the underlying failure.
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("painter: frame abandoned: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
