package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/ui"
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
	"github.com/cogentcore/webgpu/wgpu"
)

// Interceptor examines one window message before host handling. Returning
// true consumes the message; no later interceptor or host callback sees it.
type Interceptor func(msg input.Message) bool

// Window provides platform windowing with GUI message interception. It is
// host-side glue: the GUI core works with any message source and never
// requires this package.
type Window interface {
	// RegisterInterceptor adds a message interceptor. Every window message is
	// offered to interceptors in registration order; the first to consume it
	// stops propagation to later interceptors and host callbacks.
	//
	// Parameters:
	//   - fn: the interceptor function
	RegisterInterceptor(fn Interceptor)

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is
	// resized. Resize messages are never consumed by interceptors, so this
	// always fires.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating
	// a WebGPU surface, created by the wgpuglfw bridge from the underlying
	// GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Clipboard returns the system clipboard for this window.
	//
	// Returns:
	//   - input.Clipboard: the glfw-backed clipboard
	Clipboard() input.Clipboard

	// SetCursor applies the GUI's requested cursor shape.
	//
	// Parameters:
	//   - icon: the cursor shape to show
	SetCursor(icon ui.CursorIcon)

	// ContentScale returns the window's UI scale factor (pixels per point).
	//
	// Returns:
	//   - float32: the scale factor
	ContentScale() float32

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()

	// Width returns the current framebuffer width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current framebuffer height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int
}

// hostWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, interceptors, and host callbacks.
type hostWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// width is the current framebuffer width in pixels.
	width int

	// height is the current framebuffer height in pixels.
	height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// interceptors see every message before host callbacks, in order.
	interceptors []Interceptor

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the framebuffer is resized.
	onResize func(width, height int)
}

var _ Window = &hostWindow{}

// NewWindow creates a new Window with the specified options.
// Applies each option in order; unset values fall back to defaults.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (message loop not yet running)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &hostWindow{}
	for _, opt := range options {
		opt(w)
	}
	w.title = common.Coalesce(w.title, "oxy-ui")
	w.width = common.Coalesce(w.width, 1280)
	w.height = common.Coalesce(w.height, 720)
	if err := newPlatformWindow(w); err != nil {
		panic(fmt.Sprintf("failed to create platform window: %v", err))
	}
	return w
}

func (w *hostWindow) RegisterInterceptor(fn Interceptor) {
	if fn != nil {
		w.interceptors = append(w.interceptors, fn)
	}
}

// dispatch offers a message to the interceptors in registration order.
//
// Returns:
//   - bool: true when an interceptor consumed the message
func (w *hostWindow) dispatch(msg input.Message) bool {
	for _, fn := range w.interceptors {
		if fn(msg) {
			return true
		}
	}
	return false
}

func (w *hostWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *hostWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *hostWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *hostWindow) Clipboard() input.Clipboard {
	return platformClipboard(w)
}

func (w *hostWindow) SetCursor(icon ui.CursorIcon) {
	platformSetCursor(w, icon)
}

func (w *hostWindow) ContentScale() float32 {
	return platformContentScale(w)
}

func (w *hostWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *hostWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *hostWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *hostWindow) Width() int {
	return w.width
}

func (w *hostWindow) Height() int {
	return w.height
}
