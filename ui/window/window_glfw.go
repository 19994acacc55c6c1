package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/ui"
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *hostWindow
	window  *glfw.Window
	running bool

	cursors map[ui.CursorIcon]*glfw.Cursor
}

// newPlatformWindow creates the GLFW window, wires its input callbacks into
// the interceptor dispatch, and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *hostWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
		cursors: make(map[ui.CursorIcon]*glfw.Cursor),
	}
	w.internalWindow = gw

	// Register GLFW callbacks. Every event becomes an input.Message offered
	// to the interceptors first; only unconsumed messages reach host behavior.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		msg := keyMessage(key, action, mods)
		consumed := w.dispatch(msg)
		if !consumed && key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCharCallback
	win.SetCharCallback(func(_ *glfw.Window, char rune) {
		w.dispatch(input.Message{Kind: input.MsgChar, Rune: char})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		w.dispatch(input.Message{
			Kind: input.MsgScroll,
			// GLFW reports scroll in wheel steps; scale to points per step.
			ScrollX: float32(xoff) * scrollPointsPerStep,
			ScrollY: float32(yoff) * scrollPointsPerStep,
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		var btn input.PointerButton
		switch button {
		case glfw.MouseButtonLeft:
			btn = input.ButtonPrimary
		case glfw.MouseButtonRight:
			btn = input.ButtonSecondary
		case glfw.MouseButtonMiddle:
			btn = input.ButtonMiddle
		default:
			return
		}
		w.dispatch(input.Message{
			Kind:      input.MsgPointerButton,
			Button:    btn,
			Pressed:   action == glfw.Press,
			Modifiers: translateModifiers(mods),
		})
	})

	// Cursor position arrives in window coordinates, which are points on
	// every platform GLFW supports.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		w.dispatch(input.Message{
			Kind: input.MsgPointerMove,
			X:    float32(xpos),
			Y:    float32(ypos),
		})
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFocusCallback
	win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		kind := input.MsgFocusLost
		if focused {
			kind = input.MsgFocusGained
		}
		w.dispatch(input.Message{Kind: kind})
	})

	// Use framebuffer size callback for pixel-accurate resize events.
	// On high-DPI displays (e.g., macOS Retina), framebuffer size differs from window size.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetFramebufferSizeCallback
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		w.dispatch(input.Message{
			Kind:   input.MsgResize,
			Width:  uint32(width),
			Height: uint32(height),
		})
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	fbWidth, fbHeight := win.GetFramebufferSize()
	w.width = fbWidth
	w.height = fbHeight

	return nil
}

// scrollPointsPerStep converts GLFW wheel steps to GUI points.
const scrollPointsPerStep = 50

// keyMessage builds the message for a key event. Ctrl-C/X/V become the
// clipboard messages so the GUI receives copy/cut/paste intent directly.
func keyMessage(key glfw.Key, action glfw.Action, mods glfw.ModifierKey) input.Message {
	modifiers := translateModifiers(mods)

	if action == glfw.Press && modifiers.Has(common.ModCtrl) {
		switch key {
		case glfw.KeyC:
			return input.Message{Kind: input.MsgCopy, Modifiers: modifiers}
		case glfw.KeyX:
			return input.Message{Kind: input.MsgCut, Modifiers: modifiers}
		case glfw.KeyV:
			return input.Message{Kind: input.MsgPaste, Modifiers: modifiers}
		}
	}

	kind := input.MsgKeyUp
	if action == glfw.Press || action == glfw.Repeat {
		kind = input.MsgKeyDown
	}
	return input.Message{
		Kind:      kind,
		Key:       common.Key(key),
		Modifiers: modifiers,
	}
}

// translateModifiers maps GLFW modifier flags onto the common bitset.
func translateModifiers(mods glfw.ModifierKey) common.Modifiers {
	var m common.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= common.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= common.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= common.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= common.ModSuper
	}
	return m
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *hostWindow) *wgpu.SurfaceDescriptor {
	if w.internalWindow == nil {
		return nil
	}
	gw := w.internalWindow.(*glfwWindow)
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformClipboard returns the glfw-backed clipboard, or nil before init.
func platformClipboard(w *hostWindow) input.Clipboard {
	if w.internalWindow == nil {
		return nil
	}
	return &glfwClipboard{}
}

// platformSetCursor applies a standard cursor shape, creating it on first use.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#CreateStandardCursor
func platformSetCursor(w *hostWindow, icon ui.CursorIcon) {
	if w.internalWindow == nil {
		return
	}
	gw := w.internalWindow.(*glfwWindow)

	cursor, ok := gw.cursors[icon]
	if !ok {
		var shape glfw.StandardCursor
		switch icon {
		case ui.CursorText:
			shape = glfw.IBeamCursor
		case ui.CursorPointer:
			shape = glfw.HandCursor
		case ui.CursorCrosshair:
			shape = glfw.CrosshairCursor
		case ui.CursorResizeEW:
			shape = glfw.HResizeCursor
		case ui.CursorResizeNS:
			shape = glfw.VResizeCursor
		default:
			shape = glfw.ArrowCursor
		}
		cursor = glfw.CreateStandardCursor(shape)
		gw.cursors[icon] = cursor
	}
	gw.window.SetCursor(cursor)
}

// platformContentScale returns the window's content scale (pixels per point).
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.GetContentScale
func platformContentScale(w *hostWindow) float32 {
	if w.internalWindow == nil {
		return 1
	}
	gw := w.internalWindow.(*glfwWindow)
	xscale, _ := gw.window.GetContentScale()
	if xscale <= 0 {
		return 1
	}
	return xscale
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the hostWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *hostWindow) bool {
	if w.internalWindow == nil {
		return false
	}
	gw := w.internalWindow.(*glfwWindow)
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
//
// Parameters:
//   - w: the hostWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *hostWindow) error {
	if w.internalWindow == nil {
		return fmt.Errorf("window is not initialized")
	}
	gw := w.internalWindow.(*glfwWindow)
	gw.running = false
	gw.window.SetShouldClose(true)
	for _, c := range gw.cursors {
		c.Destroy()
	}
	gw.window.Destroy()
	glfw.Terminate()
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *hostWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
