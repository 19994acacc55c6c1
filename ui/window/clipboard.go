package window

import (
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwClipboard is the glfw-backed system clipboard. GLFW's clipboard calls
// are process-global, so the value type carries no state.
type glfwClipboard struct{}

var _ input.Clipboard = &glfwClipboard{}

// ReadText returns the current clipboard text. GLFW returns an empty string
// when the clipboard holds no convertible text; that is not an error.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#GetClipboardString
func (c *glfwClipboard) ReadText() (string, error) {
	return glfw.GetClipboardString(), nil
}

// WriteText replaces the clipboard contents.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#SetClipboardString
func (c *glfwClipboard) WriteText(text string) error {
	glfw.SetClipboardString(text)
	return nil
}
