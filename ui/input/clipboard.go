package input

// Clipboard abstracts the system clipboard. The glfw-backed implementation
// lives in ui/window; tests substitute an in-memory one.
type Clipboard interface {
	// ReadText returns the current clipboard text.
	//
	// Returns:
	//   - string: the clipboard contents, "" when empty
	//   - error: an error if the clipboard cannot be read
	ReadText() (string, error)

	// WriteText replaces the clipboard contents.
	//
	// Parameters:
	//   - text: the text to store
	//
	// Returns:
	//   - error: *ClipboardError if the clipboard cannot be written
	WriteText(text string) error
}
