package input

import "fmt"

// ClipboardError reports a failed clipboard read or write. Clipboard failures
// never abort the message loop; they are reported and the operation is
// skipped.
type ClipboardError struct {
	// Op is "read" or "write".
	Op string
	// Err is the underlying platform error.
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("clipboard %s failed: %v", e.Op, e.Err)
}

func (e *ClipboardError) Unwrap() error {
	return e.Err
}
