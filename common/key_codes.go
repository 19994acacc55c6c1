package common

// Key is a virtual key code for cross-platform input handling.
// Values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
type Key int

const (
	KeySpace     Key = 32  // Spacebar (ASCII)
	KeyEnter     Key = 257 // Enter key (GLFW)
	KeyTab       Key = 258 // Tab key (GLFW)
	KeyBackspace Key = 259 // Backspace key (GLFW)
	KeyInsert    Key = 260 // Insert key (GLFW)
	KeyDelete    Key = 261 // Delete key (GLFW)
	KeyRight     Key = 262 // Right arrow (GLFW)
	KeyLeft      Key = 263 // Left arrow (GLFW)
	KeyDown      Key = 264 // Down arrow (GLFW)
	KeyUp        Key = 265 // Up arrow (GLFW)
	KeyPageUp    Key = 266 // Page Up (GLFW)
	KeyPageDown  Key = 267 // Page Down (GLFW)
	KeyHome      Key = 268 // Home key (GLFW)
	KeyEnd       Key = 269 // End key (GLFW)
	KeyEsc       Key = 256 // Escape key (GLFW)

	KeyA Key = 65 // A key (ASCII)
	KeyC Key = 67 // C key (ASCII)
	KeyV Key = 86 // V key (ASCII)
	KeyX Key = 88 // X key (ASCII)
	KeyZ Key = 90 // Z key (ASCII)

	Key0 Key = 48 // 0 key (ASCII)
	Key9 Key = 57 // 9 key (ASCII)
)

// Additional non-printable keys
const (
	KeyLeftShift  Key = 340 // Left Shift (GLFW)
	KeyLeftCtrl   Key = 341 // Left Control (GLFW)
	KeyLeftAlt    Key = 342 // Left Alt (GLFW)
	KeyLeftSuper  Key = 343 // Left Super/Cmd (GLFW)
	KeyRightShift Key = 344 // Right Shift (GLFW)
	KeyRightCtrl  Key = 345 // Right Control (GLFW)
	KeyRightAlt   Key = 346 // Right Alt (GLFW)
	KeyRightSuper Key = 347 // Right Super/Cmd (GLFW)
)

// Modifiers is a bitset of held modifier keys, maintained by the input
// translator across messages and sampled once per frame.
type Modifiers uint8

const (
	// ModShift is set while either Shift key is held.
	ModShift Modifiers = 1 << iota
	// ModCtrl is set while either Control key is held.
	ModCtrl
	// ModAlt is set while either Alt key is held.
	ModAlt
	// ModSuper is set while either Super/Cmd key is held.
	ModSuper
)

// Has reports whether all modifier bits in m are set.
//
// Parameters:
//   - m: the modifier bits to test
//
// Returns:
//   - bool: true when every bit of m is held
func (mods Modifiers) Has(m Modifiers) bool {
	return mods&m == m
}
