package common

// Rect is an axis-aligned rectangle in points, origin top-left.
// Min is inclusive, Max is exclusive.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// NewRect creates a Rect from a top-left position and a size.
//
// Parameters:
//   - x, y: the top-left corner
//   - w, h: the width and height
//
// Returns:
//   - Rect: the resulting rectangle
func NewRect(x, y, w, h float32) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Width returns the rectangle width, which may be negative for an inverted rect.
func (r Rect) Width() float32 {
	return r.MaxX - r.MinX
}

// Height returns the rectangle height, which may be negative for an inverted rect.
func (r Rect) Height() float32 {
	return r.MaxY - r.MinY
}

// IsEmpty reports whether the rectangle has no positive area.
//
// Returns:
//   - bool: true when width or height is <= 0
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Intersect returns the intersection of r and other.
// The result may be empty; callers must check IsEmpty before use.
//
// Parameters:
//   - other: the rectangle to intersect with
//
// Returns:
//   - Rect: the intersection rectangle
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		MinX: max(r.MinX, other.MinX),
		MinY: max(r.MinY, other.MinY),
		MaxX: min(r.MaxX, other.MaxX),
		MaxY: min(r.MaxY, other.MaxY),
	}
	return out
}

// Contains reports whether the point (x, y) lies inside the rectangle.
//
// Parameters:
//   - x, y: the point to test
//
// Returns:
//   - bool: true when the point is inside
func (r Rect) Contains(x, y float32) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// ScissorRect is an integer scissor rectangle in pixels, clamped to a render target.
type ScissorRect struct {
	X, Y          uint32
	Width, Height uint32
}

// Scissor converts the rectangle from points to a pixel scissor clamped to the
// render target bounds. The clip invariant holds by construction: the result
// is the intersection of the scaled rect with [0,w)x[0,h) and never has
// negative area.
//
// Parameters:
//   - scale: pixels per point
//   - w, h: the render target size in pixels
//
// Returns:
//   - ScissorRect: the clamped scissor rectangle
//   - bool: false when the intersection is empty (no pixels would be written)
func (r Rect) Scissor(scale float32, w, h uint32) (ScissorRect, bool) {
	minX := r.MinX * scale
	minY := r.MinY * scale
	maxX := r.MaxX * scale
	maxY := r.MaxY * scale

	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > float32(w) {
		maxX = float32(w)
	}
	if maxY > float32(h) {
		maxY = float32(h)
	}
	if maxX <= minX || maxY <= minY {
		return ScissorRect{}, false
	}

	x := uint32(minX)
	y := uint32(minY)
	width := uint32(maxX+0.5) - x
	height := uint32(maxY+0.5) - y
	// A sub-pixel rect can survive the float check above yet collapse to zero
	// pixels after conversion; it covers nothing, so report it empty.
	if width == 0 || height == 0 {
		return ScissorRect{}, false
	}
	return ScissorRect{X: x, Y: y, Width: width, Height: height}, true
}
