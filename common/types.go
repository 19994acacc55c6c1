// package common contains common types that are used throughout this library. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"encoding/binary"
	"math"
)

// TextureID is the opaque identifier the GUI library assigns to a texture it manages.
// The atlas maps these ids to GPU textures; ids are stable until explicitly freed.
type TextureID uint64

// VertexStride is the byte size of one packed Vertex on the GPU:
// 2 float32 position + 2 float32 UV + 4 byte RGBA color.
const VertexStride = 20

// IndexStride is the byte size of one packed index (uint32).
const IndexStride = 4

// Vertex is a single GUI vertex as produced by the layout engine.
// It is immutable once produced; the painter only reads it.
type Vertex struct {
	// Pos is the vertex position in points, origin top-left.
	Pos [2]float32
	// UV is the texture coordinate in the [0, 1] range.
	UV [2]float32
	// Color is the packed sRGB RGBA vertex color, 1 byte per channel.
	Color [4]uint8
}

// Mesh is a batch of vertices and indices referencing a single texture.
type Mesh struct {
	// Vertices are the mesh vertices in layout-engine order.
	Vertices []Vertex
	// Indices index into Vertices, three per triangle.
	Indices []uint32
	// Texture identifies the texture sampled by this mesh.
	Texture TextureID
}

// DrawCommand is one clipped mesh in the GUI library's paint order.
// Commands are produced fresh every frame, owned by that frame's render
// pass, and must be drawn strictly in input order — the order encodes
// back-to-front occlusion for overlapping clipped regions.
type DrawCommand struct {
	// Clip is the clip rectangle in points; pixels outside it are not written.
	Clip Rect
	// Mesh is the geometry drawn under the clip rectangle.
	Mesh Mesh
}

// TextureImage holds RGBA pixel data pending GPU upload, 4 bytes per pixel.
type TextureImage struct {
	// Width is the image width in pixels.
	Width uint32
	// Height is the image height in pixels.
	Height uint32
	// Pixels is the RGBA pixel data, len = Width*Height*4.
	Pixels []byte
}

// TextureDelta is an incremental update to a GUI-managed texture:
// a whole-image create, a positioned partial update, or an explicit free.
type TextureDelta struct {
	// Id identifies the target texture.
	Id TextureID
	// Free requests release of the texture; Pos and Image are ignored when set.
	Free bool
	// Pos is the top-left destination of a partial update in pixels.
	// When nil the delta is a whole-image create/replace.
	Pos *[2]uint32
	// Image is the pixel data to upload. Unused when Free is set.
	Image TextureImage
}

// IsWhole reports whether the delta replaces the whole texture rather than a sub-region.
//
// Returns:
//   - bool: true when the delta is a whole-image create/replace
func (d TextureDelta) IsWhole() bool {
	return d.Pos == nil
}

// PackVerticesInto packs vertices into dst as little-endian interleaved bytes
// matching VertexStride. dst must have room for len(verts)*VertexStride bytes
// starting at offset.
//
// Parameters:
//   - dst: the destination byte slice
//   - offset: the byte offset into dst to start writing at
//   - verts: the vertices to pack
func PackVerticesInto(dst []byte, offset int, verts []Vertex) {
	o := offset
	for i := range verts {
		v := &verts[i]
		binary.LittleEndian.PutUint32(dst[o:], math.Float32bits(v.Pos[0]))
		binary.LittleEndian.PutUint32(dst[o+4:], math.Float32bits(v.Pos[1]))
		binary.LittleEndian.PutUint32(dst[o+8:], math.Float32bits(v.UV[0]))
		binary.LittleEndian.PutUint32(dst[o+12:], math.Float32bits(v.UV[1]))
		copy(dst[o+16:o+20], v.Color[:])
		o += VertexStride
	}
}

// PackIndicesInto packs indices into dst as little-endian uint32 bytes.
// dst must have room for len(indices)*IndexStride bytes starting at offset.
//
// Parameters:
//   - dst: the destination byte slice
//   - offset: the byte offset into dst to start writing at
//   - indices: the indices to pack
func PackIndicesInto(dst []byte, offset int, indices []uint32) {
	o := offset
	for _, idx := range indices {
		binary.LittleEndian.PutUint32(dst[o:], idx)
		o += IndexStride
	}
}
