package common

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestPackVerticesInto(t *testing.T) {
	verts := []Vertex{
		{Pos: [2]float32{1, 2}, UV: [2]float32{0.5, 0.25}, Color: [4]uint8{10, 20, 30, 40}},
		{Pos: [2]float32{-3, 4}, UV: [2]float32{0, 1}, Color: [4]uint8{255, 0, 255, 128}},
	}
	dst := make([]byte, len(verts)*VertexStride)
	PackVerticesInto(dst, 0, verts)

	for i, v := range verts {
		o := i * VertexStride
		if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[o:])); got != v.Pos[0] {
			t.Errorf("vertex %d pos x = %v, want %v", i, got, v.Pos[0])
		}
		if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[o+4:])); got != v.Pos[1] {
			t.Errorf("vertex %d pos y = %v, want %v", i, got, v.Pos[1])
		}
		if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[o+8:])); got != v.UV[0] {
			t.Errorf("vertex %d uv x = %v, want %v", i, got, v.UV[0])
		}
		if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[o+12:])); got != v.UV[1] {
			t.Errorf("vertex %d uv y = %v, want %v", i, got, v.UV[1])
		}
		for c := 0; c < 4; c++ {
			if dst[o+16+c] != v.Color[c] {
				t.Errorf("vertex %d color[%d] = %d, want %d", i, c, dst[o+16+c], v.Color[c])
			}
		}
	}
}

func TestPackVerticesIntoRespectsOffset(t *testing.T) {
	verts := []Vertex{{Pos: [2]float32{7, 8}}}
	dst := make([]byte, 2*VertexStride)
	PackVerticesInto(dst, VertexStride, verts)

	for i := 0; i < VertexStride; i++ {
		if dst[i] != 0 {
			t.Fatalf("byte %d before offset was written", i)
		}
	}
	if got := math.Float32frombits(binary.LittleEndian.Uint32(dst[VertexStride:])); got != 7 {
		t.Fatalf("pos x at offset = %v, want 7", got)
	}
}

func TestPackIndicesInto(t *testing.T) {
	indices := []uint32{0, 1, 2, 0xDEADBEEF}
	dst := make([]byte, len(indices)*IndexStride)
	PackIndicesInto(dst, 0, indices)

	for i, idx := range indices {
		if got := binary.LittleEndian.Uint32(dst[i*IndexStride:]); got != idx {
			t.Errorf("index %d = %#x, want %#x", i, got, idx)
		}
	}
}

func TestTextureDeltaIsWhole(t *testing.T) {
	if !(TextureDelta{}).IsWhole() {
		t.Error("nil Pos should be whole")
	}
	pos := [2]uint32{1, 2}
	if (TextureDelta{Pos: &pos}).IsWhole() {
		t.Error("set Pos should not be whole")
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[uint64]uint64{
		0:    1,
		1:    1,
		2:    2,
		3:    4,
		4:    4,
		5:    8,
		4096: 4096,
		4097: 8192,
	}
	for in, want := range cases {
		if got := NextPow2(in); got != want {
			t.Errorf("NextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 3); got != 7 {
		t.Errorf("Coalesce ints = %d, want 7", got)
	}
	if got := Coalesce("", "fallback"); got != "fallback" {
		t.Errorf("Coalesce strings = %q, want fallback", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce all-zero = %d, want 0", got)
	}
}
