package painter

import (
	"sync"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-ui/common"
)

// frameDraw is one draw call's worth of pre-resolved offsets into the frame's
// packed vertex/index data, in paint order.
type frameDraw struct {
	texture    common.TextureID
	clip       common.Rect
	indexCount uint32
	firstIndex uint32
	baseVertex int32
}

// frameGeometry is the CPU staging result for one frame: interleaved vertex
// bytes, index bytes, and the ordered draw list referencing them.
type frameGeometry struct {
	vertexBytes []byte
	indexBytes  []byte
	draws       []frameDraw
}

// packFrame interleaves every command's vertices and indices into the scratch
// buffers at precomputed offsets. Offsets are laid out serially so the draw
// order is fixed before packing; the byte-copy work per command is
// independent and farmed out to the pack pool when one is configured.
// Scratch slices are reused across frames and only grow.
func packFrame(cmds []common.DrawCommand, scratch *frameGeometry, pool worker.DynamicWorkerPool) {
	totalVerts, totalIdx := 0, 0
	for i := range cmds {
		totalVerts += len(cmds[i].Mesh.Vertices)
		totalIdx += len(cmds[i].Mesh.Indices)
	}

	vertexLen := totalVerts * common.VertexStride
	indexLen := totalIdx * common.IndexStride
	if cap(scratch.vertexBytes) < vertexLen {
		scratch.vertexBytes = make([]byte, vertexLen)
	}
	if cap(scratch.indexBytes) < indexLen {
		scratch.indexBytes = make([]byte, indexLen)
	}
	scratch.vertexBytes = scratch.vertexBytes[:vertexLen]
	scratch.indexBytes = scratch.indexBytes[:indexLen]
	scratch.draws = scratch.draws[:0]

	type span struct {
		cmd       int
		vertexOff int
		indexOff  int
	}
	spans := make([]span, 0, len(cmds))

	vertexOff, indexOff := 0, 0
	baseVertex, firstIndex := int32(0), uint32(0)
	for i := range cmds {
		mesh := &cmds[i].Mesh
		if len(mesh.Indices) == 0 {
			continue
		}
		spans = append(spans, span{cmd: i, vertexOff: vertexOff, indexOff: indexOff})
		scratch.draws = append(scratch.draws, frameDraw{
			texture:    mesh.Texture,
			clip:       cmds[i].Clip,
			indexCount: uint32(len(mesh.Indices)),
			firstIndex: firstIndex,
			baseVertex: baseVertex,
		})
		vertexOff += len(mesh.Vertices) * common.VertexStride
		indexOff += len(mesh.Indices) * common.IndexStride
		baseVertex += int32(len(mesh.Vertices))
		firstIndex += uint32(len(mesh.Indices))
	}

	// Below a handful of commands the pool's submit overhead outweighs the copy.
	if pool == nil || len(spans) < 4 {
		for _, s := range spans {
			mesh := &cmds[s.cmd].Mesh
			common.PackVerticesInto(scratch.vertexBytes, s.vertexOff, mesh.Vertices)
			common.PackIndicesInto(scratch.indexBytes, s.indexOff, mesh.Indices)
		}
		return
	}

	// Per-frame barrier via WaitGroup; the pool's workers persist across
	// frames so there is no goroutine spawn overhead here.
	var wg sync.WaitGroup
	for taskID, s := range spans {
		wg.Add(1)
		sCap := s
		pool.SubmitTask(worker.Task{
			ID: taskID,
			Do: func() (any, error) {
				defer wg.Done()
				mesh := &cmds[sCap.cmd].Mesh
				common.PackVerticesInto(scratch.vertexBytes, sCap.vertexOff, mesh.Vertices)
				common.PackIndicesInto(scratch.indexBytes, sCap.indexOff, mesh.Indices)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
