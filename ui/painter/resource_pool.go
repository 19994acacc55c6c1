package painter

import (
	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferKind names one of the pool's per-frame transient buffers.
type BufferKind int

const (
	// BufferVertex is the interleaved vertex buffer.
	BufferVertex BufferKind = iota

	// BufferIndex is the uint32 index buffer.
	BufferIndex

	// BufferUniform is the per-frame uniform buffer.
	BufferUniform
)

// String returns the buffer kind name used in labels and diagnostics.
func (k BufferKind) String() string {
	switch k {
	case BufferVertex:
		return "vertex"
	case BufferIndex:
		return "index"
	case BufferUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// minBufferCapacity is the smallest allocation the pool makes; small frames
// skip the first few doublings.
const minBufferCapacity = 4096

// SamplerDesc is a comparable sampler descriptor. Structural equality is the
// cache key, so identical samplers are never created twice.
type SamplerDesc struct {
	MagFilter   wgpu.FilterMode
	MinFilter   wgpu.FilterMode
	AddressMode wgpu.AddressMode
}

// PipelineDesc is a comparable render pipeline descriptor. Structural
// equality is the cache key, so identical pipeline state is never recreated.
type PipelineDesc struct {
	// Format is the render target texture format.
	Format wgpu.TextureFormat
	// BlendEnabled enables straight-alpha blending (the GUI default).
	BlendEnabled bool
}

// frameBuffer tracks one transient GPU buffer: its handle, allocated
// capacity, and the logical length filled this frame.
type frameBuffer struct {
	buf      *wgpu.Buffer
	capacity uint64
	length   uint64
}

// resourcePool owns the painter's per-frame transient buffers and its caches
// of immutable state objects (samplers, pipelines). Buffers grow
// monotonically — reallocated when required capacity exceeds current
// capacity, never shrunk, with no contents preserved since every frame
// refills them in full.
type resourcePool struct {
	backend PainterBackend

	buffers map[BufferKind]*frameBuffer

	samplers  map[SamplerDesc]*wgpu.Sampler
	pipelines map[PipelineDesc]*wgpu.RenderPipeline
}

// newResourcePool creates an empty pool allocating through the given backend.
func newResourcePool(backend PainterBackend) *resourcePool {
	return &resourcePool{
		backend: backend,
		buffers: map[BufferKind]*frameBuffer{
			BufferVertex:  {},
			BufferIndex:   {},
			BufferUniform: {},
		},
		samplers:  make(map[SamplerDesc]*wgpu.Sampler),
		pipelines: make(map[PipelineDesc]*wgpu.RenderPipeline),
	}
}

// ensureCapacity grows the named buffer when requiredBytes exceeds its
// capacity, rounding up to the next power of two. Prior contents are not
// preserved. Allocation failure is a *DeviceError: the frame is dropped and
// the pool keeps its previous (valid) buffer state for the next frame.
//
// Parameters:
//   - kind: which transient buffer to size
//   - requiredBytes: the bytes the current frame needs
//
// Returns:
//   - *wgpu.Buffer: the buffer sized to at least requiredBytes
//   - error: *DeviceError if the device rejects the allocation
func (p *resourcePool) ensureCapacity(kind BufferKind, requiredBytes uint64) (*wgpu.Buffer, error) {
	fb := p.buffers[kind]
	if requiredBytes <= fb.capacity {
		fb.length = requiredBytes
		return fb.buf, nil
	}

	capacity := common.NextPow2(requiredBytes)
	if capacity < minBufferCapacity {
		capacity = minBufferCapacity
	}

	var usage wgpu.BufferUsage
	switch kind {
	case BufferVertex:
		usage = wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	case BufferIndex:
		usage = wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	case BufferUniform:
		usage = wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	}

	buf, err := p.backend.CreateBuffer("GUI "+kind.String()+" Buffer", capacity, usage)
	if err != nil {
		return nil, &DeviceError{Op: kind.String() + " buffer allocation", Err: err}
	}

	if fb.buf != nil {
		fb.buf.Release()
	}
	fb.buf = buf
	fb.capacity = capacity
	fb.length = requiredBytes
	return buf, nil
}

// capacity returns the current allocated capacity of a buffer kind.
func (p *resourcePool) capacity(kind BufferKind) uint64 {
	return p.buffers[kind].capacity
}

// sampler returns the cached sampler for desc, creating it on first use.
//
// Parameters:
//   - desc: the sampler descriptor (cache key)
//
// Returns:
//   - *wgpu.Sampler: the cached or newly created sampler
//   - error: *DeviceError if creation fails
func (p *resourcePool) sampler(desc SamplerDesc) (*wgpu.Sampler, error) {
	if s, ok := p.samplers[desc]; ok {
		return s, nil
	}
	s, err := p.backend.CreateSampler(desc)
	if err != nil {
		return nil, &DeviceError{Op: "sampler creation", Err: err}
	}
	p.samplers[desc] = s
	return s, nil
}

// pipeline returns the cached render pipeline for desc, creating it on first
// use from the given compiled shader stages.
//
// Parameters:
//   - desc: the pipeline descriptor (cache key)
//   - vertex, fragment: the shader stages for creation on a cache miss
//
// Returns:
//   - *wgpu.RenderPipeline: the cached or newly created pipeline
//   - error: *DeviceError if creation fails
func (p *resourcePool) pipeline(desc PipelineDesc, vertex, fragment PipelineShader) (*wgpu.RenderPipeline, error) {
	if rp, ok := p.pipelines[desc]; ok {
		return rp, nil
	}
	rp, err := p.backend.CreateGuiPipeline(desc, vertex, fragment)
	if err != nil {
		return nil, &DeviceError{Op: "pipeline creation", Err: err}
	}
	p.pipelines[desc] = rp
	return rp, nil
}

// release frees all pooled buffers and cached state objects. The pool remains
// usable; subsequent frames reallocate on demand.
func (p *resourcePool) release() {
	for _, fb := range p.buffers {
		if fb.buf != nil {
			fb.buf.Release()
			fb.buf = nil
		}
		fb.capacity = 0
		fb.length = 0
	}
	for desc, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, desc)
	}
	for desc, rp := range p.pipelines {
		if rp != nil {
			rp.Release()
		}
		delete(p.pipelines, desc)
	}
}
