package painter

import (
	"encoding/binary"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/atlas"
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTarget is the externally owned surface view the painter draws into
// for one frame. The caller owns the swap chain and presentation; the painter
// only consumes the view.
type RenderTarget struct {
	// View is the render target view for this frame.
	View *wgpu.TextureView
	// Width and Height are the target size in pixels.
	Width, Height uint32
	// PixelsPerPoint is the UI scale factor; 0 is treated as 1.
	PixelsPerPoint float32
}

// PipelineShader carries one compiled shader stage into pipeline creation.
type PipelineShader struct {
	// Label is the shader module label.
	Label string
	// WGSL is the shader source for device module creation.
	WGSL string
	// EntryPoint is the stage entry function.
	EntryPoint string
}

// renderPass is the subset of wgpu.RenderPassEncoder the painter drives.
// *wgpu.RenderPassEncoder satisfies it; tests substitute a recorder.
type renderPass interface {
	SetPipeline(pipeline *wgpu.RenderPipeline)
	SetBindGroup(groupIndex uint32, group *wgpu.BindGroup, dynamicOffsets []uint32)
	SetViewport(x, y, width, height, minDepth, maxDepth float32)
	SetScissorRect(x, y, width, height uint32)
	SetVertexBuffer(slot uint32, buffer *wgpu.Buffer, offset, size uint64)
	SetIndexBuffer(buffer *wgpu.Buffer, format wgpu.IndexFormat, offset, size uint64)
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, baseVertex int32, firstInstance uint32)
	End() error
}

// PainterBackend is the device-facing half of the painter. The wgpu
// implementation is created by NewPainter; the split keeps the frame logic
// independent of a live device.
type PainterBackend interface {
	// CreateBuffer allocates a GPU buffer.
	//
	// Parameters:
	//   - label: the buffer label
	//   - size: the buffer size in bytes
	//   - usage: the buffer usage flags
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: an error if the device rejects the allocation
	CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error)

	// WriteBuffer uploads data into a buffer at the given offset.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: the destination byte offset
	//   - data: the bytes to upload
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte)

	// CreateSampler creates a sampler from a descriptor.
	//
	// Parameters:
	//   - desc: the sampler descriptor
	//
	// Returns:
	//   - *wgpu.Sampler: the created sampler
	//   - error: an error if creation fails
	CreateSampler(desc SamplerDesc) (*wgpu.Sampler, error)

	// CreateUniformBindGroup creates the group-0 bind group for the per-frame
	// uniform buffer.
	//
	// Parameters:
	//   - buf: the uniform buffer
	//   - size: the bound size in bytes
	//
	// Returns:
	//   - *wgpu.BindGroup: the created bind group
	//   - error: an error if creation fails
	CreateUniformBindGroup(buf *wgpu.Buffer, size uint64) (*wgpu.BindGroup, error)

	// CreateGuiPipeline creates the GUI render pipeline for the descriptor
	// from the two shader stages.
	//
	// Parameters:
	//   - desc: the pipeline descriptor
	//   - vertex, fragment: the shader stages
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline
	//   - error: an error if creation fails
	CreateGuiPipeline(desc PipelineDesc, vertex, fragment PipelineShader) (*wgpu.RenderPipeline, error)

	// TextureFactory returns an atlas factory creating textures that sample
	// with the given sampler.
	//
	// Parameters:
	//   - sampler: the sampler shared by all atlas textures
	//
	// Returns:
	//   - atlas.Factory: the texture backing factory
	TextureFactory(sampler *wgpu.Sampler) atlas.Factory

	// BeginFrame creates the command encoder and render pass targeting the
	// given view. When clear is non-nil the pass clears to that color,
	// otherwise the existing target contents are loaded (the GUI draws over
	// the host's scene).
	//
	// Parameters:
	//   - target: the frame's render target
	//   - clear: optional clear color (debug aid)
	//
	// Returns:
	//   - renderPass: the active pass
	//   - error: an error if the encoder or pass cannot be created
	BeginFrame(target RenderTarget, clear *wgpu.Color) (renderPass, error)

	// EndFrame finishes the current encoder and submits it to the queue.
	// Must be called after the pass returned by BeginFrame has ended.
	//
	// Returns:
	//   - error: an error if command buffer creation or submission fails
	EndFrame() error
}

// painter is the implementation of the Painter interface.
type painter struct {
	mu *sync.Mutex

	backend PainterBackend
	pool    *resourcePool
	shaders shader.Manager
	texs    atlas.Atlas

	samplerDesc  SamplerDesc
	pipelineDesc PipelineDesc

	// scratch is reused CPU staging for frame geometry.
	scratch frameGeometry

	packPool    worker.DynamicWorkerPool
	packWorkers int

	uniformBind *wgpu.BindGroup

	debugClear *wgpu.Color
	quiet      bool
}

// Painter renders one frame's draw-command list onto an externally supplied
// render target: it applies texture deltas, uploads geometry into the
// resource pool, and issues scissored indexed draws strictly in paint order.
type Painter interface {
	// Paint renders one frame. Deltas are applied before any draw; commands
	// are drawn in input order; the scissor for every draw is the
	// intersection of the command clip with the target bounds.
	//
	// Device state (pipeline, viewport, scissor, bindings) is owned by this
	// call while it runs and fully rebound on the next call — callers must
	// not assume prior state survives.
	//
	// Parameters:
	//   - target: the frame's render target view and size
	//   - cmds: the frame's draw commands in paint order
	//   - deltas: texture deltas to apply before drawing
	//
	// Returns:
	//   - error: *shader.CompileError, *DeviceError, or *RenderError; nil on
	//     success (malformed deltas and missing textures are skipped, not errors)
	Paint(target RenderTarget, cmds []common.DrawCommand, deltas []common.TextureDelta) error

	// Atlas returns the painter's texture atlas.
	//
	// Returns:
	//   - atlas.Atlas: the atlas instance
	Atlas() atlas.Atlas

	// Shaders returns the painter's shader manager.
	//
	// Returns:
	//   - shader.Manager: the shader manager instance
	Shaders() shader.Manager

	// Release frees all GPU resources owned by the painter: pooled buffers,
	// cached state objects, and atlas textures.
	Release()
}

var _ Painter = &painter{}

// NewPainter creates a Painter rendering through the given externally created
// device and queue. The painter never creates or resizes the swap chain.
//
// Parameters:
//   - device: the wgpu device (must not be nil)
//   - queue: the device queue (must not be nil)
//   - format: the render target texture format
//   - options: functional options to configure the painter
//
// Returns:
//   - Painter: the configured painter
func NewPainter(device *wgpu.Device, queue *wgpu.Queue, format wgpu.TextureFormat, options ...PainterBuilderOption) Painter {
	if device == nil || queue == nil {
		panic("painter: device and queue must not be nil")
	}
	return newPainter(newWGPUPainterBackend(device, queue), format, options...)
}

// newPainter wires a painter onto any backend. Tests use it with a recording
// backend; NewPainter uses it with the wgpu one.
func newPainter(backend PainterBackend, format wgpu.TextureFormat, options ...PainterBuilderOption) Painter {
	p := &painter{
		mu:      &sync.Mutex{},
		backend: backend,
		samplerDesc: SamplerDesc{
			MagFilter:   wgpu.FilterModeLinear,
			MinFilter:   wgpu.FilterModeLinear,
			AddressMode: wgpu.AddressModeClampToEdge,
		},
		pipelineDesc: PipelineDesc{Format: format, BlendEnabled: true},
	}
	for _, opt := range options {
		opt(p)
	}
	p.pool = newResourcePool(backend)
	if p.shaders == nil {
		p.shaders = shader.NewManager(shader.WithQuietDiagnostics(p.quiet))
	}
	if p.packWorkers > 1 {
		// Queue size of 256 leaves headroom over typical GUI command counts.
		p.packPool = worker.NewDynamicWorkerPool(p.packWorkers, 256, 1*time.Second)
	}
	return p
}

func (p *painter) Atlas() atlas.Atlas {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureAtlas(); err != nil && !p.quiet {
		log.Printf("painter: atlas init failed: %v", err)
	}
	return p.texs
}

func (p *painter) Shaders() shader.Manager {
	return p.shaders
}

func (p *painter) Paint(target RenderTarget, cmds []common.DrawCommand, deltas []common.TextureDelta) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if target.PixelsPerPoint <= 0 {
		target.PixelsPerPoint = 1
	}

	if err := p.ensureAtlas(); err != nil {
		return err
	}
	if err := p.applyDeltas(deltas); err != nil {
		return err
	}

	if p.debugClear != nil {
		// Diagnostic mode: clear the target and draw nothing else.
		pass, err := p.backend.BeginFrame(target, p.debugClear)
		if err != nil {
			return &RenderError{Err: err}
		}
		pass.End()
		if err := p.backend.EndFrame(); err != nil {
			return &RenderError{Err: err}
		}
		return nil
	}

	packFrame(cmds, &p.scratch, p.packPool)
	if len(p.scratch.draws) == 0 {
		return nil
	}

	pipeline, err := p.ensurePipeline()
	if err != nil {
		return err
	}

	vertexBuf, indexBuf, err := p.uploadGeometry(target)
	if err != nil {
		return err
	}

	pass, err := p.backend.BeginFrame(target, nil)
	if err != nil {
		return &RenderError{Err: err}
	}

	// Global state is bound once before the first command and never assumed
	// to survive from a previous frame.
	pass.SetViewport(0, 0, float32(target.Width), float32(target.Height), 0, 1)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, p.uniformBind, nil)
	pass.SetVertexBuffer(0, vertexBuf, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(indexBuf, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)

	for i := range p.scratch.draws {
		d := &p.scratch.draws[i]

		scissor, ok := d.clip.Scissor(target.PixelsPerPoint, target.Width, target.Height)
		if !ok {
			// Fully clipped: zero draw calls for this command.
			continue
		}

		binding, err := p.texs.Resolve(d.texture)
		if err != nil {
			// Stale or unknown id — skip this command, keep the frame.
			if !p.quiet {
				log.Printf("painter: skipping draw: %v", err)
			}
			continue
		}

		pass.SetScissorRect(scissor.X, scissor.Y, scissor.Width, scissor.Height)
		pass.SetBindGroup(1, binding, nil)
		pass.DrawIndexed(d.indexCount, 1, d.firstIndex, d.baseVertex, 0)
	}

	pass.End()
	if err := p.backend.EndFrame(); err != nil {
		return &RenderError{Err: err}
	}
	return nil
}

// ensureAtlas lazily creates the sampler and atlas on first use.
func (p *painter) ensureAtlas() error {
	if p.texs != nil {
		return nil
	}
	sampler, err := p.pool.sampler(p.samplerDesc)
	if err != nil {
		return err
	}
	var opts []atlas.AtlasBuilderOption
	if p.quiet {
		opts = append(opts, atlas.WithQuietDiagnostics(true))
	}
	p.texs = atlas.NewAtlas(p.backend.TextureFactory(sampler), opts...)
	return nil
}

// applyDeltas applies every delta before drawing. Malformed deltas are
// already logged by the atlas and skipped here; device failures drop the frame.
func (p *painter) applyDeltas(deltas []common.TextureDelta) error {
	for i := range deltas {
		if err := p.texs.ApplyDelta(deltas[i]); err != nil {
			var te *atlas.TextureError
			if errors.As(err, &te) {
				continue
			}
			return err
		}
	}
	return nil
}

// ensurePipeline compiles the built-in GUI shaders (cached by the manager)
// and fetches or creates the pipeline for the current descriptor.
func (p *painter) ensurePipeline() (*wgpu.RenderPipeline, error) {
	vs, err := p.shaders.GetOrCompile(shader.Source{
		Key:   "gui_vertex",
		WGSL:  shader.GuiVertexWGSL,
		Stage: shader.StageVertex,
	})
	if err != nil {
		return nil, err
	}
	fs, err := p.shaders.GetOrCompile(shader.Source{
		Key:   "gui_fragment",
		WGSL:  shader.GuiFragmentWGSL,
		Stage: shader.StageFragment,
	})
	if err != nil {
		return nil, err
	}
	return p.pool.pipeline(p.pipelineDesc,
		PipelineShader{Label: vs.Key, WGSL: shader.GuiVertexWGSL, EntryPoint: vs.EntryPoint},
		PipelineShader{Label: fs.Key, WGSL: shader.GuiFragmentWGSL, EntryPoint: fs.EntryPoint},
	)
}

// uniformSize is the byte size of the per-frame uniform block
// (vec2 screen size + vec2 padding).
const uniformSize = 16

// uploadGeometry sizes the pooled buffers for this frame's packed geometry,
// uploads it, and writes the per-frame uniform holding the screen size in
// points for the vertex shader's screen-to-clip transform.
func (p *painter) uploadGeometry(target RenderTarget) (vertexBuf, indexBuf *wgpu.Buffer, err error) {
	vertexBuf, err = p.pool.ensureCapacity(BufferVertex, uint64(len(p.scratch.vertexBytes)))
	if err != nil {
		return nil, nil, err
	}
	indexBuf, err = p.pool.ensureCapacity(BufferIndex, uint64(len(p.scratch.indexBytes)))
	if err != nil {
		return nil, nil, err
	}

	hadUniform := p.pool.capacity(BufferUniform) > 0
	uniformBuf, err := p.pool.ensureCapacity(BufferUniform, uniformSize)
	if err != nil {
		return nil, nil, err
	}
	if !hadUniform || p.uniformBind == nil {
		p.uniformBind, err = p.backend.CreateUniformBindGroup(uniformBuf, uniformSize)
		if err != nil {
			return nil, nil, &DeviceError{Op: "uniform bind group creation", Err: err}
		}
	}

	p.backend.WriteBuffer(vertexBuf, 0, p.scratch.vertexBytes)
	p.backend.WriteBuffer(indexBuf, 0, p.scratch.indexBytes)

	var uniform [uniformSize]byte
	binary.LittleEndian.PutUint32(uniform[0:], math.Float32bits(float32(target.Width)/target.PixelsPerPoint))
	binary.LittleEndian.PutUint32(uniform[4:], math.Float32bits(float32(target.Height)/target.PixelsPerPoint))
	p.backend.WriteBuffer(uniformBuf, 0, uniform[:])

	return vertexBuf, indexBuf, nil
}

func (p *painter) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.texs != nil {
		p.texs.Release()
	}
	if p.uniformBind != nil {
		p.uniformBind.Release()
		p.uniformBind = nil
	}
	p.pool.release()
}
