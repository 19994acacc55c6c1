package painter

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-ui/ui/painter/atlas"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuPainterBackendImpl is the wgpu implementation of PainterBackend.
// All methods run on the single rendering thread that owns the device.
type wgpuPainterBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	uniformLayout *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout

	// Frame state between BeginFrame and EndFrame.
	frameEncoder *wgpu.CommandEncoder
}

var _ PainterBackend = &wgpuPainterBackendImpl{}

// newWGPUPainterBackend wraps an externally created device and queue.
func newWGPUPainterBackend(device *wgpu.Device, queue *wgpu.Queue) PainterBackend {
	return &wgpuPainterBackendImpl{
		mu:     &sync.Mutex{},
		device: device,
		queue:  queue,
	}
}

func (b *wgpuPainterBackendImpl) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage,
		MappedAtCreation: false,
	})
}

func (b *wgpuPainterBackendImpl) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(buf, offset, data)
}

func (b *wgpuPainterBackendImpl) CreateSampler(desc SamplerDesc) (*wgpu.Sampler, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "GUI Sampler",
		AddressModeU:  desc.AddressMode,
		AddressModeV:  desc.AddressMode,
		AddressModeW:  desc.AddressMode,
		MagFilter:     desc.MagFilter,
		MinFilter:     desc.MinFilter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32.0,
		MaxAnisotropy: 1,
	})
}

// ensureLayouts lazily creates the two fixed bind group layouts of the GUI
// pipeline: group 0 holds the per-frame uniform, group 1 a texture + sampler.
func (b *wgpuPainterBackendImpl) ensureLayouts() error {
	if b.uniformLayout == nil {
		layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "GUI Uniform Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uniformSize,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create uniform bind group layout: %w", err)
		}
		b.uniformLayout = layout
	}

	if b.textureLayout == nil {
		layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "GUI Texture Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create texture bind group layout: %w", err)
		}
		b.textureLayout = layout
	}

	return nil
}

func (b *wgpuPainterBackendImpl) CreateUniformBindGroup(buf *wgpu.Buffer, size uint64) (*wgpu.BindGroup, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLayouts(); err != nil {
		return nil, err
	}

	return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GUI Uniform Bind Group",
		Layout: b.uniformLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buf,
				Offset:  0,
				Size:    size,
			},
		},
	})
}

func (b *wgpuPainterBackendImpl) CreateGuiPipeline(desc PipelineDesc, vertex, fragment PipelineShader) (*wgpu.RenderPipeline, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLayouts(); err != nil {
		return nil, err
	}

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: vertex.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: vertex.WGSL,
		},
	})
	if err != nil {
		return nil, err
	}
	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: fragment.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: fragment.WGSL,
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "GUI Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.uniformLayout, b.textureLayout},
	})
	if err != nil {
		return nil, err
	}

	var blend *wgpu.BlendState
	if desc.BlendEnabled {
		// Straight-alpha blending over the host's scene; alpha accumulates
		// with One/OneMinusSrcAlpha so the GUI composites correctly onto
		// transparent targets.
		blend = &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		}
	}

	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "GUI Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertex.EntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: 20, // 2 f32 pos + 2 f32 uv + 4 u8 color
					StepMode:    wgpu.VertexStepModeVertex,
					Attributes: []wgpu.VertexAttribute{
						{Format: wgpu.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: wgpu.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
						{Format: wgpu.VertexFormatUnorm8x4, Offset: 16, ShaderLocation: 2},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragment.EntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    desc.Format,
					Blend:     blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (b *wgpuPainterBackendImpl) TextureFactory(sampler *wgpu.Sampler) atlas.Factory {
	return &wgpuTextureFactory{backend: b, sampler: sampler}
}

func (b *wgpuPainterBackendImpl) BeginFrame(target RenderTarget, clear *wgpu.Color) (renderPass, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder != nil {
		return nil, fmt.Errorf("previous frame encoder not yet submitted")
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}

	attachment := wgpu.RenderPassColorAttachment{
		View:    target.View,
		LoadOp:  wgpu.LoadOpLoad, // draw over the host's scene
		StoreOp: wgpu.StoreOpStore,
	}
	if clear != nil {
		attachment.LoadOp = wgpu.LoadOpClear
		attachment.ClearValue = *clear
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label:            "GUI Render Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{attachment},
	})

	b.frameEncoder = encoder
	return pass, nil
}

func (b *wgpuPainterBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return fmt.Errorf("no frame in flight")
	}

	commandBuffer, err := b.frameEncoder.Finish(nil)
	if err != nil {
		b.frameEncoder.Release()
		b.frameEncoder = nil
		return err
	}

	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.frameEncoder.Release()
	b.frameEncoder = nil
	return nil
}

// wgpuTextureFactory creates atlas texture backings on the device.
type wgpuTextureFactory struct {
	backend *wgpuPainterBackendImpl
	sampler *wgpu.Sampler
}

var _ atlas.Factory = &wgpuTextureFactory{}

func (f *wgpuTextureFactory) Create(width, height uint32, pixels []byte) (atlas.Backing, error) {
	b := f.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.ensureLayouts(); err != nil {
		return nil, &DeviceError{Op: "texture layout creation", Err: err}
	}

	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:     "GUI Texture",
		Usage:     wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return nil, &DeviceError{Op: "texture allocation", Err: err}
	}

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, &DeviceError{Op: "texture view creation", Err: err}
	}

	bind, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "GUI Texture Bind Group",
		Layout: b.textureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: f.sampler},
		},
	})
	if err != nil {
		view.Release()
		tex.Release()
		return nil, &DeviceError{Op: "texture bind group creation", Err: err}
	}

	backing := &wgpuTextureBacking{backend: b, tex: tex, view: view, bind: bind}
	backing.write(0, 0, width, height, pixels)
	return backing, nil
}

// wgpuTextureBacking is one GPU texture plus its view and bind group.
type wgpuTextureBacking struct {
	backend *wgpuPainterBackendImpl
	tex     *wgpu.Texture
	view    *wgpu.TextureView
	bind    *wgpu.BindGroup
}

var _ atlas.Backing = &wgpuTextureBacking{}

func (t *wgpuTextureBacking) Write(x, y, w, h uint32, pixels []byte) error {
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()

	t.write(x, y, w, h, pixels)
	return nil
}

// write issues the queue upload; callers hold the backend lock or are inside
// factory creation which already holds it.
func (t *wgpuTextureBacking) write(x, y, w, h uint32, pixels []byte) {
	t.backend.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: x, Y: y},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&wgpu.Extent3D{
			Width:              w,
			Height:             h,
			DepthOrArrayLayers: 1,
		},
	)
}

func (t *wgpuTextureBacking) Binding() *wgpu.BindGroup {
	return t.bind
}

func (t *wgpuTextureBacking) Release() {
	t.bind.Release()
	t.view.Release()
	t.tex.Release()
}
