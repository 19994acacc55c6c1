package atlas

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-ui/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Backing is one GPU-resident texture owned by the atlas: partial uploads,
// the bind group the painter binds for draws, and release of GPU resources.
type Backing interface {
	// Write uploads pixels into the sub-region at (x, y) with size (w, h).
	// The region is validated by the atlas before this is called.
	//
	// Parameters:
	//   - x, y: the destination origin in pixels
	//   - w, h: the region size in pixels
	//   - pixels: RGBA data, len = w*h*4
	//
	// Returns:
	//   - error: an error if the device rejects the upload
	Write(x, y, w, h uint32, pixels []byte) error

	// Binding returns the bind group (texture view + sampler) for this texture.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group to set on the render pass
	Binding() *wgpu.BindGroup

	// Release frees the GPU resources behind this texture.
	Release()
}

// Factory creates texture backings. The painter supplies a wgpu-backed
// factory; tests supply a recording fake.
type Factory interface {
	// Create allocates a texture of the given size and uploads the initial pixels.
	//
	// Parameters:
	//   - width, height: the texture size in pixels
	//   - pixels: RGBA data, len = width*height*4
	//
	// Returns:
	//   - Backing: the created texture backing
	//   - error: an error if the device rejects the allocation
	Create(width, height uint32, pixels []byte) (Backing, error)
}

// entry is one arena slot: the backing plus its dimensions for bounds checks.
type entry struct {
	backing Backing
	width   uint32
	height  uint32
}

// atlas is the implementation of the Atlas interface.
// Entries live until explicitly freed; the atlas never evicts under memory
// pressure on its own.
type atlas struct {
	mu *sync.Mutex

	factory Factory
	entries map[common.TextureID]*entry

	quiet bool
}

// Atlas maps GUI-library texture ids to GPU textures. Deltas are applied
// before rendering the frame that references them; slots are reused only
// after an explicit free.
type Atlas interface {
	// ApplyDelta applies one texture delta: whole-image create/replace,
	// positioned partial update, or free. A malformed delta (unknown id,
	// region out of bounds, short pixel data) fails with a *TextureError and
	// leaves the atlas unchanged — the caller skips it and keeps the frame.
	//
	// Parameters:
	//   - delta: the delta to apply
	//
	// Returns:
	//   - error: *TextureError for contract violations, or the factory's error
	ApplyDelta(delta common.TextureDelta) error

	// Resolve returns the bind group for a texture id.
	//
	// Parameters:
	//   - id: the texture id to resolve
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group for the texture
	//   - error: *MissingTextureError if the id was never created or was freed
	Resolve(id common.TextureID) (*wgpu.BindGroup, error)

	// Len returns the number of live texture entries.
	//
	// Returns:
	//   - int: the live entry count
	Len() int

	// Release frees every texture in the atlas. The atlas remains usable;
	// subsequent creates repopulate it.
	Release()
}

var _ Atlas = &atlas{}

// NewAtlas creates an Atlas backed by the given factory.
//
// Parameters:
//   - factory: the texture backing factory (must not be nil)
//   - options: functional options to configure the atlas
//
// Returns:
//   - Atlas: the configured atlas
func NewAtlas(factory Factory, options ...AtlasBuilderOption) Atlas {
	if factory == nil {
		panic("atlas: factory must not be nil")
	}
	a := &atlas{
		mu:      &sync.Mutex{},
		factory: factory,
		entries: make(map[common.TextureID]*entry),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

func (a *atlas) ApplyDelta(delta common.TextureDelta) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if delta.Free {
		return a.free(delta.Id)
	}

	img := delta.Image
	if wantLen := int(img.Width) * int(img.Height) * 4; img.Width == 0 || img.Height == 0 || len(img.Pixels) < wantLen {
		return a.violation(delta.Id, "pixel data does not match image dimensions")
	}

	if delta.IsWhole() {
		return a.create(delta.Id, img)
	}
	return a.update(delta.Id, *delta.Pos, img)
}

// create allocates a new texture for an unseen id, or replaces the texture
// wholesale when the id already exists.
func (a *atlas) create(id common.TextureID, img common.TextureImage) error {
	backing, err := a.factory.Create(img.Width, img.Height, img.Pixels)
	if err != nil {
		return err
	}
	if old, ok := a.entries[id]; ok {
		old.backing.Release()
	}
	a.entries[id] = &entry{backing: backing, width: img.Width, height: img.Height}
	return nil
}

// update applies a partial upload; the region must fit the existing bounds.
func (a *atlas) update(id common.TextureID, pos [2]uint32, img common.TextureImage) error {
	e, ok := a.entries[id]
	if !ok {
		return a.violation(id, "partial update for a texture that was never created")
	}
	// Compared in uint64 so a huge origin cannot wrap past the bounds check.
	if uint64(pos[0])+uint64(img.Width) > uint64(e.width) || uint64(pos[1])+uint64(img.Height) > uint64(e.height) {
		return a.violation(id, "partial update region exceeds texture bounds")
	}
	return e.backing.Write(pos[0], pos[1], img.Width, img.Height, img.Pixels)
}

func (a *atlas) free(id common.TextureID) error {
	e, ok := a.entries[id]
	if !ok {
		return a.violation(id, "free for a texture that was never created")
	}
	e.backing.Release()
	delete(a.entries, id)
	return nil
}

// violation reports a contract breach by the upstream layout engine. Logged
// unless quiet; never fatal to the frame.
func (a *atlas) violation(id common.TextureID, reason string) error {
	if !a.quiet {
		log.Printf("atlas: texture %d: %s", id, reason)
	}
	return &TextureError{Id: id, Reason: reason}
}

func (a *atlas) Resolve(id common.TextureID) (*wgpu.BindGroup, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	e, ok := a.entries[id]
	if !ok {
		return nil, &MissingTextureError{Id: id}
	}
	return e.backing.Binding(), nil
}

func (a *atlas) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.entries)
}

func (a *atlas) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, e := range a.entries {
		e.backing.Release()
		delete(a.entries, id)
	}
}
