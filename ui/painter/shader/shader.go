package shader

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"github.com/gogpu/naga"
)

// Stage identifies which pipeline stage a shader targets.
type Stage int

const (
	// StageVertex is the vertex shader stage.
	StageVertex Stage = iota

	// StageFragment is the fragment shader stage.
	StageFragment
)

// String returns the lower-case stage name used in diagnostics and cache keys.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Source describes one WGSL shader to compile: the source text, its stage,
// entry point, and any compile flags. The cache key is derived from all of
// these, so two Sources differing in any field compile independently.
type Source struct {
	// Key is a human-readable label used for module labels and diagnostics.
	Key string
	// WGSL is the shader source text.
	WGSL string
	// EntryPoint is the entry function name. When empty it is parsed from the
	// source's stage attribute.
	EntryPoint string
	// Stage is the pipeline stage this shader targets.
	Stage Stage
	// Flags are free-form compile flags folded into the cache key.
	Flags string
}

// Compiled is the result of a successful compilation: the cache key hash and
// the SPIR-V bytecode blob. The same hash always yields byte-identical SPIRV
// for the session lifetime.
type Compiled struct {
	// Key is the Source key this bytecode was compiled from.
	Key string
	// EntryPoint is the resolved entry function name.
	EntryPoint string
	// Hash is the sha256 cache key over source, entry point, stage, and flags.
	Hash [32]byte
	// SPIRV is the compiled bytecode blob.
	SPIRV []byte
}

// manager is the implementation of the Manager interface.
// The cache is an owned map inside the instance, never a process-wide
// singleton, so multiple backends keep independent caches.
type manager struct {
	mu *sync.Mutex

	cache map[[32]byte]*Compiled

	// compile performs the native WGSL -> SPIR-V compilation. Defaults to
	// naga.Compile; replaceable via WithCompiler.
	compile func(wgsl string) ([]byte, error)

	blobDir        string
	persistBlobs   bool
	forceRecompile bool
	quiet          bool
}

// Manager compiles and caches shader bytecode. Compilation is synchronous and
// happens at most once per distinct source key for the manager's lifetime;
// the single-render-thread model makes this idempotent by construction.
type Manager interface {
	// GetOrCompile returns the cached bytecode for src, loading it from the
	// blob directory or invoking the native compiler on a cache miss.
	// A failed compile never inserts anything into the cache.
	//
	// Parameters:
	//   - src: the shader source to resolve
	//
	// Returns:
	//   - *Compiled: the compiled bytecode, cached for subsequent calls
	//   - error: a *CompileError if the native compiler rejects the source
	GetOrCompile(src Source) (*Compiled, error)

	// Len returns the number of cached shaders.
	//
	// Returns:
	//   - int: the cache entry count
	Len() int
}

var _ Manager = &manager{}

// NewManager creates a shader Manager with the provided options applied.
// The manager is GPU-free: it produces bytecode blobs, and the painter turns
// sources into device shader modules itself.
//
// Parameters:
//   - options: functional options to configure the manager
//
// Returns:
//   - Manager: the configured manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		mu:      &sync.Mutex{},
		cache:   make(map[[32]byte]*Compiled),
		compile: naga.Compile,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) GetOrCompile(src Source) (*Compiled, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hash := HashSource(src)
	if c, ok := m.cache[hash]; ok {
		return c, nil
	}

	entry := src.EntryPoint
	if entry == "" {
		entry = parseEntryPoint(src.WGSL, src.Stage)
	}
	if entry == "" {
		return nil, &CompileError{
			Stage:       src.Stage,
			Key:         src.Key,
			Diagnostics: fmt.Sprintf("no @%s entry point found in source", src.Stage),
		}
	}

	if !m.forceRecompile && m.blobDir != "" {
		if spirv, ok := m.loadBlob(hash); ok {
			c := &Compiled{Key: src.Key, EntryPoint: entry, Hash: hash, SPIRV: spirv}
			m.cache[hash] = c
			return c, nil
		}
	}

	spirv, err := m.compile(src.WGSL)
	if err != nil {
		return nil, &CompileError{Stage: src.Stage, Key: src.Key, Diagnostics: err.Error()}
	}

	c := &Compiled{Key: src.Key, EntryPoint: entry, Hash: hash, SPIRV: spirv}
	m.cache[hash] = c

	if m.persistBlobs && m.blobDir != "" {
		if err := m.storeBlob(hash, spirv); err != nil && !m.quiet {
			logf("shader: failed to persist blob for %s: %v", src.Key, err)
		}
	}

	return c, nil
}

func (m *manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cache)
}

// HashSource computes the cache key for a shader source: sha256 over the
// stage, entry point, compile flags, and source text.
//
// Parameters:
//   - src: the source to hash
//
// Returns:
//   - [32]byte: the cache key hash
func HashSource(src Source) [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00%s\x00", src.Stage, src.EntryPoint, src.Flags)
	h.Write([]byte(src.WGSL))
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// parseEntryPoint scans WGSL source for the function carrying the stage
// attribute (@vertex or @fragment) and returns its name, or "" when the
// source has no entry point for that stage.
func parseEntryPoint(source string, stage Stage) string {
	attr := "@" + stage.String()
	idx := strings.Index(source, attr)
	if idx < 0 {
		return ""
	}
	rest := source[idx+len(attr):]
	fnIdx := strings.Index(rest, "fn ")
	if fnIdx < 0 {
		return ""
	}
	rest = rest[fnIdx+len("fn "):]
	end := strings.IndexAny(rest, "( \t\n")
	if end <= 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
