package shader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const testWGSL = `
@vertex
fn vs_main(@location(0) pos: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(pos, 0.0, 1.0);
}
`

// countingCompiler returns a fake compiler producing deterministic bytecode
// and counting invocations.
func countingCompiler(calls *int) func(wgsl string) ([]byte, error) {
	return func(wgsl string) ([]byte, error) {
		*calls++
		out := []byte{0x03, 0x02, 0x23, 0x07}
		return append(out, []byte(wgsl)...), nil
	}
}

func TestGetOrCompileIdempotent(t *testing.T) {
	calls := 0
	m := NewManager(WithCompiler(countingCompiler(&calls)), WithQuietDiagnostics(true))

	src := Source{Key: "test", WGSL: testWGSL, Stage: StageVertex}
	first, err := m.GetOrCompile(src)
	if err != nil {
		t.Fatalf("first compile: %v", err)
	}
	second, err := m.GetOrCompile(src)
	if err != nil {
		t.Fatalf("second compile: %v", err)
	}

	if calls != 1 {
		t.Fatalf("native compiler invoked %d times, want 1", calls)
	}
	if first != second {
		t.Fatal("repeated GetOrCompile should return the same cached entry")
	}
	if m.Len() != 1 {
		t.Fatalf("cache holds %d entries, want 1", m.Len())
	}
}

func TestDistinctSourcesCompileIndependently(t *testing.T) {
	calls := 0
	m := NewManager(WithCompiler(countingCompiler(&calls)), WithQuietDiagnostics(true))

	base := Source{Key: "a", WGSL: testWGSL, Stage: StageVertex}
	flagged := base
	flagged.Flags = "fast-math"

	a, _ := m.GetOrCompile(base)
	b, _ := m.GetOrCompile(flagged)

	if calls != 2 {
		t.Fatalf("native compiler invoked %d times, want 2", calls)
	}
	if a.Hash == b.Hash {
		t.Fatal("differing flags must produce differing cache keys")
	}
}

func TestCompileFailureNeverCached(t *testing.T) {
	fail := true
	calls := 0
	m := NewManager(WithQuietDiagnostics(true), WithCompiler(func(wgsl string) ([]byte, error) {
		calls++
		if fail {
			return nil, fmt.Errorf("syntax error at line 3")
		}
		return []byte{1, 2, 3}, nil
	}))

	src := Source{Key: "broken", WGSL: testWGSL, Stage: StageVertex}
	_, err := m.GetOrCompile(src)
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("want *CompileError, got %v", err)
	}
	if ce.Stage != StageVertex {
		t.Errorf("CompileError stage = %v, want vertex", ce.Stage)
	}
	if m.Len() != 0 {
		t.Fatal("failed compile must not insert into the cache")
	}

	// The same source compiles fine once the failure clears.
	fail = false
	if _, err := m.GetOrCompile(src); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if calls != 2 {
		t.Fatalf("compiler invoked %d times, want 2", calls)
	}
}

func TestEntryPointParsedFromSource(t *testing.T) {
	calls := 0
	m := NewManager(WithCompiler(countingCompiler(&calls)), WithQuietDiagnostics(true))

	c, err := m.GetOrCompile(Source{Key: "parsed", WGSL: testWGSL, Stage: StageVertex})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if c.EntryPoint != "vs_main" {
		t.Fatalf("entry point = %q, want vs_main", c.EntryPoint)
	}

	// A fragment request against vertex-only source has no entry point.
	_, err = m.GetOrCompile(Source{Key: "missing", WGSL: testWGSL, Stage: StageFragment})
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("want *CompileError for missing entry point, got %v", err)
	}
}

func TestBuiltinSourcesParse(t *testing.T) {
	if got := parseEntryPoint(GuiVertexWGSL, StageVertex); got != "vs_main" {
		t.Errorf("vertex entry = %q, want vs_main", got)
	}
	if got := parseEntryPoint(GuiFragmentWGSL, StageFragment); got != "fs_main" {
		t.Errorf("fragment entry = %q, want fs_main", got)
	}
}

func TestBlobPersistAndLoad(t *testing.T) {
	dir := t.TempDir()
	src := Source{Key: "persisted", WGSL: testWGSL, Stage: StageVertex}

	calls := 0
	m1 := NewManager(
		WithCompiler(countingCompiler(&calls)),
		WithBlobDir(dir),
		WithPersistBlobs(true),
		WithQuietDiagnostics(true),
	)
	first, err := m1.GetOrCompile(src)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if calls != 1 {
		t.Fatalf("compiler invoked %d times, want 1", calls)
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) != 1 {
		t.Fatalf("blob dir holds %d files (err %v), want 1", len(entries), err)
	}

	// A fresh manager loads the blob without touching the compiler.
	loads := 0
	m2 := NewManager(
		WithCompiler(countingCompiler(&loads)),
		WithBlobDir(dir),
		WithQuietDiagnostics(true),
	)
	second, err := m2.GetOrCompile(src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loads != 0 {
		t.Fatalf("compiler invoked %d times on blob hit, want 0", loads)
	}
	if string(first.SPIRV) != string(second.SPIRV) {
		t.Fatal("loaded bytecode differs from compiled bytecode")
	}
}

func TestTamperedBlobForcesRecompile(t *testing.T) {
	dir := t.TempDir()
	src := Source{Key: "tampered", WGSL: testWGSL, Stage: StageVertex}

	calls := 0
	m1 := NewManager(
		WithCompiler(countingCompiler(&calls)),
		WithBlobDir(dir),
		WithPersistBlobs(true),
		WithQuietDiagnostics(true),
	)
	if _, err := m1.GetOrCompile(src); err != nil {
		t.Fatalf("compile: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("blob dir holds %d files, want 1", len(entries))
	}
	path := filepath.Join(dir, entries[0].Name())
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	// Flip one payload bit; the checksum must catch it.
	data[len(data)-1] ^= 0x01
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write tampered blob: %v", err)
	}

	loads := 0
	m2 := NewManager(
		WithCompiler(countingCompiler(&loads)),
		WithBlobDir(dir),
		WithQuietDiagnostics(true),
	)
	c, err := m2.GetOrCompile(src)
	if err != nil {
		t.Fatalf("recompile after tamper: %v", err)
	}
	if loads != 1 {
		t.Fatalf("tampered blob must force a recompile, compiler invoked %d times", loads)
	}
	if len(c.SPIRV) == 0 {
		t.Fatal("recompiled bytecode is empty")
	}
}

func TestTruncatedAndWrongMagicBlobs(t *testing.T) {
	dir := t.TempDir()
	src := Source{Key: "mangled", WGSL: testWGSL, Stage: StageVertex}
	hash := HashSource(src)

	m := NewManager(WithBlobDir(dir), WithQuietDiagnostics(true),
		WithCompiler(func(string) ([]byte, error) { return []byte{9}, nil })).(*manager)

	path := m.blobPath(hash)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	for _, contents := range [][]byte{
		{},
		[]byte("OXSB"),
		append([]byte("JUNK"), make([]byte, 100)...),
	} {
		if err := os.WriteFile(path, contents, 0o644); err != nil {
			t.Fatal(err)
		}
		if _, ok := m.loadBlob(hash); ok {
			t.Fatalf("malformed blob (%d bytes) must not load", len(contents))
		}
	}
}

func TestForceRecompileIgnoresBlobs(t *testing.T) {
	dir := t.TempDir()
	src := Source{Key: "forced", WGSL: testWGSL, Stage: StageVertex}

	calls := 0
	m1 := NewManager(
		WithCompiler(countingCompiler(&calls)),
		WithBlobDir(dir),
		WithPersistBlobs(true),
		WithQuietDiagnostics(true),
	)
	if _, err := m1.GetOrCompile(src); err != nil {
		t.Fatalf("compile: %v", err)
	}

	loads := 0
	m2 := NewManager(
		WithCompiler(countingCompiler(&loads)),
		WithBlobDir(dir),
		WithForceRecompile(true),
		WithQuietDiagnostics(true),
	)
	if _, err := m2.GetOrCompile(src); err != nil {
		t.Fatalf("forced recompile: %v", err)
	}
	if loads != 1 {
		t.Fatalf("force-recompile must invoke the compiler, invoked %d times", loads)
	}
}
