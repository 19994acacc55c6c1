package shader

// ManagerBuilderOption is a functional option for configuring a shader manager.
// Use the With* functions to create options.
type ManagerBuilderOption func(m *manager)

// WithBlobDir enables the persisted bytecode cache rooted at dir. Blobs are
// keyed by the source hash; a matching verified blob is loaded instead of
// recompiling.
//
// Parameters:
//   - dir: the cache directory (created on first write)
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithBlobDir(dir string) ManagerBuilderOption {
	return func(m *manager) {
		m.blobDir = dir
	}
}

// WithPersistBlobs controls whether newly compiled bytecode is written to the
// blob directory. Has no effect without WithBlobDir.
//
// Parameters:
//   - persist: true to write blobs after compiling
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithPersistBlobs(persist bool) ManagerBuilderOption {
	return func(m *manager) {
		m.persistBlobs = persist
	}
}

// WithForceRecompile makes the manager ignore existing on-disk blobs and
// always invoke the native compiler on a cache miss. The in-memory cache is
// unaffected.
//
// Parameters:
//   - force: true to skip blob loading
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithForceRecompile(force bool) ManagerBuilderOption {
	return func(m *manager) {
		m.forceRecompile = force
	}
}

// WithQuietDiagnostics suppresses the manager's diagnostic log output.
// Behavior is unchanged; only verbosity is affected.
//
// Parameters:
//   - quiet: true to suppress log output
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithQuietDiagnostics(quiet bool) ManagerBuilderOption {
	return func(m *manager) {
		m.quiet = quiet
	}
}

// WithCompiler replaces the native WGSL compiler. The default is naga.Compile.
//
// Parameters:
//   - compile: function compiling WGSL source to SPIR-V bytes
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithCompiler(compile func(wgsl string) ([]byte, error)) ManagerBuilderOption {
	return func(m *manager) {
		if compile != nil {
			m.compile = compile
		}
	}
}
