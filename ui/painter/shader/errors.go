package shader

import "fmt"

// CompileError reports a shader source rejected by the native compiler.
// It is fatal for that shader; nothing is registered in the cache.
type CompileError struct {
	// Stage is the pipeline stage of the failed shader.
	Stage Stage
	// Key is the source label.
	Key string
	// Diagnostics is the compiler's error output.
	Diagnostics string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("shader: %s shader %q failed to compile: %s", e.Stage, e.Key, e.Diagnostics)
}
