package painter

import (
	"github.com/Carmen-Shannon/oxy-ui/ui/painter/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// PainterBuilderOption is a functional option for configuring a painter.
// Use the With* functions to create options.
type PainterBuilderOption func(p *painter)

// WithShaderManager injects a pre-configured shader manager (for example one
// with a blob cache directory). When omitted the painter creates its own.
//
// Parameters:
//   - m: the shader manager to use
//
// Returns:
//   - PainterBuilderOption: option function to apply
func WithShaderManager(m shader.Manager) PainterBuilderOption {
	return func(p *painter) {
		if m != nil {
			p.shaders = m
		}
	}
}

// WithSampler overrides the sampler descriptor used for atlas textures.
//
// Parameters:
//   - desc: the sampler descriptor
//
// Returns:
//   - PainterBuilderOption: option function to apply
func WithSampler(desc SamplerDesc) PainterBuilderOption {
	return func(p *painter) {
		p.samplerDesc = desc
	}
}

// WithPackWorkers sets the number of workers for the parallel CPU vertex-pack
// phase. Values <= 1 pack serially on the render thread.
//
// Parameters:
//   - workers: the worker count
//
// Returns:
//   - PainterBuilderOption: option function to apply
func WithPackWorkers(workers int) PainterBuilderOption {
	return func(p *painter) {
		p.packWorkers = workers
	}
}

// WithDebugClear enables a diagnostic mode that clears the render target to
// the given color and draws nothing else.
//
// Parameters:
//   - r, g, b, a: the clear color components in [0, 1]
//
// Returns:
//   - PainterBuilderOption: option function to apply
func WithDebugClear(r, g, b, a float64) PainterBuilderOption {
	return func(p *painter) {
		p.debugClear = &wgpu.Color{R: r, G: g, B: b, A: a}
	}
}

// WithQuietDiagnostics suppresses skip/violation log output. Behavior is
// unchanged; only verbosity is affected.
//
// Parameters:
//   - quiet: true to suppress log output
//
// Returns:
//   - PainterBuilderOption: option function to apply
func WithQuietDiagnostics(quiet bool) PainterBuilderOption {
	return func(p *painter) {
		p.quiet = quiet
	}
}
