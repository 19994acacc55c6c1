package ui

import (
	"github.com/Carmen-Shannon/oxy-ui/ui/input"
)

// BackendBuilderOption is a functional option for configuring a backend.
// Use the With* functions to create options.
type BackendBuilderOption func(b *backend)

// WithTranslator injects a pre-configured input translator (for example one
// with a clipboard). When omitted the backend creates a bare translator.
//
// Parameters:
//   - t: the translator to use
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithTranslator(t input.Translator) BackendBuilderOption {
	return func(b *backend) {
		if t != nil {
			b.translator = t
		}
	}
}

// WithErrorReporter overrides where non-fatal per-frame errors are reported.
// The default reporter writes to the log.
//
// Parameters:
//   - report: the reporter callback
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithErrorReporter(report func(err error)) BackendBuilderOption {
	return func(b *backend) {
		if report != nil {
			b.reportError = report
		}
	}
}

// WithStats enables frame timing output from creation. Equivalent to calling
// EnableStats after NewBackend.
//
// Returns:
//   - BackendBuilderOption: option function to apply
func WithStats() BackendBuilderOption {
	return func(b *backend) {
		b.statsEnabled = true
	}
}
