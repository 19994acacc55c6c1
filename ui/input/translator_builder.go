package input

// TranslatorBuilderOption is a functional option for configuring a
// translator. Use the With* functions to create options.
type TranslatorBuilderOption func(t *translator)

// WithClipboard sets the clipboard used for paste messages and exposed to the
// Backend for copy-out.
//
// Parameters:
//   - c: the clipboard implementation
//
// Returns:
//   - TranslatorBuilderOption: option function to apply
func WithClipboard(c Clipboard) TranslatorBuilderOption {
	return func(t *translator) {
		t.clipboard = c
	}
}

// WithQuietDiagnostics suppresses clipboard failure log output. Behavior is
// unchanged; only verbosity is affected.
//
// Parameters:
//   - quiet: true to suppress log output
//
// Returns:
//   - TranslatorBuilderOption: option function to apply
func WithQuietDiagnostics(quiet bool) TranslatorBuilderOption {
	return func(t *translator) {
		t.quiet = quiet
	}
}
