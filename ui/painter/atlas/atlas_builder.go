package atlas

// AtlasBuilderOption is a functional option for configuring an atlas.
// Use the With* functions to create options.
type AtlasBuilderOption func(a *atlas)

// WithQuietDiagnostics suppresses contract-violation log output.
// The returned errors are unaffected.
//
// Parameters:
//   - quiet: true to suppress log output
//
// Returns:
//   - AtlasBuilderOption: option function to apply
func WithQuietDiagnostics(quiet bool) AtlasBuilderOption {
	return func(a *atlas) {
		a.quiet = quiet
	}
}
