package atlas

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-ui/common"
)

// TextureError reports a malformed delta from the upstream layout engine.
// Recoverable: the offending delta is skipped, the rest of the frame renders.
type TextureError struct {
	// Id is the texture the delta targeted.
	Id common.TextureID
	// Reason describes the contract violation.
	Reason string
}

func (e *TextureError) Error() string {
	return fmt.Sprintf("atlas: texture %d: %s", e.Id, e.Reason)
}

// MissingTextureError reports a resolve of an id that was never created or
// was already freed. Recoverable: the painter skips the draw command.
type MissingTextureError struct {
	// Id is the texture id that failed to resolve.
	Id common.TextureID
}

func (e *MissingTextureError) Error() string {
	return fmt.Sprintf("atlas: texture %d is not resident", e.Id)
}
