package emitter

import "errors"

var (
	// ErrInvalidModelName reports a model name that is empty or whose display
	// name is not a Go identifier.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrRender wraps any failure of the renderer. The renderer's own message
	// is kept as is.
	ErrRender = errors.New("render failed")
)
