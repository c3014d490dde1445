package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidCanvas indicates a canvas with non-positive or infinite dimensions.
	ErrInvalidCanvas = errors.New("dynamo: invalid canvas size")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a particle position became NaN or Inf.
	ErrInvalidState = errors.New("dynamo: invalid particle state (NaN or Inf detected)")

	// ErrUnknownEdge indicates an edge name that is not left, right, top or bottom.
	ErrUnknownEdge = errors.New("dynamo: unknown edge")

	// ErrContextCanceled indicates a headless run was interrupted.
	ErrContextCanceled = errors.New("dynamo: run canceled by context")
)

// FrameError wraps an error with the frame it happened on.
type FrameError struct {
	Frame   int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
