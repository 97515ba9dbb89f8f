package ast

import "errors"

// Pattern construction errors. They are reported at build time and never
// affect graphs that were already compiled.
var (
	// ErrRepeatCount indicates an exact repetition count below 1
	ErrRepeatCount = errors.New("repeat count must be at least 1")

	// ErrRepeatRange indicates a repetition range with a negative lower
	// bound, an upper bound below the lower bound, or a [0,0] range
	ErrRepeatRange = errors.New("invalid repeat range")

	// ErrEmptyCaptureName indicates a capture group with an empty name
	ErrEmptyCaptureName = errors.New("capture name must not be empty")

	// ErrInvalidNode indicates a node ID that does not belong to the arena
	ErrInvalidNode = errors.New("invalid pattern node")
)
