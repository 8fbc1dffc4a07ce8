package meshbuild

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("vertex capacity exceeded")
	ErrIndexOutOfRange  = errors.New("triangle index out of range")
)

// IndexRangeError describes one triangle that references a missing vertex.
type IndexRangeError struct {
	Triangle    int
	Corner      int // 0, 1 or 2 for A, B, C
	Index       int
	VertexCount int
}

func (e *IndexRangeError) Error() string {
	return fmt.Sprintf("triangle %d corner %d: index %d not in [0, %d)",
		e.Triangle, e.Corner, e.Index, e.VertexCount)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}
