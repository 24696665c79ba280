package tensor

import "fmt"

// ShapeError reports a dimension disagreement between operands.
//
// Every operation in this package checks operand shapes before touching any
// data, so a ShapeError guarantees no partial result was written.
type ShapeError struct {
	Op   string // operation that failed (e.g., "matvec", "outer")
	Want int    // expected dimension
	Got  int    // actual dimension
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: want %d, got %d", e.Op, e.Want, e.Got)
}

// shapeErr is a shorthand constructor used throughout the package.
func shapeErr(op string, want, got int) error {
	return &ShapeError{Op: op, Want: want, Got: got}
}
