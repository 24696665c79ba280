// Copyright 2026 Sable ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for Sable's dense numeric
// primitives.
//
// The package exposes the row-major Matrix type and the vector and matrix
// operations the training engine is built on. Every operation validates
// its operand shapes and reports mismatches as a *ShapeError.
//
// Example:
//
//	w, _ := tensor.NewMatrix(3, 2)
//	h, err := tensor.MatVec([]float64{1, 0, 1}, w)
package tensor

import (
	"github.com/sable-ml/sable/internal/tensor"
)

// Matrix is a dense row-major matrix of float64 values.
type Matrix = tensor.Matrix

// ShapeError reports an operation applied to operands of incompatible
// dimensions.
type ShapeError = tensor.ShapeError

// NewMatrix returns a zero-valued rows by cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	return tensor.NewMatrix(rows, cols)
}

// NewMatrixFrom builds a rows by cols matrix from row-major data, copying
// the slice.
func NewMatrixFrom(rows, cols int, data []float64) (*Matrix, error) {
	return tensor.NewMatrixFrom(rows, cols, data)
}

// Dot returns the inner product of u and v.
func Dot(u, v []float64) (float64, error) {
	return tensor.Dot(u, v)
}

// MatVec computes x·w, treating x as a row vector.
func MatVec(x []float64, w *Matrix) ([]float64, error) {
	return tensor.MatVec(x, w)
}

// MatVecT computes delta·wᵀ without materializing the transpose.
func MatVecT(delta []float64, w *Matrix) ([]float64, error) {
	return tensor.MatVecT(delta, w)
}

// Outer returns the outer product a ⊗ b as a len(a) by len(b) matrix.
func Outer(a, b []float64) (*Matrix, error) {
	return tensor.Outer(a, b)
}

// OuterInto writes the outer product a ⊗ b into dst.
func OuterInto(dst *Matrix, a, b []float64) error {
	return tensor.OuterInto(dst, a, b)
}

// Axpy computes y += alpha*x.
func Axpy(alpha float64, x, y []float64) error {
	return tensor.Axpy(alpha, x, y)
}

// AxpyMatrix computes y += alpha*x element-wise over matrices of equal
// shape.
func AxpyMatrix(alpha float64, x, y *Matrix) error {
	return tensor.AxpyMatrix(alpha, x, y)
}

// Hadamard returns the element-wise product a ⊙ b.
func Hadamard(a, b []float64) ([]float64, error) {
	return tensor.Hadamard(a, b)
}

// Add returns u + v element-wise.
func Add(u, v []float64) ([]float64, error) {
	return tensor.Add(u, v)
}

// Sub returns u - v element-wise.
func Sub(u, v []float64) ([]float64, error) {
	return tensor.Sub(u, v)
}

// Scale multiplies x in place by alpha.
func Scale(alpha float64, x []float64) {
	tensor.Scale(alpha, x)
}

// Norm returns the Euclidean norm of x.
func Norm(x []float64) float64 {
	return tensor.Norm(x)
}
