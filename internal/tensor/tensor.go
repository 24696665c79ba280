// Package tensor provides the dense numeric primitives for the Sable engine.
//
// The package implements exactly the linear algebra a small feedforward
// network needs: dot products, matrix-vector products against a row-major
// weight matrix, outer products, and a handful of element-wise helpers.
// Vectors are plain []float64 slices; matrices are contiguous row-major
// buffers carrying their own shape.
//
// All operations require exact dimension agreement and fail with a
// *ShapeError otherwise. Nothing is ever silently truncated, padded, or
// reshaped.
package tensor

import "math"

// Matrix is a dense row-major matrix backed by a flat float64 buffer.
//
// The element at row i, column j lives at data[i*cols+j]. The shape is
// validated once at construction; accessors index the flat buffer directly.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a zero-filled rows×cols matrix.
//
// Returns a *ShapeError when either dimension is not positive.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 {
		return nil, shapeErr("matrix rows", 1, rows)
	}
	if cols <= 0 {
		return nil, shapeErr("matrix cols", 1, cols)
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// NewMatrixFrom builds a rows×cols matrix around a copy of data, which must
// hold exactly rows*cols values in row-major order.
func NewMatrixFrom(rows, cols int, data []float64) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, shapeErr("matrix data", rows*cols, len(data))
	}
	copy(m.data, data)
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns row i as a slice view into the backing buffer.
//
// The view aliases the matrix; callers that need an independent copy must
// copy it themselves.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// Data returns the backing row-major buffer.
func (m *Matrix) Data() []float64 { return m.data }

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{rows: m.rows, cols: m.cols, data: make([]float64, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Zero resets every element to 0.
func (m *Matrix) Zero() {
	for i := range m.data {
		m.data[i] = 0
	}
}

// Dot returns the inner product of u and v.
func Dot(u, v []float64) (float64, error) {
	if len(u) != len(v) {
		return 0, shapeErr("dot", len(u), len(v))
	}
	var sum float64
	for i := range u {
		sum += u[i] * v[i]
	}
	return sum, nil
}

// MatVec computes h = x·W for a row vector x of length W.Rows().
//
// The result has length W.Cols(): h[j] = Σ_i x[i]·W[i][j]. This is the
// forward-pass product; x is the previous layer's activation and W maps it
// onto the next layer.
func MatVec(x []float64, w *Matrix) ([]float64, error) {
	if len(x) != w.rows {
		return nil, shapeErr("matvec", w.rows, len(x))
	}
	out := make([]float64, w.cols)
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		row := w.Row(i)
		for j, wij := range row {
			out[j] += xi * wij
		}
	}
	return out, nil
}

// MatVecT computes h = δ·Wᵀ for a vector δ of length W.Cols().
//
// The result has length W.Rows(): h[i] = Σ_j δ[j]·W[i][j]. This is the
// backward-pass product used to push a layer's error back through its
// weights.
func MatVecT(delta []float64, w *Matrix) ([]float64, error) {
	if len(delta) != w.cols {
		return nil, shapeErr("matvecT", w.cols, len(delta))
	}
	out := make([]float64, w.rows)
	for i := 0; i < w.rows; i++ {
		row := w.Row(i)
		var sum float64
		for j, wij := range row {
			sum += delta[j] * wij
		}
		out[i] = sum
	}
	return out, nil
}

// Outer returns the outer product a⊗b as a len(a)×len(b) matrix.
func Outer(a, b []float64) (*Matrix, error) {
	m, err := NewMatrix(len(a), len(b))
	if err != nil {
		return nil, err
	}
	if err := OuterInto(m, a, b); err != nil {
		return nil, err
	}
	return m, nil
}

// OuterInto writes the outer product a⊗b into dst, which must already have
// shape len(a)×len(b). The destination is overwritten, not accumulated.
func OuterInto(dst *Matrix, a, b []float64) error {
	if dst.rows != len(a) {
		return shapeErr("outer rows", dst.rows, len(a))
	}
	if dst.cols != len(b) {
		return shapeErr("outer cols", dst.cols, len(b))
	}
	for i, ai := range a {
		row := dst.Row(i)
		for j, bj := range b {
			row[j] = ai * bj
		}
	}
	return nil
}

// Axpy computes y += alpha·x in place.
func Axpy(alpha float64, x, y []float64) error {
	if len(x) != len(y) {
		return shapeErr("axpy", len(y), len(x))
	}
	for i, xi := range x {
		y[i] += alpha * xi
	}
	return nil
}

// AxpyMatrix computes y += alpha·x in place over whole matrices.
//
// Shapes must agree exactly; this is the trainer's weight-update primitive.
func AxpyMatrix(alpha float64, x, y *Matrix) error {
	if x.rows != y.rows {
		return shapeErr("axpy rows", y.rows, x.rows)
	}
	if x.cols != y.cols {
		return shapeErr("axpy cols", y.cols, x.cols)
	}
	for i, xi := range x.data {
		y.data[i] += alpha * xi
	}
	return nil
}

// Hadamard computes the element-wise product a ⊙ b into a new slice.
func Hadamard(a, b []float64) ([]float64, error) {
	if len(a) != len(b) {
		return nil, shapeErr("hadamard", len(a), len(b))
	}
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] * b[i]
	}
	return out, nil
}

// Add returns u + v as a new slice.
func Add(u, v []float64) ([]float64, error) {
	if len(u) != len(v) {
		return nil, shapeErr("add", len(u), len(v))
	}
	out := make([]float64, len(u))
	for i := range u {
		out[i] = u[i] + v[i]
	}
	return out, nil
}

// Sub returns u - v as a new slice.
func Sub(u, v []float64) ([]float64, error) {
	if len(u) != len(v) {
		return nil, shapeErr("sub", len(u), len(v))
	}
	out := make([]float64, len(u))
	for i := range u {
		out[i] = u[i] - v[i]
	}
	return out, nil
}

// Scale multiplies every element of x by alpha in place.
func Scale(alpha float64, x []float64) {
	for i := range x {
		x[i] *= alpha
	}
}

// Norm returns the Euclidean norm ‖x‖.
func Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}
