package netmodel

import "fmt"

// Dense is a row-major matrix of float64 values: one contiguous backing
// array, O(1) indexing, cache-friendly row scans. It
// backs the distance matrix D (kilometres) and the time matrix T (minutes)
// built once per run by package matrixbuild and shared read-only by every
// subsequent stage.
type Dense struct {
	rows, cols int
	data       []float64
}

// ErrDenseIndexOutOfBounds is returned by At/Set when (row, col) falls
// outside [0,Rows) x [0,Cols).
var ErrDenseIndexOutOfBounds = fmt.Errorf("netmodel: dense index out of bounds")

// NewDense allocates a rows x cols Dense matrix initialized to zero.
// rows and cols must both be > 0.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("netmodel: NewDense(%d,%d): %w", rows, cols, ErrDenseIndexOutOfBounds)
	}
	return &Dense{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

func (m *Dense) index(row, col int) (int, error) {
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		return 0, fmt.Errorf("netmodel: Dense(%d,%d) of (%d,%d): %w", row, col, m.rows, m.cols, ErrDenseIndexOutOfBounds)
	}
	return row*m.cols + col, nil
}

// At returns the value at (row, col), or an error if out of bounds.
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.index(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set writes value at (row, col), or returns an error if out of bounds.
func (m *Dense) Set(row, col int, value float64) error {
	i, err := m.index(row, col)
	if err != nil {
		return err
	}
	m.data[i] = value
	return nil
}

// MustAt returns the value at (row, col), panicking if out of bounds. Only
// safe for call sites that have already validated (row, col) against
// Rows()/Cols(), such as the evaluator's hot loop iterating a solution's
// own allocation, which can never reference an index outside the matrices
// it was built from.
func (m *Dense) MustAt(row, col int) float64 {
	v, err := m.At(row, col)
	if err != nil {
		panic(err)
	}
	return v
}
