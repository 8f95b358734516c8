// Package grid provides the time-indexed row buffers and validity masks
// that the functionals and solvers build on.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch indicates a row whose length disagrees with the
	// expected mesh dimension.
	ErrShapeMismatch = errors.New("grid: row length does not match field width")

	// ErrRowRange indicates a time index outside the field.
	ErrRowRange = errors.New("grid: row index out of range")
)

// Field is a dense (time steps)×(mesh points) buffer. Rows are written
// whole; Row returns a view into the backing array.
type Field struct {
	rows, cols int
	data       []float64
}

func NewField(rows, cols int) *Field {
	return &Field{rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (f *Field) Rows() int { return f.rows }
func (f *Field) Cols() int { return f.cols }

// Row returns the backing slice for time index n.
func (f *Field) Row(n int) []float64 {
	return f.data[n*f.cols : (n+1)*f.cols]
}

// RowCopy returns a detached copy of row n.
func (f *Field) RowCopy(n int) []float64 {
	out := make([]float64, f.cols)
	copy(out, f.Row(n))
	return out
}

// SetRow copies row into time index n after validating its shape.
func (f *Field) SetRow(n int, row []float64) error {
	if n < 0 || n >= f.rows {
		return fmt.Errorf("%w: %d (field has %d rows)", ErrRowRange, n, f.rows)
	}
	if len(row) != f.cols {
		return fmt.Errorf("%w: got %d, want %d", ErrShapeMismatch, len(row), f.cols)
	}
	copy(f.Row(n), row)
	return nil
}
