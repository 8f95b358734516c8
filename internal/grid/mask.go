package grid

// Mask is a validity bitmap over a cache with the same shape as a Field.
// An entry is true iff the cached value at that position reflects the
// current state of the dependency row it was computed from.
type Mask struct {
	rows, cols int
	bits       []bool
}

func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, bits: make([]bool, rows*cols)}
}

func (m *Mask) Valid(n, j int) bool { return m.bits[n*m.cols+j] }

func (m *Mask) Set(n, j int) { m.bits[n*m.cols+j] = true }

// SetRow marks every entry of row n valid.
func (m *Mask) SetRow(n int) {
	row := m.bits[n*m.cols : (n+1)*m.cols]
	for i := range row {
		row[i] = true
	}
}

// ClearRow invalidates every entry of row n.
func (m *Mask) ClearRow(n int) {
	row := m.bits[n*m.cols : (n+1)*m.cols]
	for i := range row {
		row[i] = false
	}
}

// RowValid reports whether every entry of row n is valid.
func (m *Mask) RowValid(n int) bool {
	row := m.bits[n*m.cols : (n+1)*m.cols]
	for _, b := range row {
		if !b {
			return false
		}
	}
	return true
}
