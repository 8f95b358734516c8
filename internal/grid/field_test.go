package grid

import (
	"errors"
	"testing"
)

func TestFieldSetRow(t *testing.T) {
	f := NewField(3, 4)

	if err := f.SetRow(1, []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("set row failed: %v", err)
	}

	row := f.Row(1)
	if row[0] != 1 || row[3] != 4 {
		t.Errorf("row values wrong: %v", row)
	}
	if f.Row(0)[0] != 0 {
		t.Error("unwritten row should stay zero")
	}
}

func TestFieldShapeMismatch(t *testing.T) {
	f := NewField(3, 102)

	err := f.SetRow(0, []float64{1, 2, 3, 4, 5})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestFieldRowRange(t *testing.T) {
	f := NewField(2, 3)

	if err := f.SetRow(2, []float64{1, 2, 3}); !errors.Is(err, ErrRowRange) {
		t.Errorf("expected ErrRowRange, got %v", err)
	}
	if err := f.SetRow(-1, []float64{1, 2, 3}); !errors.Is(err, ErrRowRange) {
		t.Errorf("expected ErrRowRange, got %v", err)
	}
}

func TestFieldRowCopyDetached(t *testing.T) {
	f := NewField(2, 2)
	if err := f.SetRow(0, []float64{1, 2}); err != nil {
		t.Fatal(err)
	}

	c := f.RowCopy(0)
	c[0] = 99
	if f.Row(0)[0] != 1 {
		t.Error("RowCopy should not alias the backing array")
	}
}

func TestFieldSetRowCopies(t *testing.T) {
	f := NewField(2, 2)
	src := []float64{1, 2}
	if err := f.SetRow(0, src); err != nil {
		t.Fatal(err)
	}

	src[0] = 99
	if f.Row(0)[0] != 1 {
		t.Error("SetRow should copy the incoming row")
	}
}

func TestMask(t *testing.T) {
	m := NewMask(2, 3)

	if m.Valid(0, 0) {
		t.Error("fresh mask should be invalid")
	}

	m.Set(0, 1)
	if !m.Valid(0, 1) {
		t.Error("entry should be valid after Set")
	}
	if m.RowValid(0) {
		t.Error("partially set row should not be RowValid")
	}

	m.SetRow(0)
	if !m.RowValid(0) {
		t.Error("row should be valid after SetRow")
	}
	if m.RowValid(1) {
		t.Error("other rows should be unaffected")
	}

	m.ClearRow(0)
	if m.Valid(0, 1) || m.RowValid(0) {
		t.Error("row should be invalid after ClearRow")
	}
}
