// Package solver advances the two coupled fields one time row at a time.
//
// Each solver owns its field buffer and its integral functional, and
// exchanges rows with its companion only through ActualizeRow. The strict
// interleaving of ActualizeRow and ActualizeStep across both solvers is the
// driver's responsibility; the step gate here only catches skipped steps,
// not reordering within one.
package solver

import (
	"errors"

	"github.com/san-kum/traitsim/internal/grid"
)

var (
	// ErrOutOfSequence indicates a step requested past the
	// lookahead-of-one gate.
	ErrOutOfSequence = errors.New("solver: step out of sequence")

	// ErrParameterBounds indicates a coefficient outside its valid range.
	ErrParameterBounds = errors.New("solver: parameter out of valid bounds")

	// ErrUnknownScheme indicates an unregistered scheme name.
	ErrUnknownScheme = errors.New("solver: unknown scheme")
)

// Solver is the row-exchange contract the driver works against.
// ActualizeRow supplies the companion field's freshly finalized row n;
// ActualizeStep derives field row n+1 from row n, memoized per row.
type Solver interface {
	ActualizeRow(row []float64, n int) error
	ActualizeStep(n int) ([]float64, error)
	Row(n int) []float64
	Field() *grid.Field
	CurrentStep() int
}

// stepper tracks the highest time index confirmed consistent.
type stepper struct {
	current int
}

// isNextStep allows n at most one ahead of the confirmed step.
func (s *stepper) isNextStep(n int) bool { return n <= s.current+1 }

func (s *stepper) advance(n int) { s.current = n + 1 }

func (s *stepper) CurrentStep() int { return s.current }
