package functional

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/traitsim/internal/grid"
	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/quad"
)

func testMesh(t *testing.T) *mesh.Mesh {
	t.Helper()
	msh, err := mesh.New([2]float64{0, 1}, [2]float64{0, 1}, 1, 1, 0.1, 4)
	require.NoError(t, err)
	return msh
}

func onesKernel(msh *mesh.Mesh) *mat.Dense {
	return mesh.SampleKernel(func(x, y float64) float64 { return 1 }, msh.X, msh.Y)
}

func ones(n int) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = 1
	}
	return v
}

func TestFEvalHandValue(t *testing.T) {
	msh := testMesh(t)

	f, err := NewF(onesKernel(msh), ones(msh.M+2), msh, nil)
	require.NoError(t, err)

	// K ≡ 1 and R(0,·) ≡ 1, so F(0,j) = ∫ dy over [0,1] = 1.
	for j := 0; j < msh.N+2; j++ {
		assert.InDelta(t, 1.0, f.Eval(0, j), 1e-12)
	}
}

func TestFMemoization(t *testing.T) {
	msh := testMesh(t)

	calls := 0
	f, err := NewF(onesKernel(msh), ones(msh.M+2), msh, quad.Counted(quad.Simpson, &calls))
	require.NoError(t, err)

	first := f.Eval(0, 1)
	second := f.Eval(0, 1)

	assert.Equal(t, first, second, "repeated reads must be bit-identical")
	assert.Equal(t, 1, calls, "quadrature must run exactly once per entry")

	f.Eval(0, 0)
	assert.Equal(t, 2, calls, "a different entry computes once more")
}

func TestFInvalidation(t *testing.T) {
	msh := testMesh(t)

	calls := 0
	f, err := NewF(onesKernel(msh), ones(msh.M+2), msh, quad.Counted(quad.Simpson, &calls))
	require.NoError(t, err)

	before := f.Eval(0, 0)
	assert.InDelta(t, 1.0, before, 1e-12)

	doubled := []float64{2, 2, 2}
	require.NoError(t, f.ActualizeRow(doubled, 0))

	after := f.Eval(0, 0)
	assert.InDelta(t, 2.0, after, 1e-12, "recomputation must use the new row")
	assert.Equal(t, 2, calls)
}

func TestFActualizeRowShape(t *testing.T) {
	msh := testMesh(t)

	f, err := NewF(onesKernel(msh), ones(msh.M+2), msh, nil)
	require.NoError(t, err)

	err = f.ActualizeRow([]float64{1, 2, 3, 4, 5}, 0)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestFKernelShape(t *testing.T) {
	msh := testMesh(t)

	bad := mat.NewDense(2, 2, nil)
	_, err := NewF(bad, ones(msh.M+2), msh, nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestGEvalHandValue(t *testing.T) {
	msh := testMesh(t)

	// r(x) = x, K ≡ 1, u(0,·) ≡ 1: G(0,k) = ∫ x dx over [0,1] = 1/2,
	// exact under Simpson.
	r := mesh.Sample(func(x float64) float64 { return x }, msh.X)
	g, err := NewG(r, onesKernel(msh), ones(msh.N+2), msh, nil)
	require.NoError(t, err)

	for k := 0; k < msh.M+2; k++ {
		assert.InDelta(t, 0.5, g.Eval(0, k), 1e-12)
	}
}

func TestGMemoizationAndInvalidation(t *testing.T) {
	msh := testMesh(t)

	calls := 0
	g, err := NewG(ones(msh.N+2), onesKernel(msh), ones(msh.N+2), msh, quad.Counted(quad.Simpson, &calls))
	require.NoError(t, err)

	g.Eval(0, 0)
	g.Eval(0, 0)
	assert.Equal(t, 1, calls)

	require.NoError(t, g.ActualizeRow([]float64{3, 3, 3}, 0))
	assert.InDelta(t, 3.0, g.Eval(0, 0), 1e-12)
	assert.Equal(t, 2, calls)
}

func TestGActualizeRowShape(t *testing.T) {
	msh := testMesh(t)

	g, err := NewG(ones(msh.N+2), onesKernel(msh), ones(msh.N+2), msh, nil)
	require.NoError(t, err)

	err = g.ActualizeRow([]float64{1}, 0)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestGBadGrowthRate(t *testing.T) {
	msh := testMesh(t)

	_, err := NewG([]float64{1, 2}, onesKernel(msh), ones(msh.N+2), msh, nil)
	require.ErrorIs(t, err, grid.ErrShapeMismatch)
}

func TestInvalidationIsRowScoped(t *testing.T) {
	msh := testMesh(t)

	calls := 0
	f, err := NewF(onesKernel(msh), ones(msh.M+2), msh, quad.Counted(quad.Simpson, &calls))
	require.NoError(t, err)

	require.NoError(t, f.ActualizeRow(ones(msh.M+2), 1))

	f.Eval(0, 0)
	f.Eval(1, 0)
	require.Equal(t, 2, calls)

	// Replacing row 1 must not touch cache row 0.
	require.NoError(t, f.ActualizeRow([]float64{2, 2, 2}, 1))

	f.Eval(0, 0)
	assert.Equal(t, 2, calls, "row 0 cache must survive a row 1 invalidation")

	f.Eval(1, 0)
	assert.Equal(t, 3, calls)
}
