// Package quad exposes the quadrature used for the nonlocal coupling
// integrals.
package quad

import "gonum.org/v1/gonum/integrate"

// Func integrates sampled values fs over the ordered mesh xs and returns a
// single value. The mesh may be non-uniform.
type Func func(xs, fs []float64) float64

// Simpson is the composite Simpson rule. It is the default quadrature for
// both functionals.
func Simpson(xs, fs []float64) float64 {
	return integrate.Simpsons(xs, fs)
}

// Counted wraps fn so every invocation increments *calls. Memoization
// behavior is verified through this counter.
func Counted(fn Func, calls *int) Func {
	return func(xs, fs []float64) float64 {
		*calls++
		return fn(xs, fs)
	}
}
