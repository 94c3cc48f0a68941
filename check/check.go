// Package check compares a nabla.Result with the gradient and Hessian that
// gonum's diff/fd computes for the same function, point and step.
package check

import (
	"fmt"
	"math"

	"github.com/sw965/nabla"
	"github.com/sw965/nabla/partial"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Report struct {
	Dim      int
	Gradient []float64
	Hessian  *mat.SymDense

	// Max absolute differences between the result and the reference.
	GradientDiff float64
	HessianDiff  float64

	// Asymmetry is max |H_ij - H_ji| of the result itself.
	Asymmetry float64
}

// Within reports whether both differences are at most tol. NaN never is.
func (r Report) Within(tol float64) bool {
	return r.GradientDiff <= tol && r.HessianDiff <= tol
}

func (r Report) String() string {
	return fmt.Sprintf("dim=%d gradientDiff=%.6g hessianDiff=%.6g asymmetry=%.6g",
		r.Dim, r.GradientDiff, r.HessianDiff, r.Asymmetry)
}

// Reference computes the gradient and Hessian of f at x with fd's central
// formulas. fd's Hessian is symmetric by construction.
func Reference(f func([]float64) float64, x []float64, h float64) ([]float64, *mat.SymDense) {
	settings := &fd.Settings{Formula: fd.Central, Step: h}

	grad := make([]float64, len(x))
	fd.Gradient(grad, f, x, settings)

	hess := mat.NewSymDense(len(x), nil)
	fd.Hessian(hess, f, x, settings)
	return grad, hess
}

// Compare evaluates the reference for f at p and measures res against it.
// The first error returned by f is returned as is.
func Compare(res nabla.Result, f partial.Func, p partial.Point, h float64) (Report, error) {
	if f == nil {
		return Report{}, nabla.ErrNilFunc
	}

	dim := res.Dim()
	if dim == 0 || dim != len(p) {
		return Report{}, fmt.Errorf("%w: dim=%d result=%d", nabla.ErrInputShape, len(p), dim)
	}

	if h == 0 {
		h = partial.Step
	}
	if err := partial.ValidateStep(h); err != nil {
		return Report{}, err
	}

	var ferr error
	plain := func(x []float64) float64 {
		if ferr != nil {
			return math.NaN()
		}
		y, err := f(x)
		if err != nil {
			ferr = err
			return math.NaN()
		}
		return y
	}

	grad, hess := Reference(plain, p.Clone(), h)
	if ferr != nil {
		return Report{}, ferr
	}

	resHess := res.Hessian()
	resFlat := make([]float64, 0, dim*dim)
	refFlat := make([]float64, 0, dim*dim)
	asymmetry := 0.0
	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			resFlat = append(resFlat, resHess.At(i, j))
			refFlat = append(refFlat, hess.At(i, j))
			asymmetry = math.Max(asymmetry, math.Abs(resHess.At(i, j)-resHess.At(j, i)))
		}
	}

	return Report{
		Dim:          dim,
		Gradient:     grad,
		Hessian:      hess,
		GradientDiff: maxAbsDiff(res.Gradient(), grad),
		HessianDiff:  maxAbsDiff(resFlat, refFlat),
		Asymmetry:    asymmetry,
	}, nil
}

// maxAbsDiff is the L∞ distance of a and b, NaN if any element difference is
// NaN (Inf-Inf included). floats.Norm alone skips NaN elements.
func maxAbsDiff(a, b []float64) float64 {
	diff := floats.SubTo(make([]float64, len(a)), a, b)
	if floats.HasNaN(diff) {
		return math.NaN()
	}
	return floats.Norm(diff, math.Inf(1))
}
