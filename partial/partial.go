// Package partial computes first-order partial derivatives of scalar functions
// by central differencing with a fixed step.
//
// Package partial は固定ステップの中心差分によって、スカラー関数の1階偏微分を計算します。
package partial

import (
	"errors"
	"fmt"
	"slices"

	"github.com/sw965/nabla/mathx"
)

// Step is the default central difference step. Derivatives of well-behaved
// functions come out with about 8 significant digits.
const Step = 1.2e-4

var (
	ErrInputShape = errors.New("partial: invalid input shape")
	ErrStep       = errors.New("partial: invalid step")
	ErrNilFunc    = errors.New("partial: nil function")
)

// Point is a location in R^dim. Functions in this package never modify it.
type Point []float64

func (p Point) Dim() int {
	return len(p)
}

func (p Point) Clone() Point {
	return slices.Clone(p)
}

// Shifted returns a copy of p with coordinate i moved by dx.
func (p Point) Shifted(i int, dx float64) Point {
	y := p.Clone()
	y[i] += dx
	return y
}

// Func is a scalar function of a Point. A non-nil error is returned to the
// caller of Derivative as is.
type Func func(Point) (float64, error)

// Lift adapts a function that cannot fail.
func Lift(f func([]float64) float64) Func {
	return func(p Point) (float64, error) {
		return f(p), nil
	}
}

func ValidateAxis(i int, p Point) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: dim=0", ErrInputShape)
	}

	if i < 0 || i >= len(p) {
		return fmt.Errorf("%w: axis=%d dim=%d", ErrInputShape, i, len(p))
	}
	return nil
}

func ValidateStep(h float64) error {
	if h <= 0 || !mathx.IsFinite(h) {
		return fmt.Errorf("%w: h=%.6g", ErrStep, h)
	}
	return nil
}

// Derivative approximates ∂f/∂x_i at p with the default Step.
func Derivative(f Func, i int, p Point) (float64, error) {
	return DerivativeWithStep(f, i, p, Step)
}

// DerivativeWithStep approximates ∂f/∂x_i at p as (f(p+h·e_i) - f(p-h·e_i)) / 2h.
// f is called exactly twice, the forward point first.
//
// NaN and ±Inf produced by f are not treated as errors.
func DerivativeWithStep(f Func, i int, p Point, h float64) (float64, error) {
	if f == nil {
		return 0.0, ErrNilFunc
	}

	if err := ValidateAxis(i, p); err != nil {
		return 0.0, err
	}

	if err := ValidateStep(h); err != nil {
		return 0.0, err
	}

	plusY, err := f(p.Shifted(i, h))
	if err != nil {
		return 0.0, err
	}

	minusY, err := f(p.Shifted(i, -h))
	if err != nil {
		return 0.0, err
	}
	return mathx.CentralDifference(plusY, minusY, h), nil
}

// Bind returns ∂f/∂x_i as a Func of its own, using the default Step.
func Bind(f Func, i int) Func {
	return BindWithStep(f, i, Step)
}

func BindWithStep(f Func, i int, h float64) Func {
	return func(p Point) (float64, error) {
		return DerivativeWithStep(f, i, p, h)
	}
}

// Counted wraps f so that every call, failed or not, increments *n.
func Counted(f Func) (Func, *int) {
	n := new(int)
	return func(p Point) (float64, error) {
		*n += 1
		return f(p)
	}, n
}
