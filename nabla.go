// Package nabla estimates the gradient and the Hessian of a scalar function at a
// point with central differences.
//
// Package nabla は中心差分によって、スカラー関数の勾配とヘッセ行列を数値的に求めます。
//
// The second partials are obtained by differentiating each first partial again,
// so the Hessian entries (i, j) and (j, i) are computed independently and may
// differ by rounding noise.
package nabla

import (
	"fmt"

	"github.com/sgostarter/i/l"
	"github.com/sw965/nabla/partial"
)

var (
	ErrInputShape = partial.ErrInputShape
	ErrStep       = partial.ErrStep
	ErrNilFunc    = partial.ErrNilFunc
)

// Evaluations is the number of calls to f made by Calculate for a function of
// dim variables.
func Evaluations(dim int) int {
	return 2*dim + 4*dim*dim
}

type Calculator struct {
	Func partial.Func

	// Dim が0以外の場合、点の次元と一致しなければなりません。
	Dim int

	// Step defaults to partial.Step when zero.
	Step float64

	Logger l.Wrapper
}

func (c *Calculator) Validate() error {
	if c.Func == nil {
		return ErrNilFunc
	}

	if c.Dim < 0 {
		return fmt.Errorf("%w: Dim=%d", ErrInputShape, c.Dim)
	}

	if c.Step != 0 {
		if err := partial.ValidateStep(c.Step); err != nil {
			return err
		}
	}
	return nil
}

func (c *Calculator) ValidatePoint(p partial.Point) error {
	if len(p) == 0 {
		return fmt.Errorf("%w: dim=0", ErrInputShape)
	}

	if c.Dim != 0 && c.Dim != len(p) {
		return fmt.Errorf("%w: dim=%d expected=%d", ErrInputShape, len(p), c.Dim)
	}
	return nil
}

func (c *Calculator) step() float64 {
	if c.Step == 0 {
		return partial.Step
	}
	return c.Step
}

func (c *Calculator) logger() l.Wrapper {
	if c.Logger == nil {
		return l.NewNopLoggerWrapper()
	}
	return c.Logger
}

// Calculate returns all first and second partials of c.Func at p. Any error
// from c.Func is returned unchanged and no partial result is kept.
func (c *Calculator) Calculate(p partial.Point) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	if err := c.ValidatePoint(p); err != nil {
		return Result{}, err
	}

	dim := len(p)
	h := c.step()
	f, n := partial.Counted(c.Func)
	logger := c.logger().WithFields(l.StringField(l.ClsKey, "Calculator"), l.IntField("dim", dim))
	logger.Debug("calculate start")

	firsts := make([]partial.Func, dim)
	for i := range firsts {
		firsts[i] = partial.BindWithStep(f, i, h)
	}

	grad := make([]float64, dim)
	for i, g := range firsts {
		v, err := g(p)
		if err != nil {
			logger.WithFields(l.ErrorField(err), l.IntField("axis", i)).Debug("first partial failed")
			return Result{}, err
		}
		grad[i] = v
	}

	// 対称性は利用しない。(i, j) と (j, i) はそれぞれ独立に計算する。
	hess := make([]float64, dim*dim)
	for i, g := range firsts {
		for j := 0; j < dim; j++ {
			v, err := partial.DerivativeWithStep(g, j, p, h)
			if err != nil {
				logger.WithFields(l.ErrorField(err), l.IntField("outer", i), l.IntField("inner", j)).Debug("second partial failed")
				return Result{}, err
			}
			hess[i*dim+j] = v
		}
	}

	logger.WithFields(l.IntField("evaluations", *n)).Debug("calculate done")
	return newResult(dim, grad, hess)
}

// Calculate is shorthand for a Calculator with default settings.
func Calculate(f partial.Func, p partial.Point) (Result, error) {
	c := Calculator{Func: f}
	return c.Calculate(p)
}
