// Package functions is a catalog of named scalar functions that the nabla
// command can differentiate.
package functions

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/sw965/nabla/partial"
	gfunctions "gonum.org/v1/gonum/optimize/functions"
)

var (
	ErrUnknown   = errors.New("functions: unknown function")
	ErrDimension = errors.New("functions: wrong dimension")
)

type Function struct {
	Name        string
	Description string

	// Dim が0の場合、MinDim 以上の任意の次元を受け付けます。
	Dim    int
	MinDim int

	Func partial.Func
}

// ValidatePoint reports ErrDimension when p does not have a dimension that
// fn accepts.
func (fn Function) ValidatePoint(p partial.Point) error {
	if fn.Dim != 0 && len(p) != fn.Dim {
		return fmt.Errorf("%w: %s dim=%d expected=%d", ErrDimension, fn.Name, len(p), fn.Dim)
	}

	if len(p) < fn.MinDim {
		return fmt.Errorf("%w: %s dim=%d min=%d", ErrDimension, fn.Name, len(p), fn.MinDim)
	}
	return nil
}

func newFunction(name, description string, dim, minDim int, f func([]float64) float64) Function {
	fn := Function{Name: name, Description: description, Dim: dim, MinDim: minDim}
	fn.Func = func(p partial.Point) (float64, error) {
		if err := fn.ValidatePoint(p); err != nil {
			return 0.0, err
		}
		return f(p), nil
	}
	return fn
}

// User is exp((x_1 + ... + x_n)^-2 + exp(x_1 - 1)^3). It is +Inf where the
// coordinates sum to zero.
func User(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return math.Exp(math.Pow(sum, -2) + math.Pow(math.Exp(x[0]-1), 3))
}

func SumSquares(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

var catalog = map[string]Function{}

func register(fn Function) {
	catalog[fn.Name] = fn
}

func init() {
	register(newFunction("user", "exp((Σx)^-2 + exp(x_1 - 1)^3)", 0, 1, User))
	register(newFunction("sum-squares", "Σ x_k^2", 0, 1, SumSquares))
	register(newFunction("rosenbrock", "extended Rosenbrock function", 0, 2, gfunctions.ExtendedRosenbrock{}.Func))
	register(newFunction("beale", "Beale function", 2, 2, gfunctions.Beale{}.Func))
}

func Lookup(name string) (Function, error) {
	fn, ok := catalog[name]
	if !ok {
		return Function{}, fmt.Errorf("%w: name=%q (available: %v)", ErrUnknown, name, Names())
	}
	return fn, nil
}

// Names は登録済みの関数名を昇順で返します。
func Names() []string {
	return slices.Sorted(maps.Keys(catalog))
}
