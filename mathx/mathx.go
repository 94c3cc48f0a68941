package mathx

import (
	"math"

	"golang.org/x/exp/constraints"
)

func CentralDifference[X constraints.Float](plusY, minusY, h X) X {
	return (plusY - minusY) / (2.0 * h)
}

// IsFinite は x が NaN でも ±Inf でもない場合に true を返します。
func IsFinite[X constraints.Float](x X) bool {
	v := float64(x)
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
