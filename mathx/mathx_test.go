package mathx_test

import (
	"math"
	"testing"

	"github.com/sw965/nabla/mathx"
)

func TestCentralDifference(t *testing.T) {
	h := 0.5
	// f(x) = x^2 at x = 3: f(3.5) = 12.25, f(2.5) = 6.25
	result := mathx.CentralDifference(12.25, 6.25, h)
	if result != 6.0 {
		t.Errorf("got %v, want 6", result)
	}

	var h32 float32 = 0.25
	result32 := mathx.CentralDifference[float32](1.5, 0.5, h32)
	if result32 != 2.0 {
		t.Errorf("got %v, want 2", result32)
	}
}

func TestCentralDifferenceNaN(t *testing.T) {
	result := mathx.CentralDifference(math.NaN(), 1.0, 1e-4)
	if !math.IsNaN(result) {
		t.Errorf("got %v, want NaN", result)
	}

	result = mathx.CentralDifference(math.Inf(1), 1.0, 1e-4)
	if !math.IsInf(result, 1) {
		t.Errorf("got %v, want +Inf", result)
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{0.0, true},
		{-1.2e-4, true},
		{math.MaxFloat64, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}

	for _, tc := range tests {
		if got := mathx.IsFinite(tc.x); got != tc.want {
			t.Errorf("IsFinite(%v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}
