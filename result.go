package nabla

import (
	"fmt"
	"iter"
	"slices"

	"github.com/sw965/nabla/mathx"
	"github.com/sw965/omw/slicesx"
	"gonum.org/v1/gonum/mat"
)

// FirstLabel は i 番目の軸 (0始まり) の1階偏微分のラベルを返します。
func FirstLabel(i int) string {
	return fmt.Sprintf("∂f/∂x_%d", i+1)
}

// SecondLabel returns the label of ∂f/∂x_outer differentiated again along
// x_inner. The inner axis is written first.
func SecondLabel(outer, inner int) string {
	return fmt.Sprintf("∂2f/∂x_%d∂x_%d", inner+1, outer+1)
}

type Entry struct {
	Label string
	Value float64
}

// Result holds dim first partials followed by dim*dim second partials, in the
// order they were computed.
type Result struct {
	dim     int
	entries []Entry
	index   map[string]int
}

func newResult(dim int, grad, hess []float64) (Result, error) {
	if len(grad) != dim || len(hess) != dim*dim {
		return Result{}, fmt.Errorf("%w: dim=%d len(grad)=%d len(hess)=%d", ErrInputShape, dim, len(grad), len(hess))
	}

	entries := make([]Entry, 0, dim+dim*dim)
	for i, v := range grad {
		entries = append(entries, Entry{Label: FirstLabel(i), Value: v})
	}

	for i := 0; i < dim; i++ {
		for j := 0; j < dim; j++ {
			entries = append(entries, Entry{Label: SecondLabel(i, j), Value: hess[i*dim+j]})
		}
	}

	labels := make([]string, len(entries))
	index := make(map[string]int, len(entries))
	for k, e := range entries {
		labels[k] = e.Label
		index[e.Label] = k
	}

	if !slicesx.IsUnique(labels) {
		return Result{}, fmt.Errorf("nabla: duplicate labels: dim=%d", dim)
	}
	return Result{dim: dim, entries: entries, index: index}, nil
}

func (r Result) Dim() int {
	return r.dim
}

// Len は dim + dim^2 です。
func (r Result) Len() int {
	return len(r.entries)
}

func (r Result) Entries() []Entry {
	return slices.Clone(r.entries)
}

func (r Result) Labels() []string {
	labels := make([]string, len(r.entries))
	for i, e := range r.entries {
		labels[i] = e.Label
	}
	return labels
}

func (r Result) Values() []float64 {
	values := make([]float64, len(r.entries))
	for i, e := range r.entries {
		values[i] = e.Value
	}
	return values
}

func (r Result) Value(label string) (float64, bool) {
	k, ok := r.index[label]
	if !ok {
		return 0.0, false
	}
	return r.entries[k].Value, true
}

// All iterates over (label, value) pairs in insertion order.
func (r Result) All() iter.Seq2[string, float64] {
	return func(yield func(string, float64) bool) {
		for _, e := range r.entries {
			if !yield(e.Label, e.Value) {
				return
			}
		}
	}
}

func (r Result) Gradient() []float64 {
	grad := make([]float64, r.dim)
	for i := range grad {
		grad[i] = r.entries[i].Value
	}
	return grad
}

// Second returns ∂2f/∂x_{inner+1}∂x_{outer+1}.
func (r Result) Second(outer, inner int) (float64, error) {
	if outer < 0 || outer >= r.dim || inner < 0 || inner >= r.dim {
		return 0.0, fmt.Errorf("%w: outer=%d inner=%d dim=%d", ErrInputShape, outer, inner, r.dim)
	}
	return r.entries[r.dim+outer*r.dim+inner].Value, nil
}

// Hessian returns the second partials as a dim×dim matrix whose element (i, j)
// is Second(i, j). The matrix is not symmetrized.
func (r Result) Hessian() *mat.Dense {
	if r.dim == 0 {
		return &mat.Dense{}
	}

	data := make([]float64, r.dim*r.dim)
	for k := range data {
		data[k] = r.entries[r.dim+k].Value
	}
	return mat.NewDense(r.dim, r.dim, data)
}

// Degenerate returns the labels whose value is NaN or ±Inf.
func (r Result) Degenerate() []string {
	var labels []string
	for _, e := range r.entries {
		if !mathx.IsFinite(e.Value) {
			labels = append(labels, e.Label)
		}
	}
	return labels
}
