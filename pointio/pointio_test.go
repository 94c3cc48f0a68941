package pointio_test

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sw965/nabla"
	"github.com/sw965/nabla/partial"
	"github.com/sw965/nabla/pointio"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  partial.Point
	}{
		{"single", "3.0\n", partial.Point{3.0}},
		{"spaces", "1 2.5   -3e-2\n", partial.Point{1.0, 2.5, -0.03}},
		{"tabs and blank lines", "\n  \n\t2\t5\n7 8\n", partial.Point{2.0, 5.0}},
		{"no newline", "0.5 0.25", partial.Point{0.5, 0.25}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := pointio.ParsePoint(strings.NewReader(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.want, p)
		})
	}
}

func TestParsePointErrors(t *testing.T) {
	_, err := pointio.ParsePoint(strings.NewReader(""))
	require.ErrorIs(t, err, pointio.ErrEmptyPoint)

	_, err = pointio.ParsePoint(strings.NewReader("\n   \n"))
	require.ErrorIs(t, err, pointio.ErrEmptyPoint)

	_, err = pointio.ParsePoint(strings.NewReader("1.0 abc 3.0\n"))
	require.ErrorIs(t, err, pointio.ErrBadCoordinate)
	require.Contains(t, err.Error(), `index=1 field="abc"`)
}

func TestParsePointLongLine(t *testing.T) {
	const dim = 20000
	fields := make([]string, dim)
	for i := range fields {
		fields[i] = "0.123456789"
	}
	input := "\n" + strings.Join(fields, " ") + "\n"
	require.Greater(t, len(input), 64*1024)

	p, err := pointio.ParsePoint(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, p, dim)
	require.Equal(t, 0.123456789, p[dim-1])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestParsePointReadError(t *testing.T) {
	_, err := pointio.ParsePoint(failingReader{})
	require.EqualError(t, err, "read failed")
}

func TestWriteResult(t *testing.T) {
	f := partial.Lift(func(x []float64) float64 { return 0.0 })
	result, err := nabla.Calculate(f, partial.Point{1.0, 2.0})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pointio.WriteResult(&buf, result))

	expected := "∂f/∂x_1 = 0\n" +
		"∂f/∂x_2 = 0\n" +
		"∂2f/∂x_1∂x_1 = 0\n" +
		"∂2f/∂x_2∂x_1 = 0\n" +
		"∂2f/∂x_1∂x_2 = 0\n" +
		"∂2f/∂x_2∂x_2 = 0\n"
	require.Equal(t, expected, buf.String())
}

func TestWriterFormat(t *testing.T) {
	w := pointio.Writer{Format: "%.3f"}
	require.Equal(t, "6.000", w.FormatValue(5.99999991))
	require.Equal(t, "0.1", pointio.Writer{}.FormatValue(0.1))
	require.Equal(t, "NaN", pointio.Writer{}.FormatValue(math.NaN()))
}

func TestValidateFormat(t *testing.T) {
	for _, format := range []string{"", "%f", "%.8f", "%+12.4e", "%G", "%v", "value: %g"} {
		require.NoError(t, pointio.ValidateFormat(format), format)
	}
	for _, format := range []string{"%d", "%s", "%x", "%", "%.3", "%f %f", "100%%", "plain"} {
		require.ErrorIs(t, pointio.ValidateFormat(format), pointio.ErrFormat, format)
	}
}
