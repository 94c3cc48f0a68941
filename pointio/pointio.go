// Package pointio reads points from text and writes derivative results as
// "label = value" lines.
package pointio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/sw965/nabla"
	"github.com/sw965/nabla/partial"
)

var (
	ErrEmptyPoint    = errors.New("pointio: empty point")
	ErrBadCoordinate = errors.New("pointio: bad coordinate")
	ErrFormat        = errors.New("pointio: bad format")
)

// ParsePoint reads the first non-blank line of r as whitespace separated
// coordinates. Lines have no length limit.
func ParsePoint(r io.Reader) (partial.Point, error) {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if fields := strings.Fields(line); len(fields) != 0 {
			return ParseFields(fields)
		}
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPoint
		}
		if err != nil {
			return nil, err
		}
	}
}

func ParseFields(fields []string) (partial.Point, error) {
	if len(fields) == 0 {
		return nil, ErrEmptyPoint
	}

	p := make(partial.Point, len(fields))
	for i, field := range fields {
		v, err := cast.ToFloat64E(field)
		if err != nil {
			return nil, fmt.Errorf("%w: index=%d field=%q", ErrBadCoordinate, i, field)
		}
		p[i] = v
	}
	return p, nil
}

type Writer struct {
	// Format は値の書式 (例: "%.8f")。空なら最短の表現を使います。
	Format string
}

// ValidateFormat accepts "" or a string with exactly one float verb
// (e, E, f, F, g, G, v), optionally with flags, width and precision.
func ValidateFormat(format string) error {
	if format == "" {
		return nil
	}
	if strings.Count(format, "%") != 1 {
		return fmt.Errorf("%w: format=%q must contain exactly one verb", ErrFormat, format)
	}

	verb := strings.TrimLeft(format[strings.IndexByte(format, '%')+1:], "+-# 0123456789.")
	if verb == "" || !strings.ContainsRune("eEfFgGv", rune(verb[0])) {
		return fmt.Errorf("%w: format=%q must use a float verb", ErrFormat, format)
	}
	return nil
}

func (w Writer) FormatValue(v float64) string {
	if w.Format == "" {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprintf(w.Format, v)
}

// Write prints one line per entry in the order of res.
func (w Writer) Write(dst io.Writer, res nabla.Result) error {
	bw := bufio.NewWriter(dst)
	for label, v := range res.All() {
		if _, err := fmt.Fprintf(bw, "%s = %s\n", label, w.FormatValue(v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func WriteResult(dst io.Writer, res nabla.Result) error {
	return Writer{}.Write(dst, res)
}
