package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrMalformedTransform is wrapped by every error returned
// by ParseTransform.
var ErrMalformedTransform = errors.New("malformed transform")

// TransformError describes one invalid operation of a transform list.
type TransformError struct {
	Operation string // as written, possibly empty
	Operands  int
	Reason    string
}

func (e *TransformError) Error() string {
	if e.Operation == "" {
		return fmt.Sprintf("malformed transform: %s", e.Reason)
	}
	return fmt.Sprintf("malformed transform %q (%d operands): %s", e.Operation, e.Operands, e.Reason)
}

func (e *TransformError) Unwrap() error { return ErrMalformedTransform }

func errParamMismatch(op string, n int) error {
	return &TransformError{Operation: op, Operands: n, Reason: "wrong number of operands"}
}

// readTransformAttr post-multiplies m1 by the operation k.
func readTransformAttr(m1 Matrix2D, k string, points []float64) (Matrix2D, error) {
	ln := len(points)
	switch strings.ToLower(k) {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(points[1], points[2]).
				Rotate(points[0]*math.Pi/180).
				Translate(-points[1], -points[2])
		} else {
			return m1, errParamMismatch(k, ln)
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(points[0], points[1])
		} else {
			return m1, errParamMismatch(k, ln)
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch(k, ln)
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(points[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch(k, ln)
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(points[0], points[0])
		} else if ln == 2 {
			m1 = m1.Scale(points[0], points[1])
		} else {
			return m1, errParamMismatch(k, ln)
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: points[0],
				B: points[1],
				C: points[2],
				D: points[3],
				E: points[4],
				F: points[5]})
		} else {
			return m1, errParamMismatch(k, ln)
		}
	default:
		return m1, &TransformError{Operation: k, Operands: ln, Reason: "unknown operation"}
	}
	return m1, nil
}

// ParseTransform composes the operations of a transform attribute,
// in document order: the returned matrix applies the last operation
// to a point first.
//
// An invalid operation is skipped (treated as identity) and
// the remaining ones are still composed; the first such failure is
// returned alongside the matrix.
func ParseTransform(v string) (Matrix2D, error) {
	m1 := Identity
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimLeft(t, " \t\r\n,")
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 {
			keep(&TransformError{Operation: strings.TrimSpace(d[0]), Reason: "badly formed operation"})
			continue
		}
		name := strings.TrimSpace(d[0])
		points, err := ParseNumbers(d[1])
		if err != nil {
			keep(&TransformError{Operation: name, Reason: err.Error()})
			continue
		}
		m, err := readTransformAttr(m1, name, points)
		if err != nil {
			keep(err)
			continue
		}
		m1 = m
	}
	return m1, firstErr
}
