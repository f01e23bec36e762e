package svgpath

import (
	"strconv"
	"strings"
)

// CommandKind identifies one of the SVG path data commands.
type CommandKind uint8

const (
	MoveTo CommandKind = iota
	LineTo
	HorizontalLineTo
	VerticalLineTo
	CubicTo
	SmoothCubicTo
	QuadTo
	SmoothQuadTo
	ArcTo
	Close
)

var kindLetters = [...]byte{
	MoveTo:           'M',
	LineTo:           'L',
	HorizontalLineTo: 'H',
	VerticalLineTo:   'V',
	CubicTo:          'C',
	SmoothCubicTo:    'S',
	QuadTo:           'Q',
	SmoothQuadTo:     'T',
	ArcTo:            'A',
	Close:            'Z',
}

var kindArity = [...]int{
	MoveTo:           2,
	LineTo:           2,
	HorizontalLineTo: 1,
	VerticalLineTo:   1,
	CubicTo:          6,
	SmoothCubicTo:    4,
	QuadTo:           4,
	SmoothQuadTo:     2,
	ArcTo:            7,
	Close:            0,
}

// indexed by the lower case letter
var letterKinds = map[byte]CommandKind{
	'm': MoveTo,
	'l': LineTo,
	'h': HorizontalLineTo,
	'v': VerticalLineTo,
	'c': CubicTo,
	's': SmoothCubicTo,
	'q': QuadTo,
	't': SmoothQuadTo,
	'a': ArcTo,
	'z': Close,
}

// Arity returns the number of operands expected by the command.
func (k CommandKind) Arity() int { return kindArity[k] }

// Letter returns the absolute (upper case) letter of the command.
func (k CommandKind) Letter() byte { return kindLetters[k] }

func (k CommandKind) String() string {
	switch k {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case HorizontalLineTo:
		return "HorizontalLineTo"
	case VerticalLineTo:
		return "VerticalLineTo"
	case CubicTo:
		return "CubicTo"
	case SmoothCubicTo:
		return "SmoothCubicTo"
	case QuadTo:
		return "QuadTo"
	case SmoothQuadTo:
		return "SmoothQuadTo"
	case ArcTo:
		return "ArcTo"
	case Close:
		return "Close"
	default:
		return "<unknown CommandKind>"
	}
}

// Command is one parsed path data command, with its operands.
// For ArcTo the operands are rx, ry, x-axis-rotation (degrees),
// large-arc flag, sweep flag, x, y ; flags are 0 or 1.
type Command struct {
	Kind     CommandKind
	Relative bool
	Args     [7]float64
}

// Operands returns the meaningful part of Args.
func (c Command) Operands() []float64 {
	return c.Args[:c.Kind.Arity()]
}

// Letter returns the command letter, lower case for relative commands.
func (c Command) Letter() byte {
	l := c.Kind.Letter()
	if c.Relative {
		l += 'a' - 'A'
	}
	return l
}

// String returns the path data form of the command.
func (c Command) String() string {
	var sb strings.Builder
	sb.WriteByte(c.Letter())
	for i, v := range c.Operands() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatFloat(v))
	}
	return sb.String()
}

// formatFloat uses the smallest representation
// which parses back to the same value.
func formatFloat(v float64) string {
	if v == 0 { // avoid -0
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
