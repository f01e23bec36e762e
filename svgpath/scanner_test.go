package svgpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cmd(kind CommandKind, rel bool, args ...float64) Command {
	c := Command{Kind: kind, Relative: rel}
	copy(c.Args[:], args)
	return c
}

func TestScanCommands(t *testing.T) {
	for _, test := range []struct {
		d    string
		want []Command
	}{
		{"M10 20", []Command{cmd(MoveTo, false, 10, 20)}},
		{"m10,20 l5-5", []Command{cmd(MoveTo, true, 10, 20), cmd(LineTo, true, 5, -5)}},
		{
			"M0 0 10 10 20 20", // implicit line-tos
			[]Command{cmd(MoveTo, false, 0, 0), cmd(LineTo, false, 10, 10), cmd(LineTo, false, 20, 20)},
		},
		{
			"m0 0 10 10", // implicit relative line-tos
			[]Command{cmd(MoveTo, true, 0, 0), cmd(LineTo, true, 10, 10)},
		},
		{
			"M0,0L1,1,2,2",
			[]Command{cmd(MoveTo, false, 0, 0), cmd(LineTo, false, 1, 1), cmd(LineTo, false, 2, 2)},
		},
		{"M.5.5", []Command{cmd(MoveTo, false, .5, .5)}},
		{"M1. 2 L3 4", []Command{cmd(MoveTo, false, 1, 2), cmd(LineTo, false, 3, 4)}},
		{"M0 0 L10. 5.", []Command{cmd(MoveTo, false, 0, 0), cmd(LineTo, false, 10, 5)}},
		{"M1..5", []Command{cmd(MoveTo, false, 1, .5)}},
		{"M1e2-1.5E-1", []Command{cmd(MoveTo, false, 100, -0.15)}},
		{"M0 0H10V-5h1v1", []Command{
			cmd(MoveTo, false, 0, 0),
			cmd(HorizontalLineTo, false, 10), cmd(VerticalLineTo, false, -5),
			cmd(HorizontalLineTo, true, 1), cmd(VerticalLineTo, true, 1),
		}},
		{"M0 0C1 2 3 4 5 6S7 8 9 10", []Command{
			cmd(MoveTo, false, 0, 0),
			cmd(CubicTo, false, 1, 2, 3, 4, 5, 6),
			cmd(SmoothCubicTo, false, 7, 8, 9, 10),
		}},
		{"M0 0q1 2 3 4t5 6", []Command{
			cmd(MoveTo, false, 0, 0),
			cmd(QuadTo, true, 1, 2, 3, 4),
			cmd(SmoothQuadTo, true, 5, 6),
		}},
		{"M0 0a1 1 0 0110 10", []Command{ // glued flags
			cmd(MoveTo, false, 0, 0),
			cmd(ArcTo, true, 1, 1, 0, 0, 1, 10, 10),
		}},
		{"M0 0A-1 -2 30 1,0 5 5", []Command{ // negative radii
			cmd(MoveTo, false, 0, 0),
			cmd(ArcTo, false, 1, 2, 30, 1, 0, 5, 5),
		}},
		{"M0 0 L 1 1 Z M 2 2 z", []Command{
			cmd(MoveTo, false, 0, 0), cmd(LineTo, false, 1, 1), cmd(Close, false),
			cmd(MoveTo, false, 2, 2), cmd(Close, true),
		}},
		{"  ", nil},
	} {
		got, err := ParseCommands(test.d)
		require.NoError(t, err, test.d)
		assert.Equal(t, test.want, got, test.d)
	}
}

func TestScanErrors(t *testing.T) {
	for _, d := range []string{
		"L10 10",         // no move-to
		"10 10",          // no command
		"M10",            // missing operand
		"M10 10 L5",      // odd operands
		"M0 0 C1 2 3 4",  // too few
		"M0 0 X 5",       // unknown letter
		"M0 0 L1 1 Z 5 5", // operands after close
		"M0 0 L1 #",      // not a number
		"M0 0 A1 1 0 2 0 5 5", // bad flag
		"M0 0 L1 1px",
	} {
		_, err := ParseCommands(d)
		require.Error(t, err, d)
		assert.ErrorIs(t, err, ErrMalformedPath, d)
		var pe *PathError
		assert.ErrorAs(t, err, &pe, d)
	}
}

func TestCommandsRestartable(t *testing.T) {
	seq := Commands("M0 0 L1 1 L2 2")
	count := func() (n int) {
		for _, err := range seq {
			require.NoError(t, err)
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())

	// early break
	for c := range seq {
		assert.Equal(t, MoveTo, c.Kind)
		break
	}
}

func TestCommandsError(t *testing.T) {
	var (
		n   int
		err error
	)
	for _, e := range Commands("M0 0 L1 1 L2") {
		if e != nil {
			err = e
			break
		}
		n++
	}
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, ErrMalformedPath)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "M10 -2.5", cmd(MoveTo, false, 10, -2.5).String())
	assert.Equal(t, "a1 1 0 0 1 10 10", cmd(ArcTo, true, 1, 1, 0, 0, 1, 10, 10).String())
	assert.Equal(t, "Z", cmd(Close, false).String())
	assert.Equal(t, "SmoothQuadTo", SmoothQuadTo.String())
}

func TestParseNumbers(t *testing.T) {
	for _, test := range []struct {
		v    string
		want []float64
	}{
		{"", nil},
		{"1 2 3", []float64{1, 2, 3}},
		{" 1,2 , 3 ", []float64{1, 2, 3}},
		{"0 0 100 50.5", []float64{0, 0, 100, 50.5}},
		{"10-5", []float64{10, -5}},
		{"0 0 10. 20", []float64{0, 0, 10, 20}},
	} {
		got, err := ParseNumbers(test.v)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, test.v)
	}

	_, err := ParseNumbers("1 a")
	assert.ErrorIs(t, err, ErrMalformedPath)
}
