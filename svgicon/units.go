package svgicon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
)

// percentageReference is the viewport dimension
// a length in percent refers to
type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// unit lengths, in user units (px), for a 96 dpi resolution
var absoluteUnits = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96. / 72,
	"pc": 16,
	"mm": 96. / 25.4,
	"cm": 96. / 2.54,
	"in": 96,
	// font relative units, with the default font size
	"em": 16,
	"ex": 8,
}

// parseLength reads a number followed by an optional unit, returning
// the number, and the unit ("%" for percentages).
func parseLength(s string) (float64, string, error) {
	b := []byte(strings.TrimSpace(s))
	n, u := parse.Dimension(b)
	if n == 0 || n+u != len(b) {
		return 0, "", fmt.Errorf("invalid length %q", s)
	}
	f, err := strconv.ParseFloat(string(b[:n]), 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid length %q: %w", s, err)
	}
	return f, strings.ToLower(string(b[n : n+u])), nil
}

// parseUnit converts a length to user units, resolving percentages
// against the current viewport.
func (c *iconCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	f, unit, err := parseLength(s)
	if err != nil {
		return 0, err
	}
	if unit == "%" {
		vb := c.doc.ViewBox
		switch asPerc {
		case widthPercentage:
			return f / 100 * vb.W, nil
		case heightPercentage:
			return f / 100 * vb.H, nil
		default: // normalized diagonal
			return f / 100 * math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2, nil
		}
	}
	factor, ok := absoluteUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q in %q", unit, s)
	}
	return f * factor, nil
}
