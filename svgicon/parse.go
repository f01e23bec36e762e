package svgicon

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgpaths/svgpath"
	"golang.org/x/image/math/fixed"
)

// Pattern is the value of a fill or stroke property.
// The zero value means "none".
type Pattern struct {
	Color        color.Color // nil for none
	CurrentColor bool        // use the value of the `color` property
}

// NewPlainColor returns a Pattern painting with the given opaque color.
func NewPlainColor(r, g, b, a uint8) Pattern {
	return Pattern{Color: color.NRGBA{R: r, G: g, B: b, A: a}}
}

// resolve returns the color to paint with, or nil for none
func (p Pattern) resolve(current color.Color) color.Color {
	if p.CurrentColor {
		return current
	}
	return p.Color
}

// Style holds the state of the SVG style.
// Each element inherits the style of its parent, with
// its own properties merged on top.
type Style struct {
	Fill, Stroke Pattern
	Color        color.Color // `color` property, used by currentColor

	FillOpacity, StrokeOpacity float64
	Opacity                    float64 // product of the ancestors opacities
	LineWidth                  float64
	NonZeroWinding             bool
	NonScalingStroke           bool // vector-effect: non-scaling-stroke

	Join JoinOptions
	Dash DashOptions

	transform svgpath.Matrix2D // current transform, including the ancestors ones
}

// Transform returns the transform applied to the element
// geometry, ancestors included.
func (s Style) Transform() svgpath.Matrix2D { return s.transform }

// DefaultStyle sets the default Style to fill black, non zero winding rule,
// full opacity, no stroke, ButtCap line end and Miter line connect.
var DefaultStyle = Style{
	Fill:           NewPlainColor(0x00, 0x00, 0x00, 0xff),
	Color:          color.NRGBA{A: 0xff},
	FillOpacity:    1.0,
	StrokeOpacity:  1.0,
	Opacity:        1.0,
	LineWidth:      1.0,
	NonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fToFixed(4),
		LineJoin:     Miter,
		TrailLineCap: ButtCap,
	},
	transform: svgpath.Identity,
}

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

func parseBasicFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func (c *iconCursor) readStyleAttr(curStyle *Style, parent Style, k, v string) error {
	switch k {
	case "fill":
		p, err := parseSVGPattern(v)
		if err != nil {
			return err
		}
		curStyle.Fill = p
	case "stroke":
		p, err := parseSVGPattern(v)
		if err != nil {
			return err
		}
		curStyle.Stroke = p
	case "color":
		if v == "inherit" {
			break
		}
		p, err := parseSVGPattern(v)
		if err != nil {
			return err
		}
		if !p.CurrentColor { // color: currentColor is a no-op
			curStyle.Color = p.Color
		}
	case "fill-rule":
		switch v {
		case "nonzero":
			curStyle.NonZeroWinding = true
		case "evenodd":
			curStyle.NonZeroWinding = false
		}
	case "vector-effect":
		curStyle.NonScalingStroke = v == "non-scaling-stroke"
	case "stroke-linegap":
		switch v {
		case "flat":
			curStyle.Join.LineGap = FlatGap
		case "round":
			curStyle.Join.LineGap = RoundGap
		case "cubic":
			curStyle.Join.LineGap = CubicGap
		case "quadratic":
			curStyle.Join.LineGap = QuadraticGap
		}
	case "stroke-leadlinecap":
		if cp, ok := capModes[v]; ok {
			curStyle.Join.LeadLineCap = cp
		}
	case "stroke-linecap":
		if cp, ok := capModes[v]; ok {
			curStyle.Join.TrailLineCap = cp
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = Miter
		case "miter-clip":
			curStyle.Join.LineJoin = MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = ArcClip
		case "round":
			curStyle.Join.LineJoin = Round
		case "arc":
			curStyle.Join.LineJoin = Arc
		case "bevel":
			curStyle.Join.LineJoin = Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseBasicFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fToFixed(mLimit)
	case "stroke-width":
		width, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		if width < 0 {
			return fmt.Errorf("negative stroke-width %g", width)
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := c.parseUnit(v, diagPercentage)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := c.parseUnit(dstr, diagPercentage)
			if err != nil {
				return err
			}
			if d < 0 {
				return fmt.Errorf("negative dash length %g", d)
			}
			dList[i] = d
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := readFraction(v)
		if err != nil {
			return err
		}
		op = clamp01(op)
		switch k {
		case "opacity": // not inherited, but applies to the whole subtree
			curStyle.Opacity = parent.Opacity * op
		case "fill-opacity":
			curStyle.FillOpacity = op
		case "stroke-opacity":
			curStyle.StrokeOpacity = op
		}
	case "transform":
		m, err := svgpath.ParseTransform(v)
		// the bad operations are skipped : keep what was understood
		curStyle.transform = parent.transform.Mult(m)
		if err != nil {
			return err
		}
	}
	return nil
}

var capModes = map[string]CapMode{
	"butt":      ButtCap,
	"round":     RoundCap,
	"square":    SquareCap,
	"cubic":     CubicCap,
	"quadratic": QuadraticCap,
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	} else if f > 1 {
		return 1
	}
	return f
}

// pushStyle parses the style of the element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// the presentation attributes; the style attribute has precedence.
// Invalid properties are ignored, and reported in the returned slice.
func (c *iconCursor) pushStyle(attrs []xml.Attr) (errs []error) {
	var pairs, stylePairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			stylePairs = append(stylePairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	pairs = append(pairs, stylePairs...)

	// Make a copy of the top style
	parent := c.styleStack[len(c.styleStack)-1]
	curStyle := parent
	curStyle.NonScalingStroke = DefaultStyle.NonScalingStroke // not inherited
	// the color property is needed to resolve currentColor : read it first
	for _, pair := range pairs {
		k, v, ok := splitProperty(pair)
		if ok && k == "color" {
			if err := c.readStyleAttr(&curStyle, parent, k, v); err != nil {
				errs = append(errs, fmt.Errorf("property %s: %w", k, err))
			}
		}
	}
	for _, pair := range pairs {
		k, v, ok := splitProperty(pair)
		if !ok || k == "color" {
			continue
		}
		if v == "inherit" { // the default, since curStyle is a copy of the parent
			continue
		}
		if err := c.readStyleAttr(&curStyle, parent, k, v); err != nil {
			errs = append(errs, fmt.Errorf("property %s: %w", k, err))
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return errs
}

func (c *iconCursor) popStyle() {
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
}

func splitProperty(pair string) (k, v string, ok bool) {
	k, v, ok = strings.Cut(pair, ":")
	if !ok {
		return "", "", false
	}
	k = strings.ToLower(strings.TrimSpace(k))
	v = strings.TrimSpace(v)
	return k, v, k != ""
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
		})
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}
