package svgicon

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var errInvalidColor = errors.New("invalid color")

// parseSVGPattern parses a paint value : none, currentColor,
// a color in all its SVG forms.
// url(...) references (gradients, patterns) are not supported and
// resolve to the fallback color if any, or none.
func parseSVGPattern(v string) (Pattern, error) {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "url(") {
		_, fallback, _ := strings.Cut(v, ")")
		fallback = strings.TrimSpace(fallback)
		if fallback == "" {
			return Pattern{}, nil
		}
		return parseSVGPattern(fallback)
	}
	switch strings.ToLower(v) {
	case "none", "transparent":
		// signals that the function (fill or stroke) is off;
		// not the same as black
		return Pattern{}, nil
	case "currentcolor":
		return Pattern{CurrentColor: true}, nil
	}
	c, err := ParseSVGColor(v)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Color: c}, nil
}

// ParseSVGColor parses an SVG color string in all forms
// including all SVG1.1 names, obtained from the colornames package.
func ParseSVGColor(colorStr string) (color.Color, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	if cn, ok := colornames.Map[v]; ok {
		return color.NRGBA(cn), nil
	}
	if strings.HasPrefix(v, "#") {
		return parseSVGColorNum(v[1:])
	}
	if args, ok := functional(v, "rgb"); ok {
		return parseRGB(args, false)
	}
	if args, ok := functional(v, "rgba"); ok {
		return parseRGB(args, true)
	}
	return nil, fmt.Errorf("%w: %q", errInvalidColor, colorStr)
}

// functional returns the arguments of name(...)
func functional(v, name string) (string, bool) {
	if !strings.HasPrefix(v, name) {
		return "", false
	}
	v = strings.TrimSpace(v[len(name):])
	if !strings.HasPrefix(v, "(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[1 : len(v)-1], true
}

// parseSVGColorNum reads #rgb or #rrggbb (the # being removed)
func parseSVGColorNum(colorStr string) (color.Color, error) {
	switch len(colorStr) {
	case 6:
	case 3:
		// SVG specs say duplicate characters in case of 3 digit hex number
		colorStr = string([]byte{colorStr[0], colorStr[0],
			colorStr[1], colorStr[1], colorStr[2], colorStr[2]})
	default:
		return nil, fmt.Errorf("%w: #%s", errInvalidColor, colorStr)
	}
	var rgb [3]uint8
	for i := range rgb {
		t, err := strconv.ParseUint(colorStr[2*i:2*i+2], 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: #%s", errInvalidColor, colorStr)
		}
		rgb[i] = uint8(t)
	}
	return color.NRGBA{rgb[0], rgb[1], rgb[2], 0xff}, nil
}

func parseRGB(args string, withAlpha bool) (color.Color, error) {
	vals := splitOnCommaOrSpace(args)
	if len(vals) != 3 && !(withAlpha && len(vals) == 4) {
		return nil, fmt.Errorf("%w: rgb(%s)", errInvalidColor, args)
	}
	var cvals [3]uint8
	for i := range cvals {
		var err error
		cvals[i], err = parseColorValue(vals[i])
		if err != nil {
			return nil, err
		}
	}
	alpha := uint8(0xff)
	if len(vals) == 4 {
		a, err := readFraction(vals[3])
		if err != nil {
			return nil, fmt.Errorf("%w: alpha %q", errInvalidColor, vals[3])
		}
		alpha = uint8(clamp01(a)*0xff + 0.5)
	}
	return color.NRGBA{cvals[0], cvals[1], cvals[2], alpha}, nil
}

// parseColorValue reads an integer in [0, 255] or a percentage,
// clamping out of range values.
func parseColorValue(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		n, err := parseBasicFloat(v[:len(v)-1])
		if err != nil {
			return 0, fmt.Errorf("%w: component %q", errInvalidColor, v)
		}
		return uint8(clamp01(n/100)*0xff + 0.5), nil
	}
	n, err := parseBasicFloat(v)
	if err != nil {
		return 0, fmt.Errorf("%w: component %q", errInvalidColor, v)
	}
	return uint8(clamp01(n/0xff)*0xff + 0.5), nil
}
