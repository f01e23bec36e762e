package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/benoitkugler/svgpaths/svgpath"
)

// svgFunc reads the attributes of one element. Shapes return
// their path equivalent, other elements a nil sequence.
type svgFunc func(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error)

var drawFuncs map[string]svgFunc

func init() {
	// avoids cyclical static declaration (useF replays elements)
	drawFuncs = map[string]svgFunc{
		"svg":      svgF,
		"g":        gF,
		"a":        gF,
		"switch":   gF,
		"symbol":   gF, // only reached through use
		"line":     lineF,
		"rect":     rectF,
		"circle":   circleF,
		"ellipse":  ellipseF,
		"polyline": polylineF,
		"polygon":  polygonF,
		"path":     pathF,
		"desc":     descF,
		"title":    titleF,
		"use":      useF,
	}
}

// skippedElements are not rendered, nor their children.
// defs and symbol children are kept for use elements.
var skippedElements = map[string]bool{
	"defs":           true,
	"symbol":         true,
	"clipPath":       true,
	"mask":           true,
	"pattern":        true,
	"marker":         true,
	"linearGradient": true,
	"radialGradient": true,
	"filter":         true,
	"style":          true,
	"script":         true,
	"text":           true,
	"foreignObject":  true,
	"metadata":       true,
}

var errNegativeSize = errors.New("negative size")

// attrValues reads the given attributes as lengths;
// missing ones are absent from the returned map.
func (c *iconCursor) attrValues(attrs []xml.Attr, names map[string]percentageReference) (vals map[string]float64, err error) {
	vals = make(map[string]float64, len(names))
	for _, attr := range attrs {
		ref, ok := names[attr.Name.Local]
		if !ok {
			continue
		}
		v, err := c.parseUnit(attr.Value, ref)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr.Name.Local, err)
		}
		vals[attr.Name.Local] = v
	}
	return vals, nil
}

func svgF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	if c.rootRead {
		// nested viewport : only its position is supported
		vals, err := c.attrValues(attrs, map[string]percentageReference{"x": widthPercentage, "y": heightPercentage})
		if err != nil {
			return nil, err
		}
		top := &c.styleStack[len(c.styleStack)-1]
		top.transform = top.transform.Translate(vals["x"], vals["y"])
		return nil, nil
	}
	c.rootRead = true

	vb := &c.doc.ViewBox
	for _, attr := range attrs {
		if attr.Name.Local != "viewBox" {
			continue
		}
		points, err := svgpath.ParseNumbers(attr.Value)
		if err != nil {
			return nil, fmt.Errorf("attribute viewBox: %w", err)
		}
		if len(points) != 4 {
			return nil, fmt.Errorf("attribute viewBox: expected 4 numbers, got %d", len(points))
		}
		if points[2] < 0 || points[3] < 0 {
			return nil, fmt.Errorf("attribute viewBox: %w", errNegativeSize)
		}
		vb.X, vb.Y, vb.W, vb.H = points[0], points[1], points[2], points[3]
	}
	for _, attr := range attrs {
		var (
			dst *float64
			ref percentageReference
		)
		switch attr.Name.Local {
		case "width":
			dst, ref = &c.doc.Width, widthPercentage
		case "height":
			dst, ref = &c.doc.Height, heightPercentage
		default:
			continue
		}
		v, err := c.parseUnit(attr.Value, ref)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attr.Name.Local, err)
		}
		*dst = v
	}
	if vb.W == 0 && vb.H == 0 {
		vb.W, vb.H = c.doc.Width, c.doc.Height
	}
	if c.doc.Width == 0 {
		c.doc.Width = vb.W
	}
	if c.doc.Height == 0 {
		c.doc.Height = vb.H
	}
	return nil, nil
}

func gF(*iconCursor, []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	return nil, nil // g does nothing but push the style
}

func rectF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	vals, err := c.attrValues(attrs, map[string]percentageReference{
		"x": widthPercentage, "y": heightPercentage,
		"width": widthPercentage, "height": heightPercentage,
		"rx": widthPercentage, "ry": heightPercentage,
	})
	if err != nil {
		return nil, err
	}
	w, h := vals["width"], vals["height"]
	if w < 0 || h < 0 {
		return nil, fmt.Errorf("rect: %w", errNegativeSize)
	}
	if w == 0 || h == 0 { // not drawn, but not an error
		return nil, nil
	}
	rx, hasRx := vals["rx"]
	ry, hasRy := vals["ry"]
	if rx < 0 || ry < 0 {
		return nil, fmt.Errorf("rect radius: %w", errNegativeSize)
	}
	if !hasRx {
		rx = ry
	} else if !hasRy {
		ry = rx
	}
	return svgpath.Seq(svgpath.RectCommands(vals["x"], vals["y"], w, h, rx, ry)), nil
}

func circleF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	vals, err := c.attrValues(attrs, map[string]percentageReference{
		"cx": widthPercentage, "cy": heightPercentage, "r": diagPercentage,
	})
	if err != nil {
		return nil, err
	}
	r := vals["r"]
	if r < 0 {
		return nil, fmt.Errorf("circle radius: %w", errNegativeSize)
	}
	if r == 0 { // not drawn, but not an error
		return nil, nil
	}
	return svgpath.Seq(svgpath.EllipseCommands(vals["cx"], vals["cy"], r, r)), nil
}

func ellipseF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	vals, err := c.attrValues(attrs, map[string]percentageReference{
		"cx": widthPercentage, "cy": heightPercentage,
		"rx": widthPercentage, "ry": heightPercentage,
	})
	if err != nil {
		return nil, err
	}
	rx, hasRx := vals["rx"]
	ry, hasRy := vals["ry"]
	if !hasRx {
		rx = ry
	} else if !hasRy {
		ry = rx
	}
	if rx < 0 || ry < 0 {
		return nil, fmt.Errorf("ellipse radius: %w", errNegativeSize)
	}
	if rx == 0 || ry == 0 {
		return nil, nil
	}
	return svgpath.Seq(svgpath.EllipseCommands(vals["cx"], vals["cy"], rx, ry)), nil
}

func lineF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	vals, err := c.attrValues(attrs, map[string]percentageReference{
		"x1": widthPercentage, "y1": heightPercentage,
		"x2": widthPercentage, "y2": heightPercentage,
	})
	if err != nil {
		return nil, err
	}
	return svgpath.Seq(svgpath.LineCommands(vals["x1"], vals["y1"], vals["x2"], vals["y2"])), nil
}

func readPoints(attrs []xml.Attr) ([]float64, error) {
	for _, attr := range attrs {
		if attr.Name.Local == "points" {
			points, err := svgpath.ParseNumbers(attr.Value)
			if err != nil {
				return nil, fmt.Errorf("attribute points: %w", err)
			}
			return points, nil
		}
	}
	return nil, nil
}

func polylineF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	points, err := readPoints(attrs)
	if err != nil {
		return nil, err
	}
	if cmds := svgpath.PolylineCommands(points, false); cmds != nil {
		return svgpath.Seq(cmds), nil
	}
	return nil, nil
}

func polygonF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	points, err := readPoints(attrs)
	if err != nil {
		return nil, err
	}
	if cmds := svgpath.PolylineCommands(points, true); cmds != nil {
		return svgpath.Seq(cmds), nil
	}
	return nil, nil
}

func pathF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	for _, attr := range attrs {
		if attr.Name.Local == "d" && strings.TrimSpace(attr.Value) != "" {
			return svgpath.Commands(attr.Value), nil
		}
	}
	return nil, nil // no path data disables rendering
}

func descF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	c.inDescText = true
	c.doc.Descriptions = append(c.doc.Descriptions, "")
	return nil, nil
}

func titleF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	c.inTitleText = true
	c.doc.Titles = append(c.doc.Titles, "")
	return nil, nil
}

// maxUseDepth bounds the nesting of use elements, which
// also breaks reference cycles
const maxUseDepth = 16

func useF(c *iconCursor, attrs []xml.Attr) (iter.Seq2[svgpath.Command, error], error) {
	var href string
	for _, attr := range attrs {
		if attr.Name.Local == "href" { // both href and xlink:href
			href = strings.TrimSpace(attr.Value)
		}
	}
	if href == "" {
		return nil, errors.New("only use tags with href is supported")
	}
	if !strings.HasPrefix(href, "#") {
		return nil, errors.New("only the ID CSS selector is supported")
	}
	def, ok := c.defs[href[1:]]
	if !ok {
		return nil, fmt.Errorf("href %s in use statement was not found in saved defs", href)
	}
	if c.useDepth >= maxUseDepth {
		return nil, fmt.Errorf("use elements nested too deeply (%s)", href)
	}
	vals, err := c.attrValues(attrs, map[string]percentageReference{"x": widthPercentage, "y": heightPercentage})
	if err != nil {
		return nil, err
	}
	top := &c.styleStack[len(c.styleStack)-1]
	top.transform = top.transform.Translate(vals["x"], vals["y"])

	c.useDepth++
	defer func() { c.useDepth-- }()
	return nil, c.replay(def)
}
