package svgicon

import (
	"image/color"

	"github.com/benoitkugler/svgpaths/svgpath"
)

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds = svgpath.Bounds

// Path is one shape of the document, with its resolved geometry and paint.
// Paths are never modified once parsed: see Document.Restyle.
type Path struct {
	// Subpaths are in the document coordinates :
	// the element and ancestors transforms are already applied.
	Subpaths []svgpath.Subpath

	Fill   color.Color // nil means no fill
	Stroke color.Color // nil means no stroke

	FillOpacity, StrokeOpacity float64 // including the group opacities
	LineWidth                  float64 // in document units
	// ScaleLineWidth is true if the stroke width must follow
	// the geometric scale used when drawing.
	ScaleLineWidth bool
	NonZeroWinding bool

	Join JoinOptions
	Dash DashOptions

	ID      string // id attribute, if any
	Element string // tag of the source element, like "rect"

	nonScalingStroke bool
}

// SVGPath returns the path data of the geometry.
func (p Path) SVGPath() string { return svgpath.FormatSubpaths(p.Subpaths) }

// Bounds returns the extent of the geometry, excluding the stroke.
func (p Path) Bounds() Bounds { return svgpath.BoundsOf(p.Subpaths) }

// Skip records an element whose content could not be used as is.
type Skip struct {
	Element string // tag name
	ID      string
	Index   int // of the element, in document order, starting at 0
	// Omitted is true when the element produced no Path.
	// It is false for errors not preventing rendering,
	// like an invalid transform operation or property, which are ignored.
	Omitted bool
	Err     error
}

// Document holds data from a parsed SVG.
// It is created by one call to Parse, and never modified afterwards.
type Document struct {
	ViewBox       Bounds
	Width, Height float64 // top level width and height attributes, in px

	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here

	// Paths are in document order : later paths are painted above
	Paths []Path

	// Skipped lists the contained errors
	Skipped []Skip
}

// Bounds returns the extent of all the paths of the document,
// which may differ from the ViewBox.
func (doc *Document) Bounds() Bounds {
	var out Bounds
	for _, p := range doc.Paths {
		out = out.Union(p.Bounds())
	}
	return out
}

// Restyle returns a copy of the document with the given
// paint options applied : WithFillColor, WithStrokeColor and WithScaleLineWidth.
// Other options are ignored. `doc` is not modified.
func (doc *Document) Restyle(opts ...Option) *Document {
	cfg := newConfig(opts)
	out := *doc
	out.Paths = make([]Path, len(doc.Paths))
	for i, p := range doc.Paths {
		out.Paths[i] = cfg.applyOverrides(p)
	}
	return &out
}

func (cfg config) applyOverrides(p Path) Path {
	if cfg.fill != nil {
		p.Fill = cfg.fill
	}
	if cfg.stroke != nil {
		p.Stroke = cfg.stroke
	}
	if cfg.scaleLineWidthSet {
		p.ScaleLineWidth = cfg.scaleLineWidth && !p.nonScalingStroke
	}
	return p
}

// newPath binds the style to the geometry
func (cfg config) newPath(st Style, sps []svgpath.Subpath, element, id string) Path {
	p := Path{
		Subpaths:         sps,
		Fill:             st.Fill.resolve(st.Color),
		Stroke:           st.Stroke.resolve(st.Color),
		FillOpacity:      st.FillOpacity * st.Opacity,
		StrokeOpacity:    st.StrokeOpacity * st.Opacity,
		LineWidth:        st.LineWidth,
		NonZeroWinding:   st.NonZeroWinding,
		Join:             st.Join,
		Dash:             st.Dash,
		ID:               id,
		Element:          element,
		nonScalingStroke: st.NonScalingStroke,
	}
	p.ScaleLineWidth = cfg.scaleLineWidth && !p.nonScalingStroke
	return cfg.applyOverrides(p)
}
