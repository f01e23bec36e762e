// Given a parsed SVG document, implements how to
// draw it on screen.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
package svgdraw

import (
	"image/color"

	"github.com/benoitkugler/svgpaths/svgicon"
	"github.com/benoitkugler/svgpaths/svgpath"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any SVG kwowledge
// In particular, tranformations matrix are already applied to the points
// before sending them to the Drawer.
type Drawer interface {
	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// Start starts a new path at the given point.
	Start(a fixed.Point26_6)

	// Line Adds a line for the current point to `b`
	Line(b fixed.Point26_6)

	// QuadBezier adds a quadratic bezier curve to the path.
	// Draw only emits lines and cubics: this method is for
	// callers feeding a Drawer with their own geometry.
	QuadBezier(b, c fixed.Point26_6)

	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)

	// Closes the path to the start point if `closeLoop` is true
	Stop(closeLoop bool)

	// SetColor set the color for the current path.
	// `opacity` must be combined with the color alpha.
	SetColor(c color.Color, opacity float64)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the filling mode
	Draw()
}

type Filler interface {
	Drawer

	// Decide to use or not the NonZeroWinding rule for the current path
	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// When both booleans are true, one can assume that the exact same draw operations
	// will be performed on the Filler first and then on the Stroker.
	// This promise may enable the implementation to avoid duplicating filled and stroked paths
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// StrokeOptions are the resolved stroking parameters, in device units.
type StrokeOptions struct {
	LineWidth fixed.Int26_6 // width of the line
	Join      svgicon.JoinOptions
	Dash      svgicon.DashOptions
}

func toFixed(p svgpath.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(p.X * 64), Y: fixed.Int26_6(p.Y * 64)}
}

// Draw the document into the driver `d`, in document order,
// after applying the `target` transform, which usually comes from Fit.
// For each path, the fill is drawn first, then the stroke.
func Draw(doc *svgicon.Document, d Driver, target svgpath.Matrix2D, opacity float64) {
	for _, paint := range Compose(doc, ScaleOf(target)) {
		drawPaint(d, paint, target, opacity)
	}
}

func drawPaint(d Driver, paint Paint, target svgpath.Matrix2D, opacity float64) {
	// a zero width stroke paints nothing
	filler, stroker := d.SetupDrawers(paint.Fill != nil, paint.Stroke != nil && paint.LineWidth > 0)
	if filler != nil { // nil color disable filling
		filler.Clear()
		filler.SetWinding(paint.NonZeroWinding)
		drawSubpaths(filler, paint.Subpaths, target)
		filler.SetColor(paint.Fill, paint.FillOpacity*opacity)
		filler.Draw()
		filler.SetWinding(true) // default is true
	}

	if stroker != nil { // nil color disable lining
		stroker.Clear()
		stroker.SetStrokeOptions(paint.strokeOptions())
		drawSubpaths(stroker, paint.Subpaths, target)
		stroker.SetColor(paint.Stroke, paint.StrokeOpacity*opacity)
		stroker.Draw()
	}
}

func drawSubpaths(dr Drawer, sps []svgpath.Subpath, m svgpath.Matrix2D) {
	for _, sp := range sps {
		sp = sp.Transform(m)
		dr.Start(toFixed(sp.Start))
		for _, seg := range sp.Segments {
			if seg.IsLine() {
				dr.Line(toFixed(seg.End))
			} else {
				dr.CubeBezier(toFixed(seg.C1), toFixed(seg.C2), toFixed(seg.End))
			}
		}
		dr.Stop(sp.Closed)
	}
}
