package svgdraw

import (
	"image/color"
	"math"

	"github.com/benoitkugler/svgpaths/svgicon"
	"github.com/benoitkugler/svgpaths/svgpath"
	"golang.org/x/image/math/fixed"
)

// Paint is the drawing instruction for one path,
// at a given geometric scale.
type Paint struct {
	Subpaths []svgpath.Subpath // in document coordinates

	Fill   color.Color // nil means no fill
	Stroke color.Color // nil means no stroke

	FillOpacity, StrokeOpacity float64
	LineWidth                  float64 // effective width, in device units
	NonZeroWinding             bool

	Join svgicon.JoinOptions
	Dash svgicon.DashOptions // in device units
}

// EffectiveLineWidth returns the stroke width of `p` when its geometry
// is drawn with the given scale: the width follows the scale
// only if p.ScaleLineWidth is true.
func EffectiveLineWidth(p svgicon.Path, scale float64) float64 {
	if p.ScaleLineWidth {
		return p.LineWidth * scale
	}
	return p.LineWidth
}

// ScaleOf returns the geometric scale of `m`, that is
// the factor applied to lengths, for a uniform scale.
// For non uniform transforms, the square root of the area ratio is used.
func ScaleOf(m svgpath.Matrix2D) float64 {
	return math.Sqrt(math.Abs(m.Det()))
}

// Compose resolves the paint of each path of `doc`, in document order.
// Paths neither filled nor stroked are still returned.
func Compose(doc *svgicon.Document, scale float64) []Paint {
	out := make([]Paint, len(doc.Paths))
	for i, p := range doc.Paths {
		dash := p.Dash
		if p.ScaleLineWidth {
			dash = dash.Scaled(scale)
		}
		out[i] = Paint{
			Subpaths:       p.Subpaths,
			Fill:           p.Fill,
			Stroke:         p.Stroke,
			FillOpacity:    p.FillOpacity,
			StrokeOpacity:  p.StrokeOpacity,
			LineWidth:      EffectiveLineWidth(p, scale),
			NonZeroWinding: p.NonZeroWinding,
			Join:           p.Join,
			Dash:           dash,
		}
	}
	return out
}

func (p Paint) strokeOptions() StrokeOptions {
	join := p.Join
	if join.TrailLineCap == svgicon.NilCap {
		join.TrailLineCap = svgicon.DefaultStyle.Join.TrailLineCap
	}
	if join.LeadLineCap == svgicon.NilCap {
		join.LeadLineCap = join.TrailLineCap
	}
	if join.LineGap == svgicon.NilGap {
		join.LineGap = svgicon.FlatGap
	}
	return StrokeOptions{
		LineWidth: fixed.Int26_6(p.LineWidth * 64),
		Join:      join,
		Dash:      p.Dash,
	}
}

// Fit returns the transform mapping the document viewBox into the
// rectangle (x, y, w, h). When the document has no viewBox,
// the extent of its paths is used instead.
func Fit(doc *svgicon.Document, x, y, w, h float64) svgpath.Matrix2D {
	vb := doc.ViewBox
	if vb.IsEmpty() {
		vb = doc.Bounds()
	}
	if vb.IsEmpty() {
		return svgpath.Identity.Translate(x-vb.X, y-vb.Y)
	}
	return svgpath.Identity.Translate(x, y).Scale(w/vb.W, h/vb.H).Translate(-vb.X, -vb.Y)
}
