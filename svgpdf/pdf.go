// Implements a PDF backend to render SVG images,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"image/color"
	"io"

	"github.com/benoitkugler/svgpaths/svgdraw"
	"github.com/benoitkugler/svgpaths/svgicon"
	"github.com/benoitkugler/svgpaths/svgpath"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgdraw.Driver  = (*Renderer)(nil)
	_ svgdraw.Filler  = (*filler)(nil)
	_ svgdraw.Stroker = (*stroker)(nil)
)

// Renderer writes paths as PDF drawing operations.
// Coordinates are in the unit of the underlying document.
type Renderer struct {
	pdf     *gofpdf.Fpdf
	filler  filler
	stroker stroker

	boxes []svgpath.Bounds
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	r   *Renderer
	pdf *gofpdf.Fpdf

	a        svgpath.Point     // current point, used to compute the bounding box
	subpaths []svgpath.Subpath // for the current path
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`, on its current page.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	r := &Renderer{pdf: pdf}
	r.filler = filler{pather: pather{r: r, pdf: pdf}, useNonZeroWinding: true}
	r.stroker = stroker{pather{r: r, pdf: pdf}}
	return r
}

// Boxes returns the bounding box of each drawn path, in drawing order,
// excluding the stroke width.
func (r *Renderer) Boxes() []svgpath.Bounds { return r.boxes }

func (r *Renderer) SetupDrawers(willFill, willStroke bool) (f svgdraw.Filler, s svgdraw.Stroker) {
	if willFill || willStroke {
		r.boxes = append(r.boxes, svgpath.Bounds{})
	}
	if willFill {
		f = &r.filler
	}
	if willStroke {
		s = &r.stroker
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) svgpath.Point {
	return svgpath.Point{X: float64(a.X) / 64, Y: float64(a.Y) / 64}
}

func (p *pather) Clear() {
	p.a = svgpath.Point{}
	p.subpaths = p.subpaths[:0]
}

func (p *pather) Start(a fixed.Point26_6) {
	p.a = fixedTof(a)
	p.pdf.MoveTo(p.a.X, p.a.Y)
	p.subpaths = append(p.subpaths, svgpath.Subpath{Start: p.a})
}

func (p *pather) addSegment(seg svgpath.Segment) {
	if len(p.subpaths) == 0 { // tolerate a missing Start
		p.subpaths = append(p.subpaths, svgpath.Subpath{Start: seg.Start})
	}
	last := &p.subpaths[len(p.subpaths)-1]
	last.Segments = append(last.Segments, seg)
	p.a = seg.End
}

func (p *pather) Line(b fixed.Point26_6) {
	pb := fixedTof(b)
	p.pdf.LineTo(pb.X, pb.Y)
	p.addSegment(svgpath.Segment{Start: p.a, C1: p.a, C2: pb, End: pb})
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	pb, pc := fixedTof(b), fixedTof(c)
	p.pdf.CurveTo(pb.X, pb.Y, pc.X, pc.Y)
	// exact cubic form
	c1 := p.a.Add(pb.Sub(p.a).Mul(2. / 3))
	c2 := pc.Add(pb.Sub(pc).Mul(2. / 3))
	p.addSegment(svgpath.Segment{Start: p.a, C1: c1, C2: c2, End: pc})
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	pb, pc, pd := fixedTof(b), fixedTof(c), fixedTof(d)
	p.pdf.CurveBezierCubicTo(pb.X, pb.Y, pc.X, pc.Y, pd.X, pd.Y)
	p.addSegment(svgpath.Segment{Start: p.a, C1: pb, C2: pc, End: pd})
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
		if len(p.subpaths) != 0 {
			p.subpaths[len(p.subpaths)-1].Closed = true
		}
	}
}

// boundingBox returns the extent of the current path
func (p *pather) boundingBox() svgpath.Bounds { return svgpath.BoundsOf(p.subpaths) }

// record the bounding box of the current path
func (p *pather) record() {
	if n := len(p.r.boxes); n != 0 {
		p.r.boxes[n-1] = p.r.boxes[n-1].Union(p.boundingBox())
	}
}

// returns the RGB components and the alpha in [0, 1]
func splitColor(c color.Color, opacity float64) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha = opacity * float64(nc.A) / 0xff
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return int(nc.R), int(nc.G), int(nc.B), alpha
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitColor(c, opacity)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha, "Normal")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
	f.record()
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitColor(c, opacity)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha, "Normal")
}

var (
	capStyles = [...]string{
		svgicon.NilCap:       "butt",
		svgicon.ButtCap:      "butt",
		svgicon.SquareCap:    "square",
		svgicon.RoundCap:     "round",
		svgicon.CubicCap:     "round",
		svgicon.QuadraticCap: "round",
	}

	// PDF only supports miter, round and bevel joins
	joinStyles = [...]string{
		svgicon.Arc:       "miter",
		svgicon.Round:     "round",
		svgicon.Bevel:     "bevel",
		svgicon.Miter:     "miter",
		svgicon.MiterClip: "miter",
		svgicon.ArcClip:   "miter",
	}
)

func (s *stroker) SetStrokeOptions(options svgdraw.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyles[options.Join.TrailLineCap])
	s.pdf.SetLineJoinStyle(joinStyles[options.Join.LineJoin])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("S")
	s.record()
}

// RenderToPDF draws the document on a single page of size w x h (in points),
// fitting its viewBox, and writes the PDF file to `out`.
func RenderToPDF(doc *svgicon.Document, w, h float64, out io.Writer) error {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: gofpdf.SizeType{Wd: w, Ht: h}})
	pdf.AddPage()
	svgdraw.Draw(doc, NewRenderer(pdf), svgdraw.Fit(doc, 0, 0, w, h), 1)
	return pdf.Output(out)
}

// RenderSVGIconToPDF parses the icon and renders it at the
// size of its viewBox.
func RenderSVGIconToPDF(icon io.Reader, out io.Writer, opts ...svgicon.Option) error {
	doc, err := svgicon.ParseReader(icon, opts...)
	if err != nil {
		return err
	}
	return RenderToPDF(doc, doc.Width, doc.Height, out)
}
