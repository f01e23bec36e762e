// Implements an abstract, resolution independent representation of
// svg paths, which can then be consumed by painting drivers.
//
// Path data is read by a Scanner into Commands, which a Builder
// turns into Subpaths made only of cubic Bézier segments.
package svgpath

import (
	"math"
	"strings"
)

// Point is a position in user space.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Mul(f float64) Point { return Point{p.X * f, p.Y * f} }

// lerp returns p + t(q - p)
func (p Point) lerp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

// Segment is a cubic Bézier curve. Straight lines are
// represented with control points on the line.
type Segment struct {
	Start, C1, C2, End Point
}

// lineSegment returns the cubic form of the line a -> b
func lineSegment(a, b Point) Segment {
	return Segment{Start: a, C1: a.lerp(b, 1./3), C2: a.lerp(b, 2./3), End: b}
}

// quadSegment elevates the quadratic curve a, c, b to a cubic, which is exact.
func quadSegment(a, c, b Point) Segment {
	return Segment{Start: a, C1: a.lerp(c, 2./3), C2: b.lerp(c, 2./3), End: b}
}

// At evaluates the curve at t in [0, 1].
func (s Segment) At(t float64) Point {
	mt := 1 - t
	a, b, c, d := mt*mt*mt, 3*mt*mt*t, 3*mt*t*t, t*t*t
	return Point{
		X: a*s.Start.X + b*s.C1.X + c*s.C2.X + d*s.End.X,
		Y: a*s.Start.Y + b*s.C1.Y + c*s.C2.Y + d*s.End.Y,
	}
}

// Transform returns the segment with all its control points transformed.
func (s Segment) Transform(m Matrix2D) Segment {
	return Segment{
		Start: m.TransformPoint(s.Start),
		C1:    m.TransformPoint(s.C1),
		C2:    m.TransformPoint(s.C2),
		End:   m.TransformPoint(s.End),
	}
}

// IsLine returns true if the control points are
// on the chord, that is, the segment is straight.
func (s Segment) IsLine() bool {
	const eps = 1e-9
	d := s.End.Sub(s.Start)
	cross := func(p Point) float64 {
		v := p.Sub(s.Start)
		return d.X*v.Y - d.Y*v.X
	}
	scale := math.Max(1, math.Hypot(d.X, d.Y))
	return math.Abs(cross(s.C1)) <= eps*scale && math.Abs(cross(s.C2)) <= eps*scale
}

// Subpath is one continuous pen stroke : segments are contiguous,
// the first one starting at Start.
// A Subpath without segments is a single point, which is kept
// so that markers may still be drawn.
type Subpath struct {
	Start    Point
	Segments []Segment
	Closed   bool
}

// End returns the last point of the subpath.
func (sp Subpath) End() Point {
	if len(sp.Segments) == 0 {
		return sp.Start
	}
	return sp.Segments[len(sp.Segments)-1].End
}

// Transform returns a copy of the subpath with all points transformed.
func (sp Subpath) Transform(m Matrix2D) Subpath {
	out := Subpath{Start: m.TransformPoint(sp.Start), Closed: sp.Closed}
	if len(sp.Segments) != 0 {
		out.Segments = make([]Segment, len(sp.Segments))
		for i, s := range sp.Segments {
			out.Segments[i] = s.Transform(m)
		}
	}
	return out
}

// ToSVGPath returns the path data of the subpath,
// which parses back to the same geometry.
func (sp Subpath) ToSVGPath() string {
	var sb strings.Builder
	sp.writeTo(&sb)
	return sb.String()
}

func (sp Subpath) writeTo(sb *strings.Builder) {
	sb.WriteString("M")
	writePoint(sb, sp.Start)
	for _, s := range sp.Segments {
		sb.WriteString(" C")
		writePoint(sb, s.C1)
		sb.WriteByte(' ')
		writePoint(sb, s.C2)
		sb.WriteByte(' ')
		writePoint(sb, s.End)
	}
	if sp.Closed {
		sb.WriteString(" Z")
	}
}

func writePoint(sb *strings.Builder, p Point) {
	sb.WriteString(formatFloat(p.X))
	sb.WriteByte(',')
	sb.WriteString(formatFloat(p.Y))
}

// FormatSubpaths returns a string representation of the subpaths,
// as path data.
func FormatSubpaths(sps []Subpath) string {
	var sb strings.Builder
	for i, sp := range sps {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sp.writeTo(&sb)
	}
	return sb.String()
}
