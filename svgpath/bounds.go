package svgpath

import "math"

// compute the bouding box of paths, from the critical points of the curves

// Bounds is an axis aligned rectangle.
type Bounds struct {
	X, Y, W, H float64
}

// IsEmpty returns true if the rectangle has no area.
func (b Bounds) IsEmpty() bool { return b.W <= 0 || b.H <= 0 }

type extent struct {
	minX, minY, maxX, maxY float64
}

func emptyExtent() extent {
	return extent{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
}

func (e *extent) add(p Point) {
	e.minX = math.Min(p.X, e.minX)
	e.minY = math.Min(p.Y, e.minY)
	e.maxX = math.Max(p.X, e.maxX)
	e.maxY = math.Max(p.Y, e.maxY)
}

func (e extent) bounds() Bounds {
	if e.minX > e.maxX { // nothing added
		return Bounds{}
	}
	return Bounds{X: e.minX, Y: e.minY, W: e.maxX - e.minX, H: e.maxY - e.minY}
}

// We would like to know the values of t where X' = 0
// X  = (p3-3*p2+3*p1-p0)t^3 + (3*p2-6*p1+3*p0)t^2 + (3*p1-3*p0)t + (p0)
// simplified:
// X' = (3*p3-9*p2+9*p1-3*p0)t^2 + (6*p2-12*p1+6*p0)t + (3*p1-3*p0)
// taken as aX^2 + bX + c  a,b and c are:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// bX + c, a simple line
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// criticalPoints returns the t in [0,1] where one coordinate
// reaches an extremum.
func (s Segment) criticalPoints() []float64 {
	aX, bX, cX := cubicDerivative(s.Start.X, s.C1.X, s.C2.X, s.End.X)
	aY, bY, cY := cubicDerivative(s.Start.Y, s.C1.Y, s.C2.Y, s.End.Y)
	var out []float64
	for _, t := range append(quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)...) {
		// filter invalid value
		if 0 < t && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

func (e *extent) addSegment(s Segment) {
	e.add(s.Start)
	e.add(s.End)
	for _, t := range s.criticalPoints() {
		e.add(s.At(t))
	}
}

func (e *extent) addSubpath(sp Subpath) {
	e.add(sp.Start)
	for _, s := range sp.Segments {
		e.addSegment(s)
	}
}

// Bounds returns the exact bounding box of the segment,
// which may be smaller than the hull of its control points.
func (s Segment) Bounds() Bounds {
	e := emptyExtent()
	e.addSegment(s)
	return e.bounds()
}

// Bounds returns the exact bounding box of the subpath.
func (sp Subpath) Bounds() Bounds {
	e := emptyExtent()
	e.addSubpath(sp)
	return e.bounds()
}

// BoundsOf returns the bounding box of all the subpaths.
// It returns the zero Bounds for an empty list.
func BoundsOf(sps []Subpath) Bounds {
	e := emptyExtent()
	for _, sp := range sps {
		e.addSubpath(sp)
	}
	return e.bounds()
}

// Union returns the smallest rectangle containing b and o.
// Zero rectangles are ignored.
func (b Bounds) Union(o Bounds) Bounds {
	if b == (Bounds{}) {
		return o
	}
	if o == (Bounds{}) {
		return b
	}
	e := emptyExtent()
	e.add(Point{b.X, b.Y})
	e.add(Point{b.X + b.W, b.Y + b.H})
	e.add(Point{o.X, o.Y})
	e.add(Point{o.X + o.W, o.Y + o.H})
	return e.bounds()
}
