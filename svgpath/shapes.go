package svgpath

import (
	"math"
)

// This file implements the transformation from
// high level shapes to their path equivalent,
// and the approximation of elliptical arcs by cubic curves.

// DefaultMaxArcSweep is the maximum angle (in radians, in the
// ellipse parametric space) spanned by one cubic approximating an arc.
const DefaultMaxArcSweep = math.Pi / 2

// arcSegments approximates the SVG arc from `start` to `end` by cubic curves,
// each spanning at most maxSweep radians.
// rx and ry must be non negative, rot is in degrees.
// Coincident endpoints yield no segment and a zero radius a straight line.
func arcSegments(start Point, rx, ry, rot float64, largeArc, sweep bool, end Point, maxSweep float64) []Segment {
	if start == end {
		return nil
	}
	if rx == 0 || ry == 0 {
		return []Segment{lineSegment(start, end)}
	}
	cx, cy, rx, ry, theta1, dTheta := endpointToCenter(start, end, rx, ry, rot*math.Pi/180, largeArc, sweep)

	segs := int(math.Ceil(math.Abs(dTheta)/maxSweep - 1e-9))
	if segs < 1 {
		segs = 1
	}
	dEta := dTheta / float64(segs) // span of each segment
	// arm length for which the cubic midpoint lies on the ellipse
	alpha := 4. / 3 * math.Tan(dEta/4)

	sinTheta, cosTheta := math.Sincos(rot * math.Pi / 180)
	out := make([]Segment, segs)
	lp := start
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, theta1)
	for i := 1; i <= segs; i++ {
		eta := theta1 + dEta*float64(i)
		var p Point
		if i == segs {
			p = end // exact end point; no roundoff error
		} else {
			p.X, p.Y = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		out[i-1] = Segment{
			Start: lp,
			C1:    Point{lp.X + alpha*ldx, lp.Y + alpha*ldy},
			C2:    Point{p.X - alpha*dx, p.Y - alpha*dy},
			End:   p,
		}
		lp, ldx, ldy = p, dx, dy
	}
	return out
}

// endpointToCenter implements the conversion from endpoint to center
// parameterization, with out of range radii scaled up so that
// a solution exists. phi is in radians.
// The returned angles are in the ellipse parametric space:
// theta1 is the start angle and dTheta the signed sweep.
func endpointToCenter(p1, p2 Point, rx, ry, phi float64, largeArc, sweep bool) (cx, cy, rxOut, ryOut, theta1, dTheta float64) {
	sinPhi, cosPhi := math.Sincos(phi)

	// step 1 : (x1', y1')
	dx2, dy2 := (p1.X-p2.X)/2, (p1.Y-p2.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// radii correction
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		sq := math.Sqrt(lambda)
		rx, ry = rx*sq, ry*sq
	}

	// step 2 : (cx', cy')
	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	if num < 0 {
		num = 0 // radii just scaled: the center is the chord midpoint
	}
	coef := math.Sqrt(num / den)
	if largeArc == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx

	// step 3 : (cx, cy)
	cx = cosPhi*cxp - sinPhi*cyp + (p1.X+p2.X)/2
	cy = sinPhi*cxp + cosPhi*cyp + (p1.Y+p2.Y)/2

	// step 4 : angles
	ux, uy := (x1p-cxp)/rx, (y1p-cyp)/ry
	vx, vy := (-x1p-cxp)/rx, (-y1p-cyp)/ry
	theta1 = math.Atan2(uy, ux)
	dTheta = math.Atan2(vy, vx) - theta1
	if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	} else if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	}
	return cx, cy, rx, ry, theta1, dTheta
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

func moveTo(x, y float64) Command { return Command{Kind: MoveTo, Args: [7]float64{x, y}} }

func lineTo(x, y float64) Command { return Command{Kind: LineTo, Args: [7]float64{x, y}} }

func arcTo(rx, ry, x, y float64) Command {
	// clockwise (in a y-down space) quarter turns
	return Command{Kind: ArcTo, Args: [7]float64{rx, ry, 0, 0, 1, x, y}}
}

var closePath = Command{Kind: Close}

// RectCommands returns the path equivalent of a rectangle, with
// corners rounded by rx and ry, which are clamped to half the size.
// The caller resolves the automatic radius rules (a single radius
// given used for both axis).
func RectCommands(x, y, w, h, rx, ry float64) []Command {
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	if rx <= 0 || ry <= 0 {
		return []Command{
			moveTo(x, y),
			lineTo(x+w, y),
			lineTo(x+w, y+h),
			lineTo(x, y+h),
			closePath,
		}
	}
	maxX, maxY := x+w, y+h
	return []Command{
		moveTo(x+rx, y),
		lineTo(maxX-rx, y),
		arcTo(rx, ry, maxX, y+ry),
		lineTo(maxX, maxY-ry),
		arcTo(rx, ry, maxX-rx, maxY),
		lineTo(x+rx, maxY),
		arcTo(rx, ry, x, maxY-ry),
		lineTo(x, y+ry),
		arcTo(rx, ry, x+rx, y),
		closePath,
	}
}

// EllipseCommands returns the path equivalent of an ellipse
// (or a circle when rx == ry), made of four arcs.
func EllipseCommands(cx, cy, rx, ry float64) []Command {
	return []Command{
		moveTo(cx+rx, cy),
		arcTo(rx, ry, cx, cy+ry),
		arcTo(rx, ry, cx-rx, cy),
		arcTo(rx, ry, cx, cy-ry),
		arcTo(rx, ry, cx+rx, cy),
		closePath,
	}
}

// LineCommands returns the path equivalent of a line element.
func LineCommands(x1, y1, x2, y2 float64) []Command {
	return []Command{moveTo(x1, y1), lineTo(x2, y2)}
}

// PolylineCommands returns the path equivalent of a polyline
// (or a polygon if closed). A trailing odd coordinate is ignored.
// It returns nil if there is no point.
func PolylineCommands(points []float64, closed bool) []Command {
	if len(points) < 2 {
		return nil
	}
	out := make([]Command, 0, len(points)/2+1)
	out = append(out, moveTo(points[0], points[1]))
	for i := 2; i+1 < len(points); i += 2 {
		out = append(out, lineTo(points[i], points[i+1]))
	}
	if closed {
		out = append(out, closePath)
	}
	return out
}
