package svgpath

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// the midpoint of each cubic must be on the ellipse,
// up to 0.1% of the radius
func checkArcMidpoints(t *testing.T, segs []Segment, cx, cy, rx, ry, rot float64) {
	t.Helper()
	sin, cos := math.Sincos(rot * math.Pi / 180)
	tol := 1e-3 * math.Min(rx, ry)
	for _, s := range segs {
		for _, tt := range []float64{0, 0.5, 1} {
			p := s.At(tt)
			// back to the ellipse frame
			dx, dy := p.X-cx, p.Y-cy
			x, y := cos*dx+sin*dy, -sin*dx+cos*dy
			// radial distance to the ellipse, measured along the ray from the center
			r := math.Hypot(x, y)
			ang := math.Atan2(y, x)
			onEllipse := rx * ry / math.Hypot(ry*math.Cos(ang), rx*math.Sin(ang))
			assert.InDelta(t, onEllipse, r, tol, "point %v at t=%v", p, tt)
		}
	}
}

func TestArcCircleMidpoint(t *testing.T) {
	// quarter circle of radius 100, centered at the origin
	segs := arcSegments(Point{100, 0}, 100, 100, 0, false, true, Point{0, 100}, DefaultMaxArcSweep)
	require.Len(t, segs, 1)
	mid := segs[0].At(0.5)
	want := Point{100 * math.Sqrt2 / 2, 100 * math.Sqrt2 / 2}
	assert.InDelta(t, want.X, mid.X, 0.1) // 0.1% of the radius
	assert.InDelta(t, want.Y, mid.Y, 0.1)
	checkArcMidpoints(t, segs, 0, 0, 100, 100, 0)
}

func TestArcEllipse(t *testing.T) {
	for _, test := range []struct {
		rx, ry, rot     float64
		large, sweep    bool
		wantCenter      Point
		start, end      Point
		wantSegsAtLeast int
	}{
		{50, 25, 0, false, true, Point{0, 0}, Point{50, 0}, Point{-50, 0}, 2},
		{50, 25, 0, true, false, Point{0, 0}, Point{50, 0}, Point{0, 25}, 3},
		{40, 20, 30, false, true, Point{}, Point{}, Point{}, 1},
	} {
		start, end := test.start, test.end
		if test.rot != 0 {
			// points on the rotated ellipse
			sin, cos := math.Sincos(test.rot * math.Pi / 180)
			x, y := ellipsePointAt(test.rx, test.ry, sin, cos, 0.3, 10, 20)
			start = Point{x, y}
			x, y = ellipsePointAt(test.rx, test.ry, sin, cos, 1.9, 10, 20)
			end = Point{x, y}
			test.wantCenter = Point{10, 20}
		}
		segs := arcSegments(start, test.rx, test.ry, test.rot, test.large, test.sweep, end, DefaultMaxArcSweep)
		require.GreaterOrEqual(t, len(segs), test.wantSegsAtLeast)
		assert.Equal(t, start, segs[0].Start)
		assert.Equal(t, end, segs[len(segs)-1].End)
		checkArcMidpoints(t, segs, test.wantCenter.X, test.wantCenter.Y, test.rx, test.ry, test.rot)
	}
}

func TestArcRadiiCorrection(t *testing.T) {
	// radius too small: scaled up so that the arc is a half circle
	segs := arcSegments(Point{0, 0}, 1, 1, 0, false, true, Point{20, 0}, DefaultMaxArcSweep)
	require.Len(t, segs, 2)
	checkArcMidpoints(t, segs, 10, 0, 10, 10, 0)
}

func TestArcDegenerate(t *testing.T) {
	assert.Empty(t, arcSegments(Point{1, 1}, 5, 5, 0, false, true, Point{1, 1}, DefaultMaxArcSweep))

	segs := arcSegments(Point{0, 0}, 0, 5, 0, false, true, Point{3, 6}, DefaultMaxArcSweep)
	require.Len(t, segs, 1)
	assert.True(t, segs[0].IsLine())

	// through the builder
	sps := mustBuild(t, "M1 1 A5 5 0 0 1 1 1 L2 2")
	assert.Len(t, sps[0].Segments, 1)
}

func TestArcSweepDirection(t *testing.T) {
	// from (10, 0) to (0, 10), radius 10: the small arc with sweep goes
	// through the positive quadrant, the large one around
	small := arcSegments(Point{10, 0}, 10, 10, 0, false, true, Point{0, 10}, DefaultMaxArcSweep)
	large := arcSegments(Point{10, 0}, 10, 10, 0, true, false, Point{0, 10}, DefaultMaxArcSweep)
	assert.Len(t, small, 1)
	assert.Len(t, large, 3)
	assert.Greater(t, small[0].At(0.5).X, 0.)
	assert.Less(t, large[1].At(0.5).X, 0.)
}

func TestRectCommands(t *testing.T) {
	sps, err := Builder{}.BuildCommands(Seq(RectCommands(0, 0, 100, 50, 10, 5)), Identity)
	require.NoError(t, err)
	require.Len(t, sps, 1)
	assert.True(t, sps[0].Closed)
	assert.Len(t, sps[0].Segments, 8)
	checkContiguous(t, sps)
	if diff := cmp.Diff(Bounds{0, 0, 100, 50}, sps[0].Bounds(), approx); diff != "" {
		t.Fatal(diff)
	}

	// radii clamped to half the size
	sps, err = Builder{}.BuildCommands(Seq(RectCommands(0, 0, 10, 10, 50, 50)), Identity)
	require.NoError(t, err)
	assert.Len(t, sps[0].Segments, 4+4) // zero length lines are kept

	sps, err = Builder{}.BuildCommands(Seq(RectCommands(0, 0, 10, 10, 0, 0)), Identity)
	require.NoError(t, err)
	assert.Len(t, sps[0].Segments, 4)
}

func TestEllipseCommands(t *testing.T) {
	sps, err := Builder{}.BuildCommands(Seq(EllipseCommands(50, 50, 20, 10)), Identity)
	require.NoError(t, err)
	require.Len(t, sps, 1)
	assert.True(t, sps[0].Closed)
	assert.Len(t, sps[0].Segments, 4)
	checkArcMidpoints(t, sps[0].Segments, 50, 50, 20, 10, 0)
	if diff := cmp.Diff(Bounds{30, 40, 40, 20}, sps[0].Bounds(), approx); diff != "" {
		t.Fatal(diff)
	}
}

func TestPolylineCommands(t *testing.T) {
	assert.Nil(t, PolylineCommands([]float64{1}, false))

	cmds := PolylineCommands([]float64{0, 0, 10, 0, 10, 10, 7}, true)
	assert.Equal(t, []Command{moveTo(0, 0), lineTo(10, 0), lineTo(10, 10), closePath}, cmds)

	cmds = LineCommands(0, 0, 5, 5)
	assert.Len(t, cmds, 2)
}
