package svgpath

import (
	"fmt"
	"iter"
	"math"
	"slices"
)

// Builder turns path commands into cubic subpaths.
// The zero value is ready to use.
type Builder struct {
	// MaxArcSweep is the maximum angle, in radians, spanned by
	// one cubic approximating an elliptical arc.
	// Zero means DefaultMaxArcSweep ; other values are clamped
	// to [MinArcSweep, Pi].
	MaxArcSweep float64
}

// MinArcSweep is the smallest accepted Builder.MaxArcSweep.
const MinArcSweep = math.Pi / 1024

func (b Builder) maxSweep() float64 {
	switch {
	case b.MaxArcSweep <= 0:
		return DefaultMaxArcSweep
	case b.MaxArcSweep < MinArcSweep:
		return MinArcSweep
	case b.MaxArcSweep > math.Pi:
		return math.Pi
	default:
		return b.MaxArcSweep
	}
}

// Build parses the path data `d` and returns its subpaths,
// with every point transformed by `m`.
// An error wrapping ErrMalformedPath is returned, with no subpaths,
// if `d` is invalid.
func (b Builder) Build(d string, m Matrix2D) ([]Subpath, error) {
	return b.BuildCommands(Commands(d), m)
}

// BuildCommands consumes the command sequence `seq`; see Build.
func (b Builder) BuildCommands(seq iter.Seq2[Command, error], m Matrix2D) ([]Subpath, error) {
	pb := pathBuilder{m: m, maxSweep: b.maxSweep()}
	for cmd, err := range seq {
		if err != nil {
			return nil, err
		}
		if err := pb.apply(cmd); err != nil {
			return nil, err
		}
	}
	pb.flush()
	return pb.out, nil
}

// Build uses a default Builder.
func Build(d string, m Matrix2D) ([]Subpath, error) {
	return Builder{}.Build(d, m)
}

// Seq returns the command sequence of an already parsed path,
// as accepted by BuildCommands.
func Seq(cmds []Command) iter.Seq2[Command, error] {
	return func(yield func(Command, error) bool) {
		for _, cmd := range cmds {
			if !yield(cmd, nil) {
				return
			}
		}
	}
}

type subpathState uint8

const (
	noSubpath subpathState = iota
	openSubpath
	closedSubpath
)

// cursor is the pen position, in the untransformed coordinates.
type cursor struct {
	current Point
	start   Point // of the current subpath
	// control point to reflect for smooth curves :
	// the second control of the last cubic, or the control of the last quadratic
	ctrl  Point
	last  CommandKind
	state subpathState
}

type pathBuilder struct {
	cursor

	m        Matrix2D
	maxSweep float64

	out []Subpath
	sub Subpath // being built
}

func (pb *pathBuilder) flush() {
	if pb.state != noSubpath {
		pb.out = append(pb.out, pb.sub)
	}
}

func (pb *pathBuilder) startSubpath(p Point) {
	pb.flush()
	pb.sub = Subpath{Start: pb.m.TransformPoint(p)}
	pb.start = p
	pb.state = openSubpath
}

func (pb *pathBuilder) emit(segs ...Segment) {
	for _, s := range segs {
		pb.sub.Segments = append(pb.sub.Segments, s.Transform(pb.m))
	}
}

// abs resolves the point (x, y), relative or not
func (pb *pathBuilder) abs(rel bool, x, y float64) Point {
	if rel {
		return Point{pb.current.X + x, pb.current.Y + y}
	}
	return Point{x, y}
}

// reflected returns the first control point of a smooth curve
func (pb *pathBuilder) reflected(family ...CommandKind) Point {
	if slices.Contains(family, pb.last) {
		return pb.current.Add(pb.current.Sub(pb.ctrl))
	}
	return pb.current
}

func (pb *pathBuilder) apply(cmd Command) error {
	if cmd.Kind == MoveTo {
		p := pb.abs(cmd.Relative, cmd.Args[0], cmd.Args[1])
		pb.startSubpath(p)
		pb.current, pb.ctrl, pb.last = p, p, MoveTo
		return nil
	}

	switch pb.state {
	case noSubpath:
		return &PathError{Offset: -1, Command: cmd.Letter(), Reason: "path data must start with a move-to"}
	case closedSubpath:
		if cmd.Kind == Close {
			pb.last = Close
			return nil
		}
		// implicit new subpath at the start of the closed one
		pb.startSubpath(pb.start)
	}

	a := cmd.Args
	var (
		end  Point
		ctrl Point
	)
	switch cmd.Kind {
	case LineTo:
		end = pb.abs(cmd.Relative, a[0], a[1])
		pb.emit(lineSegment(pb.current, end))
		ctrl = end
	case HorizontalLineTo:
		end = Point{a[0], pb.current.Y}
		if cmd.Relative {
			end.X += pb.current.X
		}
		pb.emit(lineSegment(pb.current, end))
		ctrl = end
	case VerticalLineTo:
		end = Point{pb.current.X, a[0]}
		if cmd.Relative {
			end.Y += pb.current.Y
		}
		pb.emit(lineSegment(pb.current, end))
		ctrl = end
	case CubicTo, SmoothCubicTo:
		var c1, c2 Point
		if cmd.Kind == CubicTo {
			c1 = pb.abs(cmd.Relative, a[0], a[1])
			c2 = pb.abs(cmd.Relative, a[2], a[3])
			end = pb.abs(cmd.Relative, a[4], a[5])
		} else {
			c1 = pb.reflected(CubicTo, SmoothCubicTo)
			c2 = pb.abs(cmd.Relative, a[0], a[1])
			end = pb.abs(cmd.Relative, a[2], a[3])
		}
		pb.emit(Segment{Start: pb.current, C1: c1, C2: c2, End: end})
		ctrl = c2
	case QuadTo, SmoothQuadTo:
		var c Point
		if cmd.Kind == QuadTo {
			c = pb.abs(cmd.Relative, a[0], a[1])
			end = pb.abs(cmd.Relative, a[2], a[3])
		} else {
			c = pb.reflected(QuadTo, SmoothQuadTo)
			end = pb.abs(cmd.Relative, a[0], a[1])
		}
		pb.emit(quadSegment(pb.current, c, end))
		ctrl = c
	case ArcTo:
		end = pb.abs(cmd.Relative, a[5], a[6])
		pb.emit(arcSegments(pb.current, math.Abs(a[0]), math.Abs(a[1]), a[2], a[3] != 0, a[4] != 0, end, pb.maxSweep)...)
		ctrl = end
	case Close:
		if pb.current != pb.start {
			pb.emit(lineSegment(pb.current, pb.start))
		}
		pb.sub.Closed = true
		pb.state = closedSubpath
		end, ctrl = pb.start, pb.start
	default:
		return fmt.Errorf("%w: unknown command kind %d", ErrMalformedPath, cmd.Kind)
	}
	pb.current, pb.ctrl, pb.last = end, ctrl, cmd.Kind
	return nil
}
