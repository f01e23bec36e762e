package svgicon

import (
	"image/color"

	"github.com/sirupsen/logrus"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
// and to invalid shapes.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unsupported elements and invalid shapes.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips them, after logging a warning.
	WarnErrorMode
	// StrictErrorMode fails the whole document on the first one.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, bool) {
	switch s {
	case "ignore", "":
		return IgnoreErrorMode, true
	case "warn":
		return WarnErrorMode, true
	case "strict":
		return StrictErrorMode, true
	}
	return 0, false
}

type config struct {
	fill, stroke      color.Color // overrides, nil for none
	scaleLineWidth    bool
	scaleLineWidthSet bool
	errorMode         ErrorMode
	logger            logrus.FieldLogger
	maxArcSweep       float64
}

func newConfig(opts []Option) config {
	cfg := config{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option customizes how a document is parsed or restyled.
type Option func(*config)

// WithFillColor sets the fill of every path, overriding the document paint.
// A nil color keeps the document paint.
func WithFillColor(c color.Color) Option {
	return func(cfg *config) { cfg.fill = c }
}

// WithStrokeColor sets the stroke of every path, overriding the document paint.
// A nil color keeps the document paint.
func WithStrokeColor(c color.Color) Option {
	return func(cfg *config) { cfg.stroke = c }
}

// WithScaleLineWidth decides if stroke widths follow the geometric
// scale when the document is drawn. Paths styled with
// vector-effect="non-scaling-stroke" never scale.
func WithScaleLineWidth(scale bool) Option {
	return func(cfg *config) {
		cfg.scaleLineWidth = scale
		cfg.scaleLineWidthSet = true
	}
}

// WithErrorMode sets how invalid shapes and unsupported elements are handled.
// The default is IgnoreErrorMode.
func WithErrorMode(mode ErrorMode) Option {
	return func(cfg *config) { cfg.errorMode = mode }
}

// WithLogger sets the logger used in WarnErrorMode.
// The default is logrus.StandardLogger().
func WithLogger(logger logrus.FieldLogger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithMaxArcSweep sets the maximum angle (in radians) spanned by the
// cubic curves approximating arcs. See svgpath.Builder.
func WithMaxArcSweep(angle float64) Option {
	return func(cfg *config) { cfg.maxArcSweep = angle }
}
