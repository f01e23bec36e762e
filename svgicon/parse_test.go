package svgicon

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/svgpaths/svgpath"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

const threeSiblings = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
	<path d="M10 10 L20 20"/>
	<path id="broken" d="M10 10 L20"/>
	<path d="M30 30 h10 v10 z"/>
</svg>`

func TestMalformedPathIsContained(t *testing.T) {
	doc, err := Parse(threeSiblings)
	require.NoError(t, err)

	require.Len(t, doc.Paths, 2)
	assert.Equal(t, Bounds{X: 10, Y: 10, W: 10, H: 10}, doc.Paths[0].Bounds())
	assert.Equal(t, Bounds{X: 30, Y: 30, W: 10, H: 10}, doc.Paths[1].Bounds())
	require.Len(t, doc.Skipped, 1)
	skip := doc.Skipped[0]
	assert.Equal(t, "path", skip.Element)
	assert.Equal(t, "broken", skip.ID)
	assert.Equal(t, 2, skip.Index)
	assert.True(t, skip.Omitted)
	assert.ErrorIs(t, skip.Err, svgpath.ErrMalformedPath)
}

func TestDocumentParseFailure(t *testing.T) {
	for _, src := range []string{
		"",
		"not xml at all",
		`<svg><path d="M0 0"></svg>`,
		`<svg viewBox="0 0 10 10"><rect width="1" height="1"/>`,
		`<html><svg/></html>`,
		`<?xml version="1.0"?>`,
	} {
		doc, err := Parse(src)
		assert.ErrorIs(t, err, ErrDocumentParse, src)
		assert.Nil(t, doc)
	}
}

func TestStrictMode(t *testing.T) {
	doc, err := Parse(threeSiblings, WithErrorMode(StrictErrorMode))
	assert.ErrorIs(t, err, svgpath.ErrMalformedPath)
	assert.NotErrorIs(t, err, ErrDocumentParse)
	assert.Nil(t, doc)

	_, err = Parse(`<svg><unknown/></svg>`, WithErrorMode(StrictErrorMode))
	assert.ErrorIs(t, err, ErrUnsupportedElement)

	// known, not rendered elements are fine
	_, err = Parse(`<svg><defs><linearGradient id="g"/></defs><text>Hi</text></svg>`, WithErrorMode(StrictErrorMode))
	assert.NoError(t, err)
}

func TestWarnMode(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	doc, err := Parse(threeSiblings, WithErrorMode(WarnErrorMode), WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, doc.Paths, 2)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "path", entry.Data["element"])
	assert.Equal(t, "broken", entry.Data["id"])
	assert.Equal(t, 2, entry.Data["index"])
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), svgpath.ErrMalformedPath)

	hook.Reset()
	_, err = Parse(`<svg><unknown><rect width="1" height="1"/></unknown></svg>`, WithErrorMode(WarnErrorMode), WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, hook.Entries, 1)
	assert.ErrorIs(t, hook.LastEntry().Data[logrus.ErrorKey].(error), ErrUnsupportedElement)
}

func TestIgnoreModeIsSilent(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	doc, err := Parse(`<svg><unknown><rect width="1" height="1"/></unknown><path d="L"/></svg>`, WithLogger(logger))
	require.NoError(t, err)
	assert.Empty(t, hook.Entries)
	assert.Len(t, doc.Paths, 1) // children of unsupported elements are rendered
	assert.Len(t, doc.Skipped, 1)
}

func TestMalformedTransformKeepsShape(t *testing.T) {
	doc, err := Parse(`<svg>
		<rect transform="translate(5,5) foo(1)" width="1" height="1"/>
		<rect transform="rotate(1,2)" width="1" height="1"/>
	</svg>`)
	require.NoError(t, err)

	require.Len(t, doc.Paths, 2)
	b := doc.Paths[0].Bounds()
	assert.Equal(t, Bounds{X: 5, Y: 5, W: 1, H: 1}, b)
	assert.Equal(t, Bounds{X: 0, Y: 0, W: 1, H: 1}, doc.Paths[1].Bounds())

	require.Len(t, doc.Skipped, 2)
	for _, skip := range doc.Skipped {
		assert.False(t, skip.Omitted)
		assert.Equal(t, "rect", skip.Element)
		var te *svgpath.TransformError
		require.ErrorAs(t, skip.Err, &te)
		assert.ErrorIs(t, skip.Err, svgpath.ErrMalformedTransform)
	}
}

func TestNestedTransforms(t *testing.T) {
	doc, err := Parse(`<svg>
		<g transform="translate(10,0)">
			<g transform="scale(2)">
				<rect width="1" height="1"/>
			</g>
		</g>
		<rect transform="scale(2) translate(10,0)" width="1" height="1"/>
	</svg>`)
	require.NoError(t, err)
	require.Len(t, doc.Paths, 2)

	assert.Equal(t, Bounds{X: 10, Y: 0, W: 2, H: 2}, doc.Paths[0].Bounds())
	assert.Equal(t, Bounds{X: 20, Y: 0, W: 2, H: 2}, doc.Paths[1].Bounds())
}

func TestShapes(t *testing.T) {
	doc, err := Parse(`<svg viewBox="0 0 100 100">
		<rect width="10" height="10"/>
		<rect width="10" height="10" rx="2"/>
		<rect width="10" height="10" ry="20"/>
		<circle cx="5" cy="5" r="5"/>
		<ellipse cx="5" cy="5" rx="5" ry="2"/>
		<line x1="0" y1="0" x2="10" y2="0"/>
		<polyline points="0,0 10,0 10,10 5"/>
		<polygon points="0 0 10 0 10 10"/>
	</svg>`)
	require.NoError(t, err)
	require.Len(t, doc.Paths, 8)

	var tts = []struct {
		element  string
		segments int
		closed   bool
	}{
		{"rect", 4, true},
		{"rect", 8, true},
		{"rect", 8, true},
		{"circle", 4, true},
		{"ellipse", 4, true},
		{"line", 1, false},
		{"polyline", 2, false},
		{"polygon", 3, true},
	}
	for i, tt := range tts {
		p := doc.Paths[i]
		assert.Equal(t, tt.element, p.Element)
		require.Len(t, p.Subpaths, 1, tt.element)
		assert.Len(t, p.Subpaths[0].Segments, tt.segments, tt.element)
		assert.Equal(t, tt.closed, p.Subpaths[0].Closed, tt.element)
	}

	assert.InDelta(t, 0, doc.Paths[3].Bounds().X, 1e-9)
	assert.InDelta(t, 10, doc.Paths[3].Bounds().W, 1e-9)
	assert.InDelta(t, 4, doc.Paths[4].Bounds().H, 1e-9)
}

func TestDegenerateShapes(t *testing.T) {
	doc, err := Parse(`<svg>
		<rect width="0" height="10"/>
		<circle r="0"/>
		<ellipse rx="0" ry="2"/>
		<polyline points="1"/>
		<path/>
		<path d="  "/>
	</svg>`)
	require.NoError(t, err)
	assert.Empty(t, doc.Paths)
	assert.Empty(t, doc.Skipped)

	doc, err = Parse(`<svg>
		<rect width="-1" height="10"/>
		<circle r="-2"/>
		<rect width="abc" height="1"/>
		<polygon points="0 0 1 1 x"/>
	</svg>`)
	require.NoError(t, err)
	assert.Empty(t, doc.Paths)
	require.Len(t, doc.Skipped, 4)
	for _, skip := range doc.Skipped {
		assert.True(t, skip.Omitted)
	}
	assert.ErrorIs(t, doc.Skipped[0].Err, errNegativeSize)
}

func TestViewport(t *testing.T) {
	doc, err := Parse(`<svg width="2in" height="96pt" viewBox="0 0 200 100">
		<rect width="50%" height="10mm"/>
	</svg>`)
	require.NoError(t, err)
	assert.InDelta(t, 192, doc.Width, 1e-9)
	assert.InDelta(t, 128, doc.Height, 1e-9)
	assert.Equal(t, Bounds{W: 200, H: 100}, doc.ViewBox)

	require.Len(t, doc.Paths, 1)
	b := doc.Paths[0].Bounds()
	assert.InDelta(t, 100, b.W, 1e-9)
	assert.InDelta(t, 37.79527559, b.H, 1e-6)

	// viewBox from the size, and the other way around
	doc, err = Parse(`<svg width="30" height="20"></svg>`)
	require.NoError(t, err)
	assert.Equal(t, Bounds{W: 30, H: 20}, doc.ViewBox)

	doc, err = Parse(`<svg viewBox="-5 -5 30 20"></svg>`)
	require.NoError(t, err)
	assert.Equal(t, 30., doc.Width)
	assert.Equal(t, 20., doc.Height)

	doc, err = Parse(`<svg viewBox="0 0 10"><rect width="1" height="1"/></svg>`)
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 1)
	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, "svg", doc.Skipped[0].Element)
	assert.False(t, doc.Skipped[0].Omitted)
}

func TestNestedSVG(t *testing.T) {
	doc, err := Parse(`<svg viewBox="0 0 100 100">
		<svg x="10" y="20"><rect width="1" height="1"/></svg>
	</svg>`)
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)
	assert.Equal(t, Bounds{X: 10, Y: 20, W: 1, H: 1}, doc.Paths[0].Bounds())
	assert.Equal(t, Bounds{W: 100, H: 100}, doc.ViewBox)
}

func TestUse(t *testing.T) {
	doc, err := Parse(`<svg xmlns:xlink="http://www.w3.org/1999/xlink">
		<defs>
			<rect id="r" width="2" height="2" fill="red"/>
			<g id="two"><use href="#r"/><use href="#r" x="5"/></g>
		</defs>
		<symbol id="s"><circle r="1"/></symbol>
		<use href="#r" x="3" y="4"/>
		<use xlink:href="#r" fill="blue"/>
		<use href="#two" y="10"/>
		<use href="#s"/>
		<use href="#missing"/>
	</svg>`)
	require.NoError(t, err)
	require.Len(t, doc.Paths, 5)

	assert.Equal(t, Bounds{X: 3, Y: 4, W: 2, H: 2}, doc.Paths[0].Bounds())
	assert.Equal(t, Bounds{X: 0, Y: 0, W: 2, H: 2}, doc.Paths[1].Bounds())
	// the fill of the referenced element wins over the use one
	assert.Equal(t, color.Color(color.NRGBA{R: 0xff, A: 0xff}), doc.Paths[1].Fill)
	assert.Equal(t, Bounds{X: 0, Y: 10, W: 2, H: 2}, doc.Paths[2].Bounds())
	assert.Equal(t, Bounds{X: 5, Y: 10, W: 2, H: 2}, doc.Paths[3].Bounds())
	assert.Equal(t, "circle", doc.Paths[4].Element)

	require.Len(t, doc.Skipped, 1)
	assert.Equal(t, "use", doc.Skipped[0].Element)
	assert.True(t, doc.Skipped[0].Omitted)
}

func TestUseCycle(t *testing.T) {
	doc, err := Parse(`<svg>
		<defs><g id="a"><rect width="1" height="1"/><use href="#a"/></g></defs>
		<use href="#a"/>
	</svg>`)
	require.NoError(t, err)
	assert.Len(t, doc.Paths, maxUseDepth)
	require.Len(t, doc.Skipped, 1)
}

func TestTitlesAndDescriptions(t *testing.T) {
	doc, err := Parse(`<svg>
		<title>An icon</title>
		<desc>A <![CDATA[short]]> description</desc>
		<g><title>Group</title></g>
	</svg>`)
	require.NoError(t, err)
	assert.Equal(t, []string{"An icon", "Group"}, doc.Titles)
	assert.Equal(t, []string{"A short description"}, doc.Descriptions)
	assert.Empty(t, doc.Paths)
}

func TestCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg><title>caf\xe9</title></svg>"
	doc, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, doc.Titles)
}

func TestRestyle(t *testing.T) {
	doc, err := Parse(`<svg>
		<rect width="1" height="1" stroke="red" stroke-width="2"/>
		<rect width="1" height="1" fill="none" vector-effect="non-scaling-stroke"/>
	</svg>`)
	require.NoError(t, err)
	blue := color.NRGBA{B: 0xff, A: 0xff}

	restyled := doc.Restyle(WithFillColor(blue), WithScaleLineWidth(true))
	require.Len(t, restyled.Paths, 2)
	assert.Equal(t, color.Color(blue), restyled.Paths[0].Fill)
	assert.Equal(t, color.Color(blue), restyled.Paths[1].Fill)
	assert.True(t, restyled.Paths[0].ScaleLineWidth)
	assert.False(t, restyled.Paths[1].ScaleLineWidth)
	assert.Equal(t, doc.Paths[0].Stroke, restyled.Paths[0].Stroke)

	// the original is untouched
	assert.Equal(t, color.Color(color.NRGBA{A: 0xff}), doc.Paths[0].Fill)
	assert.Nil(t, doc.Paths[1].Fill)
	assert.False(t, doc.Paths[0].ScaleLineWidth)

	// options are also accepted at parse time
	direct, err := Parse(`<svg><rect width="1" height="1" stroke="red" stroke-width="2"/></svg>`,
		WithFillColor(blue), WithStrokeColor(color.Black), WithScaleLineWidth(true))
	require.NoError(t, err)
	assert.Equal(t, color.Color(blue), direct.Paths[0].Fill)
	assert.Equal(t, color.Color(color.Black), direct.Paths[0].Stroke)
	assert.True(t, direct.Paths[0].ScaleLineWidth)
}

func TestMaxArcSweep(t *testing.T) {
	doc, err := Parse(`<svg><circle r="10"/></svg>`, WithMaxArcSweep(0.1))
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)
	// each quarter needs 16 pieces
	assert.Len(t, doc.Paths[0].Subpaths[0].Segments, 4*16)
}

func TestConcurrentParsing(t *testing.T) {
	const src = `<svg viewBox="0 0 24 24">
		<g fill="green" transform="rotate(30 12 12)">
			<path d="M2 2a10 5 30 1 1 10 10q3 3 6 0t6 0z"/>
			<circle cx="12" cy="12" r="4" stroke="black"/>
		</g>
	</svg>`
	docs := make([]*Document, 16)
	var g errgroup.Group
	for i := range docs {
		g.Go(func() (err error) {
			docs[i], err = Parse(src)
			return err
		})
	}
	require.NoError(t, g.Wait())

	for _, doc := range docs[1:] {
		assert.Equal(t, docs[0], doc)
		assert.NotSame(t, docs[0], doc)
	}
}

func TestReadFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "icon.svg")
	require.NoError(t, os.WriteFile(name, []byte(threeSiblings), 0o644))

	doc, err := ReadFile(name)
	require.NoError(t, err)
	assert.Len(t, doc.Paths, 2)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.svg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestErrorMode(t *testing.T) {
	for _, mode := range []ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		got, ok := ParseErrorMode(mode.String())
		assert.True(t, ok)
		assert.Equal(t, mode, got)
	}
	_, ok := ParseErrorMode("panic")
	assert.False(t, ok)
}
