package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/benoitkugler/svgpaths/svgicon"
	"github.com/benoitkugler/svgpaths/svgpdf"
	"github.com/benoitkugler/svgpaths/svgraster"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

var errNoInput = errors.New("no input file")

// documentFlags configure how the documents are loaded,
// they are shared by every command.
func documentFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "fill",
			Usage:   "Set the fill color of every path (SVG color syntax)",
			EnvVars: []string{"SVGPATHS_FILL"},
		},
		&cli.StringFlag{
			Name:    "stroke",
			Usage:   "Set the stroke color of every path (SVG color syntax)",
			EnvVars: []string{"SVGPATHS_STROKE"},
		},
		&cli.BoolFlag{
			Name:    "scale-line-width",
			Usage:   "Scale the stroke widths with the rendering size",
			EnvVars: []string{"SVGPATHS_SCALE_LINE_WIDTH"},
		},
		&cli.StringFlag{
			Name:    "error-mode",
			Aliases: []string{"e"},
			Value:   svgicon.IgnoreErrorMode.String(),
			Usage:   "Reaction to invalid shapes: ignore, warn or strict",
			EnvVars: []string{"SVGPATHS_ERROR_MODE"},
		},
		&cli.Float64Flag{
			Name:  "max-arc-sweep",
			Usage: "Maximum angle in degrees spanned by one curve of an arc (defaults to 90)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log each loaded document",
		},
	}
}

func renderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.Float64Flag{
			Name:  "width",
			Usage: "Width of the output, defaults to the document width (or is deduced from --height)",
		},
		&cli.Float64Flag{
			Name:  "height",
			Usage: "Height of the output, defaults to the document height (or is deduced from --width)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output directory, defaults to the directory of each input file",
		},
	}
}

func cmdPaths() *cli.Command {
	return &cli.Command{
		Name:      "paths",
		Usage:     "Print the resolved paths of SVG files",
		ArgsUsage: "FILE...",
		Description: `Each path is printed on two lines: the source element with its paint,
then its path data, made of cubic curves only. Contained errors are listed after the paths.`,
		Flags:  documentFlags(),
		Action: runPaths,
	}
}

func cmdPNG() *cli.Command {
	return &cli.Command{
		Name:      "png",
		Usage:     "Render SVG files to PNG images",
		ArgsUsage: "FILE...",
		Flags:     slices.Concat(documentFlags(), renderFlags()),
		Action: func(ctx *cli.Context) error {
			return runRender(ctx, ".png", func(doc *svgicon.Document, w, h float64, out io.Writer) error {
				return svgraster.WritePNG(out, doc, int(math.Ceil(w)), int(math.Ceil(h)))
			})
		},
	}
}

func cmdPDF() *cli.Command {
	return &cli.Command{
		Name:      "pdf",
		Usage:     "Render SVG files to single page PDF documents",
		ArgsUsage: "FILE...",
		Flags:     slices.Concat(documentFlags(), renderFlags()),
		Action: func(ctx *cli.Context) error {
			return runRender(ctx, ".pdf", svgpdf.RenderToPDF)
		},
	}
}

func newLogger(ctx *cli.Context) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(ctx.App.ErrWriter)
	if ctx.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func parseColorFlag(ctx *cli.Context, name string) (color.Color, error) {
	c, err := svgicon.ParseSVGColor(ctx.String(name))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", name, err)
	}
	return c, nil
}

// documentOptions translates the flags into parsing options
func documentOptions(ctx *cli.Context, logger logrus.FieldLogger) ([]svgicon.Option, error) {
	mode, ok := svgicon.ParseErrorMode(ctx.String("error-mode"))
	if !ok {
		return nil, fmt.Errorf("invalid --error-mode %q", ctx.String("error-mode"))
	}
	opts := []svgicon.Option{svgicon.WithErrorMode(mode), svgicon.WithLogger(logger)}

	if ctx.IsSet("fill") {
		c, err := parseColorFlag(ctx, "fill")
		if err != nil {
			return nil, err
		}
		opts = append(opts, svgicon.WithFillColor(c))
	}
	if ctx.IsSet("stroke") {
		c, err := parseColorFlag(ctx, "stroke")
		if err != nil {
			return nil, err
		}
		opts = append(opts, svgicon.WithStrokeColor(c))
	}
	if ctx.IsSet("scale-line-width") {
		opts = append(opts, svgicon.WithScaleLineWidth(ctx.Bool("scale-line-width")))
	}
	if ctx.IsSet("max-arc-sweep") {
		opts = append(opts, svgicon.WithMaxArcSweep(ctx.Float64("max-arc-sweep")*math.Pi/180))
	}
	return opts, nil
}

// loadDocuments parses the files concurrently.
// The documents are returned in the order of the files.
func loadDocuments(ctx *cli.Context, files []string, opts []svgicon.Option, logger logrus.FieldLogger) ([]*svgicon.Document, error) {
	docs := make([]*svgicon.Document, len(files))
	g, gctx := errgroup.WithContext(ctx.Context)
	g.SetLimit(runtime.NumCPU())
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := svgicon.ReadFile(file, opts...)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			logger.WithFields(logrus.Fields{
				"file":    file,
				"paths":   len(doc.Paths),
				"skipped": len(doc.Skipped),
			}).Debug("document loaded")
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

func runPaths(ctx *cli.Context) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return errNoInput
	}
	logger := newLogger(ctx)
	opts, err := documentOptions(ctx, logger)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(ctx, files, opts, logger)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	for i, doc := range docs {
		if len(files) > 1 {
			fmt.Fprintf(w, "# %s\n", files[i])
		}
		writePaths(w, doc)
	}
	return nil
}

func formatColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", nc.R, nc.G, nc.B, nc.A)
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func writePaths(w io.Writer, doc *svgicon.Document) {
	for _, p := range doc.Paths {
		name := p.Element
		if p.ID != "" {
			name += "#" + p.ID
		}
		fmt.Fprintf(w, "%s fill=%s stroke=%s width=%s\n", name, formatColor(p.Fill), formatColor(p.Stroke), formatFloat(p.LineWidth))
		fmt.Fprintln(w, p.SVGPath())
	}
	for _, skip := range doc.Skipped {
		status := "kept"
		if skip.Omitted {
			status = "omitted"
		}
		fmt.Fprintf(w, "! <%s> #%d %s: %s\n", skip.Element, skip.Index, status, skip.Err)
	}
}

// targetSize resolves the output size from the flags, keeping
// the aspect ratio of the document when only one side is given.
func targetSize(doc *svgicon.Document, width, height float64) (float64, float64, error) {
	w, h := doc.Width, doc.Height
	switch {
	case width > 0 && height > 0:
		return width, height, nil
	case width > 0 && w > 0 && h > 0:
		return width, h * width / w, nil
	case height > 0 && w > 0 && h > 0:
		return w * height / h, height, nil
	}
	if w <= 0 || h <= 0 {
		return 0, 0, errors.New("the document has no size: use --width and --height")
	}
	return w, h, nil
}

func outputPath(file, dir, ext string) string {
	if dir == "" {
		dir = filepath.Dir(file)
	}
	base := filepath.Base(file)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
}

type renderFunc = func(doc *svgicon.Document, w, h float64, out io.Writer) error

func renderFile(doc *svgicon.Document, width, height float64, outName string, render renderFunc) (err error) {
	w, h, err := targetSize(doc, width, height)
	if err != nil {
		return err
	}
	f, err := os.Create(outName)
	if err != nil {
		return err
	}
	defer func() {
		if errClose := f.Close(); err == nil {
			err = errClose
		}
	}()
	return render(doc, w, h, f)
}

func runRender(ctx *cli.Context, ext string, render renderFunc) error {
	files := ctx.Args().Slice()
	if len(files) == 0 {
		return errNoInput
	}
	logger := newLogger(ctx)
	opts, err := documentOptions(ctx, logger)
	if err != nil {
		return err
	}
	docs, err := loadDocuments(ctx, files, opts, logger)
	if err != nil {
		return err
	}

	outDir := ctx.String("output")
	if outDir != "" {
		if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
			return err
		}
	}

	width, height := ctx.Float64("width"), ctx.Float64("height")
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, doc := range docs {
		g.Go(func() error {
			outName := outputPath(files[i], outDir, ext)
			if err := renderFile(doc, width, height, outName, render); err != nil {
				return fmt.Errorf("%s: %w", files[i], err)
			}
			logger.WithField("file", outName).Info("written")
			return nil
		})
	}
	return g.Wait()
}
