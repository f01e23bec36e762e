// Command svgpaths loads SVG icons, and prints their paths
// or renders them to PNG or PDF files.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "svgpaths" // lower-cased, it appears in the USAGE section
	app.Usage = "Extract and render the paths of SVG icons"
	app.Description = `svgpaths reads SVG documents and resolves their shapes into cubic paths,
with the styles and transforms applied. Use "paths" to print them, "png" or "pdf" to render them.
Several files may be given: they are processed in parallel.`
	app.Commands = []*cli.Command{
		cmdPaths(),
		cmdPNG(),
		cmdPDF(),
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
