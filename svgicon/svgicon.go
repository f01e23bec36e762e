// Package svgicon parses SVG documents into a flat list of
// styled paths, with all the transforms already applied.
// Only a sub-set of SVG is supported, but it is enough to draw many icons.
// The result can be consumed by painting drivers :
// see for example svgpaths/svgraster or svgpaths/svgpdf.
package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benoitkugler/svgpaths/svgpath"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"
)

var (
	// ErrDocumentParse is returned when the document is not valid XML,
	// or not an SVG document. No partial output is produced.
	ErrDocumentParse = errors.New("invalid svg document")

	// ErrUnsupportedElement is reported for elements with no
	// rendering support. It only fails the parsing in StrictErrorMode.
	ErrUnsupportedElement = errors.New("unsupported element")
)

// iconCursor is used while parsing SVG files
type iconCursor struct {
	cfg     config
	builder svgpath.Builder
	doc     *Document

	styleStack []Style

	count    int // elements seen, in document order
	rootRead bool

	inTitleText, inDescText bool

	// depth in a subtree not rendered, 0 outside
	skipDepth int
	// tokens of the defs or symbol subtree being skipped, if any
	recording []xml.Token
	// elements with an id, found in defs or symbol
	defs     map[string][]xml.Token
	useDepth int
}

func newCursor(cfg config) *iconCursor {
	return &iconCursor{
		cfg:        cfg,
		builder:    svgpath.Builder{MaxArcSweep: cfg.maxArcSweep},
		doc:        new(Document),
		styleStack: []Style{DefaultStyle},
		defs:       make(map[string][]xml.Token),
	}
}

// ParseReader reads an SVG document from the given io.Reader.
// Invalid shapes are handled according to the ErrorMode option.
// An error wrapping ErrDocumentParse is returned for invalid documents.
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	c := newCursor(newConfig(opts))
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDocumentParse, err)
		}
		if se, ok := t.(xml.StartElement); ok && !seenTag {
			if se.Name.Local != "svg" {
				return nil, fmt.Errorf("%w: root element is <%s>", ErrDocumentParse, se.Name.Local)
			}
			seenTag = true
		}
		if err = c.handleToken(t); err != nil {
			return nil, err
		}
	}
	if !seenTag {
		return nil, fmt.Errorf("%w: no element found", ErrDocumentParse)
	}
	return c.doc, nil
}

// Parse is the same as ParseReader, for an in-memory document.
func Parse(source string, opts ...Option) (*Document, error) {
	return ParseReader(strings.NewReader(source), opts...)
}

// ReadFile reads the document from the named file.
func ReadFile(name string, opts ...Option) (*Document, error) {
	fin, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer fin.Close()
	return ParseReader(fin, opts...)
}

func (c *iconCursor) handleToken(t xml.Token) error {
	if c.skipDepth > 0 {
		return c.skipToken(t)
	}
	switch se := t.(type) {
	case xml.StartElement:
		if c.useDepth == 0 {
			c.count++
		}
		name := se.Name.Local
		// symbols are skipped, unless instantiated by use
		if skippedElements[name] && !(name == "symbol" && c.useDepth > 0) {
			c.skipDepth = 1
			if (name == "defs" || name == "symbol") && c.useDepth == 0 {
				c.recording = []xml.Token{xml.CopyToken(se)}
			}
			return nil
		}
		return c.readStartElement(se)
	case xml.EndElement:
		c.popStyle()
		switch se.Name.Local {
		case "title":
			c.inTitleText = false
		case "desc":
			c.inDescText = false
		}
	case xml.CharData:
		if c.inTitleText {
			c.doc.Titles[len(c.doc.Titles)-1] += string(se)
		}
		if c.inDescText {
			c.doc.Descriptions[len(c.doc.Descriptions)-1] += string(se)
		}
	}
	return nil
}

// skipToken consumes one token of a skipped subtree
func (c *iconCursor) skipToken(t xml.Token) error {
	switch t.(type) {
	case xml.StartElement:
		c.skipDepth++
		if c.useDepth == 0 {
			c.count++
		}
	case xml.EndElement:
		c.skipDepth--
	}
	if c.recording == nil {
		return nil
	}
	c.recording = append(c.recording, xml.CopyToken(t))
	if c.skipDepth == 0 {
		c.saveDefs(c.recording)
		c.recording = nil
	}
	return nil
}

// saveDefs registers every element with an id found in tokens,
// which must be a complete subtree.
func (c *iconCursor) saveDefs(tokens []xml.Token) {
	for i, t := range tokens {
		se, ok := t.(xml.StartElement)
		if !ok {
			continue
		}
		id := attrValue(se.Attr, "id")
		if id == "" {
			continue
		}
		depth := 0
		for j := i; j < len(tokens); j++ {
			switch tokens[j].(type) {
			case xml.StartElement:
				depth++
			case xml.EndElement:
				depth--
			}
			if depth == 0 {
				c.defs[id] = tokens[i : j+1]
				break
			}
		}
	}
}

// replay renders saved tokens as if they were found at the current position.
func (c *iconCursor) replay(tokens []xml.Token) error {
	for _, t := range tokens {
		if err := c.handleToken(t); err != nil {
			return err
		}
	}
	return nil
}

func attrValue(attrs []xml.Attr, name string) string {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// index returns the position of the current element in the document.
// Elements instantiated by use report the index of the use element.
func (c *iconCursor) index() int { return c.count - 1 }

// readStartElement reads the style, then the geometry of an element.
// An element with a style always pushes one on the stack, which is
// popped by the matching end element.
func (c *iconCursor) readStartElement(se xml.StartElement) error {
	name, id := se.Name.Local, attrValue(se.Attr, "id")
	for _, err := range c.pushStyle(se.Attr) {
		if err := c.handleError(Skip{Element: name, ID: id, Index: c.index(), Err: err}); err != nil {
			return err
		}
	}

	df, ok := drawFuncs[name]
	if !ok {
		err := fmt.Errorf("%w: <%s>", ErrUnsupportedElement, name)
		switch c.cfg.errorMode {
		case StrictErrorMode:
			return err
		case WarnErrorMode:
			c.cfg.logger.WithFields(logrus.Fields{"element": name, "index": c.index()}).
				WithError(err).Warn("element skipped")
		}
		return nil // the children are still rendered
	}

	cmds, err := df(c, se.Attr)
	if err == nil && cmds != nil {
		var sps []svgpath.Subpath
		sps, err = c.builder.BuildCommands(cmds, c.styleStack[len(c.styleStack)-1].transform)
		if err == nil && len(sps) != 0 {
			c.doc.Paths = append(c.doc.Paths, c.cfg.newPath(c.styleStack[len(c.styleStack)-1], sps, name, id))
		}
	}
	if err != nil {
		return c.handleError(Skip{Element: name, ID: id, Index: c.index(), Omitted: cmds != nil || !isContainer(name), Err: err})
	}
	return nil
}

// isContainer returns true for elements which produce no path by themselves
func isContainer(name string) bool {
	switch name {
	case "svg", "g", "a", "switch", "symbol", "desc", "title":
		return true
	}
	return false
}

// handleError records a contained error, and logs it or
// turns it into a document failure, depending on the error mode.
func (c *iconCursor) handleError(skip Skip) error {
	switch c.cfg.errorMode {
	case StrictErrorMode:
		return fmt.Errorf("element <%s> #%d: %w", skip.Element, skip.Index, skip.Err)
	case WarnErrorMode:
		c.cfg.logger.WithFields(logrus.Fields{
			"element": skip.Element,
			"id":      skip.ID,
			"index":   skip.Index,
			"omitted": skip.Omitted,
		}).WithError(skip.Err).Warn("invalid element")
	}
	c.doc.Skipped = append(c.doc.Skipped, skip)
	return nil
}
