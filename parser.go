package htmltex

import (
	"io"
	"os"
	"strings"

	"github.com/dpotapov/go-htmltex/dom"
)

// A Parser wraps a parsed DOM root. The zero value is empty and
// invalid; build one with NewParser or the From* factories. I/O
// failures produce an empty parser carrying the error rather than a
// nil pointer, so call chains stay safe.
type Parser struct {
	root *dom.Node
	err  error
}

// NewParser parses an in-memory HTML document, preserving whitespace.
func NewParser(html string) *Parser {
	return &Parser{root: dom.ParseString(html, dom.ParseOptions{})}
}

// NewParserMinified parses an in-memory HTML document with whitespace
// collapsed.
func NewParserMinified(html string) *Parser {
	return &Parser{root: dom.ParseString(html, dom.ParseOptions{Minify: true})}
}

// FromDOM wraps an existing tree. The tree is borrowed, not copied.
func FromDOM(root *dom.Node) *Parser {
	return &Parser{root: root}
}

// FromFile reads and parses an HTML file. On I/O failure the returned
// parser is empty and Err reports the cause.
func FromFile(path string) *Parser {
	f, err := os.Open(path)
	if err != nil {
		return &Parser{err: err}
	}
	defer f.Close()
	return FromReader(f)
}

// FromReader reads at most 128 MiB of HTML from r and parses it.
func FromReader(r io.Reader) *Parser {
	data, err := io.ReadAll(io.LimitReader(r, dom.MaxInputSize+1))
	if err != nil {
		return &Parser{err: err}
	}
	if len(data) > dom.MaxInputSize {
		return &Parser{err: dom.ErrTooLarge}
	}
	return NewParser(string(data))
}

// Valid reports whether the parser holds a document.
func (p *Parser) Valid() bool { return p != nil && p.root != nil }

// Err returns the I/O error that emptied the parser, if any.
func (p *Parser) Err() error {
	if p == nil {
		return nil
	}
	return p.err
}

// Root exposes the underlying DOM root, or nil for an empty parser.
func (p *Parser) Root() *dom.Node {
	if p == nil {
		return nil
	}
	return p.root
}

// Title returns the document's <title> text, or "".
func (p *Parser) Title() string {
	if !p.Valid() {
		return ""
	}
	return dom.Title(p.root)
}

// Render writes the document as indented, canonical HTML.
func (p *Parser) Render(w io.Writer) error {
	if !p.Valid() {
		return dom.ErrNoDocument
	}
	return dom.Render(w, p.root)
}

// String returns the document as indented, canonical HTML. An empty
// parser yields "".
func (p *Parser) String() string {
	if !p.Valid() {
		return ""
	}
	var sb strings.Builder
	_ = dom.Render(&sb, p.root)
	return sb.String()
}

// WriteFile writes the pretty-printed document to path.
func (p *Parser) WriteFile(path string) error {
	if !p.Valid() {
		return dom.ErrNoDocument
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	werr := p.Render(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	return werr
}
