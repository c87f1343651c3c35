package latex

import (
	"log/slog"

	"github.com/dpotapov/go-htmltex/css"
	"github.com/dpotapov/go-htmltex/dom"
)

// preamble is written verbatim at the top of every produced document.
const preamble = `\documentclass{article}
\usepackage{hyperref}
\usepackage{ulem}
\usepackage[table]{xcolor}
\usepackage{tabularx}
\usepackage{graphicx}
\usepackage{placeins}
\setcounter{secnumdepth}{4}
`

// An ImageFetcher retrieves a remote image into dir and returns the
// directory-relative filename. seq is the converter's monotonically
// increasing image counter, used to derive deterministic names.
type ImageFetcher interface {
	Fetch(url, dir string, seq int) (string, error)
}

// Options are the converter's knobs. There is no runtime option bag;
// these three fields are the whole configuration surface.
type Options struct {
	// DownloadImages fetches remote <img> sources through the Fetcher
	// and rewrites their paths. Requires ImageDir.
	DownloadImages bool

	// ImageDir is where downloaded images are written; emitted paths
	// are relative to it.
	ImageDir string

	// Minify collapses whitespace while building the DOM.
	Minify bool
}

// A Converter owns an output buffer and a conversion state machine.
// Each Convert call produces an independent document. A Converter is
// not safe for concurrent use; separate instances are independent and
// may run in parallel.
type Converter struct {
	opts    Options
	buf     Buffer
	st      state
	fetcher ImageFetcher
	logger  *slog.Logger
	lastErr *ConvertError
}

// New returns a converter with the given options. The fetcher may be
// nil, which disables downloading regardless of Options.
func New(opts Options, fetcher ImageFetcher, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{opts: opts, fetcher: fetcher, logger: logger}
}

// Err returns the last recorded conversion error, or nil.
func (c *Converter) Err() error {
	if c.lastErr == nil {
		return nil
	}
	return c.lastErr
}

// Code returns the code of the last recorded error, CodeOK if none.
func (c *Converter) Code() ErrorCode {
	if c.lastErr == nil {
		return CodeOK
	}
	return c.lastErr.Code
}

// record stores an error in the converter's error slot. Non-fatal
// codes are logged and conversion continues; the caller aborts on
// fatal ones.
func (c *Converter) record(code ErrorCode, msg string, cause error) {
	c.lastErr = convErr(code, msg, cause)
	if !code.Fatal() {
		c.logger.Warn("conversion issue", slog.String("code", code.String()), slog.String("detail", msg))
	}
}

// SetOptions replaces the converter's options. Takes effect on the
// next Convert call.
func (c *Converter) SetOptions(opts Options) { c.opts = opts }

// Options returns the current options.
func (c *Converter) Options() Options { return c.opts }

// Convert parses the HTML input and returns a complete LaTeX document
// reproducing its structure and inline styling. Malformed HTML never
// fails; the error reports buffer exhaustion or oversized input.
func (c *Converter) Convert(input string) (string, error) {
	if len(input) > dom.MaxInputSize {
		c.record(CodeIOFail, "input exceeds 128 MiB", dom.ErrTooLarge)
		return "", c.lastErr
	}
	return c.ConvertTree(dom.ParseString(input, dom.ParseOptions{Minify: c.opts.Minify}))
}

// ConvertTree converts an already parsed document, so parse work can
// be shared across consumers of the same tree.
func (c *Converter) ConvertTree(root *dom.Node) (string, error) {
	if root == nil {
		c.lastErr = ErrNullArg
		return "", c.lastErr
	}
	c.st.reset()
	c.buf.Reset()
	c.lastErr = nil

	if err := c.buf.WriteString(preamble); err != nil {
		return "", c.fail(err)
	}
	title := dom.Title(root)
	if title != "" {
		if err := c.buf.WriteString("\\title{"); err != nil {
			return "", c.fail(err)
		}
		if err := c.buf.WriteEscaped(title); err != nil {
			return "", c.fail(err)
		}
		if err := c.buf.WriteString("}\n"); err != nil {
			return "", c.fail(err)
		}
	}
	if err := c.buf.WriteString("\\begin{document}\n"); err != nil {
		return "", c.fail(err)
	}
	if title != "" {
		if err := c.buf.WriteString("\\maketitle\n\n"); err != nil {
			return "", c.fail(err)
		}
	}
	if err := c.drive(root); err != nil {
		return "", c.fail(err)
	}
	if err := c.buf.WriteString("\n\\end{document}\n"); err != nil {
		return "", c.fail(err)
	}
	return c.buf.Detach(), nil
}

// fail records a fatal error, discards the partial buffer and returns
// the recorded error.
func (c *Converter) fail(err error) error {
	if ce, ok := err.(*ConvertError); ok {
		c.lastErr = ce
	} else {
		c.record(CodeBufferOverflow, "", err)
	}
	c.buf.Reset()
	return c.lastErr
}

type phase uint8

const (
	phaseOpen phase = iota
	phaseClose
)

// A frame is one entry of the driver's explicit traversal stack: the
// node, the computed style it sees, and whether this visit opens or
// closes the node.
type frame struct {
	n     *dom.Node
	props *css.Properties
	ph    phase
}

// drive walks the tree iteratively, visiting every element twice. The
// open visit merges the parent's computed style with the element's
// inline style, applies CSS wrappers, and emits the element's opening
// markup; the close visit emits the closing markup and settles the
// wrappers. Text nodes are escaped and immediately close any style
// wrappers opened around them. Recursion is deliberately avoided so
// pathologically nested input cannot exhaust the goroutine stack and
// error unwinding stays a simple stack drop.
func (c *Converter) drive(root *dom.Node) error {
	var stack []frame
	base := &css.Properties{}
	for ch := root.LastChild; ch != nil; ch = ch.PrevSibling {
		stack = append(stack, frame{n: ch, props: base, ph: phaseOpen})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.ph == phaseClose {
			if err := c.closeElement(f.n); err != nil {
				return err
			}
			if err := c.closeStyle(f.props, f.n.Data); err != nil {
				return err
			}
			continue
		}

		if f.n.Type == dom.TextNode {
			if err := c.emitText(f.n); err != nil {
				return err
			}
			continue
		}

		tag := f.n.Data
		if dom.ShouldExclude(tag) {
			continue
		}
		if dom.SkipNestedTable(f.n) {
			continue
		}

		effective := f.props
		if style, ok := f.n.AttrVal("style"); ok {
			inline := css.ParseStyle(style)
			if inline.Len() > 0 {
				effective = css.Merge(f.props, inline)
			}
		}

		if err := c.applyStyle(effective, tag); err != nil {
			return err
		}
		skipChildren, err := c.openElement(f.n, effective)
		if err != nil {
			return err
		}

		stack = append(stack, frame{n: f.n, props: effective, ph: phaseClose})
		if !skipChildren {
			for ch := f.n.LastChild; ch != nil; ch = ch.PrevSibling {
				stack = append(stack, frame{n: ch, props: effective, ph: phaseOpen})
			}
		}
	}
	return nil
}

// emitText writes a text node: verbatim inside <pre>, where wrappers
// stay open until the element closes; LaTeX-escaped everywhere else,
// followed by the closing of the style wrappers opened around it.
// Whitespace floating between table structure (outside any cell)
// is dropped so it cannot corrupt the tabular.
func (c *Converter) emitText(n *dom.Node) error {
	if c.st.inTable && !c.st.inTableCell && dom.IsWhitespaceOnly(n.Data) {
		return nil
	}
	if c.st.verbatimDepth > 0 {
		if err := c.buf.WriteString(n.Data); err != nil {
			return err
		}
		return nil
	}
	if err := c.buf.WriteEscaped(n.Data); err != nil {
		return err
	}
	return c.closeWrappers()
}
