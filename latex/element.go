package latex

import (
	"fmt"
	"strings"

	"github.com/dpotapov/go-htmltex/css"
	"github.com/dpotapov/go-htmltex/dom"
)

// openElement emits the opening markup for a supported element and
// reports whether the driver should skip the element's children
// (captions and figure-mode tables consume their own subtree).
// Unsupported elements emit nothing; their children still recurse.
func (c *Converter) openElement(n *dom.Node, props *css.Properties) (skipChildren bool, err error) {
	st := &c.st
	switch n.Data {
	case "h1":
		st.inParagraph = false
		return false, c.buf.WriteString("\\section{")
	case "h2":
		return false, c.buf.WriteString("\\subsection{")
	case "h3":
		return false, c.buf.WriteString("\\subsubsection{")
	case "h4":
		return false, c.buf.WriteString("\\paragraph{")
	case "h5", "h6":
		return false, c.buf.WriteString("\\textbf{")
	case "p":
		st.inParagraph = true
		return false, nil
	case "br":
		return false, c.buf.WriteString("\\\\\n")
	case "hr":
		return false, c.buf.WriteString("\\hrule\n")
	case "b", "strong":
		return false, c.buf.WriteString("\\textbf{")
	case "i", "em":
		return false, c.buf.WriteString("\\textit{")
	case "u":
		return false, c.buf.WriteString("\\underline{")
	case "s", "strike", "del":
		return false, c.buf.WriteString("\\sout{")
	case "code", "tt":
		return false, c.buf.WriteString("\\texttt{")
	case "sub":
		return false, c.buf.WriteString("\\textsubscript{")
	case "sup":
		return false, c.buf.WriteString("\\textsuperscript{")
	case "a":
		href, ok := n.AttrVal("href")
		if !ok || href == "" {
			return false, nil
		}
		return false, c.buf.Printf("\\href{%s}{", EscapeURL(href))
	case "ul":
		st.listDepth++
		return false, c.buf.WriteString("\\begin{itemize}\n")
	case "ol":
		st.listDepth++
		return false, c.buf.WriteString("\\begin{enumerate}\n")
	case "li":
		return false, c.buf.WriteString("\\item ")
	case "blockquote":
		return false, c.buf.WriteString("\\begin{quote}\n")
	case "pre":
		st.verbatimDepth++
		return false, c.buf.WriteString("\\begin{verbatim}\n")
	case "img":
		return false, c.emitImage(n, props, false)
	case "table":
		return c.openTable(n)
	case "caption":
		if st.inTable && !st.tableHasCaption {
			st.tableCaption = n.Text()
			st.tableHasCaption = true
		}
		return true, nil
	case "tr":
		st.inTableRow = true
		st.currentColumn = 0
		return false, nil
	case "td", "th":
		return false, c.openCell(n.Data == "th")
	}
	return false, nil
}

// closeElement emits the closing markup for a supported element.
func (c *Converter) closeElement(n *dom.Node) error {
	st := &c.st
	switch n.Data {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return c.buf.WriteString("}\n\n")
	case "p":
		st.inParagraph = false
		return c.buf.WriteString("\n\n")
	case "b", "strong", "i", "em", "u", "s", "strike", "del",
		"code", "tt", "sub", "sup":
		return c.buf.WriteByte('}')
	case "a":
		if href, ok := n.AttrVal("href"); ok && href != "" {
			return c.buf.WriteByte('}')
		}
		return nil
	case "ul":
		st.listDepth--
		return c.buf.WriteString("\\end{itemize}\n")
	case "ol":
		st.listDepth--
		return c.buf.WriteString("\\end{enumerate}\n")
	case "li":
		return c.buf.WriteByte('\n')
	case "blockquote":
		return c.buf.WriteString("\\end{quote}\n")
	case "pre":
		st.verbatimDepth--
		return c.buf.WriteString("\\end{verbatim}\n")
	case "table":
		if st.inTable {
			return c.closeTable(n)
		}
		return nil
	case "tr":
		if !st.inTableRow {
			return nil
		}
		st.inTableRow = false
		return c.buf.WriteString(" \\\\ \\hline\n")
	case "td":
		st.inTableCell = false
		return nil
	case "th":
		if !st.inTableCell {
			return nil
		}
		st.inTableCell = false
		return c.buf.WriteByte('}')
	}
	return nil
}

// openTable starts a tabular for a data table, or renders the whole
// subtree as a figure when the table holds nothing but images.
func (c *Converter) openTable(n *dom.Node) (skipChildren bool, err error) {
	st := &c.st
	if dom.TableOnlyImages(n) {
		return true, c.emitImageTable(n)
	}
	st.tableColumns = dom.CountTableColumns(n)
	st.inTable = true
	st.currentColumn = 0
	st.tableCaption = ""
	st.tableHasCaption = false

	var spec strings.Builder
	for i := 0; i < st.tableColumns; i++ {
		spec.WriteString("|c")
	}
	spec.WriteByte('|')
	return false, c.buf.Printf("\\begin{table}[h]\n\\centering\n\\begin{tabular}{%s}\n\\hline\n", spec.String())
}

func (c *Converter) closeTable(n *dom.Node) error {
	st := &c.st
	if err := c.buf.WriteString("\\end{tabular}\n"); err != nil {
		return err
	}
	caption := st.tableCaption
	if !st.tableHasCaption {
		st.tableIdx++
		caption = fmt.Sprintf("Table %d", st.tableIdx)
	}
	if err := c.buf.WriteString("\\caption{"); err != nil {
		return err
	}
	if err := c.buf.WriteEscaped(caption); err != nil {
		return err
	}
	if err := c.buf.WriteString("}\n"); err != nil {
		return err
	}
	if id, ok := n.AttrVal("id"); ok && id != "" {
		if err := c.buf.Printf("\\label{tab:%s}\n", id); err != nil {
			return err
		}
	}
	st.resetTable()
	return c.buf.WriteString("\\end{table}\n\n")
}

// openCell starts a td/th cell: column separator, header bolding, and
// the table-state invariant check. A cell outside a row is reported as
// a non-fatal Table error; its content is still emitted, without a
// column separator, and the table itself is not closed.
func (c *Converter) openCell(header bool) error {
	st := &c.st
	if !st.inTable || !st.inTableRow {
		c.record(CodeTable, "table cell outside a row", nil)
		return nil
	}
	st.currentColumn++
	st.inTableCell = true
	if st.currentColumn > 1 {
		if err := c.buf.WriteString(" & "); err != nil {
			return err
		}
	}
	if header {
		return c.buf.WriteString("\\textbf{")
	}
	return nil
}

// emitImageTable renders an image-only table as a centered figure:
// every <img> descendant in document order, then a caption taken from
// the table's <caption> or generated from the figure counter.
func (c *Converter) emitImageTable(n *dom.Node) error {
	st := &c.st
	if err := c.buf.WriteString("\\begin{figure}[h]\n\\centering\n"); err != nil {
		return err
	}
	caption := ""
	var walk func(*dom.Node) error
	walk = func(m *dom.Node) error {
		for child := m.FirstChild; child != nil; child = child.NextSibling {
			if child.Type != dom.ElementNode {
				continue
			}
			switch child.Data {
			case "img":
				var props *css.Properties
				if style, ok := child.AttrVal("style"); ok {
					props = css.ParseStyle(style)
				}
				if err := c.emitImage(child, props, true); err != nil {
					return err
				}
				if err := c.buf.WriteByte('\n'); err != nil {
					return err
				}
			case "caption":
				if caption == "" {
					caption = child.Text()
				}
			default:
				if err := walk(child); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(n); err != nil {
		return err
	}
	if caption == "" {
		st.figureIdx++
		caption = fmt.Sprintf("Figure %d", st.figureIdx)
	}
	if err := c.buf.WriteString("\\caption{"); err != nil {
		return err
	}
	if err := c.buf.WriteEscaped(caption); err != nil {
		return err
	}
	return c.buf.WriteString("}\n\\end{figure}\n\n")
}

// emitImage writes an \includegraphics command for an <img> element.
// Data URLs are dropped. When downloading is enabled the image is
// fetched through the downloader and the local filename substitutes
// the remote URL; on failure the original src survives. Dimensions
// come from the style attribute when present, else from the HTML
// width/height attributes, both normalized to points.
// withBackground wraps the graphic in a \colorbox for callers that do
// not run the style applier (figure mode).
func (c *Converter) emitImage(n *dom.Node, props *css.Properties, withBackground bool) error {
	src, ok := n.AttrVal("src")
	if !ok || src == "" {
		return nil
	}
	if strings.HasPrefix(src, "data:") && strings.Contains(src, "base64") {
		return nil
	}

	path := src
	if c.opts.DownloadImages && c.opts.ImageDir != "" && c.fetcher != nil {
		c.st.imageIdx++
		local, err := c.fetcher.Fetch(src, c.opts.ImageDir, c.st.imageIdx)
		if err != nil {
			c.record(CodeImageIO, "image download failed: "+src, err)
		} else {
			path = local
		}
	}

	width := c.imageDimension(n, props, "width")
	height := c.imageDimension(n, props, "height")

	closeBox := false
	if withBackground {
		if v, ok := props.Get("background-color"); ok {
			if hex := css.ColorToHex(v); hex != "FFFFFF" {
				if err := c.buf.Printf("\\colorbox[HTML]{%s}{", hex); err != nil {
					return err
				}
				closeBox = true
			}
		}
	}

	var opts []string
	if width != 0 {
		opts = append(opts, fmt.Sprintf("width=%dpt", width))
	}
	if height != 0 {
		opts = append(opts, fmt.Sprintf("height=%dpt", height))
	}
	var err error
	if len(opts) == 0 {
		err = c.buf.Printf("\\includegraphics{%s}", EscapeURL(path))
	} else {
		err = c.buf.Printf("\\includegraphics[%s]{%s}", strings.Join(opts, ","), EscapeURL(path))
	}
	if err != nil {
		return err
	}
	if closeBox {
		return c.buf.WriteByte('}')
	}
	return nil
}

func (c *Converter) imageDimension(n *dom.Node, props *css.Properties, name string) int {
	if v, ok := props.Get(name); ok {
		return css.LengthToPt(v)
	}
	if v, ok := n.AttrVal(name); ok {
		return css.LengthToPt(v)
	}
	return 0
}
