package dom

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// MaxInputSize is the largest HTML document the parser accepts.
const MaxInputSize = 128 << 20

// ErrTooLarge is returned when the input exceeds MaxInputSize.
var ErrTooLarge = errors.New("dom: input exceeds maximum size")

// ErrNoDocument is returned for operations on an empty document.
var ErrNoDocument = errors.New("dom: no document")

// ParseOptions configure tree construction.
type ParseOptions struct {
	// Minify collapses whitespace runs in text to a single space and
	// drops whitespace-only text nodes sitting between block-level
	// siblings. Without it, text is preserved verbatim.
	Minify bool
}

// A parser builds a Node tree from the token stream of an
// x/net/html.Tokenizer. Unlike the HTML5 tree construction algorithm,
// the policy here is deliberately forgiving and lean: there are no
// insertion modes, no foster parenting and no implied tags. A close tag
// unwinds the stack of open elements to the nearest case-insensitive
// match and is dropped when no match exists, so malformed markup never
// aborts a parse.
type parser struct {
	tokenizer *html.Tokenizer
	// doc is the synthetic "document" root element.
	doc *Node
	// oe is the stack of open elements.
	oe     nodeStack
	minify bool
}

func (p *parser) top() *Node {
	if n := p.oe.top(); n != nil {
		return n
	}
	return p.doc
}

// addText appends text to the preceding text node if there is one, or
// else adds a new text child to the top open element.
func (p *parser) addText(text string) {
	if text == "" {
		return
	}
	if p.minify {
		text = collapseWhitespace(text)
		if text == "" {
			return
		}
	}
	t := p.top()
	if n := t.LastChild; n != nil && n.Type == TextNode {
		n.Data += text
		if p.minify {
			n.Data = collapseWhitespace(n.Data)
		}
		return
	}
	t.AppendChild(&Node{Type: TextNode, Data: text})
}

// addElement adds a child element built from tok to the top open
// element and pushes it unless the tag is void or self-closing.
func (p *parser) addElement(tok html.Token, selfClosing bool) {
	n := &Node{
		Type:     ElementNode,
		DataAtom: tok.DataAtom,
		Data:     strings.ToLower(tok.Data),
		Attr:     dedupeAttrs(tok.Attr),
	}
	p.top().AppendChild(n)
	if !selfClosing && !IsVoid(n.Data) {
		p.oe = append(p.oe, n)
	}
}

// closeElement implements the unwind-or-drop policy: pop open elements
// down to the nearest tag matching name, or ignore the close tag
// entirely when nothing on the stack matches.
func (p *parser) closeElement(name string) {
	if i := p.oe.index(name); i != -1 {
		p.oe = p.oe[:i]
	}
}

// dedupeAttrs lowercases attribute keys and collapses duplicate keys
// (case-insensitive), keeping the last occurrence in the position of
// the first.
func dedupeAttrs(attrs []html.Attribute) []Attribute {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		dup := false
		for i := range out {
			if out[i].Key == key {
				out[i].Val = a.Val
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, Attribute{Key: key, Val: a.Val})
		}
	}
	return out
}

// collapseWhitespace reduces each run of ASCII whitespace to a single
// space character. Leading and trailing runs survive as one space:
// they may separate words across element boundaries. Whitespace that
// separates nothing is removed later by dropInterBlockWhitespace.
func collapseWhitespace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' {
			if !space {
				sb.WriteByte(' ')
			}
			space = true
			continue
		}
		space = false
		sb.WriteByte(c)
	}
	return sb.String()
}

func (p *parser) parse() error {
	for {
		tt := p.tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			err := p.tokenizer.Err()
			if err == io.EOF {
				return nil
			}
			// Any other tokenizer error still yields the tree built
			// so far; the builder never fails on malformed markup.
			return err
		case html.TextToken:
			p.addText(p.tokenizer.Token().Data)
		case html.StartTagToken:
			tok := p.tokenizer.Token()
			p.addElement(tok, false)
			if tok.DataAtom == atom.Title {
				// Title content is tokenized as markup, so nested
				// elements become child nodes and Title sees only text.
				p.tokenizer.NextIsNotRawText()
			}
		case html.SelfClosingTagToken:
			p.addElement(p.tokenizer.Token(), true)
		case html.EndTagToken:
			tok := p.tokenizer.Token()
			p.closeElement(tok.Data)
		case html.CommentToken, html.DoctypeToken:
			// Dropped.
		}
	}
}

// dropInterBlockWhitespace removes whitespace-only text nodes that sit
// between block-level siblings (or between a block sibling and the
// start or end of its parent).
func dropInterBlockWhitespace(n *Node) {
	c := n.FirstChild
	for c != nil {
		next := c.NextSibling
		if c.IsWhitespace() && blockBoundary(c.PrevSibling) && blockBoundary(c.NextSibling) {
			n.RemoveChild(c)
		} else if c.Type == ElementNode {
			dropInterBlockWhitespace(c)
		}
		c = next
	}
}

func blockBoundary(n *Node) bool {
	if n == nil {
		return true
	}
	return n.Type == ElementNode && IsBlock(n.Data)
}

// Parse reads HTML from r and returns the root of the constructed tree:
// a synthetic "document" element whose children are the top-level
// nodes. The returned root is non-nil even for empty or malformed
// input; the error reports read failures only.
func Parse(r io.Reader, opts ParseOptions) (*Node, error) {
	p := &parser{
		tokenizer: html.NewTokenizer(r),
		doc:       &Node{Type: ElementNode, Data: "document"},
		minify:    opts.Minify,
	}
	err := p.parse()
	if opts.Minify {
		dropInterBlockWhitespace(p.doc)
	}
	return p.doc, err
}

// ParseString is Parse over an in-memory document.
func ParseString(s string, opts ParseOptions) *Node {
	root, _ := Parse(strings.NewReader(s), opts)
	return root
}

// Title returns the concatenated text of the first <title> element in
// breadth-first order, or "" when the document has none.
func Title(root *Node) string {
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n.Type == ElementNode && (n.DataAtom == atom.Title || n.Data == "title") {
			return n.Text()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			queue = append(queue, c)
		}
	}
	return ""
}
