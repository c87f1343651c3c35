package dom

import (
	"fmt"
	"io"
	"strings"
)

// Render writes an indented, canonical form of the tree rooted at n,
// suitable for diffing. The synthetic document root itself is not
// printed, only its children. Text and attribute values are escaped
// per HTML rules.
func Render(w io.Writer, n *Node) error {
	if n.Type == ElementNode && n.Data == "document" && n.Parent == nil {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := renderLevel(w, c, 0); err != nil {
				return err
			}
		}
		return nil
	}
	return renderLevel(w, n, 0)
}

// RenderString returns the canonical form of the tree as a string.
func RenderString(n *Node) string {
	var sb strings.Builder
	_ = Render(&sb, n)
	return sb.String()
}

func renderLevel(w io.Writer, n *Node, level int) error {
	indent := strings.Repeat("  ", level)
	switch n.Type {
	case TextNode:
		if IsWhitespaceOnly(n.Data) {
			return nil
		}
		_, err := fmt.Fprintf(w, "%s%s\n", indent, escapeText(n.Data))
		return err
	case ElementNode:
		if _, err := fmt.Fprintf(w, "%s<%s", indent, n.Data); err != nil {
			return err
		}
		for _, a := range n.Attr {
			if _, err := fmt.Fprintf(w, " %s=\"%s\"", a.Key, escapeText(a.Val)); err != nil {
				return err
			}
		}
		if IsVoid(n.Data) {
			_, err := io.WriteString(w, ">\n")
			return err
		}
		if _, err := io.WriteString(w, ">\n"); err != nil {
			return err
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := renderLevel(w, c, level+1); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%s</%s>\n", indent, n.Data)
		return err
	}
	return nil
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
