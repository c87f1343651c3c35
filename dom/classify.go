package dom

import (
	"strconv"
	"strings"
)

// Tag classification tables. Membership is disjoint across the four
// sets except for embed, param, meta and link, which are both void and
// excluded; tags in none of them are "other" and produce no markup of
// their own during conversion.
var (
	blockTags = makeSet(
		"p", "div", "h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "table", "tr", "thead", "tbody", "tfoot",
		"blockquote", "pre", "address", "article", "section",
		"header", "footer", "nav", "aside", "figure",
	)
	inlineTags = makeSet(
		"span", "a", "strong", "b", "em", "i", "u", "code", "tt",
		"small", "sub", "sup", "abbr", "cite", "q", "mark", "var",
	)
	voidTags = makeSet(
		"area", "base", "br", "col", "embed", "hr", "img", "input",
		"link", "meta", "param", "source", "track", "wbr",
	)
	excludeTags = makeSet(
		"script", "style", "noscript", "iframe", "object", "embed",
		"param", "head", "meta", "link", "title",
	)
	// Elements allowed inside an image-only table besides <img>:
	// structural and purely presentational wrappers.
	layoutTags = makeSet(
		"table", "tbody", "tr", "td", "th", "caption", "center", "a", "span",
	)
)

func makeSet(tags ...string) map[string]bool {
	m := make(map[string]bool, len(tags))
	for _, t := range tags {
		m[t] = true
	}
	return m
}

// IsBlock reports whether tag is a block-level element.
func IsBlock(tag string) bool { return blockTags[tag] }

// IsInline reports whether tag is an inline text element.
func IsInline(tag string) bool { return inlineTags[tag] }

// IsVoid reports whether tag is a void element (no close tag, no
// children).
func IsVoid(tag string) bool { return voidTags[tag] }

// ShouldExclude reports whether tag starts a subtree that is skipped
// entirely during conversion (scripts, styles, document metadata).
func ShouldExclude(tag string) bool { return excludeTags[tag] }

// IsWhitespaceOnly reports whether s consists solely of ASCII
// whitespace.
func IsWhitespaceOnly(s string) bool {
	return strings.TrimLeft(s, whitespace) == ""
}

// SkipNestedTable reports whether n is a <table> element with a proper
// <table> ancestor. Nested tables are dropped rather than emitted as
// broken tabular environments.
func SkipNestedTable(n *Node) bool {
	if !n.IsElement("table") {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.IsElement("table") {
			return true
		}
	}
	return false
}

// TableOnlyImages reports whether every non-whitespace descendant of
// the table is an <img> or a presentational/layout wrapper. Such
// tables hold pictures, not data, and convert to a figure instead of a
// tabular.
func TableOnlyImages(n *Node) bool {
	images := 0
	var walk func(*Node) bool
	walk = func(m *Node) bool {
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case TextNode:
				if !IsWhitespaceOnly(c.Data) {
					return false
				}
			case ElementNode:
				if c.Data == "img" {
					images++
					continue
				}
				if !layoutTags[c.Data] {
					return false
				}
				if !walk(c) {
					return false
				}
			}
		}
		return true
	}
	if !walk(n) {
		return false
	}
	return images > 0
}

// CountTableColumns returns the column count of a table: the maximum
// over all rows of the summed colspan values of that row's cells (a
// cell without a usable colspan counts as one). Captions are ignored
// and row groups are recursed into. A table with no cells counts one
// column.
func CountTableColumns(table *Node) int {
	max := 1
	var walk func(*Node)
	walk = func(m *Node) {
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != ElementNode {
				continue
			}
			switch c.Data {
			case "caption":
				// Not part of the grid.
			case "thead", "tbody", "tfoot":
				walk(c)
			case "tr":
				if n := rowColumns(c); n > max {
					max = n
				}
			}
		}
	}
	walk(table)
	return max
}

func rowColumns(tr *Node) int {
	cols := 0
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != ElementNode || (c.Data != "td" && c.Data != "th") {
			continue
		}
		span := 1
		if v, ok := c.AttrVal("colspan"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
				span = n
			}
		}
		cols += span
	}
	return cols
}
