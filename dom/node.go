package dom

import (
	"strings"

	"golang.org/x/net/html/atom"
)

// A NodeType is the type of a Node. The DOM kept by this package is
// deliberately small: a document root, elements and text. Comments,
// doctypes and processing instructions are dropped at parse time.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// An Attribute is a single key="value" pair on an element. Keys are
// folded to lowercase when the tree is built; values keep their
// entity-decoded form verbatim.
type Attribute struct {
	Key string
	Val string
}

// A Node is a node of the parsed HTML tree.
//
// For an ElementNode, Data holds the lowercased tag name and Attr the
// ordered attribute list. For a TextNode, Data holds the decoded text
// and Attr is nil. The Parent link is a back-reference only; ownership
// follows the child links.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type     NodeType
	DataAtom atom.Atom
	Data     string
	Attr     []Attribute
}

const whitespace = " \t\r\n\f"

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.Type == TextNode }

// IsElement reports whether n is an element with the given tag name.
func (n *Node) IsElement(tag string) bool {
	return n.Type == ElementNode && n.Data == tag
}

// IsWhitespace reports whether n is a text node consisting solely of
// ASCII whitespace.
func (n *Node) IsWhitespace() bool {
	return n.Type == TextNode && strings.TrimLeft(n.Data, whitespace) == ""
}

// AttrVal returns the value of the named attribute, matching the key
// case-insensitively, and whether the attribute is present.
func (n *Node) AttrVal(key string) (string, bool) {
	for i := range n.Attr {
		if strings.EqualFold(n.Attr[i].Key, key) {
			return n.Attr[i].Val, true
		}
	}
	return "", false
}

// AppendChild adds a node c as a child of n.
//
// It will panic if c already has a parent or siblings.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("dom: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will
// have no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("dom: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

// Text returns the concatenated contents of all text descendants of n
// in document order.
func (n *Node) Text() string {
	var sb strings.Builder
	var walk func(*Node)
	walk = func(m *Node) {
		if m.Type == TextNode {
			sb.WriteString(m.Data)
			return
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// nodeStack is a stack of open elements used during tree construction.
type nodeStack []*Node

// pop pops the stack. It will panic if s is empty.
func (s *nodeStack) pop() *Node {
	i := len(*s)
	n := (*s)[i-1]
	*s = (*s)[:i-1]
	return n
}

// top returns the most recently pushed node, or nil if s is empty.
func (s *nodeStack) top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}

// index returns the index of the top-most element whose tag equals name
// (case-insensitive), or -1 if no such element is on the stack.
func (s *nodeStack) index(name string) int {
	for i := len(*s) - 1; i >= 0; i-- {
		if strings.EqualFold((*s)[i].Data, name) {
			return i
		}
	}
	return -1
}
