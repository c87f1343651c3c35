package dom

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTolerance(t *testing.T) {
	// The builder must return a usable root for every input.
	inputs := []string{
		"",
		"plain text",
		"<p>",
		"</p>",
		"<p>unclosed",
		"<b><i>mismatched</b></i>",
		"<div><span></div></span>",
		"<<<>>>",
		"<p att='unterminated",
		strings.Repeat("<div>", 200),
	}
	for _, in := range inputs {
		root := ParseString(in, ParseOptions{})
		if root == nil {
			t.Errorf("ParseString(%q) = nil root", in)
			continue
		}
		if root.Data != "document" {
			t.Errorf("ParseString(%q) root = %q, want document", in, root.Data)
		}
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "simple nesting",
			in:   "<div><p>a</p><p>b</p></div>",
			want: "<div>\n  <p>\n    a\n  </p>\n  <p>\n    b\n  </p>\n</div>\n",
		},
		{
			name: "void elements do not nest",
			in:   "<p>a<br>b</p>",
			want: "<p>\n  a\n  <br>\n  b\n</p>\n",
		},
		{
			name: "unmatched close dropped",
			in:   "<p>a</b>c</p>",
			want: "<p>\n  ac\n</p>\n",
		},
		{
			name: "close unwinds to match",
			in:   "<div><b>x</div>y",
			want: "<div>\n  <b>\n    x\n  </b>\n</div>\ny\n",
		},
		{
			name: "case-insensitive close",
			in:   "<DIV>x</div>",
			want: "<div>\n  x\n</div>\n",
		},
		{
			name: "comments dropped",
			in:   "<p><!-- note -->x</p>",
			want: "<p>\n  x\n</p>\n",
		},
		{
			name: "entities decoded",
			in:   "<p>a &amp; b &lt;c&gt; &unknown;</p>",
			want: "<p>\n  a &amp; b &lt;c&gt; &amp;unknown;\n</p>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := ParseString(tt.in, ParseOptions{})
			got := RenderString(root)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseScriptRawText(t *testing.T) {
	root := ParseString(`<script>if (a < b) { alert("&amp;"); }</script>`, ParseOptions{})
	script := root.FirstChild
	if script == nil || !script.IsElement("script") {
		t.Fatalf("want script element, got %+v", script)
	}
	text := script.FirstChild
	if text == nil || text.Type != TextNode {
		t.Fatalf("want single text child, got %+v", text)
	}
	// Raw text is absorbed without entity decoding or tag scanning.
	want := `if (a < b) { alert("&amp;"); }`
	if text.Data != want {
		t.Errorf("script content: got %q, want %q", text.Data, want)
	}
	if text.NextSibling != nil {
		t.Errorf("script should have one child, found sibling %+v", text.NextSibling)
	}
}

func TestParseAttributes(t *testing.T) {
	root := ParseString(`<p ID="x" class="a" id="y" Class="b">t</p>`, ParseOptions{})
	p := root.FirstChild
	if p == nil || !p.IsElement("p") {
		t.Fatal("no <p> parsed")
	}
	want := []Attribute{{Key: "id", Val: "y"}, {Key: "class", Val: "b"}}
	if diff := cmp.Diff(want, p.Attr); diff != "" {
		t.Errorf("attributes (-want +got):\n%s", diff)
	}
	if v, ok := p.AttrVal("ID"); !ok || v != "y" {
		t.Errorf("AttrVal(ID) = %q, %v; want y, true", v, ok)
	}
}

func TestParseMinify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "runs collapse",
			in:   "<p>a \n\t b</p>",
			want: "<p>\n  a b\n</p>\n",
		},
		{
			name: "inter-block whitespace dropped",
			in:   "<div>\n  <p>a</p>\n  <p>b</p>\n</div>",
			want: "<div>\n  <p>\n    a\n  </p>\n  <p>\n    b\n  </p>\n</div>\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := ParseString(tt.in, ParseOptions{Minify: true})
			got := RenderString(root)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMinifyKeepsInlineSeparators(t *testing.T) {
	root := ParseString("<p><b>a</b> <i>b</i></p>", ParseOptions{Minify: true})
	p := root.FirstChild
	var kinds []string
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == TextNode {
			kinds = append(kinds, "text:"+c.Data)
		} else {
			kinds = append(kinds, c.Data)
		}
	}
	want := []string{"b", "text: ", "i"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("children (-want +got):\n%s", diff)
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<html><head><title>Hello</title></head></html>", "Hello"},
		{"<title>A<b>B</b>C</title>", "ABC"},
		{"<p>no title</p>", ""},
		{"<title>first</title><title>second</title>", "first"},
	}
	for _, tt := range tests {
		root := ParseString(tt.in, ParseOptions{})
		if got := Title(root); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNodeText(t *testing.T) {
	root := ParseString("<div>a<span>b</span>c</div>", ParseOptions{})
	if got := root.Text(); got != "abc" {
		t.Errorf("Text() = %q, want abc", got)
	}
}
