package dom

import "testing"

func TestClassifiersDisjoint(t *testing.T) {
	// Every classified tag must belong to exactly one of the four
	// tables; "embed", "param", "meta" and "link" are the deliberate
	// exceptions that are both void and excluded.
	all := map[string]bool{}
	for _, set := range []map[string]bool{blockTags, inlineTags, voidTags, excludeTags} {
		for tag := range set {
			all[tag] = true
		}
	}
	for tag := range all {
		n := 0
		if IsBlock(tag) {
			n++
		}
		if IsInline(tag) {
			n++
		}
		if IsVoid(tag) {
			n++
		}
		if ShouldExclude(tag) {
			n++
		}
		switch tag {
		case "embed", "param", "meta", "link":
			if n != 2 {
				t.Errorf("%s: classified %d times, want 2 (void+excluded)", tag, n)
			}
		default:
			if n != 1 {
				t.Errorf("%s: classified %d times, want exactly 1", tag, n)
			}
		}
	}
	for _, other := range []string{"main", "video", "custom-tag"} {
		if IsBlock(other) || IsInline(other) || IsVoid(other) || ShouldExclude(other) {
			t.Errorf("%s: should be unclassified", other)
		}
	}
}

func TestIsWhitespaceOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{" \t\r\n\f", true},
		{" x ", false},
		{" ", false}, // nbsp is not ASCII whitespace
	}
	for _, tt := range tests {
		if got := IsWhitespaceOnly(tt.in); got != tt.want {
			t.Errorf("IsWhitespaceOnly(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSkipNestedTable(t *testing.T) {
	root := ParseString("<table><tr><td><table><tr><td>x</td></tr></table></td></tr></table>", ParseOptions{})
	outer := root.FirstChild
	if !outer.IsElement("table") {
		t.Fatal("no outer table")
	}
	if SkipNestedTable(outer) {
		t.Error("outer table misreported as nested")
	}
	var inner *Node
	var find func(*Node)
	find = func(n *Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.IsElement("table") {
				inner = c
				return
			}
			find(c)
		}
	}
	find(outer)
	if inner == nil {
		t.Fatal("no inner table")
	}
	if !SkipNestedTable(inner) {
		t.Error("inner table not detected as nested")
	}
}

func TestTableOnlyImages(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{
			name: "images only",
			in:   `<table><tr><td><img src="a.png"></td><td><img src="b.png"></td></tr></table>`,
			want: true,
		},
		{
			name: "images with caption and links",
			in:   `<table><caption> </caption><tr><td><a href="#"><img src="a.png"></a></td></tr></table>`,
			want: true,
		},
		{
			name: "text disqualifies",
			in:   `<table><tr><td><img src="a.png">label</td></tr></table>`,
			want: false,
		},
		{
			name: "no images at all",
			in:   `<table><tr><td> </td></tr></table>`,
			want: false,
		},
		{
			name: "non-layout element disqualifies",
			in:   `<table><tr><td><div><img src="a.png"></div></td></tr></table>`,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := ParseString(tt.in, ParseOptions{})
			table := root.FirstChild
			if !table.IsElement("table") {
				t.Fatal("no table parsed")
			}
			if got := TableOnlyImages(table); got != tt.want {
				t.Errorf("TableOnlyImages = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountTableColumns(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{
			name: "uniform rows",
			in:   "<table><tr><td>1</td><td>2</td></tr><tr><td>3</td><td>4</td></tr></table>",
			want: 2,
		},
		{
			name: "colspan expands",
			in:   `<table><tr><td colspan="3">a</td></tr><tr><td>b</td></tr></table>`,
			want: 3,
		},
		{
			name: "max over rows",
			in:   "<table><tr><td>a</td></tr><tr><td>b</td><td>c</td><td>d</td></tr></table>",
			want: 3,
		},
		{
			name: "row groups recursed",
			in:   "<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>c</td></tr></tbody></table>",
			want: 2,
		},
		{
			name: "caption ignored",
			in:   "<table><caption>cap</caption><tr><td>a</td></tr></table>",
			want: 1,
		},
		{
			name: "empty table",
			in:   "<table></table>",
			want: 1,
		},
		{
			name: "bad colspan counts one",
			in:   `<table><tr><td colspan="zero">a</td><td>b</td></tr></table>`,
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := ParseString(tt.in, ParseOptions{})
			table := root.FirstChild
			if !table.IsElement("table") {
				t.Fatal("no table parsed")
			}
			if got := CountTableColumns(table); got != tt.want {
				t.Errorf("CountTableColumns = %d, want %d", got, tt.want)
			}
		})
	}
}
