package htmltex

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParserRoundTrip(t *testing.T) {
	p := NewParser("<div><p>hello</p></div>")
	if !p.Valid() {
		t.Fatal("parser invalid for well-formed input")
	}
	got := p.String()
	want := "<div>\n  <p>\n    hello\n  </p>\n</div>\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParserTitle(t *testing.T) {
	p := NewParser("<html><head><title>T</title></head><body></body></html>")
	if got := p.Title(); got != "T" {
		t.Errorf("Title() = %q, want T", got)
	}
}

func TestParserFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.html")
	if err := os.WriteFile(path, []byte("<p>file content</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := FromFile(path)
	if !p.Valid() {
		t.Fatalf("FromFile: %v", p.Err())
	}
	if !strings.Contains(p.String(), "file content") {
		t.Errorf("content missing: %q", p.String())
	}

	out := filepath.Join(dir, "out.html")
	if err := p.WriteFile(out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != p.String() {
		t.Error("WriteFile output differs from String()")
	}
}

func TestParserFromFileMissing(t *testing.T) {
	p := FromFile(filepath.Join(t.TempDir(), "nope.html"))
	if p.Valid() {
		t.Error("missing file must yield an invalid parser")
	}
	if p.Err() == nil {
		t.Error("missing file must record the error")
	}
	// The empty parser stays safe to use.
	if p.String() != "" || p.Title() != "" {
		t.Error("empty parser must render nothing")
	}
}

func TestParserFromReader(t *testing.T) {
	p := FromReader(strings.NewReader("<b>r</b>"))
	if !p.Valid() {
		t.Fatalf("FromReader: %v", p.Err())
	}
	if !strings.Contains(p.String(), "r") {
		t.Errorf("content missing: %q", p.String())
	}
}
