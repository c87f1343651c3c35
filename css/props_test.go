package css

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPropertiesSetGet(t *testing.T) {
	var p Properties
	p.Set("Color", "red", false)
	p.Set("font-size", "12px", true)

	if v, ok := p.Get("color"); !ok || v != "red" {
		t.Errorf("Get(color) = %q, %v", v, ok)
	}
	if v, ok := p.Get("COLOR"); !ok || v != "red" {
		t.Errorf("Get(COLOR) = %q, %v", v, ok)
	}
	if prop, ok := p.Lookup("font-size"); !ok || !prop.Important {
		t.Errorf("Lookup(font-size) = %+v, %v", prop, ok)
	}
	if p.Has("margin-top") {
		t.Error("Has(margin-top) = true on empty key")
	}
}

func TestPropertiesOverwriteKeepsPosition(t *testing.T) {
	var p Properties
	p.Set("color", "red", false)
	p.Set("font-size", "12px", false)
	p.Set("color", "blue", true)

	want := []Property{
		{Key: "color", Value: "blue", Important: true},
		{Key: "font-size", Value: "12px"},
	}
	if diff := cmp.Diff(want, p.All()); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestPropertiesMask(t *testing.T) {
	tests := []struct {
		key  string
		want Mask
	}{
		{"font-weight", MaskBold},
		{"font-style", MaskItalic},
		{"text-decoration", MaskUnderline},
		{"color", MaskColor},
		{"background", MaskBackground},
		{"background-color", MaskBackground},
		{"font-family", MaskFontFamily},
		{"font-size", MaskFontSize},
		{"text-align", MaskTextAlign},
		{"border", MaskBorder},
		{"margin-top", MaskMarginTop},
		{"margin-right", MaskMarginRight},
		{"margin-bottom", MaskMarginBottom},
		{"margin-left", MaskMarginLeft},
		{"padding", 0}, // unrecognized keys store without mask bits
	}
	for _, tt := range tests {
		var p Properties
		p.Set(tt.key, "x", false)
		if p.Mask() != tt.want {
			t.Errorf("mask after Set(%s) = %b, want %b", tt.key, p.Mask(), tt.want)
		}
		if !p.Has(tt.key) {
			t.Errorf("Has(%s) = false after Set", tt.key)
		}
	}
}

func TestPropertiesCopy(t *testing.T) {
	var p Properties
	p.Set("color", "red", false)
	c := p.Copy()
	c.Set("color", "blue", false)
	c.Set("border", "1px solid", false)

	if v, _ := p.Get("color"); v != "red" {
		t.Errorf("copy mutated original: color = %q", v)
	}
	if p.Mask()&MaskBorder != 0 {
		t.Error("copy mutated original mask")
	}
	var nilProps *Properties
	if got := nilProps.Copy(); got == nil || got.Len() != 0 {
		t.Errorf("Copy of nil = %+v, want empty set", got)
	}
}
