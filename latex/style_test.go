package latex

import "testing"

func TestFontWeightMacro(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bold", "\\textbf{"},
		{"BOLD", "\\textbf{"},
		{"bolder", "\\textbf{"},
		{"600", "\\textbf{"},
		{"900", "\\textbf{"},
		{"lighter", "\\textmd{"},
		{"300", "\\textmd{"},
		{"100", "\\textmd{"},
		{"normal", ""},
		{"400", ""},
		{"599", ""},
		{"garbage", ""},
	}
	for _, tt := range tests {
		if got := fontWeightMacro(tt.in); got != tt.want {
			t.Errorf("fontWeightMacro(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontFamilyMacro(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"monospace", "\\texttt{"},
		{"Courier New, monospace", "\\texttt{"},
		{"sans-serif", "\\textsf{"},
		{"Arial, sans-serif", "\\textsf{"},
		{"Helvetica", "\\textsf{"},
		{"serif", "\\textrm{"},
		{"Times New Roman, serif", "\\textrm{"},
		{"Comic Sans MS", "\\textsf{"},
		{"cursive", ""},
	}
	for _, tt := range tests {
		if got := fontFamilyMacro(tt.in); got != tt.want {
			t.Errorf("fontFamilyMacro(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFontSizeMacro(t *testing.T) {
	tests := []struct {
		pt   int
		want string
	}{
		{0, "tiny"},
		{8, "tiny"},
		{9, "small"},
		{10, "small"},
		{12, "normalsize"},
		{14, "large"},
		{18, "Large"},
		{24, "LARGE"},
		{25, "huge"},
		{100, "huge"},
	}
	for _, tt := range tests {
		if got := fontSizeMacro(tt.pt); got != tt.want {
			t.Errorf("fontSizeMacro(%d) = %q, want %q", tt.pt, got, tt.want)
		}
	}
}
