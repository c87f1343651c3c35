// Package css implements the small slice of CSS the LaTeX converter
// understands: inline style declarations, the margin shorthand
// expansion, parent/child cascade over inherited properties, and the
// length and color value decoders.
package css

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Length clamp bounds, in points.
const (
	minPt = -10000
	maxPt = 10000
)

// LengthToPt decodes a CSS length into whole points. The input is a
// number with an optional unit suffix; a missing or unrecognized unit
// is treated as px. Percentages map to points at the fixed ratio
// 100% = 400pt. The result is clamped to [-10000, 10000]; undecodable
// input yields 0.
func LengthToPt(s string) int {
	s = strings.TrimSpace(stripImportant(s))
	if s == "" {
		return 0
	}
	num, unit := splitLength(s)
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	var pt float64
	switch strings.ToLower(unit) {
	case "pt":
		pt = v
	case "em", "rem":
		pt = v * 10
	case "%":
		pt = v * 4
	case "cm":
		pt = v * 28.346
	case "mm":
		pt = v * 2.8346
	case "in":
		pt = v * 72
	default: // px and anything unknown
		pt = v * 72 / 96
	}
	r := int(math.Round(pt))
	if r < minPt {
		return minPt
	}
	if r > maxPt {
		return maxPt
	}
	return r
}

// splitLength separates the leading numeric part of a CSS length from
// its unit suffix.
func splitLength(s string) (num, unit string) {
	i := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' || c == '.' || c == '-' || c == '+' || c == 'e' || c == 'E' {
			// 'e' only continues the number when followed by a digit
			// or sign, otherwise it starts a unit like "em".
			if c == 'e' || c == 'E' {
				if i+1 >= len(s) {
					break
				}
				n := s[i+1]
				if n != '-' && n != '+' && (n < '0' || n > '9') {
					break
				}
			}
			i++
			continue
		}
		break
	}
	return s[:i], strings.TrimSpace(s[i:])
}

func stripImportant(s string) string {
	lower := strings.ToLower(s)
	if i := strings.LastIndex(lower, "!important"); i >= 0 {
		return s[:i]
	}
	return s
}

// namedColors is the minimal named-color table. Transparent maps to
// white so that background checks can suppress it.
var namedColors = map[string]string{
	"black":       "000000",
	"white":       "FFFFFF",
	"red":         "FF0000",
	"green":       "008000",
	"blue":        "0000FF",
	"yellow":      "FFFF00",
	"cyan":        "00FFFF",
	"magenta":     "FF00FF",
	"gray":        "808080",
	"grey":        "808080",
	"silver":      "C0C0C0",
	"maroon":      "800000",
	"olive":       "808000",
	"lime":        "00FF00",
	"aqua":        "00FFFF",
	"teal":        "008080",
	"navy":        "000080",
	"fuchsia":     "FF00FF",
	"purple":      "800080",
	"orange":      "FFA500",
	"transparent": "FFFFFF",
}

// ColorToHex decodes a CSS color into a six-digit uppercase hex string
// without the leading '#'. Short #RGB forms duplicate each nibble,
// rgb()/rgba() channels are clamped to [0,255] (alpha is dropped), and
// anything unrecognized decodes to black.
func ColorToHex(s string) string {
	s = strings.TrimSpace(stripImportant(s))
	lower := strings.ToLower(s)

	if name, ok := namedColors[lower]; ok {
		return name
	}
	if strings.HasPrefix(s, "#") {
		return hexColor(s[1:])
	}
	if strings.HasPrefix(lower, "rgb(") || strings.HasPrefix(lower, "rgba(") {
		return rgbColor(s)
	}
	return "000000"
}

func hexColor(s string) string {
	switch len(s) {
	case 3:
		var b strings.Builder
		for i := 0; i < 3; i++ {
			if !isHexDigit(s[i]) {
				return "000000"
			}
			b.WriteByte(s[i])
			b.WriteByte(s[i])
		}
		return strings.ToUpper(b.String())
	case 6:
		for i := 0; i < 6; i++ {
			if !isHexDigit(s[i]) {
				return "000000"
			}
		}
		return strings.ToUpper(s)
	}
	return "000000"
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func rgbColor(s string) string {
	open := strings.IndexByte(s, '(')
	end := strings.IndexByte(s, ')')
	if open < 0 || end < open {
		return "000000"
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) < 3 {
		return "000000"
	}
	var ch [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return "000000"
		}
		n := int(math.Round(v))
		if n < 0 {
			n = 0
		}
		if n > 255 {
			n = 255
		}
		ch[i] = n
	}
	return fmt.Sprintf("%02X%02X%02X", ch[0], ch[1], ch[2])
}
