package css

import "strings"

// A Mask is a bitset summarizing which recognized properties appear in
// a Properties set. It gives the style applier O(1) "is this property
// here" checks without string lookups.
type Mask uint16

const (
	MaskBold Mask = 1 << iota
	MaskItalic
	MaskUnderline
	MaskColor
	MaskBackground
	MaskFontFamily
	MaskFontSize
	MaskTextAlign
	MaskBorder
	MaskMarginTop
	MaskMarginRight
	MaskMarginBottom
	MaskMarginLeft
)

// MaskInherited covers the properties whose values flow from parent to
// child during the cascade.
const MaskInherited = MaskBold | MaskItalic | MaskUnderline |
	MaskColor | MaskFontFamily | MaskFontSize | MaskTextAlign

// keyMasks maps recognized property keys to their mask bit. Keys
// outside this table are stored but do not affect the mask.
var keyMasks = map[string]Mask{
	"font-weight":      MaskBold,
	"font-style":       MaskItalic,
	"text-decoration":  MaskUnderline,
	"color":            MaskColor,
	"background":       MaskBackground,
	"background-color": MaskBackground,
	"font-family":      MaskFontFamily,
	"font-size":        MaskFontSize,
	"text-align":       MaskTextAlign,
	"border":           MaskBorder,
	"margin-top":       MaskMarginTop,
	"margin-right":     MaskMarginRight,
	"margin-bottom":    MaskMarginBottom,
	"margin-left":      MaskMarginLeft,
}

// inheritedKeys is the closed list of keys copied from parent to child
// when merging computed styles.
var inheritedKeys = map[string]bool{
	"font-weight":     true,
	"font-style":      true,
	"font-family":     true,
	"font-size":       true,
	"color":           true,
	"text-align":      true,
	"text-decoration": true,
}

// A Property is one key: value declaration. The !important marker is
// carried in Important and never appears inside Value.
type Property struct {
	Key       string
	Value     string
	Important bool
}

// Properties is an ordered set of declarations plus the presence mask.
// Re-setting a key overwrites the value in place, preserving the
// original insertion position. Deletion is not supported.
type Properties struct {
	list []Property
	mask Mask
}

// Set stores a declaration. The key is lowercased; a recognized key
// flips its mask bit.
func (p *Properties) Set(key, value string, important bool) {
	key = strings.ToLower(key)
	for i := range p.list {
		if p.list[i].Key == key {
			p.list[i].Value = value
			p.list[i].Important = important
			return
		}
	}
	p.list = append(p.list, Property{Key: key, Value: value, Important: important})
	p.mask |= keyMasks[key]
}

// Get returns the value for key and whether it is present.
func (p *Properties) Get(key string) (string, bool) {
	if p == nil {
		return "", false
	}
	key = strings.ToLower(key)
	for i := range p.list {
		if p.list[i].Key == key {
			return p.list[i].Value, true
		}
	}
	return "", false
}

// Lookup returns the full declaration for key.
func (p *Properties) Lookup(key string) (Property, bool) {
	if p == nil {
		return Property{}, false
	}
	key = strings.ToLower(key)
	for i := range p.list {
		if p.list[i].Key == key {
			return p.list[i], true
		}
	}
	return Property{}, false
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.Get(key)
	return ok
}

// Mask returns the presence bitset.
func (p *Properties) Mask() Mask {
	if p == nil {
		return 0
	}
	return p.mask
}

// Len returns the number of stored declarations.
func (p *Properties) Len() int {
	if p == nil {
		return 0
	}
	return len(p.list)
}

// All returns the declarations in insertion order. The returned slice
// is shared; callers must not mutate it.
func (p *Properties) All() []Property {
	if p == nil {
		return nil
	}
	return p.list
}

// Copy returns a deep copy of p. Copying nil yields an empty set.
func (p *Properties) Copy() *Properties {
	out := &Properties{}
	if p == nil {
		return out
	}
	out.list = make([]Property, len(p.list))
	copy(out.list, p.list)
	out.mask = p.mask
	return out
}
