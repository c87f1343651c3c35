package css

import (
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

const (
	maxKeyLen   = 128
	maxValueLen = 65535
)

// ParseStyle parses the contents of a style="..." attribute into a
// property set. Invalid declarations are dropped silently; the rest of
// the style survives. The returned set is never nil.
func ParseStyle(s string) *Properties {
	props := &Properties{}
	if strings.TrimSpace(s) == "" {
		return props
	}

	p := css.NewParser(parse.NewInput(strings.NewReader(s)), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			return props
		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			key := strings.ToLower(strings.TrimSpace(string(data)))
			var sb strings.Builder
			for _, tok := range p.Values() {
				sb.Write(tok.Data)
			}
			value, important := splitImportant(strings.TrimSpace(sb.String()))
			setDeclaration(props, key, value, important)
		}
	}
}

// splitImportant strips a trailing !important marker (case-insensitive,
// optionally preceded by whitespace) from a declaration value.
func splitImportant(value string) (string, bool) {
	lower := strings.ToLower(value)
	i := strings.LastIndex(lower, "!")
	if i < 0 {
		return value, false
	}
	rest := strings.TrimSpace(lower[i+1:])
	if rest != "important" {
		return value, false
	}
	return strings.TrimRight(value[:i], whitespace), true
}

const whitespace = " \t\r\n\f"

func setDeclaration(props *Properties, key, value string, important bool) {
	if !validKey(key) || len(value) > maxValueLen || value == "" {
		return
	}
	if key == "margin" {
		expandMargin(props, value, important)
		return
	}
	props.Set(key, value, important)
}

func validKey(key string) bool {
	if key == "" || len(key) > maxKeyLen {
		return false
	}
	return !strings.ContainsAny(key, `<>;"'`)
}

// expandMargin applies the standard 1/2/3/4-value margin shorthand
// rules. When any token is not a length or auto/inherit, the whole
// declaration is dropped.
func expandMargin(props *Properties, value string, important bool) {
	fields := strings.Fields(value)
	for _, f := range fields {
		if !validMarginToken(f) {
			return
		}
	}
	var top, right, bottom, left string
	switch len(fields) {
	case 1:
		top, right, bottom, left = fields[0], fields[0], fields[0], fields[0]
	case 2:
		top, bottom = fields[0], fields[0]
		right, left = fields[1], fields[1]
	case 3:
		top = fields[0]
		right, left = fields[1], fields[1]
		bottom = fields[2]
	case 4:
		top, right, bottom, left = fields[0], fields[1], fields[2], fields[3]
	default:
		return
	}
	props.Set("margin-top", top, important)
	props.Set("margin-right", right, important)
	props.Set("margin-bottom", bottom, important)
	props.Set("margin-left", left, important)
}

var lengthUnits = map[string]bool{
	"": true, "px": true, "pt": true, "em": true, "rem": true,
	"%": true, "cm": true, "mm": true, "in": true,
}

func validMarginToken(tok string) bool {
	switch strings.ToLower(tok) {
	case "auto", "inherit":
		return true
	}
	num, unit := splitLength(tok)
	if num == "" || !lengthUnits[strings.ToLower(unit)] {
		return false
	}
	_, err := strconv.ParseFloat(num, 64)
	return err == nil
}

// Merge computes the style a child element sees: the parent's inherited
// properties overlaid with the child's own declarations. A child value
// loses only to an inherited parent value marked !important when the
// child's is not. The result is always a fresh set; when the parent
// carries nothing inheritable the merge degenerates to a copy of the
// child.
func Merge(parent, child *Properties) *Properties {
	if parent.Mask()&MaskInherited == 0 {
		return child.Copy()
	}
	out := &Properties{}
	for _, prop := range parent.All() {
		if inheritedKeys[prop.Key] {
			out.Set(prop.Key, prop.Value, prop.Important)
		}
	}
	for _, prop := range child.All() {
		if existing, ok := out.Lookup(prop.Key); ok {
			if existing.Important && !prop.Important {
				continue
			}
		}
		out.Set(prop.Key, prop.Value, prop.Important)
	}
	return out
}
