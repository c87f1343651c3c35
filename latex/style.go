package latex

import (
	"strconv"
	"strings"

	"github.com/dpotapov/go-htmltex/css"
	"github.com/dpotapov/go-htmltex/dom"
)

// applyStyle emits the opening LaTeX wrappers for a computed property
// set at element open. Emission order is fixed: alignment environments
// first, then colors, spacing, font attributes, decorations and
// borders. Every wrapper either pushes a closing brace onto
// state.openBraces or an environment bit onto state.openEnvs; the
// applied mask makes each property idempotent within one element.
func (c *Converter) applyStyle(props *css.Properties, tag string) error {
	mask := props.Mask()
	if mask == 0 {
		return nil
	}
	st := &c.st

	if mask&css.MaskTextAlign != 0 && st.applied&css.MaskTextAlign == 0 &&
		dom.IsBlock(tag) && !st.inTableCell {
		if v, ok := props.Get("text-align"); ok {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "center":
				if err := c.buf.WriteString("\\begin{center}\n"); err != nil {
					return err
				}
				st.openEnvs |= envCenter
			case "right":
				if err := c.buf.WriteString("\\begin{flushright}\n"); err != nil {
					return err
				}
				st.openEnvs |= envFlushRight
			case "left":
				if err := c.buf.WriteString("\\begin{flushleft}\n"); err != nil {
					return err
				}
				st.openEnvs |= envFlushLeft
			case "justify":
				if err := c.buf.WriteString("\\justifying\n"); err != nil {
					return err
				}
				st.openEnvs |= envJustify
			}
			st.applied |= css.MaskTextAlign
		}
	}

	if mask&css.MaskColor != 0 && st.applied&css.MaskColor == 0 {
		if v, ok := props.Get("color"); ok {
			if hex := css.ColorToHex(v); hex != "000000" {
				if err := c.buf.Printf("\\textcolor[HTML]{%s}{", hex); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskColor
		}
	}

	if mask&css.MaskBackground != 0 && st.applied&css.MaskBackground == 0 {
		v, ok := props.Get("background-color")
		if !ok {
			v, ok = props.Get("background")
		}
		if ok {
			if hex := css.ColorToHex(v); hex != "FFFFFF" {
				macro := "\\colorbox[HTML]{%s}{"
				if st.inTableCell {
					macro = "\\cellcolor[HTML]{%s}{"
				}
				if err := c.buf.Printf(macro, hex); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskBackground
		}
	}

	if dom.IsBlock(tag) && !st.inTableCell {
		if mask&css.MaskMarginTop != 0 && st.applied&css.MaskMarginTop == 0 {
			if v, ok := props.Get("margin-top"); ok {
				if pt := css.LengthToPt(v); pt != 0 {
					if err := c.buf.Printf("\\vspace*{%dpt}\n", pt); err != nil {
						return err
					}
				}
				st.applied |= css.MaskMarginTop
			}
		}
		if mask&css.MaskMarginLeft != 0 && st.applied&css.MaskMarginLeft == 0 {
			if v, ok := props.Get("margin-left"); ok {
				if pt := css.LengthToPt(v); pt != 0 {
					if err := c.buf.Printf("\\hspace*{%dpt}", pt); err != nil {
						return err
					}
				}
				st.applied |= css.MaskMarginLeft
			}
		}
	}

	if mask&css.MaskBold != 0 && st.applied&css.MaskBold == 0 {
		if v, ok := props.Get("font-weight"); ok {
			if macro := fontWeightMacro(v); macro != "" {
				if err := c.buf.WriteString(macro); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskBold
		}
	}

	if mask&css.MaskItalic != 0 && st.applied&css.MaskItalic == 0 {
		if v, ok := props.Get("font-style"); ok {
			var macro string
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "italic":
				macro = "\\textit{"
			case "oblique":
				macro = "\\textsl{"
			case "normal":
				macro = "\\textup{"
			}
			if macro != "" {
				if err := c.buf.WriteString(macro); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskItalic
		}
	}

	if mask&css.MaskFontFamily != 0 && st.applied&css.MaskFontFamily == 0 {
		if v, ok := props.Get("font-family"); ok {
			if macro := fontFamilyMacro(v); macro != "" {
				if err := c.buf.WriteString(macro); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskFontFamily
		}
	}

	if mask&css.MaskFontSize != 0 && st.applied&css.MaskFontSize == 0 {
		if v, ok := props.Get("font-size"); ok {
			if err := c.buf.Printf("{\\%s ", fontSizeMacro(css.LengthToPt(v))); err != nil {
				return err
			}
			st.openBraces++
			st.applied |= css.MaskFontSize
		}
	}

	if mask&css.MaskUnderline != 0 && st.applied&css.MaskUnderline == 0 {
		if v, ok := props.Get("text-decoration"); ok {
			lower := strings.ToLower(v)
			for _, deco := range []struct{ name, macro string }{
				{"underline", "\\underline{"},
				{"line-through", "\\sout{"},
				{"overline", "\\overline{"},
			} {
				if strings.Contains(lower, deco.name) {
					if err := c.buf.WriteString(deco.macro); err != nil {
						return err
					}
					st.openBraces++
				}
			}
			st.applied |= css.MaskUnderline
		}
	}

	if mask&css.MaskBorder != 0 && st.applied&css.MaskBorder == 0 {
		if v, ok := props.Get("border"); ok {
			if strings.Contains(strings.ToLower(v), "solid") {
				if err := c.buf.WriteString("\\framebox{"); err != nil {
					return err
				}
				st.openBraces++
			}
			st.applied |= css.MaskBorder
		}
	}

	return nil
}

// closeWrappers flushes the closing braces and environments owed by
// earlier applyStyle calls and clears the applied mask. It is invoked
// after a text node so inline wrappers close right behind the text
// they decorate, and again at element close.
func (c *Converter) closeWrappers() error {
	st := &c.st
	for ; st.openBraces > 0; st.openBraces-- {
		if err := c.buf.WriteByte('}'); err != nil {
			return err
		}
	}
	for _, env := range []struct {
		bit  envMask
		text string
	}{
		{envCenter, "\\end{center}\n"},
		{envFlushRight, "\\end{flushright}\n"},
		{envFlushLeft, "\\end{flushleft}\n"},
		{envJustify, ""}, // \justifying is a declaration, nothing to end
	} {
		if st.openEnvs&env.bit == 0 {
			continue
		}
		if env.text != "" {
			if err := c.buf.WriteString(env.text); err != nil {
				return err
			}
		}
	}
	st.openEnvs = 0
	st.applied = 0
	return nil
}

// closeStyle emits the closing markup for a computed property set at
// element close: the end-of-element spacing first, then everything
// closeWrappers owes.
func (c *Converter) closeStyle(props *css.Properties, tag string) error {
	st := &c.st
	if dom.IsBlock(tag) && !st.inTableCell {
		mask := props.Mask()
		if mask&css.MaskMarginRight != 0 {
			if v, ok := props.Get("margin-right"); ok {
				if pt := css.LengthToPt(v); pt != 0 {
					if err := c.buf.Printf("\\hspace*{%dpt}", pt); err != nil {
						return err
					}
				}
			}
		}
		if mask&css.MaskMarginBottom != 0 {
			if v, ok := props.Get("margin-bottom"); ok {
				switch pt := css.LengthToPt(v); {
				case pt > 0:
					if err := c.buf.Printf("\\vspace{%dpt}", pt); err != nil {
						return err
					}
				case pt < 0:
					if err := c.buf.Printf("\\vspace*{%dpt}", pt); err != nil {
						return err
					}
				}
			}
		}
	}
	return c.closeWrappers()
}

// fontWeightMacro maps a font-weight value onto a LaTeX wrapper: bold
// keywords and numeric weights of 600 and up go bold, lighter keywords
// and weights of 300 and below go medium, everything else emits
// nothing.
func fontWeightMacro(v string) string {
	switch lower := strings.ToLower(strings.TrimSpace(v)); lower {
	case "bold", "bolder":
		return "\\textbf{"
	case "lighter":
		return "\\textmd{"
	default:
		if n, err := strconv.Atoi(lower); err == nil {
			if n >= 600 {
				return "\\textbf{"
			}
			if n <= 300 {
				return "\\textmd{"
			}
		}
	}
	return ""
}

func fontFamilyMacro(v string) string {
	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "monospace"), strings.Contains(lower, "courier"):
		return "\\texttt{"
	case strings.Contains(lower, "sans"), strings.Contains(lower, "arial"),
		strings.Contains(lower, "helvetica"):
		return "\\textsf{"
	case strings.Contains(lower, "serif"), strings.Contains(lower, "times"):
		return "\\textrm{"
	}
	return ""
}

func fontSizeMacro(pt int) string {
	switch {
	case pt <= 8:
		return "tiny"
	case pt <= 10:
		return "small"
	case pt <= 12:
		return "normalsize"
	case pt <= 14:
		return "large"
	case pt <= 18:
		return "Large"
	case pt <= 24:
		return "LARGE"
	default:
		return "huge"
	}
}
