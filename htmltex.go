// Package htmltex converts HTML documents into complete, compilable
// LaTeX. The package wraps three cooperating engines: a forgiving DOM
// builder (package dom), an inline-CSS engine with cascade and value
// normalization (package css), and the LaTeX emission driver (package
// latex). Remote images referenced by the input can optionally be
// downloaded through a shared worker pool (package fetch).
//
// Typical usage:
//
//	conv := htmltex.NewConverter()
//	tex, err := conv.Convert(`<p>Hello, <b>world</b>!</p>`)
//
// or, going through a reusable parse:
//
//	p := htmltex.FromFile("page.html")
//	if p.Valid() {
//		tex, err := conv.ConvertParser(p)
//		...
//	}
package htmltex
