package htmltex

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/dpotapov/go-htmltex/fetch"
	"github.com/dpotapov/go-htmltex/latex"
)

// A Converter wraps the LaTeX conversion engine behind a small,
// stateful surface: convert strings or parsed documents, optionally
// download referenced images into a directory, and inspect the last
// error afterwards.
//
// A Converter is not safe for concurrent use. Independent instances
// are, and they share only the process-wide download pool.
type Converter struct {
	// Logger configures logging for conversion events. If nil,
	// slog.Default() is used.
	Logger *slog.Logger

	init sync.Once
	conv *latex.Converter
	opts latex.Options
}

// sharedPool is the process-wide image download pool, started on first
// use and shared by every converter that enables downloads.
var (
	sharedPoolOnce sync.Once
	sharedPool     *fetch.Downloader
)

func imagePool() *fetch.Downloader {
	sharedPoolOnce.Do(func() {
		sharedPool = fetch.New(fetch.Config{})
	})
	return sharedPool
}

// NewConverter returns a converter with downloads disabled.
func NewConverter() *Converter {
	return &Converter{}
}

func (c *Converter) engine() *latex.Converter {
	c.init.Do(func() {
		logger := c.Logger
		if logger == nil {
			logger = slog.Default()
		}
		c.conv = latex.New(c.opts, imagePool(), logger)
	})
	c.conv.SetOptions(c.opts)
	return c.conv
}

// SetDirectory enables image downloading into dir, creating it when
// missing. It reports whether the directory is usable.
func (c *Converter) SetDirectory(dir string) bool {
	if dir == "" {
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false
	}
	c.opts.ImageDir = dir
	c.opts.DownloadImages = true
	return true
}

// SetMinify toggles whitespace collapsing during DOM construction.
func (c *Converter) SetMinify(minify bool) { c.opts.Minify = minify }

// DisableDownloads turns image downloading off, keeping any directory.
func (c *Converter) DisableDownloads() { c.opts.DownloadImages = false }

// Convert turns an HTML document into a complete LaTeX document.
func (c *Converter) Convert(html string) (string, error) {
	return c.engine().Convert(html)
}

// ConvertParser converts a previously parsed document without
// re-parsing it.
func (c *Converter) ConvertParser(p *Parser) (string, error) {
	if !p.Valid() {
		return "", latex.ErrNullArg
	}
	return c.engine().ConvertTree(p.Root())
}

// ConvertTo converts html and writes the result to w.
func (c *Converter) ConvertTo(w io.Writer, html string) error {
	tex, err := c.Convert(html)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, strings.NewReader(tex))
	return err
}

// ConvertToFile converts html and writes the result to path.
func (c *Converter) ConvertToFile(html, path string) error {
	tex, err := c.Convert(html)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(tex), 0o644)
}

// ConvertParserToFile converts a parsed document and writes the result
// to path.
func (c *Converter) ConvertParserToFile(p *Parser, path string) error {
	tex, err := c.ConvertParser(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(tex), 0o644)
}

// Err returns the last conversion error, nil when the last conversion
// was clean.
func (c *Converter) Err() error {
	if c.conv == nil {
		return nil
	}
	return c.conv.Err()
}

// Code returns the error code of the last conversion.
func (c *Converter) Code() latex.ErrorCode {
	if c.conv == nil {
		return latex.CodeOK
	}
	return c.conv.Code()
}

// Valid reports whether the converter is usable and its last
// conversion recorded no fatal error.
func (c *Converter) Valid() bool {
	return c != nil && !c.Code().Fatal()
}
