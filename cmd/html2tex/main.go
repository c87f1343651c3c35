// Command html2tex converts an HTML document into a complete LaTeX
// document.
//
//	html2tex [--minify] [--images DIR] [--no-download] INPUT [OUTPUT]
//
// INPUT may be "-" for stdin; OUTPUT defaults to stdout. Exit status
// is 0 on success, 1 on I/O failure, 2 on a conversion failure.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	htmltex "github.com/dpotapov/go-htmltex"
)

const (
	exitOK      = 0
	exitIOFail  = 1
	exitConvert = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func main() {
	var (
		minify     bool
		imageDir   string
		noDownload bool
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "html2tex [flags] INPUT [OUTPUT]",
		Short: "Convert HTML documents to LaTeX",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			input, err := readInput(args[0])
			if err != nil {
				return &exitError{exitIOFail, err}
			}

			conv := htmltex.NewConverter()
			conv.Logger = logger
			conv.SetMinify(minify)
			if imageDir != "" {
				if !conv.SetDirectory(imageDir) {
					return &exitError{exitIOFail, fmt.Errorf("cannot use image directory %q", imageDir)}
				}
			}
			if noDownload {
				conv.DisableDownloads()
			}

			tex, err := conv.Convert(input)
			if err != nil {
				return &exitError{exitConvert, err}
			}

			if err := writeOutput(args, tex); err != nil {
				return &exitError{exitIOFail, err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Flags().BoolVar(&minify, "minify", false, "collapse whitespace while parsing")
	root.Flags().StringVar(&imageDir, "images", "", "download images into this directory")
	root.Flags().BoolVar(&noDownload, "no-download", false, "keep original image URLs even when --images is set")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "html2tex:", err)
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		os.Exit(exitIOFail)
	}
}

func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

func writeOutput(args []string, tex string) error {
	if len(args) < 2 || args[1] == "-" {
		_, err := io.WriteString(os.Stdout, tex)
		return err
	}
	return os.WriteFile(args[1], []byte(tex), 0o644)
}
