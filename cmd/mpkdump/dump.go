// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/bureau-foundation/mpkdump/cmd/mpkdump/cli"
	"github.com/bureau-foundation/mpkdump/lib/msgpack"
	"github.com/bureau-foundation/mpkdump/lib/source"
)

// dumpParams holds the flags of the root dump operation.
type dumpParams struct {
	HexInput    bool   `flag:"hex,x" desc:"treat input as hex-encoded bytes (whitespace ignored)"`
	Compression string `flag:"compression,z" desc:"input compression: auto, none, gzip, zstd, lz4" default:"auto"`
	Color       string `flag:"color" desc:"colorize output: auto, always, never" default:"auto"`
	Indent      int    `flag:"indent,i" desc:"spaces per nesting level" default:"3"`
	MaxDepth    int    `flag:"max-depth" desc:"abort beyond this container nesting depth (0 = unlimited)"`
	Offsets     bool   `flag:"offsets" desc:"print the starting byte offset of each top-level value"`
	Verbose     bool   `flag:"verbose,v" desc:"debug logging on stderr"`
}

// runDump resolves the input location (stdin for zero args, a file
// path for one, anything more is a usage error) and renders the
// stream to stdout.
func runDump(args []string, params *dumpParams) error {
	if len(args) > 1 {
		return fmt.Errorf("at most one input file, got %d positional arguments", len(args))
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	logger := cli.NewLogger(params.Verbose)

	input, err := source.Open(path)
	if err != nil {
		return err
	}
	defer input.Close()

	name := path
	if name == "" || name == "-" {
		name = "stdin"
	}
	logger.Debug("reading input",
		"from", name,
		"hex", params.HexInput,
		"compression", params.Compression)

	return dumpStream(input, os.Stdout, params, logger)
}

// dumpStream decodes the MessagePack stream from raw and renders it
// to sink. Split from runDump so tests can drive it with in-memory
// buffers.
func dumpStream(raw io.Reader, sink io.Writer, params *dumpParams, logger *slog.Logger) error {
	if params.Indent < 1 {
		return fmt.Errorf("indent must be at least 1, got %d", params.Indent)
	}
	compression, err := source.ParseCompression(params.Compression)
	if err != nil {
		return err
	}
	stream, err := source.Reader(raw, source.Options{
		HexInput:    params.HexInput,
		Compression: compression,
	})
	if err != nil {
		return err
	}

	palette, err := buildPalette(params.Color, sink)
	if err != nil {
		return err
	}

	buffered := bufio.NewWriter(sink)
	dumper := msgpack.NewDumper(stream, buffered, msgpack.Options{
		Indent:   strings.Repeat(" ", params.Indent),
		MaxDepth: params.MaxDepth,
		Offsets:  params.Offsets,
		Palette:  palette,
	})

	values, dumpErr := dumper.Dump()
	if flushErr := buffered.Flush(); dumpErr == nil {
		dumpErr = flushErr
	}
	logger.Debug("dump finished",
		"values", values,
		"bytes", dumper.Offset(),
		"failed", dumpErr != nil)
	return dumpErr
}

// buildPalette maps the --color mode to a palette. "always" forces an
// ANSI256 profile even with no TTY (for piping into a pager), "auto"
// colors only when sink is a terminal, "never" renders plain text.
func buildPalette(mode string, sink io.Writer) (*msgpack.Palette, error) {
	switch mode {
	case "never":
		return nil, nil
	case "always":
		// SetColorProfile is required in addition to the output
		// profile: the renderer re-detects from the environment
		// unless an explicit profile is set.
		renderer := lipgloss.NewRenderer(sink, termenv.WithProfile(termenv.ANSI256))
		renderer.SetColorProfile(termenv.ANSI256)
		return msgpack.DefaultPalette(renderer), nil
	case "", "auto":
		file, ok := sink.(*os.File)
		if !ok || !term.IsTerminal(int(file.Fd())) {
			return nil, nil
		}
		return msgpack.DefaultPalette(lipgloss.NewRenderer(file)), nil
	default:
		return nil, fmt.Errorf("unknown color mode %q (want auto, always, or never)", mode)
	}
}
