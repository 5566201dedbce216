// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/bureau-foundation/mpkdump/cmd/mpkdump/cli"
	"github.com/bureau-foundation/mpkdump/lib/version"
)

func main() {
	if err := run(); err != nil {
		// Commands that print their own output return an ExitError
		// with the desired code. Don't print a redundant "error:"
		// line for those.
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	return rootCommand().Execute(os.Args[1:])
}

// rootCommand assembles the command tree. The root itself is the dump
// operation; everything else hangs off it as a subcommand.
func rootCommand() *cli.Command {
	params := &dumpParams{}
	return &cli.Command{
		Name:    "mpkdump",
		Summary: "Render a MessagePack stream as indented text",
		Description: `Decode a MessagePack stream and pretty-print every top-level value.

Input comes from stdin or from a file path argument. The stream may
hold any number of concatenated values; each renders as its own block:

  {
     "name": "sensor-4"
     "samples": [
        [0]: 22.5
        [1]: 22.7
     ]
  }

Strings print their raw bytes between double quotes, bin and ext
payloads print as hex pairs, and nil prints as (). Input compressed
with gzip, zstd, or lz4 is detected and decompressed automatically;
--hex accepts hex dumps with arbitrary whitespace.`,
		Usage: "mpkdump [flags] [file]",
		Examples: []cli.Example{
			{
				Description: "Dump a capture file",
				Command:     "mpkdump capture.msgpack",
			},
			{
				Description: "Dump a hex string from the clipboard",
				Command:     "echo '82 a1 61 01 a1 62 92 02 03' | mpkdump --hex",
			},
			{
				Description: "Dump a zstd-compressed log with value offsets",
				Command:     "mpkdump --offsets events.msgpack.zst",
			},
		},
		Params: func() any { return params },
		Run: func(args []string) error {
			return runDump(args, params)
		},
		Subcommands: []*cli.Command{
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("mpkdump %s\n", version.Full())
					return nil
				},
			},
		},
	}
}
