// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for mpkdump.
//
// The central type is [Command], a named command with optional nested
// [Command.Subcommands], a parameter struct bound to flags via struct
// tags, and a Run function. The tree is assembled in cmd/mpkdump and
// dispatched through [Command.Execute], which handles flag parsing,
// subcommand routing, and structured help output with examples.
//
// Flags are declared declaratively: [Command.Params] returns a pointer
// to a struct whose tagged fields become pflag entries (see
// [BindFlags]). After parsing, the same struct carries the parsed
// values into Run.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3). A command
// with both subcommands and a Run function treats an unmatched first
// argument as a positional for Run instead, which is how the root
// command accepts input file paths.
package cli
