// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version provides build version information for the mpkdump
// binary.
//
// Release builds inject the variables below via -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/mpkdump/lib/version.GitCommit=$(git rev-parse --short HEAD)"
//
// Builds without the injection (go install, plain go build) fall back
// to the VCS stamp the toolchain embeds in the binary, so the version
// subcommand reports a usable commit either way.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp recorded for the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Info returns a one-line version string suitable for --version output.
func Info() string {
	commit, dirty, when := buildStamp()
	if dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", Version, commit, when)
}

// Full returns Info plus the Go version and target platform.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// buildStamp resolves the commit, dirty flag, and build time: the
// ldflags variables when injected, the toolchain's embedded VCS
// settings otherwise.
func buildStamp() (commit string, dirty bool, when string) {
	commit, dirty, when = GitCommit, GitDirty == "true", BuildTime
	if commit != "unknown" {
		return commit, dirty, when
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return commit, dirty, when
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 12 {
				commit = setting.Value[:12]
			} else if setting.Value != "" {
				commit = setting.Value
			}
		case "vcs.modified":
			dirty = setting.Value == "true"
		case "vcs.time":
			if setting.Value != "" {
				when = setting.Value
			}
		}
	}
	return commit, dirty, when
}
