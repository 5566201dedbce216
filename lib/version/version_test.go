// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

// setStamp overrides the ldflags variables for one test. Not parallel
// safe, so tests in this package stay sequential.
func setStamp(t *testing.T, commit, dirty, when string) {
	t.Helper()
	savedCommit, savedDirty, savedTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = savedCommit, savedDirty, savedTime
	})
	GitCommit, GitDirty, BuildTime = commit, dirty, when
}

func TestInfoInjected(t *testing.T) {
	setStamp(t, "abc1234", "false", "2026-02-10T00:00:00Z")
	want := Version + " (abc1234, 2026-02-10T00:00:00Z)"
	if got := Info(); got != want {
		t.Errorf("Info: got %q, want %q", got, want)
	}
}

func TestInfoDirty(t *testing.T) {
	setStamp(t, "abc1234", "true", "2026-02-10T00:00:00Z")
	if got := Info(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("Info: got %q, want a -dirty suffix on the commit", got)
	}
}

func TestFull(t *testing.T) {
	setStamp(t, "abc1234", "false", "2026-02-10T00:00:00Z")
	got := Full()
	for _, want := range []string{Version, "abc1234", "Go: go", "Platform: "} {
		if !strings.Contains(got, want) {
			t.Errorf("Full output %q missing %q", got, want)
		}
	}
}

func TestInfoUninjected(t *testing.T) {
	// Without ldflags the stamp comes from the binary's build info;
	// test binaries carry no VCS settings, so the fallback keeps the
	// defaults. Either way Info must produce the standard shape.
	setStamp(t, "unknown", "false", "unknown")
	got := Info()
	if !strings.HasPrefix(got, Version+" (") || !strings.HasSuffix(got, ")") {
		t.Errorf("Info: got %q, want %q shape", got, Version+" (<commit>, <time>)")
	}
}
