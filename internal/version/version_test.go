package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func withBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
	t.Cleanup(func() { readBuildInfo = orig })
}

func withVersion(t *testing.T, version, commit string) {
	t.Helper()
	origVersion, origCommit := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		info    *debug.BuildInfo
		want    string
	}{
		{"ldflags win", "v1.2.0", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, "v1.2.0"},
		{"module version", "dev", &debug.BuildInfo{Main: debug.Module{Version: "v0.9.0"}}, "v0.9.0"},
		{"devel build", "dev", &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, "dev"},
		{"no build info", "", nil, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, "unknown")
			withBuildInfo(t, tt.info)
			if got := GetVersion(); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetCommit_VCSRevision(t *testing.T) {
	withVersion(t, "dev", "unknown")
	withBuildInfo(t, &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}})

	if got := GetCommit(); got != "abc123" {
		t.Errorf("GetCommit() = %q, want abc123", got)
	}
}

func TestGetFullVersion(t *testing.T) {
	withVersion(t, "v1.0.0", "deadbeef")

	full := GetFullVersion()
	for _, want := range []string{"v1.0.0", "commit: deadbeef", runtime.Version()} {
		if !strings.Contains(full, want) {
			t.Errorf("Expected %q in %q", want, full)
		}
	}
}
