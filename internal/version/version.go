package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags by release builds
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
	BuiltBy = "source"
)

// readBuildInfo is swapped in tests
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version. Binaries built with "go install"
// carry no ldflags and report the module version instead.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit returns the git commit, falling back to the vcs.revision build
// setting
func GetCommit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	if info, ok := readBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}
	return "unknown"
}

// GetFullVersion returns version, commit, build date, builder and Go version
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, by: %s, %s)",
		GetVersion(), GetCommit(), Date, BuiltBy, runtime.Version())
}
