// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These are set via ldflags at build time.
var (
	Version = ""
	Commit  = ""
)

// Info returns a one-line version string for the named binary.
func Info(name string) string {
	version, commit := Version, Commit

	if bi, ok := debug.ReadBuildInfo(); ok {
		if version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
		if commit == "" {
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			}
		}
	}

	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}

	return fmt.Sprintf("%s %s (commit: %s, %s/%s)", name, version, commit, runtime.GOOS, runtime.GOARCH)
}
