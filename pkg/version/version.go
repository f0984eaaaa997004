// Package version reports the build of the skilltracker binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at link time: -ldflags "-X github.com/Sumatoshi-tech/skilltracker/pkg/version.Version=v1.2.0".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

const revisionKey = "vcs.revision"

// Init fills Commit from the embedded VCS stamp when the linker left it unset.
func Init() {
	if Commit != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	for _, s := range info.Settings {
		if s.Key == revisionKey && s.Value != "" {
			Commit = s.Value
		}
	}
}

// String is the one-line version banner.
func String() string {
	return fmt.Sprintf("skilltracker %s (commit: %s, built: %s)", Version, Commit, Date)
}
