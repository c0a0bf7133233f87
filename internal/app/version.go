package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit, and BuildTime are set via ldflags at build time.
// Example: go build -ldflags "-X github.com/Redbeardred/Oberyn-v0.2/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion returns a formatted version string for startup logs and
// health endpoints. Without ldflags the VCS stamp of the binary is used.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "unknown" {
		commit, built = vcsStamp(built)
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, commit, built)
}

func vcsStamp(fallbackTime string) (revision, time string) {
	revision, time = "unknown", fallbackTime
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return revision, time
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if len(s.Value) > 12 {
				revision = s.Value[:12]
			} else {
				revision = s.Value
			}
		case "vcs.time":
			time = s.Value
		}
	}
	return revision, time
}
