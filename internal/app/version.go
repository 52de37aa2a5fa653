package app

import (
	"fmt"
	"runtime/debug"
)

// Release builds stamp these with
// -ldflags "-X github.com/q2019715/jieci-dictionary/internal/app.Version=v1.2.0".
var (
	Version string
	Commit  string
)

// BuildVersion is the string printed by --version. Values stamped through
// ldflags win; otherwise the module version and VCS revision recorded by
// the go tool are used.
func BuildVersion() string {
	info, _ := debug.ReadBuildInfo()
	return formatVersion(Version, Commit, info)
}

func formatVersion(version, commit string, info *debug.BuildInfo) string {
	if info != nil {
		if version == "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}

	if version == "" {
		version = "dev"
	}
	if commit == "" {
		return version
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return fmt.Sprintf("%s (%s)", version, commit)
}
