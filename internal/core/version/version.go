// Package version reports the build identity of the combatlog binaries
package version

import "runtime/debug"

// BuildInfo identifies one build, served by /v1/meta/version
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// set with -ldflags "-X combatlog/internal/core/version.version=v0.3.0 -X ...commit=abc1234 -X ...date=2026-10-01"
var (
	service = "combatlog"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build identity
// vcs settings embedded by the go tool fill commit and date when ldflags left them unset
func Info() BuildInfo {
	bi := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if d, ok := debug.ReadBuildInfo(); ok {
		bi = fromVCS(bi, d.Settings)
	}
	return bi
}

func fromVCS(bi BuildInfo, settings []debug.BuildSetting) BuildInfo {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if bi.Commit == "none" && s.Value != "" {
				bi.Commit = s.Value
				if len(bi.Commit) > 12 {
					bi.Commit = bi.Commit[:12]
				}
			}
		case "vcs.time":
			if bi.Date == "unknown" && s.Value != "" {
				bi.Date = s.Value
			}
		}
	}
	return bi
}
