// Package misc keeps build time information.
package misc

import (
	"runtime/debug"
)

// Set by the linker: -X stylemod/misc.version=... -X stylemod/misc.gitHash=...
var (
	appName = "stylemod"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit hash, falling back to vcs information embedded by
// the go tool when the linker did not provide one.
func GetGitHash() string {
	if len(gitHash) > 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
