// Package version exposes the pkgmeta build version.
package version

import "runtime/debug"

// Set at build time via -ldflags "-X github.com/indaco/pkgmeta/internal/version.Version=1.2.3".
var (
	Version = ""
	Commit  = "none"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, falling back to the module version
// recorded by `go install`, then "dev".
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := readBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
