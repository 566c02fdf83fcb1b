// Package version reports the twig binary's own version, surfaced by
// `twig --version` and passed to plugins as TWIG_VERSION.
package version

import "fmt"

// Injected by GoReleaser via ldflags at build time; left at their
// defaults for `go build`/`go run` development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the version string twig was built with ("dev" for a
// local build, otherwise a release tag like "v0.4.2").
func GetVersion() string {
	return Version
}

// GetFullVersion returns Version plus the commit and build date, the form
// `twig --version` prints.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}
