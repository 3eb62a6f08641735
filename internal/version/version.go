// Package version exposes build metadata stamped in via ldflags:
//
//	-X .../internal/version.Version=v1.2.3
//	-X .../internal/version.Commit=$(git rev-parse --short HEAD)
//	-X .../internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)
package version

import "fmt"

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String renders the build metadata as one line for startup logs.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, Commit, Date)
}
