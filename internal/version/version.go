// Package version carries the build stamp reported by GET /api/version.
package version

// Overridden at release time via -ldflags; the defaults identify a local
// development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
