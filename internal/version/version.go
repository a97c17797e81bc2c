// Package version holds build metadata stamped by the release pipeline via
// -ldflags "-X". Untouched builds report "dev", which is what the startup
// log line shows when running from source.
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
