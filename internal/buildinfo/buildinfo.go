// Package buildinfo holds release metadata set with -ldflags -X at link time.
package buildinfo

// Empty for local builds; the version command falls back to debug.ReadBuildInfo.
var (
	Version = ""
	Commit  = ""
)
