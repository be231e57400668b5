// Package crtbox defines the public interfaces of the crtbox pipeline
// and the version information set at build time.
package crtbox

var (
	// Version is the application version. Set by build flags.
	Version = "v0.1.0"

	// Build is the build timestamp or commit. Set by build flags.
	Build = "n/a"
)
