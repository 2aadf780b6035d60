// Package version holds the build version, set with
// -ldflags "-X cfastq/internal/version.Version=...".
package version

var Version = "dev"
