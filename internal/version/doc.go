// Package version exposes build metadata for dashboard-builder.
//
// Version, Commit and BuildTime are injected at build time via Go ldflags and
// default to values suitable for local builds.
package version
