// Package meta provides build-time metadata for pgbranch.
package meta

// Version is the version of pgbranch, set at build time via ldflags.
var Version = "dev"
