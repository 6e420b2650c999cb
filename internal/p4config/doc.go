// Package p4config resolves per-tree Perforce connection settings for
// the p4bridge CLI.
//
// The resolver performs filesystem reads only (existence checks and one
// file open); it never writes, never caches, and is re-run from scratch
// for every command execution. Results are maps of environment variable
// names to values, merged over the process environment by Environ.
package p4config
