// Package model defines the domain types and value objects for the
// p4bridge CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (CommandResult, OpenedFile, FileAction) are transient
// representations produced by one Perforce invocation and consumed
// immediately — there is no persistent state anywhere in p4bridge.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
