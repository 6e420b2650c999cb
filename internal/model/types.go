// Package model defines the domain types for the p4bridge CLI.
//
// All entities in this package are transient, single-use values: a
// CommandResult lives for exactly one Perforce invocation, an OpenedFile
// for one `p4 opened` listing. Nothing here is persisted or cached —
// every command execution reconstructs its state from scratch.
package model

import (
	"fmt"
	"strings"
)

// FileAction represents the pending operation recorded for a file in the
// Perforce workspace, as reported by `p4 opened`.
type FileAction string

const (
	// ActionEdit indicates the file is checked out for modification.
	ActionEdit FileAction = "edit"

	// ActionAdd indicates the file is scheduled to be added to the depot.
	ActionAdd FileAction = "add"

	// ActionDelete indicates the file is scheduled for deletion from the depot.
	ActionDelete FileAction = "delete"

	// ActionBranch indicates the file is opened as a branch of another file.
	ActionBranch FileAction = "branch"

	// ActionIntegrate indicates the file is opened for integration
	// (merging changes from another branch).
	ActionIntegrate FileAction = "integrate"

	// ActionMoveAdd and ActionMoveDelete are the two halves of a
	// `p4 move` — the destination and source paths respectively.
	ActionMoveAdd    FileAction = "move/add"
	ActionMoveDelete FileAction = "move/delete"
)

// String returns the string representation of FileAction.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI listings and logging.
func (a FileAction) String() string {
	return string(a)
}

// IsValid checks whether the FileAction value is one of the actions
// `p4 opened` is known to report.
func (a FileAction) IsValid() bool {
	switch a {
	case ActionEdit, ActionAdd, ActionDelete, ActionBranch,
		ActionIntegrate, ActionMoveAdd, ActionMoveDelete:
		return true
	default:
		return false
	}
}

// ParseFileAction converts a string to a FileAction.
// Returns an error if the string does not match any known action.
func ParseFileAction(s string) (FileAction, error) {
	action := FileAction(strings.ToLower(s))
	if !action.IsValid() {
		return "", fmt.Errorf("unknown file action: %q", s)
	}
	return action, nil
}

// OpenedFile describes a single entry from `p4 opened` output.
//
// Example output line this is parsed from:
//
//	//depot/main/src/app.go#3 - edit default change (text)
type OpenedFile struct {
	// DepotPath is the server-side path of the file (e.g., "//depot/main/a.go").
	DepotPath string `json:"depotPath"`

	// Revision is the revision component of the listing ("#3" → 3).
	Revision int `json:"revision"`

	// Action is the pending operation (edit, add, delete, ...).
	Action FileAction `json:"action"`

	// Changelist identifies the pending changelist the open belongs to.
	// "default" for the default changelist, otherwise a numeric ID.
	Changelist string `json:"changelist"`

	// FileType is the Perforce file type (e.g., "text", "binary"),
	// when present in the listing.
	FileType string `json:"fileType,omitempty"`
}

// CommandResult holds the decoded output of one external `p4` invocation.
//
// Both fields are trimmed of surrounding whitespace; an empty error stream
// is normalized to the empty string. The zero value represents a command
// that produced no output on either stream.
type CommandResult struct {
	// Output is the trimmed stdout text, or "" if the command printed nothing.
	Output string `json:"output,omitempty"`

	// ErrText is the trimmed stderr text, or "" if the error stream was empty.
	ErrText string `json:"error,omitempty"`
}

// Failed reports whether the invocation is classified as failed.
//
// Classification is by stderr content only: any non-empty error-stream text
// counts as failure, regardless of the process exit status. A tool that
// prints an advisory notice to stderr and exits 0 is therefore reported as
// failed. p4's exit status varies across server versions for the same
// condition; stderr presence does not.
func (r *CommandResult) Failed() bool {
	return r.ErrText != ""
}

// ExitCode defines standard CLI exit codes for the p4bridge binary.
// These codes allow scripts and CI systems to programmatically determine
// the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigParse indicates a .p4config file in the target file's
	// ancestry could not be parsed.
	ExitConfigParse ExitCode = 2

	// ExitP4Error indicates the external p4 invocation reported an error.
	ExitP4Error ExitCode = 3

	// ExitNotInDepot indicates the target file is outside the client root,
	// so the requested action was never attempted.
	ExitNotInDepot ExitCode = 4

	// ExitUserCancelled indicates the user cancelled an interactive prompt.
	ExitUserCancelled ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
// This follows Go's error wrapping convention introduced in Go 1.13.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
