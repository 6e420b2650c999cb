// Package cli — host.go implements the actions.Host interface for a
// terminal session.
//
// The dispatch layer was written for an editor: it asks its host to show
// status messages, open scratch views, and close or reload buffers. In a
// terminal those map to stderr notes, stdout, and no-ops — there is no
// buffer to close when the "editor" is a shell.
package cli

import (
	"fmt"
	"os"
)

// ConsoleHost adapts the terminal to the actions.Host interface.
type ConsoleHost struct {
	// activeFile is the file the current command targets, or "" for
	// workspace-level commands.
	activeFile string
}

// NewConsoleHost creates a host whose active file is the given path.
func NewConsoleHost(activeFile string) *ConsoleHost {
	return &ConsoleHost{activeFile: activeFile}
}

// ActiveFile returns the file the current command targets.
func (h *ConsoleHost) ActiveFile() string {
	return h.activeFile
}

// Notify shows a transient status message. On a terminal that is a
// single stderr line, keeping stdout clean for command output.
func (h *ConsoleHost) Notify(message string) {
	fmt.Fprintf(os.Stderr, "p4bridge: %s\n", message)
}

// ShowScratch displays read-only text. Scratch content (diffs, opened
// listings) is the command's real output, so it goes to stdout.
func (h *ConsoleHost) ShowScratch(title, body string) {
	VerboseLog("%s", title)
	fmt.Println(body)
}

// CloseActiveView is a no-op on a terminal; the editor variant closes
// the buffer of a freshly deleted file.
func (h *ConsoleHost) CloseActiveView() {
	VerboseLog("view close requested for %s (no view in terminal mode)", h.activeFile)
}

// RevertActiveView is a no-op on a terminal; the editor variant reloads
// the buffer of a freshly reverted file.
func (h *ConsoleHost) RevertActiveView() {
	VerboseLog("view revert requested for %s (no view in terminal mode)", h.activeFile)
}
