// Package cli — edit.go implements the "p4bridge edit" command.
//
// The edit command opens a file for edit (`p4 edit`), making it writable
// in the workspace. Notes about the file's current state (already
// writable, outside the client root) are logged but do not stop the
// checkout — p4 itself gives the authoritative answer.
package cli

import (
	"github.com/spf13/cobra"
)

// NewEditCommand creates the "edit" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <file>",
		Short: "Open a file for edit",
		Long: `Open a file for edit, checking it out from the depot.

Examples:
  p4bridge edit src/app.go
  p4bridge edit --json src/app.go`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(args[0])
		},
	}
}

// runEdit is the main logic function for the edit command.
func runEdit(arg string) error {
	file, err := resolveTarget(arg)
	if err != nil {
		return err
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	if err := d.Edit(); err != nil {
		return err
	}

	printActionResult("edit", file)
	return nil
}
