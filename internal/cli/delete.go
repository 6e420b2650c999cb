// Package cli — delete.go implements the "p4bridge delete" command.
//
// The delete command schedules a file for deletion from the depot
// (`p4 delete`). In an editor host a successful delete also closes the
// file's view; the terminal host has nothing to close.
package cli

import (
	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the "delete" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <file>",
		Short: "Schedule a file for delete",
		Long: `Schedule a file for deletion from the depot.

The file must be under the client root.

Examples:
  p4bridge delete src/obsolete.go`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0])
		},
	}
}

// runDelete is the main logic function for the delete command.
func runDelete(arg string) error {
	file, err := resolveTarget(arg)
	if err != nil {
		return err
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	if err := d.Delete(); err != nil {
		return err
	}

	printActionResult("delete", file)
	return nil
}
