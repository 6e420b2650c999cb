// Package cli — revert.go implements the "p4bridge revert" command.
//
// The revert command discards pending changes to a file (`p4 revert`),
// restoring the depot revision in the workspace. In an editor host a
// successful revert also reloads the file's view from disk.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRevertCommand creates the "revert" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewRevertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "revert <file>",
		Short: "Discard pending changes to a file",
		Long: `Discard pending changes to a file, restoring the depot revision.

The file must be under the client root. Local modifications are lost.

Examples:
  p4bridge revert src/app.go`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runRevert(args[0])
		},
	}
}

// runRevert is the main logic function for the revert command.
func runRevert(arg string) error {
	file, err := resolveTarget(arg)
	if err != nil {
		return err
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	if err := d.Revert(); err != nil {
		return err
	}

	printActionResult("revert", file)
	return nil
}
