// Package cli — add.go implements the "p4bridge add" command.
//
// The add command schedules a file for addition to the depot
// (`p4 add`). The file must lie under the active client's root;
// otherwise the action is refused before any p4 invocation.
package cli

import (
	"github.com/spf13/cobra"
)

// NewAddCommand creates the "add" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>",
		Short: "Schedule a file for add",
		Long: `Schedule a file for addition to the depot.

The file must be under the client root.

Examples:
  p4bridge add src/new.go`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args[0])
		},
	}
}

// runAdd is the main logic function for the add command.
func runAdd(arg string) error {
	file, err := resolveTarget(arg)
	if err != nil {
		return err
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	if err := d.Add(); err != nil {
		return err
	}

	printActionResult("add", file)
	return nil
}
