// Package cli — diff.go implements the "p4bridge diff" command.
//
// The diff command shows the unified diff of a file against its depot
// revision (`p4 diff -dU`). With --all, the whole workspace's opened
// files are diffed instead; the positional file then only anchors the
// working directory and .p4config resolution.
package cli

import (
	"github.com/spf13/cobra"
)

// diffFlags holds the flag values for the diff command.
type diffFlags struct {
	// all diffs every opened file in the workspace instead of one file.
	all bool
}

// NewDiffCommand creates the "diff" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDiffCommand() *cobra.Command {
	flags := &diffFlags{}

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show pending changes as a unified diff",
		Long: `Show the unified diff of a file against its depot revision.

With --all, every opened file in the workspace is diffed; the given file
still determines which .p4config applies.

Examples:
  p4bridge diff src/app.go
  p4bridge diff --all src/app.go`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.all, "all", false, "Diff every opened file in the workspace")

	return cmd
}

// runDiff is the main logic function for the diff command.
// The diff text itself is emitted through the host's scratch view,
// which the ConsoleHost maps to stdout.
func runDiff(arg string, flags *diffFlags) error {
	file, err := resolveTarget(arg)
	if err != nil {
		return err
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	if flags.all {
		return d.DiffAll()
	}
	return d.Diff()
}
