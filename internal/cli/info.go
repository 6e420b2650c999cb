// Package cli — info.go implements the "p4bridge info" command.
//
// The info command reports the active workspace's client root and user
// name, as resolved for a given file's .p4config context. It is the
// introspection the depot-membership check runs internally, surfaced
// for the user.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewInfoCommand creates the "info" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info [file]",
		Short: "Show client root and user for a file's context",
		Long: `Show the Perforce client root and user name.

The optional file argument anchors .p4config resolution, so the answer
reflects the configuration that would apply to commands on that file.

Examples:
  p4bridge info
  p4bridge info src/app.go`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runInfo(arg)
		},
	}
}

// runInfo is the main logic function for the info command.
func runInfo(arg string) error {
	file := ""
	if arg != "" {
		resolved, err := resolveTarget(arg)
		if err != nil {
			return err
		}
		file = resolved
	}

	d, err := newDispatcher(file)
	if err != nil {
		return err
	}

	root, user, err := d.Info()
	if err != nil {
		return err
	}

	printInfoResult(root, user)
	return nil
}

// printInfoResult outputs the info in text or JSON format. Unknown
// values are shown explicitly rather than as blanks, so an unreachable
// server is distinguishable from an empty answer.
func printInfoResult(root, user string) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"clientRoot": root,
			"userName":   user,
		}, "", "  ")
		fmt.Println(string(data))
		return
	}

	if root == "" {
		root = "(unknown)"
	}
	if user == "" {
		user = "(unknown)"
	}
	fmt.Printf("Client root: %s\n", root)
	fmt.Printf("User:        %s\n", user)
}
