// Package cli — opened.go implements the "p4bridge opened" command.
//
// The opened command lists the files currently checked out for edit,
// add, or delete in the active workspace (`p4 opened`). The raw listing
// is parsed into structured records and presented as a text table or a
// JSON array, depending on the --json flag.
package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samueldotj/p4bridge/internal/model"
)

// NewOpenedCommand creates the "opened" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewOpenedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "opened [file]",
		Short: "List opened files in the workspace",
		Long: `List the files currently opened for edit, add, or delete.

The optional file argument anchors working-directory and .p4config
resolution; without it, the current directory's configuration applies.

Examples:
  p4bridge opened
  p4bridge opened --json src/app.go`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			return runOpened(arg)
		},
	}
}

// runOpened is the main logic function for the opened command.
func runOpened(arg string) error {
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

	files, raw, err := d.OpenedFiles()
	if err != nil {
		return err
	}

	printOpenedResult(files, raw)
	return nil
}

// printOpenedResult outputs the opened listing in text or JSON format.
func printOpenedResult(files []model.OpenedFile, raw string) {
	if IsJSONOutput() {
		printOpenedResultJSON(files)
	} else {
		printOpenedResultText(files, raw)
	}
}

// printOpenedResultJSON outputs the parsed listing as a JSON array.
func printOpenedResultJSON(files []model.OpenedFile) {
	if files == nil {
		// An empty workspace serializes as [], not null.
		files = []model.OpenedFile{}
	}
	data, _ := json.MarshalIndent(files, "", "  ")
	fmt.Println(string(data))
}

// printOpenedResultText outputs the listing as an aligned table. Lines
// the parser did not recognize are not lost: when nothing parsed but p4
// printed something, the raw text is shown as-is.
func printOpenedResultText(files []model.OpenedFile, raw string) {
	if len(files) == 0 {
		if raw != "" {
			fmt.Println(raw)
		} else {
			fmt.Println("No files opened in this workspace.")
		}
		return
	}

	fmt.Print(FormatOpenedTable(files))
}

// FormatOpenedTable renders parsed opened-file records as an aligned
// text table.
func FormatOpenedTable(files []model.OpenedFile) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DEPOT PATH\tREV\tACTION\tCHANGE\tTYPE")
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			f.DepotPath, f.Revision, f.Action, f.Changelist, f.FileType)
	}
	_ = w.Flush()
	return sb.String()
}
