// Package cli implements the cobra-based CLI commands for p4bridge.
//
// Each subcommand (edit, add, delete, revert, diff, opened, login,
// logout, info, watch) is defined in its own file within this package.
// This file defines the root command that serves as the parent for all
// subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/samueldotj/p4bridge/internal/actions"
	"github.com/samueldotj/p4bridge/internal/model"
	"github.com/samueldotj/p4bridge/internal/settings"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose enables detailed logging output for debugging.
	verbose bool

	// settingsPath overrides settings-file discovery with an explicit path.
	settingsPath string
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// The root command itself does not perform any action — it only provides
// help text and global flags. Actual functionality is provided by
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "p4bridge",
		Short: "Perforce workspace companion",
		Long: `p4bridge wraps the p4 command-line client for everyday workspace actions:
opening files for edit, adding, deleting, reverting, diffing, and listing
opened files.

Every invocation resolves the nearest .p4config in the target file's
ancestry and overlays it onto the environment, so commands behave exactly
as p4 would when run from the file's own directory.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "",
		"Path to a settings file (default: discover .p4bridge.* upward from the target)")

	// Register subcommands. Each subcommand is defined in its own file
	// and returns a *cobra.Command.
	rootCmd.AddCommand(NewEditCommand())
	rootCmd.AddCommand(NewAddCommand())
	rootCmd.AddCommand(NewDeleteCommand())
	rootCmd.AddCommand(NewRevertCommand())
	rootCmd.AddCommand(NewDiffCommand())
	rootCmd.AddCommand(NewOpenedCommand())
	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewWatchCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode: stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}

// newDispatcher builds a dispatcher for one target file: settings are
// loaded (explicit --settings path, or discovered upward from the
// target), and a ConsoleHost stands in for the editor.
func newDispatcher(activeFile string) (*actions.Dispatcher, error) {
	s, err := loadSettings(activeFile)
	if err != nil {
		return nil, err
	}

	return actions.NewDispatcher(s, NewConsoleHost(activeFile)), nil
}

// loadSettings resolves the effective settings for a target file.
func loadSettings(activeFile string) (settings.Settings, error) {
	if settingsPath != "" {
		return settings.Load(settingsPath)
	}

	start := ""
	if activeFile != "" {
		start = filepath.Dir(activeFile)
	} else if wd, err := os.Getwd(); err == nil {
		start = wd
	}

	s, path, err := settings.Discover(start)
	if err != nil {
		return s, err
	}
	if path != "" {
		VerboseLog("Loaded settings from %s", path)
	}
	return s, nil
}

// resolveTarget converts a positional file argument into the absolute
// path the dispatch layer works with.
func resolveTarget(arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot resolve path %q", arg), err)
	}
	return abs, nil
}

// printActionResult reports a completed single-file action in text or
// JSON form.
func printActionResult(action, file string) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(map[string]string{
			"action": action,
			"file":   file,
		}, "", "  ")
		fmt.Println(string(data))
	} else {
		fmt.Printf("p4 %s: %s\n", action, file)
	}
}
