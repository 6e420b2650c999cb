// Package cli — watch.go implements the "p4bridge watch" command.
//
// The watch command turns a directory tree into a host for the
// after-save hook: every file written under the tree is offered to the
// dispatch layer, which schedules it for add when auto-add is enabled
// and the file lies under the client root. This gives non-integrated
// editors the same save-triggered behavior an embedded editor plugin
// would provide.
package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/samueldotj/p4bridge/internal/actions"
	"github.com/samueldotj/p4bridge/internal/model"
	"github.com/samueldotj/p4bridge/internal/settings"
	"github.com/samueldotj/p4bridge/internal/watcher"
)

// NewWatchCommand creates the "watch" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Watch a directory and auto-add saved files",
		Long: `Watch a directory tree and run the after-save hook for every file
written under it.

With autoAdd enabled in settings, files saved under the client root are
scheduled for add automatically. Dotfiles and configured ignore suffixes
are skipped. Runs until interrupted.

Examples:
  p4bridge watch
  p4bridge watch ~/ws/proj`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runWatch(dir)
		},
	}
}

// runWatch is the main logic function for the watch command.
// It blocks until SIGINT or SIGTERM.
func runWatch(dir string) error {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "cannot determine working directory", err)
		}
		dir = wd
	}
	dir, err := resolveTarget(dir)
	if err != nil {
		return err
	}

	// Settings come from the watched tree itself, so a project-local
	// .p4bridge file controls its own auto-add behavior.
	var s settings.Settings
	if settingsPath != "" {
		s, err = settings.Load(settingsPath)
	} else {
		s, _, err = settings.Discover(dir)
	}
	if err != nil {
		return err
	}
	if !s.AutoAdd {
		VerboseLog("autoAdd is disabled; watch will observe saves but add nothing")
	}

	// The host's active file is irrelevant here: the hook carries the
	// written file's path with each event.
	dispatcher := actions.NewDispatcher(s, NewConsoleHost(""))

	w, err := watcher.New(dispatcher.OnAfterSave, s.IgnoreSuffixes)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "cannot start watcher", err)
	}

	if err := w.Watch(dir); err != nil {
		return model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("cannot watch %s", dir), err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s (interrupt to stop)\n", dir)

	// Close the watcher on SIGINT/SIGTERM; Run returns once the event
	// channel drains.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		_ = w.Close()
	}()

	w.Run()
	return nil
}
