// Package actions implements the user-facing Perforce actions of
// p4bridge: open-for-edit, add, delete, revert, diff, opened-file
// listing, and credential handling.
//
// The package is host-agnostic: it talks to its surroundings only
// through the narrow Host interface (active file lookup plus four UI
// effects) and never imports an editor API or the CLI layer. Both the
// cobra commands and the filesystem watch host drive the same
// Dispatcher.
package actions

import (
	"fmt"
	"os"

	"github.com/samueldotj/p4bridge/internal/model"
	"github.com/samueldotj/p4bridge/internal/p4"
	"github.com/samueldotj/p4bridge/internal/settings"
)

// Host is the surface the dispatch layer is allowed to touch in its
// surrounding environment. An editor integration implements it with
// real views; the CLI implements it with terminal output; tests
// implement it with a recorder.
type Host interface {
	// ActiveFile returns the absolute path of the file the user is
	// working on, or "" when there is none.
	ActiveFile() string

	// Notify shows a transient, non-blocking status message.
	Notify(message string)

	// ShowScratch displays read-only text in a throwaway view
	// (diff output, opened-file listings).
	ShowScratch(title, body string)

	// CloseActiveView closes the view showing the active file,
	// requested after a successful delete.
	CloseActiveView()

	// RevertActiveView reloads the active view from disk,
	// requested after a successful revert.
	RevertActiveView()
}

// Dispatcher wires the command executor to a host environment under an
// explicit settings value. It holds no per-action state; every action
// recomputes everything it needs from the active file.
type Dispatcher struct {
	settings settings.Settings
	host     Host
	runner   *p4.Runner
	logf     p4.LogFunc
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogf sets the diagnostic log sink for the dispatcher and its
// runner. Defaults to stderr.
func WithLogf(fn p4.LogFunc) DispatcherOption {
	return func(d *Dispatcher) { d.logf = fn }
}

// NewDispatcher creates a Dispatcher for the given settings and host.
//
// The internal Runner's warning sink is the dispatcher's own warn
// channel, so invocation errors detected during any action reach the
// host (when warnings are enabled) without the actions repeating the
// plumbing.
func NewDispatcher(s settings.Settings, host Host, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		settings: s,
		host:     host,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.runner = p4.NewRunner(p4.WithNotify(d.warn), p4.WithLogf(d.logf))
	return d
}

// warn reports a warning: always to the diagnostic log, and to the host
// as a status message only when warnings are enabled in settings.
func (d *Dispatcher) warn(message string) {
	d.logf("P4 [warning]: %s", message)
	if d.settings.WarningsEnabled {
		d.host.Notify(message)
	}
}

// notInDepot reports the precondition failure for a file outside the
// client root and returns the corresponding error. The external tool is
// never invoked on this path.
func (d *Dispatcher) notInDepot(path string) error {
	msg := fmt.Sprintf("file is not under the client root: %s", path)
	d.warn(msg)
	return model.NewCLIError(model.ExitNotInDepot, msg)
}

// invoke runs a p4 command line for the active file and converts a
// failed result into an error carrying the p4 exit code. The runner has
// already warned and logged by the time the error is built.
func (d *Dispatcher) invoke(cmdline, activeFile string) (*model.CommandResult, error) {
	result, err := d.runner.Run(cmdline, activeFile)
	if err != nil {
		return nil, err
	}
	if result.Failed() {
		return result, model.NewCLIError(model.ExitP4Error,
			fmt.Sprintf("%s: %s", cmdline, result.ErrText))
	}
	return result, nil
}

// Edit opens the active file for edit (`p4 edit`).
//
// Oddities of the file's current state are logged but do not stop the
// checkout: an already-writable file usually means it is already open,
// and p4 itself gives the authoritative answer either way.
func (d *Dispatcher) Edit() error {
	path := d.host.ActiveFile()
	if path == "" {
		return nil
	}

	if isFileWritable(path) {
		d.logf("file is already writable: %s", path)
	}
	if !d.runner.IsInDepot(path) {
		d.logf("file is not under the client root: %s", path)
	}

	_, err := d.invoke("p4 edit "+p4.Quote(path), path)
	return err
}

// Add schedules the active file for add (`p4 add`). The file must lie
// under the client root.
func (d *Dispatcher) Add() error {
	path := d.host.ActiveFile()
	if !d.runner.IsInDepot(path) {
		return d.notInDepot(path)
	}

	_, err := d.invoke("p4 add "+p4.Quote(path), path)
	return err
}

// Delete schedules the active file for deletion (`p4 delete`) and, on
// success, asks the host to close the now-obsolete view.
func (d *Dispatcher) Delete() error {
	path := d.host.ActiveFile()
	if !d.runner.IsInDepot(path) {
		return d.notInDepot(path)
	}

	if _, err := d.invoke("p4 delete "+p4.Quote(path), path); err != nil {
		return err
	}

	d.host.CloseActiveView()
	return nil
}

// Revert discards pending changes to the active file (`p4 revert`) and,
// on success, asks the host to reload the view from the restored file.
func (d *Dispatcher) Revert() error {
	path := d.host.ActiveFile()
	if !d.runner.IsInDepot(path) {
		return d.notInDepot(path)
	}

	if _, err := d.invoke("p4 revert "+p4.Quote(path), path); err != nil {
		return err
	}

	d.host.RevertActiveView()
	return nil
}

// Diff shows the unified diff of the active file against its depot
// revision in a scratch view. The file must lie under the client root.
func (d *Dispatcher) Diff() error {
	path := d.host.ActiveFile()
	if !d.runner.IsInDepot(path) {
		return d.notInDepot(path)
	}

	result, err := d.invoke(`p4 diff -dU `+p4.Quote(path), path)
	if err != nil {
		return err
	}
	if result.Output != "" {
		d.host.ShowScratch("p4 diff", result.Output)
	}
	return nil
}

// DiffAll shows the unified diff of every opened file in the workspace.
func (d *Dispatcher) DiffAll() error {
	path := d.host.ActiveFile()
	if !d.runner.IsInDepot(path) {
		return d.notInDepot(path)
	}

	result, err := d.invoke(`p4 diff -dU`, path)
	if err != nil {
		return err
	}
	if result.Output != "" {
		d.host.ShowScratch("p4 diff", result.Output)
	}
	return nil
}

// OpenedFiles returns the workspace's opened files, both parsed and as
// the raw listing text. No UI effect is performed; Opened wraps this
// for the scratch-view presentation.
func (d *Dispatcher) OpenedFiles() ([]model.OpenedFile, string, error) {
	result, err := d.invoke("p4 opened", d.host.ActiveFile())
	if err != nil {
		return nil, "", err
	}
	return p4.ParseOpened(result.Output), result.Output, nil
}

// Opened shows the opened-file listing in a scratch view.
func (d *Dispatcher) Opened() error {
	_, raw, err := d.OpenedFiles()
	if err != nil {
		return err
	}
	if raw != "" {
		d.host.ShowScratch("p4 opened", raw)
	}
	return nil
}

// Login stores the given credential: an explicit logout first, then a
// credential-set invocation. This is the only action that performs two
// external invocations, and they are strictly sequential.
func (d *Dispatcher) Login(password string) error {
	active := d.host.ActiveFile()

	// A failed logout is not fatal — there may be no session to end.
	if result, err := d.runner.Run("p4 logout", active); err != nil {
		return err
	} else if result.Failed() {
		d.logf("p4 logout before login failed: %s", result.ErrText)
	}

	_, err := d.invoke("p4 set P4PASSWD="+p4.Quote(password), active)
	return err
}

// Logout clears the stored credential.
func (d *Dispatcher) Logout() error {
	_, err := d.invoke("p4 set P4PASSWD=", d.host.ActiveFile())
	return err
}

// Info returns the client root and user name of the active workspace.
func (d *Dispatcher) Info() (root, user string, err error) {
	active := d.host.ActiveFile()

	root, err = d.runner.ClientRoot(active)
	if err != nil {
		return "", "", err
	}
	user, err = d.runner.CurrentUser(active)
	if err != nil {
		return "", "", err
	}
	return root, user, nil
}

// isFileWritable reports whether the file at path can be written.
// A path that does not name an existing regular file counts as
// writable — there is nothing read-only in the way.
func isFileWritable(path string) bool {
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return true
	}
	return info.Mode().Perm()&0200 != 0
}
