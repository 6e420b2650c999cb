// Package p4 executes Perforce commands for p4bridge.
//
// All Perforce operations are performed via os/exec calls to the p4
// binary rather than the Helix C++ API bindings. This approach:
//   - Avoids CGO dependencies
//   - Uses the exact same p4 behavior the user sees in their terminal
//   - Honors the user's existing P4 environment and .p4config files
//
// Command lines are handed to the system shell, so user-level p4
// aliases and PATH resolution behave as they do interactively. Paths
// interpolated into command lines must therefore go through Quote.
package p4

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/samueldotj/p4bridge/internal/model"
	"github.com/samueldotj/p4bridge/internal/p4config"
)

// NotifyFunc receives warning-level messages that should reach the user
// (e.g., as an editor status line or a terminal note).
type NotifyFunc func(message string)

// LogFunc receives diagnostic log lines. Unlike NotifyFunc it is always
// invoked for detected command errors, whether or not user-facing
// warnings are enabled.
type LogFunc func(format string, args ...any)

// Runner executes p4 command lines and classifies their results.
//
// A Runner holds no per-invocation state: working directory and
// environment are recomputed from the active file on every Run call, so
// a single Runner is safe to reuse across commands. There is no caching,
// no retry, and no timeout — Run blocks until the child process exits.
type Runner struct {
	// notify is the warning sink for detected command errors.
	notify NotifyFunc

	// logf is the always-on diagnostic log sink.
	logf LogFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithNotify sets the warning sink. Detected command errors (non-empty
// stderr) are reported to it. A nil sink discards warnings.
func WithNotify(fn NotifyFunc) Option {
	return func(r *Runner) { r.notify = fn }
}

// WithLogf sets the diagnostic log sink. Defaults to stderr.
func WithLogf(fn LogFunc) Option {
	return func(r *Runner) { r.logf = fn }
}

// NewRunner creates a Runner with the given options.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes a p4 command line for the given active file.
//
// The working directory is the directory containing activeFile; when
// activeFile is empty the child inherits the process working directory.
// The environment is the process environment overlaid with the nearest
// .p4config in activeFile's ancestry (resolved fresh on every call;
// config keys override process keys of the same name).
//
// Run blocks until the child exits and both streams are drained. The
// returned result's Output and ErrText are trimmed; a result with
// non-empty ErrText is classified as failed regardless of the exit
// status (see model.CommandResult.Failed), in which case the warning
// sink and the diagnostic log are both invoked.
//
// A non-nil error is returned only when the invocation could not be
// attempted at all: a malformed .p4config in the ancestry, or a shell
// that failed to start. A p4 process that ran and complained is a
// failed result, not an error.
func (r *Runner) Run(cmdline, activeFile string) (*model.CommandResult, error) {
	overrides, err := p4config.Find(activeFile)
	if err != nil {
		return nil, err
	}

	cmd := shellCommand(cmdline)
	if activeFile != "" {
		cmd.Dir = filepath.Dir(activeFile)
	}
	cmd.Env = p4config.Environ(os.Environ(), overrides)

	// Capture stdout and stderr separately: the streams are the result,
	// and stderr presence alone decides success or failure.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if runErr != nil {
		// A non-zero exit status is deliberately not a failure by itself —
		// classification is by stderr content only. Anything else (shell
		// missing, fork failure) means the command never ran.
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, model.WrapCLIError(model.ExitP4Error,
				fmt.Sprintf("cannot run %q", cmdline), runErr)
		}
	}

	result := &model.CommandResult{
		Output:  strings.TrimSpace(stdout.String()),
		ErrText: strings.TrimSpace(stderr.String()),
	}

	if result.Failed() {
		if r.notify != nil {
			r.notify(result.ErrText)
		}
		r.logf("%s failed: %s", cmdline, result.ErrText)
	}

	return result, nil
}

// shellCommand builds an exec.Cmd that runs cmdline through the system
// shell.
func shellCommand(cmdline string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.Command("cmd", "/C", cmdline) // #nosec G204 — command lines are built internally with Quote
	}
	return exec.Command("sh", "-c", cmdline) // #nosec G204 — command lines are built internally with Quote
}

// Quote wraps a path in double quotes for safe interpolation into a
// shell command line, escaping the characters the shell would otherwise
// interpret inside double quotes.
func Quote(path string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"$", `\$`,
		"`", "\\`",
	)
	return `"` + replacer.Replace(path) + `"`
}
