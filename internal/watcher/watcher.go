// Package watcher turns filesystem write events into after-save hook
// invocations, making `p4bridge watch` a host environment for the
// action dispatch layer outside any editor.
//
// Only the after-persist hook can be driven from the filesystem: by the
// time a write event arrives, the save has already happened, so there
// is no before-persist moment to observe. Editors embedding the
// dispatch layer call both hooks themselves.
//
// Events are handled on the single Run goroutine, so no two hook
// invocations interleave — a save-triggered action for a path always
// completes before the next event for that path is processed.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/samueldotj/p4bridge/internal/p4"
)

// Watcher forwards file write events under watched directory trees to a
// hook function.
type Watcher struct {
	// hook receives the absolute path of each written file that
	// survives filtering. Wired to Dispatcher.OnAfterSave in the CLI.
	hook func(path string)

	// ignoreSuffixes lists file-name suffixes to skip, from settings.
	ignoreSuffixes []string

	logf p4.LogFunc

	fsw *fsnotify.Watcher
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogf sets the diagnostic log sink. Defaults to stderr.
func WithLogf(fn p4.LogFunc) Option {
	return func(w *Watcher) { w.logf = fn }
}

// New creates a Watcher that calls hook for each surviving write event.
func New(hook func(path string), ignoreSuffixes []string, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("cannot create filesystem watcher: %w", err)
	}

	w := &Watcher{
		hook:           hook,
		ignoreSuffixes: ignoreSuffixes,
		logf: func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		},
		fsw: fsw,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Watch registers root and every non-hidden directory below it.
// fsnotify watches are per-directory, not recursive, so the tree is
// walked up front; directories created later are added from their
// Create events in Run.
func (w *Watcher) Watch(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		return nil
	})
}

// Run processes events until Close is called. It blocks the calling
// goroutine; callers wanting concurrency run it in their own goroutine
// and rely on Close for shutdown.
func (w *Watcher) Run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logf("watch error: %v", err)
		}
	}
}

// Close stops the watcher; Run returns once the event channel drains.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// handle routes one filesystem event: new directories extend the watch,
// file writes become hook invocations, everything else is dropped.
func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !strings.HasPrefix(filepath.Base(ev.Name), ".") {
				if err := w.Watch(ev.Name); err != nil {
					w.logf("cannot watch new directory %s: %v", ev.Name, err)
				}
			}
			return
		}
		// A freshly created file is followed by a Write event; acting
		// on the Create too would invoke the hook twice for one save.
		return
	}

	if !ev.Op.Has(fsnotify.Write) {
		return
	}
	if w.ignored(ev.Name) {
		return
	}
	if info, err := os.Stat(ev.Name); err != nil || !info.Mode().IsRegular() {
		return
	}

	w.hook(ev.Name)
}

// ignored reports whether a path is filtered out: dotfiles and any
// configured ignore suffix.
func (w *Watcher) ignored(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	for _, suffix := range w.ignoreSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
