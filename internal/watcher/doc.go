// Package watcher is the standalone host environment for p4bridge's
// save hooks: it maps filesystem write events under a directory tree to
// after-save hook invocations via github.com/fsnotify/fsnotify.
package watcher
