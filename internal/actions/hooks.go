package actions

import "github.com/samueldotj/p4bridge/internal/p4"

// OnBeforeSave is the before-persist hook. The host calls it when a
// modified buffer is about to be written to disk; hosts that can tell a
// dirty buffer from a clean one should call it only for dirty ones.
//
// When auto-open is enabled, the file is checked out for edit so the
// write does not hit a read-only file. Failures are logged and never
// block the save — a checkout problem is the user's to resolve later,
// losing their buffer is not an acceptable way to report it.
func (d *Dispatcher) OnBeforeSave(path string) {
	if !d.settings.AutoOpen || path == "" {
		return
	}

	if isFileWritable(path) {
		d.logf("file is already writable: %s", path)
	}
	if !d.runner.IsInDepot(path) {
		d.logf("file is not under the client root: %s", path)
	}

	if _, err := d.invoke("p4 edit "+p4.Quote(path), path); err != nil {
		d.logf("auto-open failed for %s: %v", path, err)
	}
}

// OnAfterSave is the after-persist hook. The host calls it after a
// buffer has been written to disk.
//
// When auto-add is enabled and the file lies under the client root, the
// file is scheduled for add. Files outside the root are skipped
// silently: saving an unrelated file is routine, not a warning.
func (d *Dispatcher) OnAfterSave(path string) {
	if !d.settings.AutoAdd || path == "" {
		return
	}

	if !d.runner.IsInDepot(path) {
		return
	}

	if _, err := d.invoke("p4 add "+p4.Quote(path), path); err != nil {
		d.logf("auto-add failed for %s: %v", path, err)
	}
}
