// Package settings defines the explicit configuration value passed into
// the p4bridge action dispatch layer, and its file loading.
//
// Settings files are discovered by upward directory search (nearest file
// wins) with a home-directory fallback, and may be written as JSONC or
// YAML. Absence of any settings file is not an error: built-in defaults
// apply.
package settings
