// Package p4config locates and parses Perforce per-tree configuration files.
//
// Perforce allows a workspace to carry connection settings (P4PORT,
// P4CLIENT, ...) in a plain-text file named .p4config placed anywhere in
// the directory tree. Find walks upward from a target file toward the
// filesystem root and returns the nearest such file's contents, so a
// command executed for /proj/src/a.go picks up /proj/.p4config.
//
// The file format is one KEY=VALUE pair per line — no comments, no
// quoting, no escape sequences. A line without '=' fails the whole file:
// silently skipping it would run p4 against a half-applied environment,
// which is worse than refusing to run at all.
package p4config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samueldotj/p4bridge/internal/model"
)

// ConfigFileName is the reserved file name searched for in each ancestor
// directory. Perforce itself honors the same file via the P4CONFIG
// environment variable; p4bridge hardcodes the conventional name.
const ConfigFileName = ".p4config"

// maxAscent bounds the upward directory walk. Moving to the parent strictly
// shortens a clean path, so the loop terminates on its own for any real
// tree; the cap exists for ancestries distorted by symlink cycles, where
// Dir() might not converge.
const maxAscent = 256

// Find searches for a .p4config file in the ancestry of startPath.
//
// The search begins at the directory containing startPath and moves to the
// parent on each step, stopping at the filesystem root. The nearest file
// wins; more distant ancestors are never consulted once one is found.
//
// Returns (nil, nil) when startPath is empty or no config file exists in
// the ancestry — absence is an expected outcome, not an error. A config
// file that exists but cannot be parsed returns a non-nil error: the
// resolution as a whole fails rather than falling back to a more distant
// file or an empty mapping.
func Find(startPath string) (map[string]string, error) {
	if startPath == "" {
		return nil, nil
	}

	dir := filepath.Dir(startPath)
	for i := 0; i < maxAscent; i++ {
		candidate := filepath.Join(dir, ConfigFileName)

		// Stat rather than Open so a missing file costs no file descriptor.
		// Only regular files count; a directory named .p4config is ignored.
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return Parse(candidate)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// filepath.Dir is a fixed point only at the root ("/" on Unix,
			// a drive root on Windows) — nothing above here to search.
			return nil, nil
		}
		dir = parent
	}

	return nil, nil
}

// Parse reads a .p4config file and returns its KEY=VALUE pairs.
//
// Each non-blank line is split at the first '='; key and value are trimmed
// of surrounding whitespace. Blank lines are skipped. A line with no '='
// or an empty key is a fatal parse error for the whole file, reported with
// the offending line number.
func Parse(path string) (map[string]string, error) {
	f, err := os.Open(path) // #nosec G304 — path comes from the ancestry walk, not user input
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigParse,
			fmt.Sprintf("cannot read %s", path), err)
	}
	defer func() { _ = f.Close() }()

	values := make(map[string]string)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, model.NewCLIError(model.ExitConfigParse,
				fmt.Sprintf("%s:%d: malformed line %q: expected KEY=VALUE", path, lineNo, line))
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, model.NewCLIError(model.ExitConfigParse,
				fmt.Sprintf("%s:%d: malformed line %q: empty key", path, lineNo, line))
		}
		values[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigParse,
			fmt.Sprintf("cannot read %s", path), err)
	}

	return values, nil
}

// Environ overlays config values onto a base environment in the
// "KEY=VALUE" slice form used by exec.Cmd.Env.
//
// Entries in base whose key appears in overrides are replaced; all other
// base entries pass through unchanged; override keys absent from base are
// appended. The base slice is not modified. A nil or empty overrides map
// returns a copy of base, so callers can always use the result directly.
func Environ(base []string, overrides map[string]string) []string {
	env := make([]string, 0, len(base)+len(overrides))

	// Track which override keys replaced a base entry so the remainder
	// can be appended afterwards.
	replaced := make(map[string]bool, len(overrides))

	for _, entry := range base {
		key, _, found := strings.Cut(entry, "=")
		if found {
			if value, ok := overrides[key]; ok {
				env = append(env, key+"="+value)
				replaced[key] = true
				continue
			}
		}
		env = append(env, entry)
	}

	for key, value := range overrides {
		if !replaced[key] {
			env = append(env, key+"="+value)
		}
	}

	return env
}
