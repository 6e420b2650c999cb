package p4

import (
	"path/filepath"
	"strings"
)

// ClientRoot returns the local directory the active Perforce client is
// mapped to, using `p4 info` with a format string so only the root path
// is printed.
//
// Returns ("", nil) when the lookup command fails or prints nothing —
// an unreachable server or an unconfigured client is an expected state,
// not an error. The root is queried fresh on every call; like everything
// else in this package, nothing is cached between invocations.
func (r *Runner) ClientRoot(activeFile string) (string, error) {
	result, err := r.Run(`p4 -F %clientRoot% -z tag info`, activeFile)
	if err != nil {
		return "", err
	}
	if result.Failed() || result.Output == "" {
		return "", nil
	}
	return result.Output, nil
}

// CurrentUser returns the Perforce user name from the client spec.
// Returns ("", nil) when the lookup fails or prints nothing.
func (r *Runner) CurrentUser(activeFile string) (string, error) {
	result, err := r.Run(`p4 -F %userName% -z tag info`, activeFile)
	if err != nil {
		return "", err
	}
	if result.Failed() || result.Output == "" {
		return "", nil
	}
	return result.Output, nil
}

// IsInDepot reports whether filePath lies under the active client's root
// directory.
//
// When the root lookup fails or returns empty, membership is false: with
// no known root there is nothing to be inside of. Calling this twice
// with no intervening state change yields the same answer.
func (r *Runner) IsInDepot(filePath string) bool {
	if filePath == "" {
		return false
	}

	root, err := r.ClientRoot(filePath)
	if err != nil || root == "" {
		return false
	}

	return underRoot(root, filePath)
}

// underRoot reports whether path is root itself or a descendant of root.
//
// The comparison is path-boundary-aware: /proj2/a.go is not under /proj,
// even though the raw string "/proj2/a.go" has "/proj" as a prefix.
func underRoot(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)

	if root == path {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
