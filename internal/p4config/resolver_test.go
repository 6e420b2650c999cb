package p4config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samueldotj/p4bridge/internal/model"
)

// writeConfig is a test helper that writes a .p4config file with the given
// content into dir and fails the test on any I/O error.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestFind_NearestAncestorWins verifies that when config files exist at
// multiple levels of the ancestry, the one closest to the target file is
// returned and the more distant one is never consulted.
func TestFind_NearestAncestorWins(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	src := filepath.Join(proj, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	// Distant ancestor config — should lose to the nearer one.
	writeConfig(t, root, "P4PORT=far:1666\n")
	writeConfig(t, proj, "P4PORT=x:1666\nP4CLIENT=dev\n")

	values, err := Find(filepath.Join(src, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"P4PORT": "x:1666", "P4CLIENT": "dev"}, values)
}

// TestFind_SameDirectory verifies the search starts at the target file's
// own directory, not its grandparent.
func TestFind_SameDirectory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "P4CLIENT=here\n")

	values, err := Find(filepath.Join(dir, "file.go"))
	require.NoError(t, err)
	assert.Equal(t, "here", values["P4CLIENT"])
}

// TestFind_NotFound verifies that an ancestry with no config file
// returns nil without error.
func TestFind_NotFound(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	values, err := Find(filepath.Join(nested, "file.go"))
	require.NoError(t, err)
	assert.Nil(t, values)
}

// TestFind_EmptyStartPath verifies the degenerate input: an empty path
// immediately resolves to "not found" with no error.
func TestFind_EmptyStartPath(t *testing.T) {
	values, err := Find("")
	require.NoError(t, err)
	assert.Nil(t, values)
}

// TestFind_DirectoryNamedLikeConfig verifies that a directory named
// .p4config does not satisfy the search — only regular files count.
func TestFind_DirectoryNamedLikeConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ConfigFileName), 0755))

	values, err := Find(filepath.Join(dir, "file.go"))
	require.NoError(t, err)
	assert.Nil(t, values)
}

// TestFind_MalformedPropagates verifies that a parse failure in the
// nearest config file fails the whole resolution instead of falling
// back to a more distant ancestor.
func TestFind_MalformedPropagates(t *testing.T) {
	root := t.TempDir()
	proj := filepath.Join(root, "proj")
	require.NoError(t, os.MkdirAll(proj, 0755))

	writeConfig(t, root, "P4PORT=good:1666\n")
	writeConfig(t, proj, "this line has no equals sign\n")

	values, err := Find(filepath.Join(proj, "a.txt"))
	assert.Nil(t, values)
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigParse, cliErr.Code)
}

// TestParse covers the line-splitting rules: split at the first '=',
// trim both sides, skip blank lines, reject lines without '='.
func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected map[string]string
		hasError bool
	}{
		{
			name:     "basic pairs",
			content:  "P4PORT=x:1666\nP4CLIENT=dev\n",
			expected: map[string]string{"P4PORT": "x:1666", "P4CLIENT": "dev"},
		},
		{
			name:     "whitespace trimmed around key and value",
			content:  "  P4USER  =  alice  \n",
			expected: map[string]string{"P4USER": "alice"},
		},
		{
			name:     "value keeps embedded equals",
			content:  "P4PASSWD=a=b=c\n",
			expected: map[string]string{"P4PASSWD": "a=b=c"},
		},
		{
			name:     "blank lines skipped",
			content:  "\nP4PORT=x:1666\n\n   \nP4CLIENT=dev\n",
			expected: map[string]string{"P4PORT": "x:1666", "P4CLIENT": "dev"},
		},
		{
			name:     "empty value allowed",
			content:  "P4PASSWD=\n",
			expected: map[string]string{"P4PASSWD": ""},
		},
		{
			name:     "missing equals is fatal",
			content:  "P4PORT=x:1666\nnot a pair\n",
			hasError: true,
		},
		{
			name:     "empty key is fatal",
			content:  "=value\n",
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)

			values, err := Parse(path)
			if tt.hasError {
				require.Error(t, err)
				var cliErr *model.CLIError
				require.True(t, errors.As(err, &cliErr))
				assert.Equal(t, model.ExitConfigParse, cliErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, values)
		})
	}
}

// TestParse_ErrorNamesLine verifies the parse error points at the
// offending line so users can fix the file.
func TestParse_ErrorNamesLine(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "P4PORT=x\nP4CLIENT=dev\nbroken line\n")

	_, err := Parse(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ":3:")
	assert.Contains(t, err.Error(), "broken line")
}

// TestEnviron verifies the overlay semantics: overrides replace matching
// base keys in place, other base entries pass through, and override keys
// absent from the base are appended.
func TestEnviron(t *testing.T) {
	base := []string{"PATH=/usr/bin", "P4PORT=old:1666", "HOME=/home/alice"}
	overrides := map[string]string{"P4PORT": "x:1666", "P4CLIENT": "dev"}

	env := Environ(base, overrides)
	sort.Strings(env)
	assert.Equal(t, []string{
		"HOME=/home/alice",
		"P4CLIENT=dev",
		"P4PORT=x:1666",
		"PATH=/usr/bin",
	}, env)
}

// TestEnviron_NoOverrides verifies that a nil overrides map yields the
// base environment unchanged (as a copy, not the same slice).
func TestEnviron_NoOverrides(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/home/alice"}

	env := Environ(base, nil)
	assert.Equal(t, base, env)

	// Mutating the result must not touch the original.
	env[0] = "PATH=/changed"
	assert.Equal(t, "PATH=/usr/bin", base[0])
}
