package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile is a test helper that writes a settings file into dir under
// the given name and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad_JSONC verifies the JSONC form parses, including comments and
// a trailing comma, and that absent fields keep their defaults.
func TestLoad_JSONC(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".p4bridge.jsonc", `{
	// open files for edit automatically on save
	"autoOpen": false,
	"autoAdd": true,
}`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.False(t, s.AutoOpen)
	assert.True(t, s.AutoAdd)
	// Not present in the file — default survives.
	assert.True(t, s.WarningsEnabled)
}

// TestLoad_YAML verifies the YAML form parses by extension.
func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".p4bridge.yaml", `
autoAdd: true
warningsEnabled: false
ignoreSuffixes:
  - .tmp
  - .swp
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.AutoOpen) // default
	assert.True(t, s.AutoAdd)
	assert.False(t, s.WarningsEnabled)
	assert.Equal(t, []string{".tmp", ".swp"}, s.IgnoreSuffixes)
}

// TestLoad_UnsupportedExtension verifies unknown extensions are rejected
// rather than guessed at.
func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "settings.toml", "autoOpen = true\n")

	_, err := Load(path)
	assert.Error(t, err)
}

// TestLoad_MalformedJSON verifies a parse failure surfaces instead of
// silently returning defaults.
func TestLoad_MalformedJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".p4bridge.json", `{"autoOpen": `)

	_, err := Load(path)
	assert.Error(t, err)
}

// TestDiscover_NearestWins verifies the upward search returns the file
// closest to the starting directory.
func TestDiscover_NearestWins(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "proj", "src")
	require.NoError(t, os.MkdirAll(nested, 0755))

	writeFile(t, root, ".p4bridge.json", `{"autoAdd": false}`)
	writeFile(t, filepath.Join(root, "proj"), ".p4bridge.json", `{"autoAdd": true}`)

	s, path, err := Discover(nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "proj", ".p4bridge.json"), path)
	assert.True(t, s.AutoAdd)
}

// TestDiscover_PrecedenceWithinDirectory verifies that when multiple
// settings files coexist in one directory, the JSONC form wins.
func TestDiscover_PrecedenceWithinDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".p4bridge.yaml", "autoAdd: false\n")
	writeFile(t, dir, ".p4bridge.jsonc", `{"autoAdd": true}`)

	s, path, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ".p4bridge.jsonc"), path)
	assert.True(t, s.AutoAdd)
}

// TestDiscover_DefaultsWhenAbsent verifies defaults apply when no
// settings file exists in the ancestry. HOME is pointed at an empty
// directory so a developer's real settings file cannot leak in.
func TestDiscover_DefaultsWhenAbsent(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	s, path, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, Default(), s)
}

// TestDiscover_HomeFallback verifies the home-directory fallback when
// the ancestry has no settings file.
func TestDiscover_HomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, ".p4bridge.json", `{"warningsEnabled": false}`)

	s, path, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".p4bridge.json"), path)
	assert.False(t, s.WarningsEnabled)
}
