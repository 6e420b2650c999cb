package p4

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubP4Script mimics the two `p4 ... info` queries the client layer
// issues. The root and user it reports come from environment variables
// set by the test, which reach the stub through the Runner's environment
// overlay.
const stubP4Script = `#!/bin/sh
case "$*" in
  *clientRoot*) printf '%s\n' "$P4STUB_ROOT" ;;
  *userName*)   printf '%s\n' "$P4STUB_USER" ;;
  *) echo "stub p4: unknown command: $*" 1>&2 ;;
esac
`

// stubP4FailingScript reports an error on every invocation, the way a
// real p4 does when no server is reachable.
const stubP4FailingScript = `#!/bin/sh
echo "Perforce client error: Connect to server failed" 1>&2
exit 1
`

// installStubP4 writes a fake p4 executable into a fresh directory and
// prepends that directory to PATH for the duration of the test, so the
// Runner's shell resolves the stub instead of a real p4 binary.
func installStubP4(t *testing.T, script string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "p4")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// TestClientRoot verifies the root reported by `p4 info` is returned
// trimmed.
func TestClientRoot(t *testing.T) {
	installStubP4(t, stubP4Script)
	t.Setenv("P4STUB_ROOT", "/ws/root")

	r := NewRunner()

	root, err := r.ClientRoot("")
	require.NoError(t, err)
	assert.Equal(t, "/ws/root", root)
}

// TestClientRoot_EmptyOutput verifies an empty introspection result maps
// to "no root known" without error.
func TestClientRoot_EmptyOutput(t *testing.T) {
	installStubP4(t, stubP4Script)
	t.Setenv("P4STUB_ROOT", "")

	r := NewRunner()

	root, err := r.ClientRoot("")
	require.NoError(t, err)
	assert.Empty(t, root)
}

// TestClientRoot_ServerError verifies a failing p4 maps to "no root
// known" rather than an error — an unreachable server is an expected
// state.
func TestClientRoot_ServerError(t *testing.T) {
	installStubP4(t, stubP4FailingScript)

	r := NewRunner()

	root, err := r.ClientRoot("")
	require.NoError(t, err)
	assert.Empty(t, root)
}

// TestCurrentUser verifies the user name query.
func TestCurrentUser(t *testing.T) {
	installStubP4(t, stubP4Script)
	t.Setenv("P4STUB_USER", "alice")

	r := NewRunner()

	user, err := r.CurrentUser("")
	require.NoError(t, err)
	assert.Equal(t, "alice", user)
}

// TestIsInDepot verifies membership for files inside, outside, and at
// the boundary of the client root.
func TestIsInDepot(t *testing.T) {
	installStubP4(t, stubP4Script)

	root := t.TempDir()
	t.Setenv("P4STUB_ROOT", root)

	r := NewRunner()

	assert.True(t, r.IsInDepot(filepath.Join(root, "src", "a.go")))
	assert.False(t, r.IsInDepot(filepath.Join(t.TempDir(), "b.go")))

	// A sibling directory whose name shares the root as a string prefix
	// must not count as inside the root.
	assert.False(t, r.IsInDepot(filepath.Join(root+"2", "c.go")))
}

// TestIsInDepot_NoRoot verifies that with no root known, membership is
// false for every path.
func TestIsInDepot_NoRoot(t *testing.T) {
	installStubP4(t, stubP4Script)
	t.Setenv("P4STUB_ROOT", "")

	r := NewRunner()
	assert.False(t, r.IsInDepot("/anywhere/a.go"))
}

// TestIsInDepot_EmptyPath verifies the degenerate input short-circuits
// before any p4 invocation.
func TestIsInDepot_EmptyPath(t *testing.T) {
	// No stub installed: if IsInDepot tried to run p4 here and a real
	// p4 existed on PATH, the result would depend on the host machine.
	// The empty-path guard must return before the lookup.
	r := NewRunner()
	assert.False(t, r.IsInDepot(""))
}

// TestIsInDepot_Idempotent verifies two consecutive checks with no state
// change agree.
func TestIsInDepot_Idempotent(t *testing.T) {
	installStubP4(t, stubP4Script)

	root := t.TempDir()
	t.Setenv("P4STUB_ROOT", root)

	r := NewRunner()
	file := filepath.Join(root, "a.go")

	first := r.IsInDepot(file)
	second := r.IsInDepot(file)
	assert.Equal(t, first, second)
	assert.True(t, first)
}

// TestUnderRoot exercises the boundary-aware prefix test directly.
func TestUnderRoot(t *testing.T) {
	tests := []struct {
		name string
		root string
		path string
		want bool
	}{
		{"direct child", "/proj", "/proj/a.go", true},
		{"nested descendant", "/proj", "/proj/src/deep/a.go", true},
		{"root itself", "/proj", "/proj", true},
		{"sibling with shared prefix", "/proj", "/proj2/a.go", false},
		{"unrelated tree", "/proj", "/other/a.go", false},
		{"trailing slash on root", "/proj/", "/proj/a.go", true},
		{"unclean path", "/proj", "/proj/src/../a.go", true},
		{"escapes root via dotdot", "/proj", "/proj/../etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, underRoot(tt.root, tt.path))
		})
	}
}
