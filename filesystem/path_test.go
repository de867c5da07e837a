package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitParent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, dir, base string
	}{
		{"a", "", "a"},
		{"a/", "", "a"},
		{"a/b", "a", "b"},
		{"a/b/c/", "a/b", "c"},
		{"/a", "/", "a"},
		{"/a/b", "/a", "b"},
		{"/", "/", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		dir, base := splitParent(tt.in)
		assert.Equal(t, tt.dir, dir, "dir of %q", tt.in)
		assert.Equal(t, tt.base, base, "base of %q", tt.in)
	}
}

func TestComposePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cur, p, want string
	}{
		{"/home/user", "docs", "/home/user/docs"},
		{"/home/user", "docs/", "/home/user/docs"},
		{"/home/user", "..", "/home"},
		{"/home/user", "../..", "/"},
		{"/home/user", "../../..", "/"},
		{"/home/user", "./a/./b", "/home/user/a/b"},
		{"/home/user", "/tmp", "/tmp"},
		{"/home/user", "/", "/"},
		{"/", "..", "/"},
		{"/", "etc", "/etc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComposePath(tt.cur, tt.p), "cd %q from %q", tt.p, tt.cur)
	}
}

// Composing a relative cd must land on the same path as walking the tree
func TestComposePath_MatchesResolvedPath(t *testing.T) {
	t.Parallel()
	fs, home := newSeededFS(t)

	for _, p := range []string{"docs", "docs/..", "../user/docs", "../../tmp", ".", "zdir/../docs"} {
		n, err := fs.Chdir(home, p)
		require.NoError(t, err, p)
		assert.Equal(t, fs.Path(n.NodeID()), ComposePath("/home/user", p), "cd %q", p)
	}
}
