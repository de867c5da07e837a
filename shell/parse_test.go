package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		cmd      string
		args     []string
		flags    Flags
		words    []string
		redirect *Redirect
	}{
		{
			name:  "flags and quoted argument",
			input: `ls -la "My Docs"`,
			cmd:   "ls",
			args:  []string{"My Docs"},
			flags: Flags{"-la"},
			words: []string{"-la", "My Docs"},
		},
		{
			name:  "quoted dash is positional",
			input: `echo '-n'`,
			cmd:   "echo",
			args:  []string{"-n"},
			words: []string{"-n"},
		},
		{
			name:  "repeated flags are kept once",
			input: "rm -r -r a",
			cmd:   "rm",
			args:  []string{"a"},
			flags: Flags{"-r"},
			words: []string{"-r", "-r", "a"},
		},
		{
			name:  "single dash is positional",
			input: "cd -",
			cmd:   "cd",
			args:  []string{"-"},
			words: []string{"-"},
		},
		{
			name:     "separate redirect",
			input:    "echo hi > out.txt",
			cmd:      "echo",
			args:     []string{"hi"},
			words:    []string{"hi"},
			redirect: &Redirect{Path: "out.txt"},
		},
		{
			name:     "attached append",
			input:    "echo hi >>out.txt",
			cmd:      "echo",
			args:     []string{"hi"},
			words:    []string{"hi"},
			redirect: &Redirect{Path: "out.txt", Append: true},
		},
		{
			name:     "separate append",
			input:    "echo hi >> out.txt",
			cmd:      "echo",
			args:     []string{"hi"},
			words:    []string{"hi"},
			redirect: &Redirect{Path: "out.txt", Append: true},
		},
		{
			name:  "quoted angle bracket is text",
			input: `echo ">" x`,
			cmd:   "echo",
			args:  []string{">", "x"},
			words: []string{">", "x"},
		},
		{
			name:  "unterminated quote runs to end",
			input: `echo "a  b`,
			cmd:   "echo",
			args:  []string{"a  b"},
			words: []string{"a  b"},
		},
		{
			name:  "tabs separate words",
			input: "cat\tREADME.md",
			cmd:   "cat",
			args:  []string{"README.md"},
			words: []string{"README.md"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			inv, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, inv.Name)
			assert.Equal(t, tt.args, inv.Args)
			assert.Equal(t, tt.flags, inv.Flags)
			assert.Equal(t, tt.words, inv.Words)
			assert.Equal(t, tt.redirect, inv.Redirect)
		})
	}
}

func TestParse_MissingRedirectTarget(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"echo hi >", "echo hi >>"} {
		_, err := Parse(input)
		assert.ErrorIs(t, err, ErrMissingRedirectTarget, input)
	}
}

func TestParse_Empty(t *testing.T) {
	t.Parallel()

	inv, err := Parse("   ")
	require.NoError(t, err)
	assert.Empty(t, inv.Name)
	assert.Empty(t, inv.Args)
}

func TestFlags(t *testing.T) {
	t.Parallel()

	f := Flags{"-rf", "--force", "-name"}
	assert.True(t, f.Has('r'))
	assert.True(t, f.Has('f'))
	assert.True(t, f.Has('n'))
	assert.False(t, f.Has('o'), "long flags do not contribute letters")
	assert.True(t, f.Contains("-name"))
	assert.False(t, f.Contains("-r"))
}
