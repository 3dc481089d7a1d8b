package context

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	ctx := New()
	ctx.SetCwd("/work/project")

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"absolute stays put", "/etc/hosts", "/etc/hosts"},
		{"relative joins cwd", "docs/readme.md", "/work/project/docs/readme.md"},
		{"dot dot climbs", "../other", "/work/other"},
		{"tilde expands", "~/notes.txt", filepath.Join(home, "notes.txt")},
		{"backslashes normalize", `docs\sub\file.txt`, "/work/project/docs/sub/file.txt"},
		{"redundant separators clean", "docs//sub/./x", "/work/project/docs/sub/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ctx.Resolve(tt.in))
		})
	}
}

func TestCwdHistory(t *testing.T) {
	ctx := New()
	start := ctx.Cwd()

	ctx.SetCwd("/one")
	ctx.SetCwd("/two")
	assert.Equal(t, "/two", ctx.Cwd())

	dir, ok := ctx.PopDir()
	require.True(t, ok)
	assert.Equal(t, "/one", dir)

	dir, ok = ctx.PopDir()
	require.True(t, ok)
	assert.Equal(t, start, dir)

	_, ok = ctx.PopDir()
	assert.False(t, ok, "history exhausted")
	assert.Equal(t, start, ctx.Cwd())
}

func TestSetCwdIgnoresNoop(t *testing.T) {
	ctx := New()
	ctx.SetCwd("/somewhere")
	ctx.SetCwd("/somewhere")

	dir, ok := ctx.PopDir()
	require.True(t, ok)
	assert.NotEqual(t, "/somewhere", dir, "repeat SetCwd must not stack")
}

func TestGlobalContextSingleton(t *testing.T) {
	ResetGlobalContext()
	first := GetGlobalContext()
	second := GetGlobalContext()
	assert.Same(t, first, second)

	ResetGlobalContext()
	assert.NotSame(t, first, GetGlobalContext())
}
