package tool

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellTool_Success(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.txt"), []byte("hi"), 0o600))

	result, err := NewShellTool().Call(context.Background(), map[string]any{"command": "ls " + dir})
	require.NoError(t, err)

	res, ok := result.(ShellResult)
	require.True(t, ok)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "hello.txt")
	assert.Empty(t, res.Stderr)
}

func TestShellTool_DenyList(t *testing.T) {
	result, err := NewShellTool().Call(context.Background(), map[string]any{"command": "rm -rf /"})
	require.NoError(t, err)

	res, ok := result.(ShellResult)
	require.True(t, ok)
	assert.Empty(t, res.Stdout)
	assert.Contains(t, res.Stderr, "forbidden pattern")
	assert.NotEqual(t, 0, res.ExitCode)
}

func TestShellTool_DenyListCaseInsensitive(t *testing.T) {
	result, err := NewShellTool().Call(context.Background(), map[string]any{"command": "RM -RF /tmp/x"})
	require.NoError(t, err)
	res := result.(ShellResult)
	assert.Contains(t, res.Stderr, "forbidden pattern")
}

func TestShellTool_CustomDenyPatterns(t *testing.T) {
	st := NewShellTool(func(o *ShellOptions) {
		o.DenyPatterns = []string{"curl"}
	})

	result, err := st.Call(context.Background(), map[string]any{"command": "curl example.com"})
	require.NoError(t, err)
	assert.Contains(t, result.(ShellResult).Stderr, "forbidden pattern")

	// The default deny-list is replaced, not merged.
	result, err = st.Call(context.Background(), map[string]any{"command": "echo rm -rf"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.(ShellResult).ExitCode)
}

func TestShellTool_Timeout(t *testing.T) {
	st := NewShellTool(func(o *ShellOptions) {
		o.Timeout = 50 * time.Millisecond
	})

	result, err := st.Call(context.Background(), map[string]any{"command": "sleep 5"})
	require.NoError(t, err)

	res := result.(ShellResult)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, res.Stderr, "timed out")
}

func TestShellTool_NonZeroExit(t *testing.T) {
	result, err := NewShellTool().Call(context.Background(), map[string]any{"command": "exit 3"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.(ShellResult).ExitCode)
}

func TestShellTool_EmptyCommand(t *testing.T) {
	_, err := NewShellTool().Call(context.Background(), map[string]any{"command": "  "})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", toolErr.Code)
}

func TestShellTool_WorkDir(t *testing.T) {
	dir := t.TempDir()
	st := NewShellTool(func(o *ShellOptions) { o.WorkDir = dir })

	result, err := st.Call(context.Background(), map[string]any{"command": "pwd"})
	require.NoError(t, err)
	assert.Contains(t, result.(ShellResult).Stdout, filepath.Base(dir))
}
