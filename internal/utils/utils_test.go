package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormPath(t *testing.T) {
	assert.Equal(t, "a/b/c", NormPath("a/b/c"))
	assert.Equal(t, "a/b", NormPath("a//b/"))
	assert.Equal(t, "a/b", NormPath("/a/b"))
	assert.Equal(t, "b", NormPath("a/../b"))
}

func TestEnsureDirAndExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "x", "y")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))
	assert.False(t, FileExists(dir))

	// idempotent
	require.NoError(t, EnsureDir(dir))
}

func TestCopyFileCreatesParentsAndOverwrites(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src.txt")
	dst := filepath.Join(root, "deep", "nested", "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("v1"), 0o644))

	require.NoError(t, CopyFile(src, dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	require.NoError(t, os.WriteFile(src, []byte("second version"), 0o644))
	require.NoError(t, CopyFile(src, dst))
	data, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "second version", string(data))
}

func TestResolvePathEmpty(t *testing.T) {
	_, err := ResolvePath("")
	require.Error(t, err)
}
