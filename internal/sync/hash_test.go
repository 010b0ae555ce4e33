package sync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileHashTaggedAndDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	// sha256("hello")
	const want = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

	got, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := FileHash(path)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	assert.Equal(t, want, HashBytes([]byte("hello")))
}

func TestFileHashIgnoresMetadata(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0o600))

	hashA, err := FileHash(a)
	require.NoError(t, err)
	hashB, err := FileHash(b)
	require.NoError(t, err)
	assert.Equal(t, hashA, hashB)
}

func TestFileHashMissingFile(t *testing.T) {
	_, err := FileHash(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
