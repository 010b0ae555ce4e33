package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSyncSetOrderAndUniqueness(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")

	set, err := ResolveSyncSet(root, stubLister{files: []string{"a.txt", "b.txt", "a.txt"}}, []string{"b.txt"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.txt"}, set.Paths())
	assert.True(t, set.Contains("a.txt"))
	assert.False(t, set.Contains("c.txt"))
}

func TestResolveSyncSetIncludesGitMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n")
	writeFile(t, root, ".git/HEAD", "ref: refs/heads/main\n")
	writeFile(t, root, ".git/config", "[core]\n")

	set, err := ResolveSyncSet(root, stubLister{files: []string{"src/main.go"}}, nil)
	require.NoError(t, err)

	assert.True(t, set.Contains(".gitignore"))
	assert.False(t, set.Contains(".gitattributes"))
	assert.True(t, set.Contains(".git/HEAD"))
	assert.True(t, set.Contains(".git/config"))
	assert.Equal(t, "src/main.go", set.Paths()[0])
}

func TestResolveSyncSetExpandsDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "data/one.bin", "1")
	writeFile(t, root, "data/sub/two.bin", "2")

	set, err := ResolveSyncSet(root, stubLister{}, []string{"data"})
	require.NoError(t, err)

	assert.True(t, set.Contains("data/one.bin"))
	assert.True(t, set.Contains("data/sub/two.bin"))
	// directories themselves never enter the set
	assert.False(t, set.Contains("data"))
	assert.False(t, set.Contains("data/sub"))
}

func TestResolveSyncSetExpandsGlobs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "build/app.bin", "x")
	writeFile(t, root, "build/deep/lib.bin", "y")
	writeFile(t, root, "build/readme.md", "z")

	set, err := ResolveSyncSet(root, stubLister{}, []string{"build/**/*.bin"})
	require.NoError(t, err)

	assert.True(t, set.Contains("build/app.bin"))
	assert.True(t, set.Contains("build/deep/lib.bin"))
	assert.False(t, set.Contains("build/readme.md"))
}

func TestResolveSyncSetBadGlob(t *testing.T) {
	root := t.TempDir()
	_, err := ResolveSyncSet(root, stubLister{}, []string{"build/[unclosed"})
	require.Error(t, err)
}

func TestResolveSyncSetKeepsAbsentPlainEntries(t *testing.T) {
	root := t.TempDir()

	set, err := ResolveSyncSet(root, stubLister{}, []string{"later.env"})
	require.NoError(t, err)

	// the push planner decides what to do with paths that have no local
	// copy; resolution keeps them
	assert.True(t, set.Contains("later.env"))
}
