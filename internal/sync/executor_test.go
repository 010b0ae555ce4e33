package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecutorRefusesUnresolvedConflicts(t *testing.T) {
	remote := t.TempDir()
	plan := &Plan{
		Direction: DirectionPush,
		Conflicts: []string{"c.txt"},
		Manifest:  NewManifest(),
	}

	_, err := (&Executor{RemoteRoot: remote}).Execute(plan)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(remote, ManifestFileName))
}

func TestExecutorReportsEachMutation(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	writeFile(t, local, "a.txt", "a")
	writeFile(t, remote, "old.txt", "old")

	plan := &Plan{
		Direction: DirectionPush,
		Copies:    []CopyOp{{Path: "a.txt", Src: filepath.Join(local, "a.txt"), Dst: filepath.Join(remote, "a.txt")}},
		Deletes:   []DeleteOp{{Path: "old.txt", Target: filepath.Join(remote, "old.txt")}},
		Manifest:  NewManifest(),
	}

	var copied, deleted []string
	x := &Executor{
		RemoteRoot: remote,
		OnCopied:   func(p string) { copied = append(copied, p) },
		OnDeleted:  func(p string) { deleted = append(deleted, p) },
	}
	res, err := x.Execute(plan)
	require.NoError(t, err)

	assert.Equal(t, &Result{Copied: 1, Deleted: 1}, res)
	assert.Equal(t, []string{"a.txt"}, copied)
	assert.Equal(t, []string{"old.txt"}, deleted)
}

func TestExecutorCopyOverwritesDestination(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	writeFile(t, local, "f.txt", "new content")
	writeFile(t, remote, "f.txt", "stale content that is longer")

	plan := &Plan{
		Direction: DirectionPush,
		Copies:    []CopyOp{{Path: "f.txt", Src: filepath.Join(local, "f.txt"), Dst: filepath.Join(remote, "f.txt")}},
		Manifest:  NewManifest(),
	}
	_, err := (&Executor{RemoteRoot: remote}).Execute(plan)
	require.NoError(t, err)

	assert.Equal(t, "new content", readFile(t, remote, "f.txt"))
}

func TestExecutorCleansEmptyAncestorsOnPushOnly(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	writeFile(t, remote, "a/b/c/file.txt", "x")
	writeFile(t, remote, "a/keep.txt", "keep")
	writeFile(t, local, "l/d/file.txt", "x")

	push := &Plan{
		Direction: DirectionPush,
		Deletes:   []DeleteOp{{Path: "a/b/c/file.txt", Target: filepath.Join(remote, "a/b/c/file.txt")}},
		Manifest:  NewManifest(),
	}
	_, err := (&Executor{RemoteRoot: remote}).Execute(push)
	require.NoError(t, err)

	// emptied chain removed, non-empty ancestor kept
	assert.NoDirExists(t, filepath.Join(remote, "a/b"))
	assert.DirExists(t, filepath.Join(remote, "a"))
	assert.FileExists(t, filepath.Join(remote, "a/keep.txt"))

	pull := &Plan{
		Direction: DirectionPull,
		Deletes:   []DeleteOp{{Path: "l/d/file.txt", Target: filepath.Join(local, "l/d/file.txt")}},
		Manifest:  NewManifest(),
	}
	_, err = (&Executor{RemoteRoot: remote}).Execute(pull)
	require.NoError(t, err)

	// local deletions leave directories alone
	assert.DirExists(t, filepath.Join(local, "l/d"))
}

func TestExecutorStopsOnFirstFailureWithoutManifestWrite(t *testing.T) {
	local, remote := t.TempDir(), t.TempDir()
	writeFile(t, local, "ok.txt", "fine")

	plan := &Plan{
		Direction: DirectionPush,
		Copies: []CopyOp{
			{Path: "ok.txt", Src: filepath.Join(local, "ok.txt"), Dst: filepath.Join(remote, "ok.txt")},
			{Path: "missing.txt", Src: filepath.Join(local, "missing.txt"), Dst: filepath.Join(remote, "missing.txt")},
		},
		Manifest: NewManifest(),
	}
	plan.Manifest.Set("ok.txt", "sha256:x", time.Now())

	_, err := (&Executor{RemoteRoot: remote}).Execute(plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	// the earlier copy stays (no rollback) but the manifest is not advanced
	assert.FileExists(t, filepath.Join(remote, "ok.txt"))
	assert.NoFileExists(t, filepath.Join(remote, ManifestFileName))
}
