package sync

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/localsync/localsync/internal/utils"
)

// Result summarizes an executed plan.
type Result struct {
	Copied  int
	Deleted int
}

// Executor performs the filesystem mutations of a finalized,
// conflict-resolved plan. Mutations run in order: copies in plan order,
// then deletes, then manifest persistence — so the manifest is never
// advanced past filesystem state that was not durably achieved. There is no
// rollback: a failure aborts the run, already-mutated files stay mutated,
// and the unpersisted manifest makes a retry re-detect the same actions.
type Executor struct {
	RemoteRoot string

	// OnCopied and OnDeleted report each successful mutation, if set.
	OnCopied  func(path string)
	OnDeleted func(path string)
}

// Execute applies the plan and persists its staged manifest.
func (x *Executor) Execute(plan *Plan) (*Result, error) {
	if len(plan.Conflicts) > 0 {
		return nil, fmt.Errorf("plan has %d unresolved conflicts", len(plan.Conflicts))
	}

	res := &Result{}

	for _, cp := range plan.Copies {
		if err := utils.CopyFile(cp.Src, cp.Dst); err != nil {
			return nil, fmt.Errorf("failed to copy %s: %w", cp.Path, err)
		}
		slog.Debug("copied", "path", cp.Path, "dst", cp.Dst)
		res.Copied++
		if x.OnCopied != nil {
			x.OnCopied(cp.Path)
		}
	}

	for _, del := range plan.Deletes {
		if err := os.Remove(del.Target); err != nil {
			return nil, fmt.Errorf("failed to delete %s: %w", del.Path, err)
		}
		slog.Debug("deleted", "path", del.Path, "target", del.Target)
		res.Deleted++
		if x.OnDeleted != nil {
			x.OnDeleted(del.Path)
		}
		if plan.Direction == DirectionPush {
			// remote deletions must not leave stale empty directory trees
			if err := removeEmptyAncestors(x.RemoteRoot, del.Target); err != nil {
				return nil, fmt.Errorf("failed to clean up after %s: %w", del.Path, err)
			}
		}
	}

	if err := plan.Manifest.Save(x.RemoteRoot); err != nil {
		return nil, err
	}

	return res, nil
}

// removeEmptyAncestors walks upward from the deleted file removing each
// directory that has become empty, stopping at the first non-empty ancestor
// or at root.
func removeEmptyAncestors(root, deleted string) error {
	root = filepath.Clean(root)

	for dir := filepath.Dir(deleted); dir != root; dir = filepath.Dir(dir) {
		if len(dir) <= len(root) {
			// walked past the registered root; never remove above it
			return nil
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return nil
		}
		if err := os.Remove(dir); err != nil {
			return err
		}
	}

	return nil
}
