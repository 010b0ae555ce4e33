package sync

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"time"

	"github.com/localsync/localsync/internal/utils"
)

// Direction identifies which side of the sync pair wins outside conflicts.
type Direction int

const (
	// DirectionPush copies local changes to the remote root.
	DirectionPush Direction = iota
	// DirectionPull copies remote changes to the local root.
	DirectionPull
)

func (d Direction) String() string {
	if d == DirectionPush {
		return "push"
	}
	return "pull"
}

// CopyOp is one staged file copy.
type CopyOp struct {
	Path string // relative path
	Src  string // absolute source
	Dst  string // absolute destination
}

// DeleteOp is one staged file deletion.
type DeleteOp struct {
	Path   string // relative path
	Target string // absolute path to remove
}

// Plan is the finalized output of a diff run: what to copy, what to delete,
// which paths conflict, and the manifest to persist once every mutation has
// succeeded. No filesystem mutation happens while a Plan is built.
type Plan struct {
	Direction Direction
	Copies    []CopyOp
	Deletes   []DeleteOp
	Conflicts []string
	Manifest  *Manifest
}

// HasChanges reports whether executing the plan would mutate anything.
func (p *Plan) HasChanges() bool {
	return len(p.Copies) > 0 || len(p.Deletes) > 0 || len(p.Conflicts) > 0
}

// Engine classifies every path against three states: the current local
// hash, the current remote hash, and the last-known manifest hash. Only
// content hashes participate in classification; mtime, size and path order
// never break ties.
type Engine struct {
	localRoot  string
	remoteRoot string
	last       *Manifest

	// Now is the clock used for staged manifest entries.
	Now func() time.Time
}

// NewEngine loads the manifest at remoteRoot and returns an engine for the
// local/remote pair. A missing manifest yields the first-sync state.
func NewEngine(localRoot, remoteRoot string) (*Engine, error) {
	last, err := LoadManifest(remoteRoot)
	if err != nil {
		return nil, err
	}
	return &Engine{
		localRoot:  localRoot,
		remoteRoot: remoteRoot,
		last:       last,
		Now:        time.Now,
	}, nil
}

// LastSynced returns the manifest loaded at engine construction.
func (e *Engine) LastSynced() *Manifest {
	return e.last
}

func (e *Engine) localPath(rel string) string {
	return filepath.Join(e.localRoot, filepath.FromSlash(rel))
}

func (e *Engine) remotePath(rel string) string {
	return filepath.Join(e.remoteRoot, filepath.FromSlash(rel))
}

// PlanPush classifies every sync-set path for a local-to-remote sync.
//
// For each path present locally: a conflict is recorded when a manifest
// entry exists, the remote copy exists, and local, remote and manifest
// hashes are pairwise distinct. If local and remote already agree the path
// is in sync regardless of the manifest. Otherwise a copy is staged when
// the remote copy is absent or differs. Every non-conflicting present path
// adopts the local hash in the staged manifest.
//
// Paths in the old manifest that left the sync set are staged for remote
// deletion when their remote copy still exists.
func (e *Engine) PlanPush(set *SyncSet) (*Plan, error) {
	plan := &Plan{Direction: DirectionPush, Manifest: NewManifest()}

	for _, rel := range set.Paths() {
		local := e.localPath(rel)
		remote := e.remotePath(rel)

		// a path with no local copy cannot be pushed
		if !utils.FileExists(local) {
			continue
		}

		localHash, err := FileHash(local)
		if err != nil {
			return nil, err
		}

		remoteExists := utils.FileExists(remote)
		var remoteHash string
		if remoteExists {
			if remoteHash, err = FileHash(remote); err != nil {
				return nil, err
			}
		}

		if entry, ok := e.last.Files[rel]; ok && remoteExists &&
			localHash != entry.Hash && remoteHash != entry.Hash && localHash != remoteHash {
			// both sides diverged independently since the last sync
			plan.Conflicts = append(plan.Conflicts, rel)
			continue
		}

		if !remoteExists || remoteHash != localHash {
			plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: local, Dst: remote})
		}

		plan.Manifest.Set(rel, localHash, e.Now())
	}

	// deletion detection: previously synced, no longer in the sync set
	for rel := range e.last.Files {
		if set.Contains(rel) {
			continue
		}
		remote := e.remotePath(rel)
		if utils.FileExists(remote) {
			plan.Deletes = append(plan.Deletes, DeleteOp{Path: rel, Target: remote})
		}
	}
	sort.Slice(plan.Deletes, func(i, j int) bool { return plan.Deletes[i].Path < plan.Deletes[j].Path })

	return plan, nil
}

// PlanPull classifies paths for a remote-to-local sync. The manifest's path
// set is the universe of known paths; a secondary scan of the remote root
// adopts files the manifest never recorded, but only when no local file
// already occupies that path.
func (e *Engine) PlanPull() (*Plan, error) {
	plan := &Plan{Direction: DirectionPull, Manifest: NewManifest()}

	paths := make([]string, 0, len(e.last.Files))
	for rel := range e.last.Files {
		paths = append(paths, rel)
	}
	sort.Strings(paths)

	for _, rel := range paths {
		entry := e.last.Files[rel]
		local := e.localPath(rel)
		remote := e.remotePath(rel)

		if !utils.FileExists(remote) {
			// deleted on the remote side; mirror the deletion locally
			if utils.FileExists(local) {
				plan.Deletes = append(plan.Deletes, DeleteOp{Path: rel, Target: local})
			}
			continue
		}

		remoteHash, err := FileHash(remote)
		if err != nil {
			return nil, err
		}

		if utils.FileExists(local) {
			localHash, err := FileHash(local)
			if err != nil {
				return nil, err
			}

			if localHash != entry.Hash && remoteHash != entry.Hash && localHash != remoteHash {
				plan.Conflicts = append(plan.Conflicts, rel)
				// the pull adopts the remote state if the conflict is confirmed
				plan.Manifest.Set(rel, remoteHash, e.Now())
				continue
			}

			if localHash != remoteHash {
				plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: remote, Dst: local})
			}
		} else {
			plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: remote, Dst: local})
		}

		plan.Manifest.Set(rel, remoteHash, e.Now())
	}

	if err := e.scanRemoteUntracked(plan); err != nil {
		return nil, err
	}

	return plan, nil
}

// scanRemoteUntracked covers a lost or never-written manifest: remote files
// absent from the manifest are copied down, but only when no local file
// already exists at that path, to avoid silently overwriting unrelated
// local content.
func (e *Engine) scanRemoteUntracked(plan *Plan) error {
	if !utils.DirExists(e.remoteRoot) {
		return nil
	}

	return filepath.WalkDir(e.remoteRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk remote root %s: %w", e.remoteRoot, walkErr)
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(e.remoteRoot, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		rel = utils.NormPath(rel)

		if rel == ManifestFileName || rel == LockFileName {
			return nil
		}
		if _, ok := e.last.Files[rel]; ok {
			return nil
		}

		local := e.localPath(rel)
		if utils.FileExists(local) {
			return nil
		}

		remoteHash, err := FileHash(path)
		if err != nil {
			return err
		}

		plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: path, Dst: local})
		plan.Manifest.Set(rel, remoteHash, e.Now())
		return nil
	})
}

// ResolveConflicts converts every conflicting path into a copy that lets the
// plan's directional bias win: push copies local over remote, pull copies
// remote over local. Called only after the bulk confirmation succeeded.
func (e *Engine) ResolveConflicts(plan *Plan) error {
	for _, rel := range plan.Conflicts {
		local := e.localPath(rel)
		remote := e.remotePath(rel)

		switch plan.Direction {
		case DirectionPush:
			localHash, err := FileHash(local)
			if err != nil {
				return err
			}
			plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: local, Dst: remote})
			plan.Manifest.Set(rel, localHash, e.Now())
		case DirectionPull:
			// the staged manifest already carries the remote hash
			plan.Copies = append(plan.Copies, CopyOp{Path: rel, Src: remote, Dst: local})
		}
	}

	plan.Conflicts = nil
	return nil
}
