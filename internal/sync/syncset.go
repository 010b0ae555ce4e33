package sync

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/localsync/localsync/internal/utils"
)

// gitMetaFiles are version-control metadata files mirrored alongside the
// tracked set whenever they exist.
var gitMetaFiles = []string{".gitignore", ".gitattributes"}

const gitMetaDir = ".git"

// TrackedLister is the version-control collaborator consumed by the
// resolver: it reports the tracked-or-untracked-but-not-ignored file paths
// relative to the local root.
type TrackedLister interface {
	Files() ([]string, error)
}

// SyncSet is the ordered, unique set of relative paths a push considers.
type SyncSet struct {
	paths []string
	seen  map[string]struct{}
}

// Paths returns the resolved paths in insertion order.
func (s *SyncSet) Paths() []string {
	return s.paths
}

// Contains reports whether path is part of the set.
func (s *SyncSet) Contains(path string) bool {
	_, ok := s.seen[path]
	return ok
}

// Len returns the number of resolved paths.
func (s *SyncSet) Len() int {
	return len(s.paths)
}

func (s *SyncSet) add(path string) {
	if _, ok := s.seen[path]; ok {
		return
	}
	s.seen[path] = struct{}{}
	s.paths = append(s.paths, path)
}

// ResolveSyncSet produces the set of relative paths subject to a push:
// version-control tracked files, version-control metadata, and explicitly
// added entries. Directories and glob patterns among the additional entries
// are expanded to flat file paths here, so the diff engine never sees a
// directory.
func ResolveSyncSet(localRoot string, vcs TrackedLister, additional []string) (*SyncSet, error) {
	set := &SyncSet{seen: make(map[string]struct{})}

	files, err := vcs.Files()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked files: %w", err)
	}
	for _, f := range files {
		set.add(utils.NormPath(f))
	}

	for _, meta := range gitMetaFiles {
		if utils.FileExists(filepath.Join(localRoot, meta)) {
			set.add(meta)
		}
	}

	gitDir := filepath.Join(localRoot, gitMetaDir)
	if utils.DirExists(gitDir) {
		if err := set.addTree(localRoot, gitDir); err != nil {
			return nil, err
		}
	}

	for _, entry := range additional {
		if err := set.addEntry(localRoot, entry); err != nil {
			return nil, err
		}
	}

	return set, nil
}

// addEntry expands one `+` descriptor entry: a glob pattern, a directory
// (expanded to its full file listing), or a plain file path. Plain file
// entries are kept even when the file is currently absent; the push planner
// skips paths with no local copy.
func (s *SyncSet) addEntry(localRoot, entry string) error {
	entry = utils.NormPath(entry)

	if isGlobPattern(entry) {
		matches, err := doublestar.FilepathGlob(filepath.Join(localRoot, filepath.FromSlash(entry)))
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", entry, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if err := s.addTree(localRoot, match); err != nil {
					return err
				}
				continue
			}
			rel, err := filepath.Rel(localRoot, match)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", match, err)
			}
			s.add(utils.NormPath(rel))
		}
		return nil
	}

	full := filepath.Join(localRoot, filepath.FromSlash(entry))
	if utils.DirExists(full) {
		return s.addTree(localRoot, full)
	}

	s.add(entry)
	return nil
}

// addTree walks dir and adds every regular file, relative to localRoot.
func (s *SyncSet) addTree(localRoot, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("failed to walk %s: %w", dir, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(localRoot, path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		s.add(utils.NormPath(rel))
		return nil
	})
}

func isGlobPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}
