// Package vcs is the version-control collaborator. The sync core depends
// on exactly two query results: the repository root directory and the list
// of tracked-or-untracked-but-not-ignored file paths relative to it.
package vcs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
)

// ErrNoRepository means dir is not inside a git working tree.
var ErrNoRepository = errors.New("not in a git repository")

// Repo wraps an opened git working tree.
type Repo struct {
	repo *git.Repository
	root string
}

// Open locates the repository containing dir, walking upward for the .git
// directory the way `git rev-parse --show-toplevel` does.
func Open(dir string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w (searched from %s)", ErrNoRepository, dir)
		}
		return nil, fmt.Errorf("failed to open repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}

	return &Repo{repo: repo, root: wt.Filesystem.Root()}, nil
}

// Root returns the absolute path of the working tree root.
func (r *Repo) Root() string {
	return r.root
}

// Files lists tracked files (from the index) followed by untracked files
// that are not ignored (from the worktree status), relative to Root with
// forward slashes. This mirrors `git ls-files --cached --others
// --exclude-standard`.
func (r *Repo) Files() ([]string, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}

	files := make([]string, 0, len(idx.Entries))
	seen := make(map[string]struct{}, len(idx.Entries))
	for _, entry := range idx.Entries {
		files = append(files, entry.Name)
		seen[entry.Name] = struct{}{}
	}

	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}

	var untracked []string
	for path, st := range status {
		if st.Worktree != git.Untracked {
			continue
		}
		if _, ok := seen[path]; ok {
			continue
		}
		untracked = append(untracked, path)
	}
	sort.Strings(untracked)

	return append(files, untracked...), nil
}

// IsTracked reports whether the index carries an entry for the relative
// path.
func (r *Repo) IsTracked(rel string) (bool, error) {
	idx, err := r.repo.Storer.Index()
	if err != nil {
		return false, fmt.Errorf("failed to read index: %w", err)
	}

	if _, err := idx.Entry(rel); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to look up %s: %w", rel, err)
	}
	return true, nil
}
