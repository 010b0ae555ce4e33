// Package config reads and maintains the per-project sync descriptor: a
// small text file at the local root whose first line is the remote root
// path and whose subsequent `+`-prefixed lines name additionally tracked
// files, directories or glob patterns.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/localsync/localsync/internal/utils"
)

// FileName is the project descriptor at the local root.
const FileName = ".localsync"

var (
	// ErrConfigMissing means no descriptor exists; the project was never
	// initialized.
	ErrConfigMissing = errors.New("not initialized: no " + FileName + " found")

	// ErrConfigMalformed means the descriptor exists but is empty or
	// unparseable.
	ErrConfigMalformed = errors.New("malformed " + FileName + " descriptor")

	// ErrPathNotFound means an add target does not exist on disk.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrAlreadyTracked means an add target is already synced, either by
	// version control or by a previous add.
	ErrAlreadyTracked = errors.New("path already tracked")

	// ErrNotTracked means a remove target is not in the additional sync
	// list, or is version-controlled and cannot be removed.
	ErrNotTracked = errors.New("path not in additional sync list")
)

// Config is the loaded descriptor. Root is the local project root the
// descriptor was read from; it is not serialized.
type Config struct {
	Root            string
	RemoteRoot      string
	AdditionalPaths []string
}

// Exists reports whether root carries a descriptor.
func Exists(root string) bool {
	return utils.FileExists(filepath.Join(root, FileName))
}

// Load reads the descriptor at root. The first non-empty trimmed line is
// the remote root path; later lines are either blank, `+<path>` entries, or
// ignored.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s (run 'localsync init <remote-path>' first)", ErrConfigMissing, root)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	remote := strings.TrimSpace(lines[0])
	if remote == "" {
		return nil, fmt.Errorf("%w: first line must be the remote root path", ErrConfigMalformed)
	}

	cfg := &Config{Root: root, RemoteRoot: remote}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "+") {
			cfg.AdditionalPaths = append(cfg.AdditionalPaths, strings.TrimPrefix(line, "+"))
		}
	}

	return cfg, nil
}

// Save writes the descriptor back to its root.
func (c *Config) Save() error {
	path := filepath.Join(c.Root, FileName)

	var sb strings.Builder
	sb.WriteString(c.RemoteRoot)
	sb.WriteString("\n")
	for _, entry := range c.AdditionalPaths {
		sb.WriteString("+")
		sb.WriteString(entry)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// HasEntry reports whether path is already in the additional sync list.
func (c *Config) HasEntry(path string) bool {
	for _, entry := range c.AdditionalPaths {
		if entry == path {
			return true
		}
	}
	return false
}

// AddEntry appends path to the additional sync list.
func (c *Config) AddEntry(path string) error {
	if c.HasEntry(path) {
		return fmt.Errorf("%w: %s is already in the sync list", ErrAlreadyTracked, path)
	}
	c.AdditionalPaths = append(c.AdditionalPaths, path)
	return nil
}

// RemoveEntry drops path from the additional sync list.
func (c *Config) RemoveEntry(path string) error {
	for i, entry := range c.AdditionalPaths {
		if entry == path {
			c.AdditionalPaths = append(c.AdditionalPaths[:i], c.AdditionalPaths[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotTracked, path)
}

// FindRoot walks upward from startDir looking for a descriptor. Pull uses
// this instead of the version-control root, since a fresh clone target may
// not be a repository yet.
func FindRoot(startDir string) (string, error) {
	dir, err := utils.ResolvePath(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %s or any parent directory", ErrConfigMissing, startDir)
		}
		dir = parent
	}
}
