package sync

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// ManifestFileName is the single serialized document holding the
	// last-known synced state, stored at the remote root.
	ManifestFileName = ".sync-manifest"

	// LockFileName is the advisory lock file at the remote root. It is never
	// part of the synced path space.
	LockFileName = ".sync.lock"
)

// ManifestEntry records the content state of one path as of the last
// successful synchronization that touched it.
type ManifestEntry struct {
	Hash     string    `json:"hash"`
	SyncedAt time.Time `json:"synced_at"`
}

// Manifest maps relative paths (forward-slash, case-sensitive) to their
// last-known synced state. It is the sole durable state of a sync pair:
// deleting it makes every path look like a first sync.
type Manifest struct {
	Files map[string]ManifestEntry `json:"files"`
}

func NewManifest() *Manifest {
	return &Manifest{Files: make(map[string]ManifestEntry)}
}

// Set stages an entry for path.
func (m *Manifest) Set(path, hash string, syncedAt time.Time) {
	m.Files[path] = ManifestEntry{Hash: hash, SyncedAt: syncedAt}
}

// Len returns the number of tracked entries.
func (m *Manifest) Len() int {
	return len(m.Files)
}

// LoadManifest reads the manifest at remoteRoot. A missing file is the
// legitimate "never synced before" state and yields an empty manifest; a
// file that exists but does not parse is a hard error wrapping
// ErrManifestMalformed.
func LoadManifest(remoteRoot string) (*Manifest, error) {
	path := filepath.Join(remoteRoot, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewManifest(), nil
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifestMalformed, path, err)
	}
	if m.Files == nil {
		m.Files = make(map[string]ManifestEntry)
	}

	return &m, nil
}

// Save serializes the manifest and replaces the document at remoteRoot.
// It writes to a temp file in the same directory and renames it over the
// old manifest so a crash mid-write cannot destroy the prior state.
func (m *Manifest) Save(remoteRoot string) error {
	path := filepath.Join(remoteRoot, ManifestFileName)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize manifest: %w", err)
	}

	tmp, err := os.CreateTemp(remoteRoot, ManifestFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}

	return nil
}
