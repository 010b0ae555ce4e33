package sync

import (
	"os"
	"sort"

	"github.com/localsync/localsync/internal/utils"
)

// Report is the read-only reconciliation of the sync pair, with the paths
// behind each bucket. Building it mutates nothing and triggers no prompts.
type Report struct {
	InSync     []string
	Modified   []string
	LocalOnly  []string
	RemoteOnly []string

	// LocalBytes is the total size of sync-set files present locally.
	LocalBytes uint64
}

// Status compares local and remote content for every sync-set path present
// locally; paths the manifest remembers but the sync set no longer carries
// count as remote-only.
func (e *Engine) Status(set *SyncSet) (*Report, error) {
	report := &Report{}

	for _, rel := range set.Paths() {
		local := e.localPath(rel)
		remote := e.remotePath(rel)

		info, err := os.Stat(local)
		if err != nil || info.IsDir() {
			continue
		}
		report.LocalBytes += uint64(info.Size())

		if !utils.FileExists(remote) {
			report.LocalOnly = append(report.LocalOnly, rel)
			continue
		}

		localHash, err := FileHash(local)
		if err != nil {
			return nil, err
		}
		remoteHash, err := FileHash(remote)
		if err != nil {
			return nil, err
		}

		if localHash == remoteHash {
			report.InSync = append(report.InSync, rel)
		} else {
			report.Modified = append(report.Modified, rel)
		}
	}

	for rel := range e.last.Files {
		if !set.Contains(rel) {
			report.RemoteOnly = append(report.RemoteOnly, rel)
		}
	}
	sort.Strings(report.RemoteOnly)

	return report, nil
}
