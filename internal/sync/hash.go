package sync

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// FileHash computes the content hash of the file at path, serialized as an
// algorithm-tagged string ("sha256:<hex>"). Identical bytes always produce
// identical hashes; this is the sole change-detection signal used by the
// engine. No mtime or size shortcuts.
func FileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return fmt.Sprintf("sha256:%x", h.Sum(nil)), nil
}

// HashBytes hashes an in-memory buffer using the same tagged serialization
// as FileHash.
func HashBytes(data []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}
