package utils

import (
	"fmt"
	"io"
	"os"
)

// CopyFile copies the full content of src to dst, overwriting dst if it
// exists. The destination's parent directory chain is created on demand.
func CopyFile(src, dst string) error {
	if err := EnsureParent(dst); err != nil {
		return fmt.Errorf("failed to create parent for %s: %w", dst, err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
