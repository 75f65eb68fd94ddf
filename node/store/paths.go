package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// DBDir returns the on-disk directory of the cell store under datadir:
//
//	datadir/db/
func DBDir(datadir string) string {
	return filepath.Join(datadir, "db")
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
