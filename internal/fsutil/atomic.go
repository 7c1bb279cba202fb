// Package fsutil provides the filesystem helpers used around a conversion.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so path either keeps its previous content or holds all of
// data. The temporary file is removed on failure.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	p, err := Stage(path, data, perm)
	if err != nil {
		return err
	}
	return p.Commit()
}

// PendingFile is data fully written to a temporary file next to its
// destination, waiting to be renamed into place.
type PendingFile struct {
	path    string
	tmpName string
}

// Stage writes data to a synced temporary file in the directory of path.
// Nothing at path changes until Commit. Call Discard if the file will not
// be committed.
func Stage(path string, data []byte, perm os.FileMode) (_ *PendingFile, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return nil, fmt.Errorf("setting permissions: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return nil, fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	return &PendingFile{path: path, tmpName: tmpName}, nil
}

// Path returns the destination the file is committed to.
func (p *PendingFile) Path() string { return p.path }

// Commit renames the temporary file over the destination. On failure the
// destination is unchanged and the temporary file is removed.
func (p *PendingFile) Commit() error {
	if err := os.Rename(p.tmpName, p.path); err != nil {
		os.Remove(p.tmpName)
		return fmt.Errorf("renaming into place: %w", err)
	}
	return nil
}

// Discard removes the temporary file. It is a no-op after Commit.
func (p *PendingFile) Discard() {
	os.Remove(p.tmpName)
}

// EnsureDirs creates each directory (and parents) if it does not exist.
func EnsureDirs(dirs ...string) error {
	for _, d := range dirs {
		if d == "" {
			continue
		}
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}
	return nil
}

// Exists checks if a file or directory exists.
func Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}
