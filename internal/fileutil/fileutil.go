package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := writeTemp(path, data, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Staged collects file contents and writes them together. Nothing is renamed
// into place until every temp file has been written.
type Staged struct {
	paths []string
	data  [][]byte
}

// Add queues data for path. A later Add for the same path replaces it.
func (s *Staged) Add(path string, data []byte) {
	for i, existing := range s.paths {
		if existing == path {
			s.data[i] = data
			return
		}
	}
	s.paths = append(s.paths, path)
	s.data = append(s.data, data)
}

// Commit writes every queued file. On a write failure no destination is
// touched and all temp files are removed.
func (s *Staged) Commit(mode os.FileMode) error {
	temps := make([]string, 0, len(s.paths))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}
	for i, path := range s.paths {
		tmp, err := writeTemp(path, s.data[i], mode)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}
	var errs []error
	for i, tmp := range temps {
		if err := os.Rename(tmp, s.paths[i]); err != nil {
			_ = os.Remove(tmp)
			errs = append(errs, fmt.Errorf("rename %s: %w", filepath.Base(s.paths[i]), err))
		}
	}
	return errors.Join(errs...)
}

func writeTemp(path string, data []byte, mode os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}
	file, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmp := file.Name()
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := file.Chmod(mode); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("chmod %s: %w", filepath.Base(path), err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	return tmp, nil
}
