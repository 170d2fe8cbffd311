package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrViewExists is returned when the generated view would overwrite a file.
var ErrViewExists = errors.New("view already exists")

// ViewPath returns <dir>/<view>.blade.php. Slashes in view keep sub-directories.
func ViewPath(dir, view string) string {
	return filepath.Join(dir, filepath.FromSlash(view)+".blade.php")
}

// ViewExists reports whether path is already occupied.
func ViewExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// WriteView writes content to a new file at path, creating parent directories.
// An existing file is never touched.
func WriteView(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating view directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrViewExists, path)
		}
		return fmt.Errorf("creating view file: %w", err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing view file: %w", err)
	}
	return f.Close()
}
