package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mozilla-ai/mcpmarket/internal/perms"
)

// AppDirName returns the name of the application directory which holds settings,
// both in the user's home directory and in a workspace.
func AppDirName() string {
	return ".mcpmarket"
}

// UserHomeDir returns the home directory for the current user.
func UserHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return home, nil
}

// EnsureDir creates a directory (and any parents) with regular permissions if it doesn't exist.
// Existing directories are left untouched, but the path must resolve to a directory.
func EnsureDir(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("directory path cannot be empty")
	}

	if err := os.MkdirAll(path, perms.RegularDir); err != nil {
		return fmt.Errorf("could not ensure directory exists for '%s': %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("could not stat directory '%s': %w", path, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("path '%s' is not a directory", path)
	}

	return nil
}

// WriteFileAtomic writes data to a temporary file alongside path and renames it into place,
// so readers never observe a partially written file. The parent directory is created if required.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file for '%s': %w", path, err)
	}
	tmpName := tmp.Name()

	// Clean up the temporary file on any failure path.
	defer func() {
		if err != nil {
			err = errors.Join(err, removeIfExists(tmpName))
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not write temporary file for '%s': %w", path, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("could not set permissions on temporary file for '%s': %w", path, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not close temporary file for '%s': %w", path, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("could not replace file '%s': %w", path, err)
	}

	return nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
