// Package sandbox confines reads and writes of metadata files to a
// distribution's metadata directory.
package sandbox

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePath checks that name resolves to a path inside dir, following
// symlinks for the parts of the path that exist. It returns the resolved path.
func ValidatePath(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("metadata file name is empty")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("metadata file name '%s' must be relative to the metadata directory", name)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving metadata directory: %w", err)
	}
	realDir, err := filepath.EvalSymlinks(absDir)
	if err != nil {
		return "", fmt.Errorf("resolving metadata directory symlinks: %w", err)
	}

	candidate := filepath.Clean(filepath.Join(realDir, name))
	resolved, err := resolveExistingPath(candidate)
	if err != nil {
		return "", fmt.Errorf("resolving metadata file path: %w", err)
	}

	// Trailing separator so "pkg.dist-info2" does not match "pkg.dist-info".
	prefix := realDir + string(filepath.Separator)
	if resolved == realDir || !strings.HasPrefix(resolved, prefix) {
		return "", fmt.Errorf("metadata file '%s' resolves to '%s' which is outside the metadata directory '%s'", name, resolved, realDir)
	}

	return resolved, nil
}

// resolveExistingPath resolves symlinks for the longest existing prefix of
// path and appends the rest unchanged.
func resolveExistingPath(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if dir == path {
		return path, nil
	}

	resolvedDir, err := resolveExistingPath(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, base), nil
}

// SafeRead reads name inside dir. The bool is false when the file does not exist.
func SafeRead(dir, name string) ([]byte, bool, error) {
	resolved, err := ValidatePath(dir, name)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(resolved)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", resolved, err)
	}
	return data, true, nil
}

// SafeWrite replaces name inside dir with content. The file is written to a
// temp file in dir and renamed into place, so readers see either the old
// content or the new content. It returns the number of bytes written.
func SafeWrite(dir, name string, content []byte, perm os.FileMode) (int, error) {
	resolved, err := ValidatePath(dir, name)
	if err != nil {
		return 0, err
	}

	parent := filepath.Dir(resolved)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return 0, fmt.Errorf("creating directory %s: %w", parent, err)
	}

	// Same directory keeps the rename on one filesystem.
	tmp, err := os.CreateTemp(parent, ".direct-url-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	n, err := tmp.Write(content)
	if err != nil {
		return 0, fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return 0, fmt.Errorf("setting permissions: %w", err)
	}

	if err := os.Rename(tmpPath, resolved); err != nil {
		return 0, fmt.Errorf("renaming temp file to %s: %w", resolved, err)
	}

	success = true
	return n, nil
}

// SafeRemove deletes name inside dir. A missing file is not an error; the
// bool reports whether a file was removed.
func SafeRemove(dir, name string) (bool, error) {
	resolved, err := ValidatePath(dir, name)
	if err != nil {
		return false, err
	}
	err = os.Remove(resolved)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", resolved, err)
	}
	return true, nil
}
