package fs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"recmgr/internal/recorded"
)

// OSFilesystemManager is the real filesystem implementation of FilesystemManager.
// It performs actual filesystem operations using the os package.
type OSFilesystemManager struct {
	ignorePatterns []string
}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
// ignorePatterns are applied to every tree listing in addition to the root's ignore file.
func NewOSFilesystemManager(ignorePatterns []string) *OSFilesystemManager {
	return &OSFilesystemManager{ignorePatterns: ignorePatterns}
}

// Stat returns fresh file info for a path.
func (m *OSFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// Remove deletes a file. Directories are refused so a bad row can never
// take a whole tree with it.
func (m *OSFilesystemManager) Remove(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("refusing to remove directory as file: %s", path)
	}
	return os.Remove(path)
}

// ListTree walks root and returns every file and directory beneath it.
// Paths matched by the ignore patterns are left out; an ignored directory
// hides its whole subtree.
func (m *OSFilesystemManager) ListTree(root string) (*recorded.FileList, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	fromFile, err := ParseIgnoreFile(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil, err
	}
	patterns := append(append([]string{}, m.ignorePatterns...), fromFile...)
	matcher := NewIgnoreMatcher(patterns)

	list := &recorded.FileList{}
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}
		if matcher.Match(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			list.Directories = append(list.Directories, p)
			return nil
		}
		list.Files = append(list.Files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return list, nil
}

// IsEmptyDirectory reports whether path is a directory with no entries.
func (m *OSFilesystemManager) IsEmptyDirectory(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return false, fmt.Errorf("path is not a directory: %s", path)
	}

	_, err = f.Readdirnames(1)
	if errors.Is(err, io.EOF) {
		return true, nil
	}
	return false, err
}

// RemoveDirectory removes an empty directory.
func (m *OSFilesystemManager) RemoveDirectory(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return os.Remove(path)
}

// Compile-time check that OSFilesystemManager implements recorded.FilesystemManager interface
var _ recorded.FilesystemManager = (*OSFilesystemManager)(nil)
