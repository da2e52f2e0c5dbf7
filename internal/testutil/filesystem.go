package testutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"recmgr/internal/recorded"
)

// MockFile represents a file or directory in the mock filesystem.
type MockFile struct {
	Size        int64
	ModTime     time.Time
	IsDirectory bool
}

// MockFilesystemManager is an in-memory filesystem for testing.
// Adding a file implicitly creates its parent directories.
// Safe for concurrent use.
type MockFilesystemManager struct {
	mu    sync.Mutex
	files map[string]*MockFile

	// Injected failures keyed by path.
	statErrs      map[string]error
	removeErrs    map[string]error
	listErrs      map[string]error
	removeDirErrs map[string]error
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files:         make(map[string]*MockFile),
		statErrs:      make(map[string]error),
		removeErrs:    make(map[string]error),
		listErrs:      make(map[string]error),
		removeDirErrs: make(map[string]error),
	}
}

// AddFile adds a file of the given size.
func (m *MockFilesystemManager) AddFile(path string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.files[path] = &MockFile{Size: size, ModTime: time.Now()}
	m.addParents(path)
}

// AddDirectory adds a directory and its parents.
func (m *MockFilesystemManager) AddDirectory(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	m.files[path] = &MockFile{IsDirectory: true, ModTime: time.Now()}
	m.addParents(path)
}

func (m *MockFilesystemManager) addParents(path string) {
	for dir := filepath.Dir(path); dir != path; path, dir = dir, filepath.Dir(dir) {
		if _, ok := m.files[dir]; ok {
			continue
		}
		m.files[dir] = &MockFile{IsDirectory: true, ModTime: time.Now()}
	}
}

// Exists reports whether path is present.
func (m *MockFilesystemManager) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

// Paths returns every file and directory path in sorted order.
func (m *MockFilesystemManager) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// FailStat makes Stat(path) return err.
func (m *MockFilesystemManager) FailStat(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrs[filepath.Clean(path)] = err
}

// FailRemove makes Remove(path) return err without removing anything.
func (m *MockFilesystemManager) FailRemove(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeErrs[filepath.Clean(path)] = err
}

// FailListTree makes ListTree(root) return err.
func (m *MockFilesystemManager) FailListTree(root string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErrs[filepath.Clean(root)] = err
}

// FailRemoveDirectory makes RemoveDirectory(path) return err.
func (m *MockFilesystemManager) FailRemoveDirectory(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeDirErrs[filepath.Clean(path)] = err
}

func (m *MockFilesystemManager) Stat(path string) (fs.FileInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.statErrs[path]; err != nil {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: err}
	}
	file, ok := m.files[path]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    file.Size,
		modTime: file.ModTime,
		isDir:   file.IsDirectory,
	}, nil
}

func (m *MockFilesystemManager) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.removeErrs[path]; err != nil {
		return &fs.PathError{Op: "remove", Path: path, Err: err}
	}
	file, ok := m.files[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDirectory {
		return fmt.Errorf("refusing to remove directory as file: %s", path)
	}
	delete(m.files, path)
	return nil
}

func (m *MockFilesystemManager) ListTree(root string) (*recorded.FileList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	root = filepath.Clean(root)
	if err := m.listErrs[root]; err != nil {
		return nil, err
	}
	dir, ok := m.files[root]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist}
	}
	if !dir.IsDirectory {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	list := &recorded.FileList{}
	for _, p := range m.childrenLocked(root, true) {
		if m.files[p].IsDirectory {
			list.Directories = append(list.Directories, p)
		} else {
			list.Files = append(list.Files, p)
		}
	}
	return list, nil
}

func (m *MockFilesystemManager) IsEmptyDirectory(path string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	file, ok := m.files[path]
	if !ok {
		return false, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDirectory {
		return false, fmt.Errorf("path is not a directory: %s", path)
	}
	return len(m.childrenLocked(path, false)) == 0, nil
}

func (m *MockFilesystemManager) RemoveDirectory(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	if err := m.removeDirErrs[path]; err != nil {
		return &fs.PathError{Op: "remove", Path: path, Err: err}
	}
	file, ok := m.files[path]
	if !ok {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDirectory {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	if len(m.childrenLocked(path, false)) > 0 {
		return fmt.Errorf("directory not empty: %s", path)
	}
	delete(m.files, path)
	return nil
}

// childrenLocked returns the sorted entries beneath dir. With recursive false
// only direct children are returned.
func (m *MockFilesystemManager) childrenLocked(dir string, recursive bool) []string {
	prefix := dir + string(filepath.Separator)
	if strings.HasSuffix(dir, string(filepath.Separator)) {
		prefix = dir
	}

	var out []string
	for p := range m.files {
		if p == dir || !strings.HasPrefix(p, prefix) {
			continue
		}
		if !recursive && filepath.Dir(p) != dir {
			continue
		}
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return nil }

func (m *mockFileInfo) Mode() fs.FileMode {
	if m.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}

// Compile-time check
var _ recorded.FilesystemManager = (*MockFilesystemManager)(nil)
