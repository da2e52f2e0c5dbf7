package recorded

import "io/fs"

// FileList is the result of walking a directory tree.
// Neither slice includes the walked root itself.
type FileList struct {
	Files       []string
	Directories []string
}

// FilesystemManager provides the filesystem primitives used by deletion and reconciliation.
// It abstracts file access to enable testing without touching the real filesystem.
type FilesystemManager interface {
	// Stat returns file info. Fails when the path does not exist.
	Stat(path string) (fs.FileInfo, error)

	// Remove deletes a regular file. Fails when the path is missing or not removable.
	Remove(path string) error

	// ListTree walks root recursively and returns every file and directory beneath it.
	// Ignored files are left out.
	ListTree(root string) (*FileList, error)

	// IsEmptyDirectory reports whether path is a directory with no entries.
	IsEmptyDirectory(path string) (bool, error)

	// RemoveDirectory removes an empty directory. Fails when it is not empty.
	RemoveDirectory(path string) error
}
