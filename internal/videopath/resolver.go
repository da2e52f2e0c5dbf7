// Package videopath resolves video file rows to absolute paths using the
// configured recorded directories.
package videopath

import (
	"fmt"
	"path/filepath"

	"recmgr/internal/config"
	"recmgr/internal/database/sqlc"
	"recmgr/internal/recorded"
)

// VideoFileFinder is the slice of the store the resolver needs.
type VideoFileFinder interface {
	FindVideoFileByID(id string) (*sqlc.VideoFile, error)
}

// Resolver implements recorded.PathResolver.
type Resolver struct {
	finder VideoFileFinder
	roots  map[string]string
	order  []string
}

// NewResolver creates a Resolver for the given recorded directories.
// Roots are cleaned so that joined paths compare equal to listed paths.
func NewResolver(finder VideoFileFinder, dirs []config.RecordedDirConfig) *Resolver {
	r := &Resolver{
		finder: finder,
		roots:  make(map[string]string, len(dirs)),
	}
	for _, dir := range dirs {
		if _, dup := r.roots[dir.Name]; dup {
			continue
		}
		root := filepath.Clean(dir.Path)
		r.roots[dir.Name] = root
		r.order = append(r.order, root)
	}
	return r
}

// VideoFilePath looks up a video file by id and returns its absolute path.
func (r *Resolver) VideoFilePath(videoFileID string) (string, error) {
	videoFile, err := r.finder.FindVideoFileByID(videoFileID)
	if err != nil {
		return "", fmt.Errorf("finding video file: %w", err)
	}
	if videoFile == nil {
		return "", fmt.Errorf("%w: %s", recorded.ErrVideoFileNotFound, videoFileID)
	}

	path, ok := r.VideoFileFullPath(videoFile)
	if !ok {
		return "", fmt.Errorf("%w: video file %s at %q in parent directory %q",
			recorded.ErrPathUnresolved, videoFileID, videoFile.FilePath, videoFile.ParentDirectoryName)
	}
	return path, nil
}

// VideoFileFullPath joins the row's relative path onto its parent directory root.
// Paths that would leave the root are unresolvable.
func (r *Resolver) VideoFileFullPath(videoFile *sqlc.VideoFile) (string, bool) {
	root, ok := r.roots[videoFile.ParentDirectoryName]
	if !ok || !filepath.IsLocal(videoFile.FilePath) {
		return "", false
	}
	return filepath.Join(root, videoFile.FilePath), true
}

// ParentDirPath returns the root configured for alias name.
func (r *Resolver) ParentDirPath(name string) (string, bool) {
	root, ok := r.roots[name]
	return root, ok
}

// RecordedDirs returns the configured roots in config order.
func (r *Resolver) RecordedDirs() []string {
	return append([]string(nil), r.order...)
}

var _ recorded.PathResolver = (*Resolver)(nil)
