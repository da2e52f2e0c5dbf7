package recorded

import (
	"path/filepath"

	"recmgr/internal/database/sqlc"
)

// Dirs holds the configured roots for artifacts that are not video files.
type Dirs struct {
	Thumbnail string
	DropLog   string
}

// ThumbnailPath returns the absolute path of a thumbnail file, or false when
// the stored path would leave the thumbnail root.
func (d Dirs) ThumbnailPath(t *sqlc.Thumbnail) (string, bool) {
	return joinLocal(d.Thumbnail, t.FilePath)
}

// DropLogPath returns the absolute path of a drop log file, or false when the
// stored path would leave the drop log root.
func (d Dirs) DropLogPath(l *sqlc.DropLogFile) (string, bool) {
	return joinLocal(d.DropLog, l.FilePath)
}

func joinLocal(root, rel string) (string, bool) {
	if !filepath.IsLocal(rel) {
		return "", false
	}
	return filepath.Join(root, rel), true
}

// fileExists reports whether path can be stat'ed. Any stat error counts as absent.
func fileExists(fsmgr FilesystemManager, path string) bool {
	_, err := fsmgr.Stat(path)
	return err == nil
}
