package recorded

import "recmgr/internal/database/sqlc"

// PathResolver maps video file rows and recorded directory aliases to absolute paths.
type PathResolver interface {
	// VideoFilePath looks up a video file by id and returns its absolute path.
	// The error wraps ErrVideoFileNotFound or ErrPathUnresolved.
	VideoFilePath(videoFileID string) (string, error)

	// VideoFileFullPath returns the absolute path for a row already in hand.
	// ok is false when the row's parent directory alias is not configured.
	VideoFileFullPath(videoFile *sqlc.VideoFile) (path string, ok bool)

	// ParentDirPath returns the absolute root for a recorded directory alias.
	ParentDirPath(name string) (path string, ok bool)

	// RecordedDirs returns every configured recorded root.
	RecordedDirs() []string
}
