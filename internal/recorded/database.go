package recorded

import (
	"time"

	"recmgr/internal/database/sqlc"
	"recmgr/internal/model"
)

// RecordedStore persists recording rows.
type RecordedStore interface {
	// FindRecordedByID loads a recording with its thumbnails, video files and drop log.
	// Returns nil and no error when the recording does not exist.
	FindRecordedByID(id string) (*model.Recorded, error)

	// ListRecorded returns all recording rows, newest first.
	ListRecorded() ([]*sqlc.Recorded, error)

	// CreateRecorded inserts a new recording row.
	CreateRecorded(recorded *sqlc.Recorded) error

	// UpdateRecordedProtect sets the protect flag. Returns the number of rows changed.
	UpdateRecordedProtect(id string, isProtected bool) (int64, error)

	// AttachDropLogFile points a recording at a drop log row.
	AttachDropLogFile(recordedID string, dropLogFileID string) error

	// RemoveDropLogFileReference clears the drop log back-reference on any
	// recording that points at dropLogFileID.
	RemoveDropLogFileReference(dropLogFileID string) error

	// DeleteRecorded deletes a recording row. Deleting a missing row is not an error.
	DeleteRecorded(id string) error
}

// VideoFileStore persists video file rows.
type VideoFileStore interface {
	// FindVideoFileByID returns nil and no error when the row does not exist.
	FindVideoFileByID(id string) (*sqlc.VideoFile, error)

	FindAllVideoFiles() ([]*sqlc.VideoFile, error)

	// CreateVideoFile inserts a row. Fails when the owning recording does not exist.
	CreateVideoFile(videoFile *sqlc.VideoFile) error

	// UpdateVideoFileSize returns the number of rows changed.
	UpdateVideoFileSize(id string, size int64) (int64, error)

	DeleteVideoFile(id string) error
	DeleteVideoFilesByRecordedID(recordedID string) error
}

// ThumbnailStore persists thumbnail rows.
type ThumbnailStore interface {
	CreateThumbnail(thumbnail *sqlc.Thumbnail) error
	DeleteThumbnailsByRecordedID(recordedID string) error
}

// DropLogFileStore persists drop log rows.
type DropLogFileStore interface {
	FindAllDropLogFiles() ([]*sqlc.DropLogFile, error)
	CreateDropLogFile(dropLogFile *sqlc.DropLogFile) error
	DeleteDropLogFile(id string) error
}

// HistoryStore persists recorded history rows used for duplicate detection upstream.
type HistoryStore interface {
	CreateRecordedHistory(name, channelID string, endAt time.Time) (*sqlc.RecordedHistory, error)
	ListRecordedHistory() ([]*sqlc.RecordedHistory, error)

	// DeleteRecordedHistoryBefore removes rows whose end time is before t
	// and returns how many were removed.
	DeleteRecordedHistoryBefore(t time.Time) (int64, error)
}

// OperationStore journals mutating CLI invocations.
type OperationStore interface {
	CreateOperation(operation string, parameters string) (*sqlc.Operation, error)
	FinishOperation(id int64, status string) error
	ListOperations(limit int) ([]*sqlc.Operation, error)
}

// Database groups every store backed by the metadata database.
type Database interface {
	RecordedStore
	VideoFileStore
	ThumbnailStore
	DropLogFileStore
	HistoryStore
	OperationStore

	// CheckMigrations verifies the schema is at the latest version.
	CheckMigrations() error

	// Close closes the database connection.
	Close() error
}
