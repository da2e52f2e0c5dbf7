package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"recmgr/internal/database/migrations"
	"recmgr/internal/database/sqlc"
	"recmgr/internal/model"
	"recmgr/internal/recorded"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the recorded.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// Foreign keys and the busy timeout are set through the DSN so that every
// pooled connection gets them, not just the first one.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Recorded operations

func (s *SQLiteDatabase) FindRecordedByID(id string) (*model.Recorded, error) {
	ctx := context.Background()

	row, err := s.queries.GetRecordedByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding recorded by id: %w", err)
	}

	thumbnails, err := s.queries.GetThumbnailsByRecordedID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding thumbnails: %w", err)
	}

	videoFiles, err := s.queries.GetVideoFilesByRecordedID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding video files: %w", err)
	}

	result := &model.Recorded{
		Recorded:   row,
		Thumbnails: thumbnails,
		VideoFiles: videoFiles,
	}

	if row.DropLogFileID.Valid {
		dropLog, err := s.queries.GetDropLogFileByID(ctx, row.DropLogFileID.String)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Dangling reference; the drop log sweep clears these.
		case err != nil:
			return nil, fmt.Errorf("finding drop log file: %w", err)
		default:
			result.DropLogFile = &dropLog
		}
	}

	return result, nil
}

func (s *SQLiteDatabase) ListRecorded() ([]*sqlc.Recorded, error) {
	rows, err := s.queries.ListRecorded(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing recorded: %w", err)
	}

	result := make([]*sqlc.Recorded, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) CreateRecorded(recorded *sqlc.Recorded) error {
	_, err := s.queries.InsertRecorded(context.Background(), sqlc.InsertRecordedParams{
		ID:            recorded.ID,
		Name:          recorded.Name,
		ChannelID:     recorded.ChannelID,
		StartAt:       recorded.StartAt.UTC(),
		EndAt:         recorded.EndAt.UTC(),
		IsRecording:   recorded.IsRecording,
		ReserveID:     recorded.ReserveID,
		IsProtected:   recorded.IsProtected,
		DropLogFileID: recorded.DropLogFileID,
	})
	if err != nil {
		return fmt.Errorf("creating recorded: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateRecordedProtect(id string, isProtected bool) (int64, error) {
	n, err := s.queries.UpdateRecordedProtect(context.Background(), sqlc.UpdateRecordedProtectParams{
		IsProtected: isProtected,
		ID:          id,
	})
	if err != nil {
		return 0, fmt.Errorf("updating recorded protect: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) AttachDropLogFile(recordedID string, dropLogFileID string) error {
	n, err := s.queries.UpdateRecordedDropLogFile(context.Background(), sqlc.UpdateRecordedDropLogFileParams{
		DropLogFileID: sql.NullString{String: dropLogFileID, Valid: true},
		ID:            recordedID,
	})
	if err != nil {
		return fmt.Errorf("attaching drop log file: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("attaching drop log file: %w: %s", recorded.ErrRecordedNotFound, recordedID)
	}
	return nil
}

func (s *SQLiteDatabase) RemoveDropLogFileReference(dropLogFileID string) error {
	err := s.queries.ClearRecordedDropLogFile(context.Background(), sql.NullString{String: dropLogFileID, Valid: true})
	if err != nil {
		return fmt.Errorf("clearing drop log file reference: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteRecorded(id string) error {
	if err := s.queries.DeleteRecordedByID(context.Background(), id); err != nil {
		return fmt.Errorf("deleting recorded: %w", err)
	}
	return nil
}

// Video file operations

func (s *SQLiteDatabase) FindVideoFileByID(id string) (*sqlc.VideoFile, error) {
	videoFile, err := s.queries.GetVideoFileByID(context.Background(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding video file by id: %w", err)
	}
	return &videoFile, nil
}

func (s *SQLiteDatabase) FindAllVideoFiles() ([]*sqlc.VideoFile, error) {
	rows, err := s.queries.ListVideoFiles(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing video files: %w", err)
	}

	result := make([]*sqlc.VideoFile, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) CreateVideoFile(videoFile *sqlc.VideoFile) error {
	_, err := s.queries.InsertVideoFile(context.Background(), sqlc.InsertVideoFileParams{
		ID:                  videoFile.ID,
		RecordedID:          videoFile.RecordedID,
		ParentDirectoryName: videoFile.ParentDirectoryName,
		FilePath:            videoFile.FilePath,
		Type:                videoFile.Type,
		Name:                videoFile.Name,
		Size:                videoFile.Size,
	})
	if err != nil {
		return fmt.Errorf("creating video file: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) UpdateVideoFileSize(id string, size int64) (int64, error) {
	n, err := s.queries.UpdateVideoFileSize(context.Background(), sqlc.UpdateVideoFileSizeParams{
		Size: size,
		ID:   id,
	})
	if err != nil {
		return 0, fmt.Errorf("updating video file size: %w", err)
	}
	return n, nil
}

func (s *SQLiteDatabase) DeleteVideoFile(id string) error {
	if err := s.queries.DeleteVideoFileByID(context.Background(), id); err != nil {
		return fmt.Errorf("deleting video file: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteVideoFilesByRecordedID(recordedID string) error {
	if err := s.queries.DeleteVideoFilesByRecordedID(context.Background(), recordedID); err != nil {
		return fmt.Errorf("deleting video files by recorded id: %w", err)
	}
	return nil
}

// Thumbnail operations

func (s *SQLiteDatabase) CreateThumbnail(thumbnail *sqlc.Thumbnail) error {
	_, err := s.queries.InsertThumbnail(context.Background(), sqlc.InsertThumbnailParams{
		ID:         thumbnail.ID,
		RecordedID: thumbnail.RecordedID,
		FilePath:   thumbnail.FilePath,
	})
	if err != nil {
		return fmt.Errorf("creating thumbnail: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteThumbnailsByRecordedID(recordedID string) error {
	if err := s.queries.DeleteThumbnailsByRecordedID(context.Background(), recordedID); err != nil {
		return fmt.Errorf("deleting thumbnails by recorded id: %w", err)
	}
	return nil
}

// Drop log operations

func (s *SQLiteDatabase) FindAllDropLogFiles() ([]*sqlc.DropLogFile, error) {
	rows, err := s.queries.ListDropLogFiles(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing drop log files: %w", err)
	}

	result := make([]*sqlc.DropLogFile, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) CreateDropLogFile(dropLogFile *sqlc.DropLogFile) error {
	_, err := s.queries.InsertDropLogFile(context.Background(), sqlc.InsertDropLogFileParams{
		ID:            dropLogFile.ID,
		FilePath:      dropLogFile.FilePath,
		ErrorCnt:      dropLogFile.ErrorCnt,
		DropCnt:       dropLogFile.DropCnt,
		ScramblingCnt: dropLogFile.ScramblingCnt,
	})
	if err != nil {
		return fmt.Errorf("creating drop log file: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) DeleteDropLogFile(id string) error {
	if err := s.queries.DeleteDropLogFileByID(context.Background(), id); err != nil {
		return fmt.Errorf("deleting drop log file: %w", err)
	}
	return nil
}

// Recorded history operations
//
// Times are stored in UTC so that the text comparison SQLite performs on
// DATETIME columns orders them correctly.

func (s *SQLiteDatabase) CreateRecordedHistory(name, channelID string, endAt time.Time) (*sqlc.RecordedHistory, error) {
	h, err := s.queries.InsertRecordedHistory(context.Background(), sqlc.InsertRecordedHistoryParams{
		Name:      name,
		ChannelID: channelID,
		EndAt:     endAt.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating recorded history: %w", err)
	}
	return &h, nil
}

func (s *SQLiteDatabase) ListRecordedHistory() ([]*sqlc.RecordedHistory, error) {
	rows, err := s.queries.ListRecordedHistory(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing recorded history: %w", err)
	}

	result := make([]*sqlc.RecordedHistory, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

func (s *SQLiteDatabase) DeleteRecordedHistoryBefore(t time.Time) (int64, error) {
	n, err := s.queries.DeleteRecordedHistoryBefore(context.Background(), t.UTC())
	if err != nil {
		return 0, fmt.Errorf("deleting recorded history: %w", err)
	}
	return n, nil
}

// Operation tracking

func (s *SQLiteDatabase) CreateOperation(operation string, parameters string) (*sqlc.Operation, error) {
	op, err := s.queries.InsertOperation(context.Background(), sqlc.InsertOperationParams{
		StartedAt:  time.Now().UTC(),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}
	return &op, nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string) error {
	err := s.queries.UpdateOperationFinished(context.Background(), sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(limit int) ([]*sqlc.Operation, error) {
	ops, err := s.queries.GetOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	result := make([]*sqlc.Operation, len(ops))
	for i := range ops {
		result[i] = &ops[i]
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// MigrationStatus reports the schema version of the database.
func (s *SQLiteDatabase) MigrationStatus() (migrations.Status, error) {
	return migrations.ReadStatus(s.db)
}

// MigrateUp applies any pending migrations.
func (s *SQLiteDatabase) MigrateUp() error {
	return migrations.MigrateUp(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements recorded.Database interface
var _ recorded.Database = (*SQLiteDatabase)(nil)
