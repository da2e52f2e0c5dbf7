package testutil

import (
	"database/sql"
	"testing"
	"time"

	"recmgr/internal/database"
	"recmgr/internal/database/sqlc"
)

// Fixtures inserts rows into a test database with sequential ids.
type Fixtures struct {
	t   *testing.T
	db  *database.SQLiteDatabase
	ids *StubIDGenerator
}

// NewFixtures creates a Fixtures whose ids ("fx-1", "fx-2", ...) cannot
// collide with the "id-N" ids of NewStubIDGenerator.
func NewFixtures(t *testing.T, db *database.SQLiteDatabase) *Fixtures {
	return &Fixtures{t: t, db: db, ids: &StubIDGenerator{prefix: "fx"}}
}

// Recorded inserts a finished recording.
func (f *Fixtures) Recorded(name string) *sqlc.Recorded {
	f.t.Helper()

	start := time.Date(2024, 2, 1, 21, 0, 0, 0, time.UTC)
	r := &sqlc.Recorded{
		ID:        f.ids.New(),
		Name:      name,
		ChannelID: "GR27",
		StartAt:   start,
		EndAt:     start.Add(54 * time.Minute),
	}
	if err := f.db.CreateRecorded(r); err != nil {
		f.t.Fatalf("creating recorded %s: %v", name, err)
	}
	return r
}

// ActiveRecorded inserts a recording that is still in progress for reserveID.
func (f *Fixtures) ActiveRecorded(name, reserveID string) *sqlc.Recorded {
	f.t.Helper()

	start := time.Date(2024, 2, 1, 21, 0, 0, 0, time.UTC)
	r := &sqlc.Recorded{
		ID:          f.ids.New(),
		Name:        name,
		ChannelID:   "GR27",
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		IsRecording: true,
		ReserveID:   sql.NullString{String: reserveID, Valid: true},
	}
	if err := f.db.CreateRecorded(r); err != nil {
		f.t.Fatalf("creating recorded %s: %v", name, err)
	}
	return r
}

// VideoFile inserts a video file row owned by recordedID.
func (f *Fixtures) VideoFile(recordedID, alias, filePath string) *sqlc.VideoFile {
	f.t.Helper()

	v := &sqlc.VideoFile{
		ID:                  f.ids.New(),
		RecordedID:          recordedID,
		ParentDirectoryName: alias,
		FilePath:            filePath,
		Type:                "ts",
		Name:                "TS",
		Size:                1,
	}
	if err := f.db.CreateVideoFile(v); err != nil {
		f.t.Fatalf("creating video file %s: %v", filePath, err)
	}
	return v
}

// Thumbnail inserts a thumbnail row owned by recordedID.
func (f *Fixtures) Thumbnail(recordedID, filePath string) *sqlc.Thumbnail {
	f.t.Helper()

	th := &sqlc.Thumbnail{ID: f.ids.New(), RecordedID: recordedID, FilePath: filePath}
	if err := f.db.CreateThumbnail(th); err != nil {
		f.t.Fatalf("creating thumbnail %s: %v", filePath, err)
	}
	return th
}

// DropLog inserts a drop log row and attaches it to recordedID when non-empty.
func (f *Fixtures) DropLog(recordedID, filePath string) *sqlc.DropLogFile {
	f.t.Helper()

	d := &sqlc.DropLogFile{ID: f.ids.New(), FilePath: filePath}
	if err := f.db.CreateDropLogFile(d); err != nil {
		f.t.Fatalf("creating drop log %s: %v", filePath, err)
	}
	if recordedID != "" {
		if err := f.db.AttachDropLogFile(recordedID, d.ID); err != nil {
			f.t.Fatalf("attaching drop log %s: %v", filePath, err)
		}
	}
	return d
}

// History inserts a recorded history row.
func (f *Fixtures) History(name string, endAt time.Time) {
	f.t.Helper()

	if _, err := f.db.CreateRecordedHistory(name, "GR27", endAt); err != nil {
		f.t.Fatalf("creating history %s: %v", name, err)
	}
}
