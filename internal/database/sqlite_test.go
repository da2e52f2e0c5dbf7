package database

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"recmgr/internal/database/sqlc"
	"recmgr/internal/recorded"
)

// newTestDB creates a new in-memory database with schema applied.
func newTestDB(t *testing.T) *SQLiteDatabase {
	t.Helper()

	db, err := NewSQLiteDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}

	if _, err := db.db.Exec(Schema); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestRecorded is a helper to insert a recording row.
func createTestRecorded(t *testing.T, db *SQLiteDatabase, name string) *sqlc.Recorded {
	t.Helper()

	start := time.Date(2024, 1, 15, 21, 0, 0, 0, time.UTC)
	r := &sqlc.Recorded{
		ID:      uuid.New().String(),
		Name:    name,
		StartAt: start,
		EndAt:   start.Add(30 * time.Minute),
	}
	if err := db.CreateRecorded(r); err != nil {
		t.Fatalf("CreateRecorded() error = %v", err)
	}
	return r
}

// createTestVideoFile is a helper to insert a video file row.
func createTestVideoFile(t *testing.T, db *SQLiteDatabase, recordedID, filePath string) *sqlc.VideoFile {
	t.Helper()

	v := &sqlc.VideoFile{
		ID:                  uuid.New().String(),
		RecordedID:          recordedID,
		ParentDirectoryName: "recorded",
		FilePath:            filePath,
		Type:                "ts",
		Name:                "TS",
		Size:                100,
	}
	if err := db.CreateVideoFile(v); err != nil {
		t.Fatalf("CreateVideoFile() error = %v", err)
	}
	return v
}

func TestSQLiteDatabase_FindRecordedByID(t *testing.T) {
	t.Run("returns nil when recorded not found", func(t *testing.T) {
		db := newTestDB(t)

		got, err := db.FindRecordedByID("missing")
		if err != nil {
			t.Fatalf("FindRecordedByID() error = %v", err)
		}
		if got != nil {
			t.Errorf("FindRecordedByID() = %v, want nil", got)
		}
	})

	t.Run("loads owned rows", func(t *testing.T) {
		db := newTestDB(t)

		r := createTestRecorded(t, db, "news")
		v1 := createTestVideoFile(t, db, r.ID, "news.ts")
		v2 := createTestVideoFile(t, db, r.ID, "news.mp4")
		if err := db.CreateThumbnail(&sqlc.Thumbnail{ID: "t1", RecordedID: r.ID, FilePath: "news.jpg"}); err != nil {
			t.Fatalf("CreateThumbnail() error = %v", err)
		}
		if err := db.CreateDropLogFile(&sqlc.DropLogFile{ID: "d1", FilePath: "news.log", DropCnt: 3}); err != nil {
			t.Fatalf("CreateDropLogFile() error = %v", err)
		}
		if err := db.AttachDropLogFile(r.ID, "d1"); err != nil {
			t.Fatalf("AttachDropLogFile() error = %v", err)
		}

		got, err := db.FindRecordedByID(r.ID)
		if err != nil {
			t.Fatalf("FindRecordedByID() error = %v", err)
		}
		if got == nil {
			t.Fatal("FindRecordedByID() returned nil")
		}
		if got.Name != "news" {
			t.Errorf("Name = %q, want %q", got.Name, "news")
		}
		if len(got.VideoFiles) != 2 {
			t.Fatalf("len(VideoFiles) = %d, want 2", len(got.VideoFiles))
		}
		if got.VideoFiles[0].ID != v1.ID || got.VideoFiles[1].ID != v2.ID {
			t.Errorf("VideoFiles not in insertion order: %s, %s", got.VideoFiles[0].ID, got.VideoFiles[1].ID)
		}
		if len(got.Thumbnails) != 1 || got.Thumbnails[0].FilePath != "news.jpg" {
			t.Errorf("Thumbnails = %+v, want one news.jpg", got.Thumbnails)
		}
		if got.DropLogFile == nil || got.DropLogFile.DropCnt != 3 {
			t.Errorf("DropLogFile = %+v, want d1 with drop count 3", got.DropLogFile)
		}
		if !got.StartAt.Equal(r.StartAt) {
			t.Errorf("StartAt = %v, want %v", got.StartAt, r.StartAt)
		}
	})

	t.Run("recorded without children has empty collections", func(t *testing.T) {
		db := newTestDB(t)
		r := createTestRecorded(t, db, "empty")

		got, err := db.FindRecordedByID(r.ID)
		if err != nil {
			t.Fatalf("FindRecordedByID() error = %v", err)
		}
		if got.HasVideoFiles() || got.HasThumbnails() || got.DropLogFile != nil {
			t.Errorf("expected no children, got %+v", got)
		}
	})
}

func TestSQLiteDatabase_UpdateRecordedProtect(t *testing.T) {
	db := newTestDB(t)
	r := createTestRecorded(t, db, "drama")

	n, err := db.UpdateRecordedProtect(r.ID, true)
	if err != nil {
		t.Fatalf("UpdateRecordedProtect() error = %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}

	got, _ := db.FindRecordedByID(r.ID)
	if !got.IsProtected {
		t.Error("IsProtected = false, want true")
	}

	n, err = db.UpdateRecordedProtect("missing", true)
	if err != nil {
		t.Fatalf("UpdateRecordedProtect(missing) error = %v", err)
	}
	if n != 0 {
		t.Errorf("rows for missing id = %d, want 0", n)
	}
}

func TestSQLiteDatabase_DropLogReferences(t *testing.T) {
	t.Run("attach to missing recorded fails", func(t *testing.T) {
		db := newTestDB(t)
		db.CreateDropLogFile(&sqlc.DropLogFile{ID: "d1", FilePath: "a.log"})

		err := db.AttachDropLogFile("missing", "d1")
		if !errors.Is(err, recorded.ErrRecordedNotFound) {
			t.Errorf("AttachDropLogFile() error = %v, want ErrRecordedNotFound", err)
		}
	})

	t.Run("remove reference clears only matching recordings", func(t *testing.T) {
		db := newTestDB(t)
		r1 := createTestRecorded(t, db, "one")
		r2 := createTestRecorded(t, db, "two")
		db.CreateDropLogFile(&sqlc.DropLogFile{ID: "d1", FilePath: "one.log"})
		db.CreateDropLogFile(&sqlc.DropLogFile{ID: "d2", FilePath: "two.log"})
		db.AttachDropLogFile(r1.ID, "d1")
		db.AttachDropLogFile(r2.ID, "d2")

		if err := db.RemoveDropLogFileReference("d1"); err != nil {
			t.Fatalf("RemoveDropLogFileReference() error = %v", err)
		}

		got1, _ := db.FindRecordedByID(r1.ID)
		if got1.DropLogFileID.Valid {
			t.Error("r1 still references d1")
		}
		got2, _ := db.FindRecordedByID(r2.ID)
		if !got2.DropLogFileID.Valid || got2.DropLogFileID.String != "d2" {
			t.Errorf("r2 DropLogFileID = %+v, want d2", got2.DropLogFileID)
		}

		// Once unreferenced the row can be deleted.
		if err := db.DeleteDropLogFile("d1"); err != nil {
			t.Fatalf("DeleteDropLogFile() error = %v", err)
		}
		logs, _ := db.FindAllDropLogFiles()
		if len(logs) != 1 || logs[0].ID != "d2" {
			t.Errorf("remaining drop logs = %+v, want only d2", logs)
		}
	})

	t.Run("referenced drop log cannot be deleted", func(t *testing.T) {
		db := newTestDB(t)
		r := createTestRecorded(t, db, "one")
		db.CreateDropLogFile(&sqlc.DropLogFile{ID: "d1", FilePath: "one.log"})
		db.AttachDropLogFile(r.ID, "d1")

		if err := db.DeleteDropLogFile("d1"); err == nil {
			t.Error("DeleteDropLogFile() expected foreign key error")
		}
	})
}

func TestSQLiteDatabase_VideoFiles(t *testing.T) {
	t.Run("create requires existing recorded", func(t *testing.T) {
		db := newTestDB(t)

		err := db.CreateVideoFile(&sqlc.VideoFile{ID: "v1", RecordedID: "missing", ParentDirectoryName: "recorded", FilePath: "a.ts", Type: "ts", Name: "TS"})
		if err == nil {
			t.Error("CreateVideoFile() expected foreign key error")
		}
	})

	t.Run("find, resize and delete", func(t *testing.T) {
		db := newTestDB(t)
		r := createTestRecorded(t, db, "anime")
		v := createTestVideoFile(t, db, r.ID, "anime.ts")

		found, err := db.FindVideoFileByID(v.ID)
		if err != nil {
			t.Fatalf("FindVideoFileByID() error = %v", err)
		}
		if found == nil || found.FilePath != "anime.ts" {
			t.Fatalf("FindVideoFileByID() = %+v, want anime.ts", found)
		}

		n, err := db.UpdateVideoFileSize(v.ID, 4096)
		if err != nil || n != 1 {
			t.Fatalf("UpdateVideoFileSize() = %d, %v; want 1, nil", n, err)
		}
		found, _ = db.FindVideoFileByID(v.ID)
		if found.Size != 4096 {
			t.Errorf("Size = %d, want 4096", found.Size)
		}

		if err := db.DeleteVideoFile(v.ID); err != nil {
			t.Fatalf("DeleteVideoFile() error = %v", err)
		}
		found, _ = db.FindVideoFileByID(v.ID)
		if found != nil {
			t.Error("video file still present after delete")
		}
	})

	t.Run("deleting missing rows is not an error", func(t *testing.T) {
		db := newTestDB(t)

		if err := db.DeleteVideoFile("missing"); err != nil {
			t.Errorf("DeleteVideoFile() error = %v", err)
		}
		if err := db.DeleteRecorded("missing"); err != nil {
			t.Errorf("DeleteRecorded() error = %v", err)
		}
		if err := db.DeleteDropLogFile("missing"); err != nil {
			t.Errorf("DeleteDropLogFile() error = %v", err)
		}
		if err := db.DeleteThumbnailsByRecordedID("missing"); err != nil {
			t.Errorf("DeleteThumbnailsByRecordedID() error = %v", err)
		}
	})

	t.Run("find all spans recordings", func(t *testing.T) {
		db := newTestDB(t)
		r1 := createTestRecorded(t, db, "one")
		r2 := createTestRecorded(t, db, "two")
		createTestVideoFile(t, db, r1.ID, "one.ts")
		createTestVideoFile(t, db, r2.ID, "two.ts")
		createTestVideoFile(t, db, r2.ID, "two.mp4")

		all, err := db.FindAllVideoFiles()
		if err != nil {
			t.Fatalf("FindAllVideoFiles() error = %v", err)
		}
		if len(all) != 3 {
			t.Errorf("got %d video files, want 3", len(all))
		}

		if err := db.DeleteVideoFilesByRecordedID(r2.ID); err != nil {
			t.Fatalf("DeleteVideoFilesByRecordedID() error = %v", err)
		}
		all, _ = db.FindAllVideoFiles()
		if len(all) != 1 || all[0].RecordedID != r1.ID {
			t.Errorf("remaining = %+v, want only r1's file", all)
		}
	})
}

func TestSQLiteDatabase_DeleteRecorded(t *testing.T) {
	t.Run("fails while video files still reference it", func(t *testing.T) {
		db := newTestDB(t)
		r := createTestRecorded(t, db, "one")
		createTestVideoFile(t, db, r.ID, "one.ts")

		if err := db.DeleteRecorded(r.ID); err == nil {
			t.Error("DeleteRecorded() expected foreign key error")
		}
	})

	t.Run("deletes after children are gone", func(t *testing.T) {
		db := newTestDB(t)
		r := createTestRecorded(t, db, "one")
		createTestVideoFile(t, db, r.ID, "one.ts")
		db.CreateThumbnail(&sqlc.Thumbnail{ID: "t1", RecordedID: r.ID, FilePath: "one.jpg"})

		db.DeleteThumbnailsByRecordedID(r.ID)
		db.DeleteVideoFilesByRecordedID(r.ID)
		if err := db.DeleteRecorded(r.ID); err != nil {
			t.Fatalf("DeleteRecorded() error = %v", err)
		}

		got, _ := db.FindRecordedByID(r.ID)
		if got != nil {
			t.Error("recorded still present after delete")
		}
	})
}

func TestSQLiteDatabase_ListRecorded(t *testing.T) {
	db := newTestDB(t)

	older := &sqlc.Recorded{ID: "a", Name: "older", StartAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), EndAt: time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)}
	newer := &sqlc.Recorded{ID: "b", Name: "newer", StartAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), EndAt: time.Date(2024, 2, 1, 1, 0, 0, 0, time.UTC)}
	db.CreateRecorded(older)
	db.CreateRecorded(newer)

	list, err := db.ListRecorded()
	if err != nil {
		t.Fatalf("ListRecorded() error = %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d recorded, want 2", len(list))
	}
	if list[0].ID != "b" {
		t.Errorf("expected newest first, got %s", list[0].ID)
	}
}

func TestSQLiteDatabase_RecordedHistory(t *testing.T) {
	db := newTestDB(t)
	cutoff := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	db.CreateRecordedHistory("old", "ch1", cutoff.Add(-48*time.Hour))
	db.CreateRecordedHistory("older", "ch1", cutoff.Add(-time.Second))
	db.CreateRecordedHistory("recent", "ch2", cutoff.Add(time.Hour))

	// Same instant in another zone must compare correctly.
	jst := time.FixedZone("JST", 9*60*60)
	n, err := db.DeleteRecordedHistoryBefore(cutoff.In(jst))
	if err != nil {
		t.Fatalf("DeleteRecordedHistoryBefore() error = %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}

	rest, err := db.ListRecordedHistory()
	if err != nil {
		t.Fatalf("ListRecordedHistory() error = %v", err)
	}
	if len(rest) != 1 || rest[0].Name != "recent" {
		t.Errorf("remaining history = %+v, want only recent", rest)
	}
}

func TestSQLiteDatabase_Operations(t *testing.T) {
	t.Run("create and list operations", func(t *testing.T) {
		db := newTestDB(t)

		op1, err := db.CreateOperation("DeleteRecorded", "abc")
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}
		if op1.ID == 0 {
			t.Error("operation ID should be non-zero")
		}
		if op1.Operation != "DeleteRecorded" {
			t.Errorf("Operation = %q, want %q", op1.Operation, "DeleteRecorded")
		}

		op2, err := db.CreateOperation("ReconcileVideoFiles", "")
		if err != nil {
			t.Fatalf("CreateOperation() error = %v", err)
		}

		ops, err := db.ListOperations(10)
		if err != nil {
			t.Fatalf("ListOperations() error = %v", err)
		}
		if len(ops) != 2 {
			t.Fatalf("got %d operations, want 2", len(ops))
		}

		// Newest first
		if ops[0].ID != op2.ID {
			t.Errorf("expected newest first: got ID %d, want %d", ops[0].ID, op2.ID)
		}
	})

	t.Run("finish operation sets status and time", func(t *testing.T) {
		db := newTestDB(t)

		op, _ := db.CreateOperation("ReconcileDropLogs", "")
		if err := db.FinishOperation(op.ID, "success"); err != nil {
			t.Fatalf("FinishOperation() error = %v", err)
		}

		ops, _ := db.ListOperations(1)
		if ops[0].Status != "success" {
			t.Errorf("Status = %q, want %q", ops[0].Status, "success")
		}
		if !ops[0].FinishedAt.Valid {
			t.Error("FinishedAt should be set")
		}
	})
}

func TestSQLiteDatabase_BackupTo(t *testing.T) {
	db := newTestDB(t)
	r := createTestRecorded(t, db, "news")

	destPath := filepath.Join(t.TempDir(), "backup.db")
	if err := db.BackupTo(destPath); err != nil {
		t.Fatalf("BackupTo() error = %v", err)
	}

	// Open the backup and verify it has the data
	backup, err := NewSQLiteDatabase(destPath)
	if err != nil {
		t.Fatalf("opening backup: %v", err)
	}
	defer backup.Close()

	got, err := backup.FindRecordedByID(r.ID)
	if err != nil {
		t.Fatalf("FindRecordedByID() error = %v", err)
	}
	if got == nil {
		t.Error("backup does not contain the recorded row")
	}
}

func TestSQLiteDatabase_CheckMigrations(t *testing.T) {
	t.Run("fails on DB without migrations applied", func(t *testing.T) {
		db, err := NewSQLiteDatabase(":memory:")
		if err != nil {
			t.Fatalf("NewSQLiteDatabase() error = %v", err)
		}
		defer db.Close()

		// No schema at all.
		if err := db.CheckMigrations(); err == nil {
			t.Error("CheckMigrations() expected error for missing schema")
		}
	})

	t.Run("passes after MigrateUp", func(t *testing.T) {
		db, err := NewSQLiteDatabase(filepath.Join(t.TempDir(), "recmgr.db"))
		if err != nil {
			t.Fatalf("NewSQLiteDatabase() error = %v", err)
		}
		defer db.Close()

		if err := db.MigrateUp(); err != nil {
			t.Fatalf("MigrateUp() error = %v", err)
		}
		if err := db.CheckMigrations(); err != nil {
			t.Errorf("CheckMigrations() error = %v", err)
		}

		st, err := db.MigrationStatus()
		if err != nil {
			t.Fatalf("MigrationStatus() error = %v", err)
		}
		if st.Pending() != 0 || st.Dirty {
			t.Errorf("MigrationStatus() = %+v, want clean and current", st)
		}
	})
}
