package recorded_test

import (
	"testing"

	"recmgr/internal/config"
	"recmgr/internal/database"
	"recmgr/internal/recorded"
	"recmgr/internal/recording"
	"recmgr/internal/testutil"
	"recmgr/internal/videopath"
)

const (
	mainRoot      = "/rec"
	subRoot       = "/mnt/sub"
	thumbnailRoot = "/data/thumbnail"
	dropLogRoot   = "/data/drop"
	retentionDays = 30
)

// testEnv wires a Manager and Reconciler to an in-memory store and a mock filesystem.
type testEnv struct {
	db       *database.SQLiteDatabase
	fs       *testutil.MockFilesystemManager
	registry *recording.Registry
	events   *testutil.EventRecorder
	logger   *testutil.CaptureLogger
	clock    *testutil.StubClock
	fx       *testutil.Fixtures

	manager    *recorded.Manager
	reconciler *recorded.Reconciler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDatabase(t)
	fsmgr := testutil.NewMockFilesystemManager()
	for _, dir := range []string{mainRoot, subRoot, thumbnailRoot, dropLogRoot} {
		fsmgr.AddDirectory(dir)
	}

	resolver := videopath.NewResolver(db, []config.RecordedDirConfig{
		{Name: "main", Path: mainRoot},
		{Name: "sub", Path: subRoot},
	})
	logger := testutil.NewCaptureLogger()
	registry := recording.NewRegistry(logger)
	events := testutil.NewEventRecorder()
	clock := testutil.FixedClock()
	dirs := recorded.Dirs{Thumbnail: thumbnailRoot, DropLog: dropLogRoot}

	manager := recorded.NewManager(db, fsmgr, resolver, registry, events, dirs,
		retentionDays, logger, clock, testutil.NewStubIDGenerator())
	reconciler := recorded.NewReconciler(db, fsmgr, resolver, manager, dirs, logger)

	return &testEnv{
		db:         db,
		fs:         fsmgr,
		registry:   registry,
		events:     events,
		logger:     logger,
		clock:      clock,
		fx:         testutil.NewFixtures(t, db),
		manager:    manager,
		reconciler: reconciler,
	}
}

// countRows returns the number of recorded, video file and drop log rows.
func (e *testEnv) countRows(t *testing.T) (recordedRows, videoFileRows, dropLogRows int) {
	t.Helper()

	list, err := e.db.ListRecorded()
	if err != nil {
		t.Fatalf("ListRecorded() error = %v", err)
	}
	videos, err := e.db.FindAllVideoFiles()
	if err != nil {
		t.Fatalf("FindAllVideoFiles() error = %v", err)
	}
	logs, err := e.db.FindAllDropLogFiles()
	if err != nil {
		t.Fatalf("FindAllDropLogFiles() error = %v", err)
	}
	return len(list), len(videos), len(logs)
}

func (e *testEnv) assertExists(t *testing.T, path string, want bool) {
	t.Helper()
	if got := e.fs.Exists(path); got != want {
		t.Errorf("Exists(%s) = %v, want %v", path, got, want)
	}
}
