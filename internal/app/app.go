package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"recmgr/internal/config"
	"recmgr/internal/database"
	"recmgr/internal/database/sqlc"
	"recmgr/internal/event"
	"recmgr/internal/fs"
	"recmgr/internal/model"
	"recmgr/internal/recorded"
	"recmgr/internal/recording"
	"recmgr/internal/videopath"
)

// Options tune how an App is built.
type Options struct {
	Verbose bool // include debug records in the log
}

// App is the application layer between the CLI and the recorded package.
// It constructs all dependencies from config, journals mutating commands and
// manages the DB lifecycle on Close.
type App struct {
	cfg        *config.Config
	db         *database.SQLiteDatabase
	registry   *recording.Registry
	manager    *recorded.Manager
	reconciler *recorded.Reconciler
	logger     recorded.Logger
	op         *Operation
	closeSink  func() error
	logFile    *os.File
}

// NewApp creates a fully wired App from the given config.
// operation identifies the CLI command being run (e.g. "DeleteRecorded", "ReconcileVideoFiles")
// and parameters its arguments, both recorded in the operations journal.
// The caller must call Close when done.
func NewApp(cfg *config.Config, operation, parameters string, opts Options) (*App, error) {
	opID := time.Now().UTC().Format("20060102T150405Z")
	l, logFile, err := newLogger(cfg.LogDir, opID, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a, err := newApp(cfg, operation, parameters, &slogAdapter{l: l})
	if err != nil {
		logFile.Close()
		return nil, err
	}
	a.logFile = logFile
	return a, nil
}

func newApp(cfg *config.Config, operation, parameters string, logger recorded.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	// An in-memory store starts empty every time, so it is always migrated.
	if cfg.Database.Type == "memory" {
		err = db.MigrateUp()
	} else {
		err = db.CheckMigrations()
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	clock := recorded.RealClock{}
	sink, closeSink, err := event.NewSinkFromConfig(cfg.Events, clock, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating event sink: %w", err)
	}

	registry := recording.NewRegistry(logger)
	if err := trackActiveRecordings(db, registry); err != nil {
		closeSink()
		db.Close()
		return nil, err
	}

	fsmgr := fs.NewOSFilesystemManager(cfg.Filesystem.Ignore)
	resolver := videopath.NewResolver(db, cfg.Recorded)
	dirs := recorded.Dirs{Thumbnail: cfg.Thumbnail, DropLog: cfg.DropLog}

	manager := recorded.NewManager(db, fsmgr, resolver, registry, sink, dirs,
		cfg.RecordedHistoryRetentionPeriodDays, logger, clock, recorded.UUIDGenerator{})
	reconciler := recorded.NewReconciler(db, fsmgr, resolver, manager, dirs, logger)

	return &App{
		cfg:        cfg,
		db:         db,
		registry:   registry,
		manager:    manager,
		reconciler: reconciler,
		logger:     logger,
		op:         NewOperation(operation, parameters),
		closeSink:  closeSink,
	}, nil
}

// trackActiveRecordings registers every in-progress recording with the registry.
// The recorder runs in another process, so cancelling here only drops the
// reservation from this process's view before the rows go away.
func trackActiveRecordings(db *database.SQLiteDatabase, registry *recording.Registry) error {
	rows, err := db.ListRecorded()
	if err != nil {
		return fmt.Errorf("listing recorded: %w", err)
	}
	for _, r := range rows {
		if r.IsRecording && r.ReserveID.Valid {
			registry.Track(r.ReserveID.String, nil)
		}
	}
	return nil
}

// Migrate brings the database described by cfg up to the latest schema and
// returns how many migrations were applied.
func Migrate(cfg *config.Config) (uint, error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return 0, fmt.Errorf("creating database: %w", err)
	}
	defer db.Close()

	st, err := db.MigrationStatus()
	if err != nil {
		return 0, err
	}
	if st.Dirty {
		return 0, fmt.Errorf("database is in dirty state at version %d", st.Version)
	}

	if err := db.MigrateUp(); err != nil {
		return 0, fmt.Errorf("migrating database: %w", err)
	}
	return st.Pending(), nil
}

// persistOperation saves the operation to the database, giving it an auto-increment ID.
// This should only be called for mutating commands.
func (a *App) persistOperation() error {
	if a.op.Persisted() {
		return nil
	}
	dbOp, err := a.db.CreateOperation(a.op.Operation, a.op.Parameters)
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = dbOp.ID
	return nil
}

// mutate journals the operation, runs fn and records its outcome.
func (a *App) mutate(fn func() error) error {
	if err := a.persistOperation(); err != nil {
		return err
	}
	if err := fn(); err != nil {
		a.op.Fail()
		return err
	}
	return nil
}

// GetRecorded returns a recording with everything it owns.
func (a *App) GetRecorded(id string) (*model.Recorded, error) {
	return a.manager.Get(id)
}

// ListRecorded returns every recording, newest first.
func (a *App) ListRecorded() ([]*sqlc.Recorded, error) {
	return a.manager.List()
}

// DeleteRecorded deletes a recording with all of its files and rows.
func (a *App) DeleteRecorded(id string) error {
	return a.mutate(func() error { return a.manager.Delete(id) })
}

// ChangeProtect sets or clears the protect flag of a recording.
func (a *App) ChangeProtect(id string, isProtected bool) error {
	return a.mutate(func() error { return a.manager.ChangeProtect(id, isProtected) })
}

// AddVideoFile starts tracking an existing file and returns the new video file id.
func (a *App) AddVideoFile(opt recorded.AddVideoFileOption) (string, error) {
	var id string
	err := a.mutate(func() error {
		var err error
		id, err = a.manager.AddVideoFile(opt)
		return err
	})
	return id, err
}

// DeleteVideoFile removes one video file, and its recording if it was the last one.
func (a *App) DeleteVideoFile(id string) error {
	return a.mutate(func() error { return a.manager.DeleteVideoFile(id) })
}

// UpdateVideoFileSize refreshes a video file's stored size from disk.
func (a *App) UpdateVideoFileSize(id string) error {
	return a.mutate(func() error { return a.manager.UpdateVideoFileSize(id) })
}

// ReconcileVideoFiles runs the video file sweep.
func (a *App) ReconcileVideoFiles() (*recorded.SweepReport, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	report := a.reconciler.ReconcileVideoFiles()
	a.op.Degrade(report)
	return report, nil
}

// ReconcileDropLogs runs the drop log sweep.
func (a *App) ReconcileDropLogs() (*recorded.SweepReport, error) {
	if err := a.persistOperation(); err != nil {
		return nil, err
	}
	report := a.reconciler.ReconcileDropLogs()
	a.op.Degrade(report)
	return report, nil
}

// HistoryCleanup removes expired recorded history rows and returns how many were removed.
func (a *App) HistoryCleanup() (int64, error) {
	if err := a.persistOperation(); err != nil {
		return 0, err
	}
	return a.manager.HistoryCleanup(), nil
}

// ActiveReservations returns the reservation ids of recordings still in progress.
func (a *App) ActiveReservations() []string {
	return a.registry.Active()
}

// GetHistory returns the most recent journaled operations.
func (a *App) GetHistory(limit int) ([]*sqlc.Operation, error) {
	return a.db.ListOperations(limit)
}

// BackupDatabase writes a consistent copy of the record store to dest.
func (a *App) BackupDatabase(dest string) error {
	abs, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err == nil {
		return fmt.Errorf("backup destination already exists: %s", abs)
	}
	return a.db.BackupTo(abs)
}

// Operation returns the operation tracked for this invocation.
func (a *App) Operation() *Operation {
	return a.op
}

// Close finalizes the operation and closes all resources.
func (a *App) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.db.FinishOperation(a.op.ID, a.op.Status); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if err := a.closeSink(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing event sink: %w", err)
	}

	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
