// Package migrations owns the record store schema: the embedded SQL files and
// the golang-migrate plumbing that applies and inspects them.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var migrationFiles embed.FS

// ErrNeedsMigration is returned when the schema is older than the binary,
// including a store that was never migrated.
var ErrNeedsMigration = errors.New("database needs migration")

// Status is the schema version of a record store next to the newest version
// shipped with the binary. Version 0 means no migration has been applied.
type Status struct {
	Version uint
	Latest  uint
	Dirty   bool
}

// Pending returns how many migrations MigrateUp would apply.
func (s Status) Pending() uint {
	if s.Version >= s.Latest {
		return 0
	}
	return s.Latest - s.Version
}

// ReadStatus reports the schema version of db.
func ReadStatus(db *sql.DB) (Status, error) {
	latest, err := latestVersion()
	if err != nil {
		return Status{}, err
	}

	m, err := newMigrate(db)
	if err != nil {
		return Status{}, err
	}
	// m is not closed: closing it would close db, which the caller owns.

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, fmt.Errorf("reading schema version: %w", err)
	}
	return Status{Version: version, Latest: latest, Dirty: dirty}, nil
}

// CheckDBMigrationStatus returns nil when db is exactly at the latest version.
func CheckDBMigrationStatus(db *sql.DB) error {
	st, err := ReadStatus(db)
	if err != nil {
		return err
	}

	switch {
	case st.Dirty:
		return fmt.Errorf("database is in dirty state at version %d (migration failed previously)", st.Version)
	case st.Version == 0:
		return fmt.Errorf("%w: no schema version", ErrNeedsMigration)
	case st.Version < st.Latest:
		return fmt.Errorf("%w: at version %d, latest is %d", ErrNeedsMigration, st.Version, st.Latest)
	case st.Version > st.Latest:
		return fmt.Errorf("database version %d is ahead of binary version %d (binary needs update)", st.Version, st.Latest)
	}
	return nil
}

// MigrateUp applies every pending migration. An up-to-date store is not an error.
func MigrateUp(db *sql.DB) error {
	m, err := newMigrate(db)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func newSource() (source.Driver, error) {
	src, err := iofs.New(migrationFiles, "files")
	if err != nil {
		return nil, fmt.Errorf("reading migration files: %w", err)
	}
	return src, nil
}

func newMigrate(db *sql.DB) (*migrate.Migrate, error) {
	src, err := newSource()
	if err != nil {
		return nil, err
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("creating database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("creating migrate instance: %w", err)
	}
	return m, nil
}

// latestVersion walks the embedded migrations to the last one.
func latestVersion() (uint, error) {
	src, err := newSource()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	version, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("finding first migration: %w", err)
	}
	for {
		next, err := src.Next(version)
		if err != nil {
			return version, nil
		}
		version = next
	}
}
