package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"recmgr/internal/config"
)

// DBFileName is the record store file created under DatabaseConfig.DataDir.
const DBFileName = "recmgr.db"

// NewDatabaseFromConfig opens the record store selected by cfg.Type: "sqlite"
// for a file under DataDir, "memory" for a throwaway in-memory store.
func NewDatabaseFromConfig(cfg config.DatabaseConfig) (*SQLiteDatabase, error) {
	var path string
	switch cfg.Type {
	case "memory":
		path = ":memory:"
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, errors.New("data_dir is required for a sqlite database")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		path = filepath.Join(cfg.DataDir, DBFileName)
	default:
		return nil, fmt.Errorf("unknown database type: %q", cfg.Type)
	}

	db, err := NewSQLiteDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return db, nil
}
