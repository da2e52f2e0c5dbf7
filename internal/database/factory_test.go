package database

import (
	"os"
	"path/filepath"
	"testing"

	"recmgr/internal/config"
)

func TestNewDatabaseFromConfig(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "db")

	tests := []struct {
		name     string
		cfg      config.DatabaseConfig
		wantErr  bool
		wantPath string
	}{
		{name: "memory", cfg: config.DatabaseConfig{Type: "memory"}, wantPath: ":memory:"},
		{name: "sqlite creates data_dir", cfg: config.DatabaseConfig{Type: "sqlite", DataDir: nested}, wantPath: filepath.Join(nested, DBFileName)},
		{name: "sqlite without data_dir", cfg: config.DatabaseConfig{Type: "sqlite"}, wantErr: true},
		{name: "empty type", cfg: config.DatabaseConfig{}, wantErr: true},
		{name: "unknown type", cfg: config.DatabaseConfig{Type: "postgres"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDatabaseFromConfig(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("NewDatabaseFromConfig() expected error, got nil")
				}
				if got != nil {
					t.Error("NewDatabaseFromConfig() should return nil on error")
					got.Close()
				}
				return
			}

			if err != nil {
				t.Fatalf("NewDatabaseFromConfig() unexpected error: %v", err)
			}
			defer got.Close()

			if got.Path() != tt.wantPath {
				t.Errorf("Path() = %q, want %q", got.Path(), tt.wantPath)
			}
			if tt.cfg.Type == "sqlite" {
				if _, err := os.Stat(got.Path()); err != nil {
					t.Errorf("database file not created: %v", err)
				}
			}
		})
	}
}
