package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultRetentionDays is how long recorded history is kept when unset.
const DefaultRetentionDays = 30

// Config represents the main configuration for recmgr.
type Config struct {
	BaseDir string `toml:"base_dir"`
	LogDir  string `toml:"log_dir"`

	// Roots for artifacts that are not video files.
	Thumbnail string `toml:"thumbnail"`
	DropLog   string `toml:"drop_log"`

	RecordedHistoryRetentionPeriodDays int `toml:"recorded_history_retention_period_days"`

	Recorded   []RecordedDirConfig `toml:"recorded"`
	Database   DatabaseConfig      `toml:"database"`
	Events     EventsConfig        `toml:"events"`
	Filesystem FilesystemConfig    `toml:"filesystem"`
}

// RecordedDirConfig maps a parent directory alias to an absolute root.
// Video file rows store the alias and a path relative to this root.
type RecordedDirConfig struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// DatabaseConfig represents configuration for the record store.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// EventsConfig selects where lifecycle events are delivered.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type EventsConfig struct {
	Type string `toml:"type"`           // "log" (default), "file" or "none"
	Path string `toml:"path,omitempty"` // only used for type=file
}

// NewConfig creates a new Config rooted at baseDir with default directories.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:                            baseDir,
		LogDir:                             filepath.Join(baseDir, "log"),
		Thumbnail:                          filepath.Join(baseDir, "thumbnail"),
		DropLog:                            filepath.Join(baseDir, "drop"),
		RecordedHistoryRetentionPeriodDays: DefaultRetentionDays,
		Recorded: []RecordedDirConfig{
			{Name: "recorded", Path: filepath.Join(baseDir, "recorded")},
		},
		Database: DatabaseConfig{Type: "sqlite", DataDir: filepath.Join(baseDir, "db")},
		Events:   EventsConfig{Type: "log"},
	}
}

// Validate checks that the paths the manager depends on are usable.
func (c *Config) Validate() error {
	var errs []error

	if c.Thumbnail == "" || !filepath.IsAbs(c.Thumbnail) {
		errs = append(errs, fmt.Errorf("thumbnail must be an absolute path: %q", c.Thumbnail))
	}
	if c.DropLog == "" || !filepath.IsAbs(c.DropLog) {
		errs = append(errs, fmt.Errorf("drop_log must be an absolute path: %q", c.DropLog))
	}
	if c.RecordedHistoryRetentionPeriodDays < 0 {
		errs = append(errs, fmt.Errorf("recorded_history_retention_period_days must not be negative: %d", c.RecordedHistoryRetentionPeriodDays))
	}
	if len(c.Recorded) == 0 {
		errs = append(errs, errors.New("at least one [[recorded]] directory is required"))
	}

	seen := make(map[string]bool)
	for i, dir := range c.Recorded {
		if dir.Name == "" {
			errs = append(errs, fmt.Errorf("recorded[%d]: name is required", i))
		} else if seen[dir.Name] {
			errs = append(errs, fmt.Errorf("recorded[%d]: duplicate name %q", i, dir.Name))
		}
		seen[dir.Name] = true
		if !filepath.IsAbs(dir.Path) {
			errs = append(errs, fmt.Errorf("recorded[%d]: path must be absolute: %q", i, dir.Path))
		}
	}

	errs = append(errs, c.checkOverlap()...)
	return errors.Join(errs...)
}

// checkOverlap rejects thumbnail and drop_log roots that share a tree with each
// other or with a recorded root. A sweep over one root would otherwise delete
// the files of the other.
func (c *Config) checkOverlap() []error {
	type root struct{ key, path string }
	var roots []root
	for _, r := range []root{{"thumbnail", c.Thumbnail}, {"drop_log", c.DropLog}} {
		if filepath.IsAbs(r.path) {
			roots = append(roots, r)
		}
	}

	var errs []error
	if len(roots) == 2 && overlaps(roots[0].path, roots[1].path) {
		errs = append(errs, fmt.Errorf("thumbnail %q and drop_log %q must not overlap", c.Thumbnail, c.DropLog))
	}
	for i, dir := range c.Recorded {
		if !filepath.IsAbs(dir.Path) {
			continue
		}
		for _, r := range roots {
			if overlaps(r.path, dir.Path) {
				errs = append(errs, fmt.Errorf("recorded[%d]: path %q overlaps %s %q", i, dir.Path, r.key, r.path))
			}
		}
	}
	return errs
}

// overlaps reports whether a and b are the same directory or one contains the other.
func overlaps(a, b string) bool {
	return within(a, b) || within(b, a)
}

func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && filepath.IsLocal(rel)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Config{RecordedHistoryRetentionPeriodDays: DefaultRetentionDays}
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init writes cfg to a new config file at path. An existing file is never overwritten.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
