package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment overrides for Defaults.
const (
	EnvConfigPath = "RECMGR_CONFIG_PATH"
	EnvHome       = "RECMGR_HOME"
)

// Defaults are the locations used before any config file has been read.
type Defaults struct {
	ConfigPath string // $RECMGR_CONFIG_PATH, else ~/.config/recmgr.toml
	BaseDir    string // $RECMGR_HOME, else ~/.local/share/recmgr
	LogDir     string // <BaseDir>/log
}

// GetDefaults resolves Defaults from the environment, falling back to the
// user's home directory. The home directory is only required when one of the
// variables is unset.
func GetDefaults() (*Defaults, error) {
	d := &Defaults{
		ConfigPath: os.Getenv(EnvConfigPath),
		BaseDir:    os.Getenv(EnvHome),
	}

	if d.ConfigPath == "" || d.BaseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		if d.ConfigPath == "" {
			d.ConfigPath = filepath.Join(home, ".config", "recmgr.toml")
		}
		if d.BaseDir == "" {
			d.BaseDir = filepath.Join(home, ".local", "share", "recmgr")
		}
	}

	d.LogDir = filepath.Join(d.BaseDir, "log")
	return d, nil
}
