package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/thuchi/internal/common"
)

// Snapshot backends.
const (
	SnapshotBackendSQLite = "sqlite"
	SnapshotBackendFile   = "file"
)

// Config is the resolved runtime configuration.
type Config struct {
	DatabasePath    string
	SnapshotBackend string
	SnapshotDir     string
	LogLevel        string
	LogFormat       string
	Retry           common.RetryOptions
	UserID          int64
}

// DefaultDataDir is where the database and snapshots live unless configured otherwise.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".thuchi")
	}
	return filepath.Join(home, ".local", "share", "thuchi")
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	dataDir := DefaultDataDir()
	v.SetDefault("database.path", filepath.Join(dataDir, "thuchi.db"))
	v.SetDefault("classifier.snapshot_backend", SnapshotBackendSQLite)
	v.SetDefault("classifier.snapshot_dir", filepath.Join(dataDir, "models"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("store.retry.max_attempts", 3)
	v.SetDefault("store.retry.initial_delay", 50*time.Millisecond)
	v.SetDefault("store.retry.max_delay", time.Second)
	v.SetDefault("user.id", 1)

	// THUCHI_DB is accepted as a short alias for the database path.
	_ = v.BindEnv("database.path", "THUCHI_DATABASE_PATH", "THUCHI_DB")
}

// Load reads the configuration from v: flags, then THUCHI_ env vars, then
// the config file, then defaults.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabasePath:    v.GetString("database.path"),
		SnapshotBackend: strings.ToLower(strings.TrimSpace(v.GetString("classifier.snapshot_backend"))),
		SnapshotDir:     v.GetString("classifier.snapshot_dir"),
		LogLevel:        v.GetString("logging.level"),
		LogFormat:       v.GetString("logging.format"),
		UserID:          v.GetInt64("user.id"),
		Retry: common.RetryOptions{
			MaxAttempts:  v.GetInt("store.retry.max_attempts"),
			InitialDelay: v.GetDuration("store.retry.initial_delay"),
			MaxDelay:     v.GetDuration("store.retry.max_delay"),
			Multiplier:   2.0,
		},
	}

	cfg.DatabasePath = ExpandPath(cfg.DatabasePath)
	cfg.SnapshotDir = ExpandPath(cfg.SnapshotDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("%w: database.path is required", common.ErrInvalidConfig)
	}

	switch c.SnapshotBackend {
	case SnapshotBackendSQLite:
	case SnapshotBackendFile:
		if c.SnapshotDir == "" {
			return fmt.Errorf("%w: classifier.snapshot_dir is required for the file backend", common.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown classifier.snapshot_backend %q (want %s or %s)",
			common.ErrInvalidConfig, c.SnapshotBackend, SnapshotBackendSQLite, SnapshotBackendFile)
	}

	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("%w: store.retry.max_attempts must be at least 1", common.ErrInvalidConfig)
	}
	if c.Retry.InitialDelay < 0 || c.Retry.MaxDelay < c.Retry.InitialDelay {
		return fmt.Errorf("%w: store.retry delays must satisfy 0 <= initial_delay <= max_delay", common.ErrInvalidConfig)
	}

	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}
