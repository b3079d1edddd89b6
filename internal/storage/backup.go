package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// maxAutoBackups is how many automatic backups survive cleanup.
const maxAutoBackups = 5

// Backup errors.
var (
	ErrBackupNotFound  = errors.New("backup not found")
	ErrBackupExists    = errors.New("backup already exists")
	ErrBackupCorrupted = errors.New("backup integrity check failed")
	ErrInvalidBackupID = errors.New("invalid backup id")
)

// BackupMetadata is stored as JSON next to every backup file.
type BackupMetadata struct {
	CreatedAt     time.Time      `json:"created_at"`
	RowCounts     map[string]int `json:"row_counts"`
	ID            string         `json:"id"`
	Description   string         `json:"description"`
	FileSize      int64          `json:"file_size"`
	SchemaVersion int            `json:"schema_version"`
	IsAuto        bool           `json:"is_auto"`
}

// BackupInfo summarizes one backup for listing.
type BackupInfo struct {
	CreatedAt     time.Time
	ID            string
	Description   string
	FileSize      int64
	Transactions  int
	Feedback      int
	SchemaVersion int
	IsAuto        bool
}

// BackupManager writes consistent copies of the ledger database into a
// backups directory beside it.
type BackupManager struct {
	store      *SQLiteStorage
	backupsDir string
	now        func() time.Time
}

// NewBackupManager creates the backups directory next to the database.
func (s *SQLiteStorage) NewBackupManager() (*BackupManager, error) {
	if s.dbPath == ":memory:" {
		return nil, fmt.Errorf("cannot back up an in-memory database")
	}

	dir := filepath.Join(filepath.Dir(s.dbPath), "backups")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve backups directory: %w", err)
	}

	return &BackupManager{store: s, backupsDir: abs, now: time.Now}, nil
}

// Dir returns the directory backups are written to.
func (bm *BackupManager) Dir() string {
	return bm.backupsDir
}

// Create writes a backup under tag. An empty tag gets a timestamped name.
func (bm *BackupManager) Create(ctx context.Context, tag, description string) (*BackupInfo, error) {
	return bm.create(ctx, tag, description, false)
}

// AutoBackup takes a backup before reason and keeps only the newest
// automatic backups.
func (bm *BackupManager) AutoBackup(ctx context.Context, reason string) (*BackupInfo, error) {
	tag := fmt.Sprintf("auto-%s-%s", reason, bm.now().Format("2006-01-02-150405"))
	info, err := bm.create(ctx, tag, "Automatic backup before "+reason, true)
	if err != nil {
		return nil, fmt.Errorf("failed to create automatic backup: %w", err)
	}

	if err := bm.cleanupAutoBackups(ctx); err != nil {
		slog.Warn("Failed to clean up old automatic backups", "error", err)
	}
	return info, nil
}

func (bm *BackupManager) create(ctx context.Context, tag, description string, auto bool) (*BackupInfo, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if tag == "" {
		tag = "backup-" + bm.now().Format("2006-01-02-150405")
	}
	if err := validateBackupID(tag); err != nil {
		return nil, err
	}

	backupPath := bm.dataPath(tag)
	if _, err := os.Stat(backupPath); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackupExists, tag)
	}

	version, err := bm.store.SchemaVersion(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := bm.collectRowCounts(ctx)
	if err != nil {
		return nil, err
	}

	if err := bm.vacuumInto(ctx, backupPath); err != nil {
		return nil, fmt.Errorf("failed to back up database: %w", err)
	}

	stat, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat backup: %w", err)
	}

	metadata := BackupMetadata{
		ID:            tag,
		CreatedAt:     bm.now().UTC(),
		Description:   description,
		FileSize:      stat.Size(),
		RowCounts:     counts,
		SchemaVersion: version,
		IsAuto:        auto,
	}
	if err := bm.saveMetadata(metadata); err != nil {
		if rmErr := os.Remove(backupPath); rmErr != nil {
			slog.Error("Failed to remove backup after metadata failure", "error", rmErr)
		}
		return nil, fmt.Errorf("failed to save backup metadata: %w", err)
	}

	slog.Info("Backup created", "id", tag, "size", stat.Size(), "auto", auto)
	info := metadata.info()
	return &info, nil
}

// List returns every backup, newest first. Unreadable metadata is skipped.
func (bm *BackupManager) List(_ context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(bm.backupsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	backups := make([]BackupInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".meta.json") {
			continue
		}
		metadata, err := bm.loadMetadata(strings.TrimSuffix(entry.Name(), ".meta.json"))
		if err != nil {
			slog.Debug("Skipping unreadable backup metadata", "file", entry.Name(), "error", err)
			continue
		}
		backups = append(backups, metadata.info())
	}

	slices.SortFunc(backups, func(a, b BackupInfo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return backups, nil
}

// Verify runs an integrity check against a backup file.
func (bm *BackupManager) Verify(ctx context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	path := bm.dataPath(id)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, id)
		}
		return fmt.Errorf("failed to access backup: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("Failed to close backup database", "error", err)
		}
	}()

	var result string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&result); err != nil {
		return fmt.Errorf("%w: %w", ErrBackupCorrupted, err)
	}
	if result != "ok" {
		return fmt.Errorf("%w: %s", ErrBackupCorrupted, result)
	}
	return nil
}

// Delete removes a backup and its metadata.
func (bm *BackupManager) Delete(_ context.Context, id string) error {
	if err := validateBackupID(id); err != nil {
		return err
	}

	if err := os.Remove(bm.dataPath(id)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, id)
		}
		return fmt.Errorf("failed to remove backup: %w", err)
	}
	if err := os.Remove(bm.metadataPath(id)); err != nil && !os.IsNotExist(err) {
		slog.Debug("Failed to remove backup metadata", "id", id, "error", err)
	}
	return nil
}

func (bm *BackupManager) cleanupAutoBackups(ctx context.Context) error {
	backups, err := bm.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if !b.IsAuto {
			continue
		}
		kept++
		if kept <= maxAutoBackups {
			continue
		}
		if err := bm.Delete(ctx, b.ID); err != nil {
			slog.Debug("Failed to delete old automatic backup", "id", b.ID, "error", err)
		}
	}
	return nil
}

func (bm *BackupManager) collectRowCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, 3)
	tableQueries := map[string]string{
		"transactions":    "SELECT COUNT(*) FROM transactions",
		"feedback":        "SELECT COUNT(*) FROM feedback",
		"model_snapshots": "SELECT COUNT(*) FROM model_snapshots",
	}

	for table, query := range tableQueries {
		var count int
		if err := bm.store.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}

// vacuumInto writes a compacted, consistent copy of the live database.
func (bm *BackupManager) vacuumInto(ctx context.Context, dest string) error {
	if strings.ContainsAny(dest, `'";`) {
		return fmt.Errorf("invalid backup path %q", dest)
	}

	bm.store.writeMu.Lock()
	defer bm.store.writeMu.Unlock()

	// #nosec G201 - dest is built from a validated id inside backupsDir
	if _, err := bm.store.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", dest)); err != nil {
		return classifyError(err)
	}
	return nil
}

func (bm *BackupManager) saveMetadata(metadata BackupMetadata) error {
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return err
	}

	path := bm.metadataPath(metadata.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (bm *BackupManager) loadMetadata(id string) (*BackupMetadata, error) {
	// #nosec G304 - id is a file name read from backupsDir
	data, err := os.ReadFile(bm.metadataPath(id))
	if err != nil {
		return nil, err
	}

	var metadata BackupMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, err
	}
	return &metadata, nil
}

func (bm *BackupManager) dataPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".db")
}

func (bm *BackupManager) metadataPath(id string) string {
	return filepath.Join(bm.backupsDir, id+".meta.json")
}

func (m BackupMetadata) info() BackupInfo {
	return BackupInfo{
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
		Description:   m.Description,
		FileSize:      m.FileSize,
		Transactions:  m.RowCounts["transactions"],
		Feedback:      m.RowCounts["feedback"],
		SchemaVersion: m.SchemaVersion,
		IsAuto:        m.IsAuto,
	}
}

func validateBackupID(id string) error {
	if id == "" || strings.ContainsAny(id, `/\'";`) || strings.Contains(id, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidBackupID, id)
	}
	return nil
}
