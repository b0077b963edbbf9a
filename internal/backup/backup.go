package backup

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/logger"
)

const timestampFormat = "20060102-150405"

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager snapshots the local slot file into <configDir>/backups. SQLite
// databases are copied with VACUUM INTO; JSON slot files are copied as-is.
type Manager struct {
	slotPath  string
	backupDir string
	suffix    string
	now       func() time.Time
}

func NewManager(slotPath string) *Manager {
	suffix := ".db"
	if strings.EqualFold(filepath.Ext(slotPath), ".json") {
		suffix = ".json"
	}
	return &Manager{
		slotPath:  slotPath,
		backupDir: filepath.Join(filepath.Dir(slotPath), constants.BackupDirName),
		suffix:    suffix,
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

func (m *Manager) isJSON() bool {
	return m.suffix == ".json"
}

// CreateBackup snapshots the slot file and prunes backups beyond
// constants.MaxBackups.
func (m *Manager) CreateBackup() (string, error) {
	return m.createBackup(false)
}

func (m *Manager) createBackup(skipRotation bool) (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	if _, err := os.Stat(m.slotPath); os.IsNotExist(err) {
		return "", fmt.Errorf("storage does not exist: %s", m.slotPath)
	}

	backupPath, err := m.nextBackupPath()
	if err != nil {
		return "", err
	}

	if m.isJSON() {
		err = copyFile(m.slotPath, backupPath)
	} else {
		err = m.vacuumInto(backupPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to back up storage: %w", err)
	}
	logger.Info("Backup created", "path", backupPath)

	if !skipRotation {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return backupPath, nil
}

// nextBackupPath picks an unused name, adding a counter when several backups
// land in the same second.
func (m *Manager) nextBackupPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, constants.BackupFilePrefix+stamp+m.suffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", constants.BackupFilePrefix, stamp, counter, m.suffix))
	}
}

func (m *Manager) vacuumInto(destPath string) error {
	src, err := sql.Open("sqlite", m.slotPath+"?mode=ro")
	if err != nil {
		return fmt.Errorf("failed to open source database: %w", err)
	}
	defer src.Close()

	var count int
	if err := src.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}

	if _, err := src.Exec("VACUUM INTO ?", destPath); err != nil {
		logger.Debug("VACUUM INTO failed, falling back to file copy", "error", err)
		src.Close()
		return copyFile(m.slotPath, destPath)
	}
	return nil
}

// ListBackups returns backups newest first. Files that do not follow the
// naming scheme are ignored.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := m.parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

// parseName extracts the timestamp from mindful-YYYYMMDD-HHMMSS[-N]<suffix>.
func (m *Manager) parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, m.suffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), m.suffix)
	if len(stamp) > len(timestampFormat) && stamp[len(timestampFormat)] == '-' {
		stamp = stamp[:len(timestampFormat)]
	}
	ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := constants.MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the slot file with backupPath. The current file is
// backed up first. Any open handle on the slot must be closed beforehand.
func (m *Manager) RestoreBackup(backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := m.verifyBackup(backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var previous string
	if _, err := os.Stat(m.slotPath); err == nil {
		previous, err = m.createBackup(true)
		if err != nil {
			return "", fmt.Errorf("failed to back up current storage before restore: %w", err)
		}
	}

	tempPath := m.slotPath + ".restore.tmp"
	if err := copyFile(backupPath, tempPath); err != nil {
		return "", fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tempPath, m.slotPath); err != nil {
		if removeErr := os.Remove(tempPath); removeErr != nil {
			logger.Warn("Failed to remove temporary file", "path", tempPath, "error", removeErr)
		}
		return "", fmt.Errorf("failed to restore storage: %w", err)
	}
	logger.Info("Backup restored", "from", backupPath, "previous", previous)
	return previous, nil
}

func (m *Manager) verifyBackup(path string) error {
	if m.isJSON() {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var slots map[string]json.RawMessage
		return json.Unmarshal(data, &slots)
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	var count int
	return db.QueryRow("SELECT COUNT(*) FROM slots").Scan(&count)
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer destFile.Close()

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		return err
	}
	return destFile.Sync()
}
