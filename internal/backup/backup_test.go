package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/mindful/internal/constants"
	"github.com/julianstephens/mindful/internal/storage"
	"github.com/julianstephens/mindful/internal/storage/sqlite"
)

func setupSQLiteSlot(t *testing.T, value string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindful.db")
	store := sqlite.NewStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Write(constants.StorageKey, []byte(value)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	store.Close()
	return path
}

func setupJSONSlot(t *testing.T, value string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mindful.json")
	store := storage.NewJSONSlot(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Write(constants.StorageKey, []byte(value)); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}
	return path
}

func readSQLiteSlot(t *testing.T, path string) string {
	t.Helper()
	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatalf("Load(%s) failed: %v", path, err)
	}
	defer store.Close()
	data, err := store.Read(constants.StorageKey)
	if err != nil {
		t.Fatalf("Read() failed: %v", err)
	}
	return string(data)
}

// steppingClock advances one minute per call.
func steppingClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Minute)
		return t
	}
}

func TestCreateBackupSQLite(t *testing.T) {
	path := setupSQLiteSlot(t, `[{"id":"a"}]`)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	if filepath.Dir(backupPath) != filepath.Join(filepath.Dir(path), "backups") {
		t.Errorf("backup written to %s", backupPath)
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, "mindful-") || !strings.HasSuffix(name, ".db") {
		t.Errorf("unexpected backup name %s", name)
	}
	if got := readSQLiteSlot(t, backupPath); got != `[{"id":"a"}]` {
		t.Errorf("backup contents = %s", got)
	}
}

func TestCreateBackupJSON(t *testing.T) {
	path := setupJSONSlot(t, `[{"id":"a"}]`)
	mgr := NewManager(path)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() failed: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".json") {
		t.Errorf("JSON slot backup should keep .json suffix: %s", backupPath)
	}

	original, _ := os.ReadFile(path)
	copied, _ := os.ReadFile(backupPath)
	if string(original) != string(copied) {
		t.Errorf("backup differs from source")
	}
}

func TestCreateBackupMissingStorage(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() should fail when storage does not exist")
	}
}

func TestCreateBackupSameSecond(t *testing.T) {
	path := setupJSONSlot(t, `[]`)
	mgr := NewManager(path)
	fixed := time.Date(2024, 3, 14, 9, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	first, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	second, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	if first == second {
		t.Fatalf("backups collided: %s", first)
	}
	if !strings.HasSuffix(second, "-1.json") {
		t.Errorf("second backup = %s, want counter suffix", second)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("ListBackups() = %d, want 2", len(backups))
	}
}

func TestListBackupsIgnoresForeignFiles(t *testing.T) {
	path := setupSQLiteSlot(t, `[]`)
	mgr := NewManager(path)
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"notes.txt", "mindful-garbage.db", "mindful-20240101-120000.json"} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("ListBackups() = %v, want only the real backup", backups)
	}
}

func TestListBackupsNoDirectory(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "mindful.db"))
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v", backups, err)
	}
}

func TestRotation(t *testing.T) {
	path := setupJSONSlot(t, `[]`)
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	var created []string
	for i := 0; i < constants.MaxBackups+3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() #%d failed: %v", i, err)
		}
		created = append(created, p)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	if backups[0].Path != created[len(created)-1] {
		t.Errorf("newest backup = %s, want %s", backups[0].Path, created[len(created)-1])
	}
	for _, old := range created[:3] {
		if _, err := os.Stat(old); !os.IsNotExist(err) {
			t.Errorf("old backup %s was not rotated out", old)
		}
	}
}

func TestRestoreSQLite(t *testing.T) {
	path := setupSQLiteSlot(t, `["before"]`)
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(path)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	if err := store.Write(constants.StorageKey, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}
	store.Close()

	previous, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}
	if got := readSQLiteSlot(t, path); got != `["before"]` {
		t.Errorf("restored contents = %s", got)
	}
	if previous == "" {
		t.Fatal("RestoreBackup() did not snapshot the current database")
	}
	if got := readSQLiteSlot(t, previous); got != `["after"]` {
		t.Errorf("pre-restore snapshot contents = %s", got)
	}
	if _, err := os.Stat(path + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreJSON(t *testing.T) {
	path := setupJSONSlot(t, `["before"]`)
	mgr := NewManager(path)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	slot := storage.NewJSONSlot(path)
	if err := slot.Load(); err != nil {
		t.Fatal(err)
	}
	if err := slot.Write(constants.StorageKey, []byte(`["after"]`)); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() failed: %v", err)
	}

	restored := storage.NewJSONSlot(path)
	if err := restored.Load(); err != nil {
		t.Fatal(err)
	}
	data, err := restored.Read(constants.StorageKey)
	if err != nil || string(data) != `["before"]` {
		t.Errorf("restored slot = %s, %v", data, err)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	path := setupSQLiteSlot(t, `["keep"]`)
	mgr := NewManager(path)

	bogus := filepath.Join(t.TempDir(), "mindful-20240101-120000.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(bogus); err == nil {
		t.Error("RestoreBackup() accepted an invalid file")
	}
	if _, err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup() accepted a missing file")
	}
	if got := readSQLiteSlot(t, path); got != `["keep"]` {
		t.Errorf("storage changed after failed restore: %s", got)
	}
}
