package backup

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tally/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tally.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE counters (id TEXT PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO counters VALUES ('c1', 'Water'), ('c2', 'Coffee')`); err != nil {
		t.Fatalf("failed to insert rows: %v", err)
	}
	return dbPath
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM counters").Scan(&n); err != nil {
		t.Fatalf("failed to query %s: %v", filepath.Base(path), err)
	}
	return n
}

func fixedClock(start time.Time, step time.Duration) func() time.Time {
	at := start
	return func() time.Time {
		now := at
		at = at.Add(step)
		return now
	}
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Join(filepath.Dir(dbPath), "backups") {
		t.Errorf("backup written to %s, want the backups directory", path)
	}
	if !strings.HasPrefix(filepath.Base(path), "tally-") {
		t.Errorf("backup name %q should start with tally-", filepath.Base(path))
	}
	if got := countRows(t, path); got != 2 {
		t.Errorf("backup has %d rows, want 2", got)
	}
}

func TestCreateBackupWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected an error when the database does not exist")
	}
}

func TestUniqueBackupFilenames(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = func() time.Time { return time.Date(2024, 3, 13, 9, 0, 0, 0, time.Local) }

	seen := map[string]bool{}
	for range 3 {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		if seen[path] {
			t.Fatalf("backup path %s reused", path)
		}
		seen[path] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Errorf("listed %d backups, want 3", len(backups))
	}
}

func TestBackupRotation(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	mgr.now = fixedClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), time.Hour)

	for range constants.MaxBackups + 3 {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	oldestKept := time.Date(2024, 3, 1, 11, 0, 0, 0, time.Local)
	if !backups[len(backups)-1].Timestamp.Equal(oldestKept) {
		t.Errorf("oldest kept backup is from %v, want %v", backups[len(backups)-1].Timestamp, oldestKept)
	}
}

func TestListBackupsIgnoresOtherFiles(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "tally-garbage.db", "other-20240101-000000.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("listed %d backups, want only the real one", len(backups))
	}
	if backups[0].HumanSize() == "" {
		t.Error("HumanSize() should not be empty")
	}
}

func TestListBackupsMissingDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "tally.db"))
	backups, err := mgr.ListBackups()
	if err != nil || len(backups) != 0 {
		t.Errorf("ListBackups() = %v, %v; want empty", backups, err)
	}
	if _, ok, err := mgr.Latest(); ok || err != nil {
		t.Errorf("Latest() ok=%v err=%v, want nothing", ok, err)
	}
}

func TestCreateDailyBackup(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	day := time.Date(2024, 3, 13, 8, 0, 0, 0, time.Local)
	mgr.now = func() time.Time { return day }

	first, created, err := mgr.CreateDailyBackup()
	if err != nil || !created {
		t.Fatalf("first daily backup: created=%v err=%v", created, err)
	}

	day = day.Add(6 * time.Hour)
	again, created, err := mgr.CreateDailyBackup()
	if err != nil || created {
		t.Errorf("second backup on the same day: created=%v err=%v", created, err)
	}
	if again != first {
		t.Errorf("same-day call returned %s, want the existing %s", again, first)
	}

	day = day.Add(24 * time.Hour)
	if _, created, err := mgr.CreateDailyBackup(); err != nil || !created {
		t.Errorf("next day backup: created=%v err=%v", created, err)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = fixedClock(time.Date(2024, 3, 13, 8, 0, 0, 0, time.Local), time.Minute)

	snapshot, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM counters"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	safety, err := mgr.RestoreBackup(snapshot)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
	if safety == "" || countRows(t, safety) != 0 {
		t.Error("the pre-restore snapshot should hold the emptied database")
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreWithCorruptedBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	bad := filepath.Join(t.TempDir(), "tally-20240101-000000.db")
	if err := os.WriteFile(bad, []byte("this is not a database, just some text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.RestoreBackup(bad); err == nil {
		t.Error("expected restoring a corrupted backup to fail")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database changed after a failed restore: %d rows", got)
	}
}

func TestResolve(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	if _, err := mgr.Resolve("latest"); err == nil {
		t.Error("Resolve(latest) with no backups should fail")
	}

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatal(err)
	}
	for _, ref := range []string{"latest", path, filepath.Base(path)} {
		got, err := mgr.Resolve(ref)
		if err != nil || got != path {
			t.Errorf("Resolve(%q) = %q, %v; want %q", ref, got, err, path)
		}
	}
	if _, err := mgr.Resolve("tally-19990101-000000.db"); err == nil {
		t.Error("Resolve of an unknown name should fail")
	}
}

func TestInfoAge(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.Local)
	info := Info{Timestamp: now.Add(-3 * time.Hour)}
	if got := info.Age(now); got != "3 hours ago" {
		t.Errorf("Age() = %q, want %q", got, "3 hours ago")
	}
}
