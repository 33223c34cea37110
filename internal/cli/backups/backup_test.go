package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/sqlite"
	"github.com/julianstephens/tally/internal/validation"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return cli.NewContext(store)
}

func countCounters(t *testing.T, ctx *cli.Context) int {
	t.Helper()
	if err := ctx.Store.Load(); err != nil {
		t.Fatal(err)
	}
	n, err := ctx.Store.CountCounters()
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestBackupCreateAndList(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list with no backups failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	mgr, _ := ctx.BackupManager()
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("got %d backups, want 1", len(backups))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	st, err := ctx.State()
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := ctx.Service.AddCounter(st, validation.CounterInput{Name: "Added after backup"}); err != nil {
		t.Fatal(err)
	}
	if countCounters(t, ctx) != 1 {
		t.Fatal("counter was not added")
	}

	ctx.Stdin = strings.NewReader("no\n")
	if err := (&BackupRestoreCmd{BackupFile: "latest"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if countCounters(t, ctx) != 1 {
		t.Fatal("declined restore changed the database")
	}

	if err := (&BackupRestoreCmd{BackupFile: "latest", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if n := countCounters(t, ctx); n != 0 {
		t.Errorf("got %d counters after restore, want 0", n)
	}
}

func TestBackupRestore_Missing(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&BackupRestoreCmd{BackupFile: "latest", Yes: true}).Run(ctx); err == nil {
		t.Error("restore with no backups should fail")
	}
	if err := (&BackupRestoreCmd{BackupFile: "tally-nope.db", Yes: true}).Run(ctx); err == nil {
		t.Error("restore of a missing file should fail")
	}
}

func TestBackupCommandsRequireSQLite(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := cli.NewContext(store)

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("backup create should fail for the JSON store")
	}
	if err := (&BackupListCmd{}).Run(ctx); err == nil {
		t.Error("backup list should fail for the JSON store")
	}
}
