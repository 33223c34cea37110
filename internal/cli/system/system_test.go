package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/storage/sqlite"
)

// setupTestDB returns a context over an initialized, empty SQLite database.
func setupTestDB(t *testing.T) (*cli.Context, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return cli.NewContext(store), store
}
