package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/storage/sqlite"
	"github.com/julianstephens/tally/internal/validation"
)

func seededContext(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := cli.NewContext(store)

	st, err := ctx.State()
	if err != nil {
		t.Fatal(err)
	}
	st, c, err := ctx.Service.AddCounter(st, validation.CounterInput{Name: "Water", Tags: []string{"health"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Service.Increment(st, c.ID); err != nil {
		t.Fatal(err)
	}
	return ctx
}

func emptyJSONContext(t *testing.T) *cli.Context {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "tally.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	return cli.NewContext(store)
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, ext := range []string{"yaml", "json"} {
		t.Run(ext, func(t *testing.T) {
			src := seededContext(t)
			out := filepath.Join(t.TempDir(), "export."+ext)

			if err := (&ExportCmd{Output: out}).Run(src); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			raw, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(raw), "Water") {
				t.Fatalf("export does not contain the counter:\n%s", raw)
			}

			dst := emptyJSONContext(t)
			if err := (&ImportCmd{File: out}).Run(dst); err != nil {
				t.Fatalf("import failed: %v", err)
			}
			st, err := dst.State()
			if err != nil {
				t.Fatal(err)
			}
			if len(st.Counters) != 1 || len(st.Entries) != 1 {
				t.Fatalf("imported %d counters and %d entries, want 1 and 1", len(st.Counters), len(st.Entries))
			}
			if st.Total(st.Counters[0].ID) != 1 {
				t.Errorf("imported total = %d, want 1", st.Total(st.Counters[0].ID))
			}

			// A second import finds every id present and adds nothing.
			if err := (&ImportCmd{File: out}).Run(dst); err != nil {
				t.Fatal(err)
			}
			st, _ = dst.State()
			if len(st.Counters) != 1 || len(st.Entries) != 1 {
				t.Errorf("re-import duplicated data: %d counters, %d entries", len(st.Counters), len(st.Entries))
			}
		})
	}
}

func TestExportFormatFlag(t *testing.T) {
	src := seededContext(t)
	out := filepath.Join(t.TempDir(), "export.txt")

	if err := (&ExportCmd{Output: out, Format: "json"}).Run(src); err != nil {
		t.Fatal(err)
	}
	raw, _ := os.ReadFile(out)
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		t.Errorf("--format json wrote non-JSON output:\n%s", raw)
	}

	if err := (&ExportCmd{Output: out, Format: "xml"}).Run(src); err == nil {
		t.Error("unknown format should be rejected")
	}
}

func TestImportRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := (&ImportCmd{File: path}).Run(emptyJSONContext(t)); err == nil {
		t.Error("import of an invalid file should fail")
	}
}
