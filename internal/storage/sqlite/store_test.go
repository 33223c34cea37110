package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "tally.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newCounter(id, name string, created time.Time, tags ...string) models.Counter {
	return models.Counter{
		ID:        id,
		Name:      name,
		Unit:      "Units",
		Color:     "#2bcdee",
		Tags:      tags,
		CreatedAt: created,
		Icon:      models.SymbolIcon{Ref: "fa-solid fa-star"},
	}
}

func TestStore_CounterRoundTrip(t *testing.T) {
	store := setupTestStore(t)
	created := time.UnixMilli(1_700_000_000_123)

	c := newCounter("c1", "Water", created, "health", "daily")
	c.InitialCount = 4
	c.Goal = models.IntPtr(8)
	c.Icon = models.ImageIcon{URL: "data:image/png;base64,AAAA"}
	if err := store.InsertCounter(c); err != nil {
		t.Fatalf("InsertCounter failed: %v", err)
	}

	counters, entries, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	if len(counters) != 1 {
		t.Fatalf("expected 1 counter, got %d", len(counters))
	}

	got := counters[0]
	if got.Name != "Water" || got.InitialCount != 4 {
		t.Errorf("unexpected counter: %+v", got)
	}
	if got.Goal == nil || *got.Goal != 8 {
		t.Errorf("goal = %v, want 8", got.Goal)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v, want %v", got.CreatedAt, created)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "health" || got.Tags[1] != "daily" {
		t.Errorf("tags = %v, want insertion order [health daily]", got.Tags)
	}
	if img, ok := got.Icon.(models.ImageIcon); !ok || img.URL != "data:image/png;base64,AAAA" {
		t.Errorf("icon = %#v, want the image icon back", got.Icon)
	}
}

func TestStore_NoGoalIsNil(t *testing.T) {
	store := setupTestStore(t)
	if err := store.InsertCounter(newCounter("c1", "Coffee", time.Now())); err != nil {
		t.Fatal(err)
	}
	counters, _, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if counters[0].Goal != nil {
		t.Errorf("goal = %v, want nil", *counters[0].Goal)
	}
	if counters[0].Tags == nil {
		t.Error("tags should load as an empty slice, not nil")
	}
}

func TestStore_LoadAllOrdering(t *testing.T) {
	store := setupTestStore(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i, name := range []string{"oldest", "middle", "newest"} {
		c := newCounter(name, name, base.Add(time.Duration(i)*time.Hour))
		if err := store.InsertCounter(c); err != nil {
			t.Fatal(err)
		}
	}
	// Insert entries out of order.
	for i, offset := range []time.Duration{2 * time.Minute, 0, time.Minute} {
		e := models.Entry{ID: string(rune('a' + i)), CounterID: "oldest", Timestamp: base.Add(offset), Value: 1}
		if err := store.InsertEntry(e); err != nil {
			t.Fatal(err)
		}
	}

	counters, entries, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if counters[0].ID != "newest" || counters[2].ID != "oldest" {
		t.Errorf("counters not ordered newest first: %s, %s, %s", counters[0].ID, counters[1].ID, counters[2].ID)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Errorf("entries not ordered oldest first at index %d", i)
		}
	}
}

func TestStore_UpdateCounter(t *testing.T) {
	store := setupTestStore(t)
	created := time.UnixMilli(1_700_000_000_000)
	c := newCounter("c1", "Water", created)
	c.Goal = models.IntPtr(8)
	if err := store.InsertCounter(c); err != nil {
		t.Fatal(err)
	}

	c.Name = "Tea"
	c.Unit = "Cups"
	c.Tags = []string{"morning"}
	c.Goal = nil
	c.CreatedAt = time.Now()
	if err := store.UpdateCounter(c); err != nil {
		t.Fatalf("UpdateCounter failed: %v", err)
	}

	counters, _, _ := store.LoadAll()
	got := counters[0]
	if got.Name != "Tea" || got.Unit != "Cups" || got.Goal != nil || len(got.Tags) != 1 {
		t.Errorf("update not applied: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("created_at changed to %v", got.CreatedAt)
	}

	missing := newCounter("nope", "Ghost", created)
	if err := store.UpdateCounter(missing); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update of missing counter error = %v, want ErrNotFound", err)
	}
}

func TestStore_DeleteCounterCascades(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()
	for _, id := range []string{"A", "B"} {
		if err := store.InsertCounter(newCounter(id, id, now)); err != nil {
			t.Fatal(err)
		}
	}
	entries := []models.Entry{
		{ID: "e1", CounterID: "A", Timestamp: now, Value: 1},
		{ID: "e2", CounterID: "A", Timestamp: now, Value: 1},
		{ID: "e3", CounterID: "B", Timestamp: now, Value: 1},
	}
	for _, e := range entries {
		if err := store.InsertEntry(e); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteCounter("A"); err != nil {
		t.Fatalf("DeleteCounter failed: %v", err)
	}

	counters, remaining, err := store.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(counters) != 1 || counters[0].ID != "B" {
		t.Errorf("counters after delete = %+v", counters)
	}
	if len(remaining) != 1 || remaining[0].ID != "e3" {
		t.Errorf("entries after delete = %+v, want only e3", remaining)
	}

	if err := store.DeleteCounter("A"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestStore_ForeignKeyEnforced(t *testing.T) {
	store := setupTestStore(t)
	err := store.InsertEntry(models.Entry{ID: "orphan", CounterID: "missing", Timestamp: time.Now(), Value: 1})
	if err == nil {
		t.Error("expected inserting an entry for a missing counter to fail")
	}
}

func TestStore_DeleteEntriesForCounter(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()
	for _, id := range []string{"A", "B"} {
		if err := store.InsertCounter(newCounter(id, id, now)); err != nil {
			t.Fatal(err)
		}
		if err := store.InsertEntry(models.Entry{ID: "e" + id, CounterID: id, Timestamp: now, Value: 3}); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteEntriesForCounter("A"); err != nil {
		t.Fatalf("DeleteEntriesForCounter failed: %v", err)
	}
	counters, entries, _ := store.LoadAll()
	if len(counters) != 2 {
		t.Errorf("clearing entries should keep the counter, got %d counters", len(counters))
	}
	if len(entries) != 1 || entries[0].CounterID != "B" {
		t.Errorf("entries = %+v, want only B's", entries)
	}
}

func TestStore_ListDistinctTags(t *testing.T) {
	store := setupTestStore(t)
	now := time.Now()
	inputs := []models.Counter{
		newCounter("a", "a", now, "health", "daily"),
		newCounter("b", "b", now, "daily", "Health"),
		newCounter("c", "c", now),
	}
	for _, c := range inputs {
		if err := store.InsertCounter(c); err != nil {
			t.Fatal(err)
		}
	}

	tags, err := store.ListDistinctTags()
	if err != nil {
		t.Fatalf("ListDistinctTags failed: %v", err)
	}
	want := []string{"Health", "daily", "health"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

func TestStore_CountCounters(t *testing.T) {
	store := setupTestStore(t)
	n, err := store.CountCounters()
	if err != nil || n != 0 {
		t.Fatalf("CountCounters = %d, %v; want 0", n, err)
	}
	if err := store.InsertCounter(newCounter("a", "a", time.Now())); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.CountCounters(); n != 1 {
		t.Errorf("CountCounters = %d, want 1", n)
	}
}

func TestStore_LoadUninitialized(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); !errors.Is(err, storage.ErrNotInitialized) {
		t.Errorf("Load error = %v, want ErrNotInitialized", err)
	}
}

func TestStore_SchemaVersion(t *testing.T) {
	store := setupTestStore(t)
	current, latest, err := store.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if current != latest || latest < 3 {
		t.Errorf("schema at %d of %d after Init", current, latest)
	}

	// Reopen through Load.
	path := store.GetConfigPath()
	store.Close()
	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load after Init failed: %v", err)
	}
	defer reopened.Close()
	if n, err := reopened.Migrate(nil); err != nil || n != 0 {
		t.Errorf("Migrate on an up to date store = %d, %v", n, err)
	}
}
