package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"

	"github.com/julianstephens/tally/internal/models"
)

const jsonStoreVersion = 1

// document is the on-disk layout of a JSONStore.
type document struct {
	Version  int                    `json:"version"`
	Counters []models.CounterRecord `json:"counters"`
	Entries  []models.EntryRecord   `json:"entries"`
}

// clone copies both record slices so a pending change never touches the
// document a reader may hold.
func (d *document) clone() *document {
	return &document{
		Version:  d.Version,
		Counters: slices.Clone(d.Counters),
		Entries:  slices.Clone(d.Entries),
	}
}

// JSONStore keeps everything in one JSON file and rewrites it on every
// mutation. A mutation is applied to a copy of the document and only becomes
// visible once the file is written.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.read()
	}

	return s.commit(&document{
		Version:  jsonStoreVersion,
		Counters: []models.CounterRecord{},
		Entries:  []models.EntryRecord{},
	})
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc != nil {
		return nil
	}
	return s.read()
}

func (s *JSONStore) read() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade tally", doc.Version, jsonStoreVersion)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = nil
	return nil
}

// commit writes next to disk and makes it the current document. On failure
// the current document is left as it was.
func (s *JSONStore) commit(next *document) error {
	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	s.doc = next
	return nil
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) LoadAll() ([]models.Counter, []models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return nil, nil, err
	}

	counters := make([]models.Counter, 0, len(s.doc.Counters))
	for _, r := range s.doc.Counters {
		counters = append(counters, r.Counter())
	}
	sort.SliceStable(counters, func(i, j int) bool {
		return counters[i].CreatedAt.After(counters[j].CreatedAt)
	})

	entries := make([]models.Entry, 0, len(s.doc.Entries))
	for _, r := range s.doc.Entries {
		entries = append(entries, r.Entry())
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})

	return counters, entries, nil
}

func (d *document) counterIndex(id string) int {
	return slices.IndexFunc(d.Counters, func(r models.CounterRecord) bool {
		return r.ID == id
	})
}

func (s *JSONStore) InsertCounter(c models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	if s.doc.counterIndex(c.ID) >= 0 {
		return fmt.Errorf("failed to insert counter: duplicate id %s", c.ID)
	}
	next := s.doc.clone()
	next.Counters = append(next.Counters, c.Record())
	return s.commit(next)
}

func (s *JSONStore) UpdateCounter(c models.Counter) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	i := s.doc.counterIndex(c.ID)
	if i < 0 {
		return fmt.Errorf("counter %s: %w", c.ID, ErrNotFound)
	}

	next := s.doc.clone()
	r := c.Record()
	r.CreatedAt = next.Counters[i].CreatedAt
	next.Counters[i] = r
	return s.commit(next)
}

func (s *JSONStore) DeleteCounter(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	i := s.doc.counterIndex(id)
	if i < 0 {
		return fmt.Errorf("counter %s: %w", id, ErrNotFound)
	}

	next := s.doc.clone()
	next.Counters = slices.Delete(next.Counters, i, i+1)
	next.Entries = slices.DeleteFunc(next.Entries, func(e models.EntryRecord) bool {
		return e.CounterID == id
	})
	return s.commit(next)
}

func (s *JSONStore) CountCounters() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return 0, err
	}
	return len(s.doc.Counters), nil
}

func (s *JSONStore) ListDistinctTags() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	tags := []string{}
	for _, c := range s.doc.Counters {
		for _, tag := range c.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *JSONStore) InsertEntry(e models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	if s.doc.counterIndex(e.CounterID) < 0 {
		return fmt.Errorf("failed to insert entry: counter %s: %w", e.CounterID, ErrNotFound)
	}
	next := s.doc.clone()
	next.Entries = append(next.Entries, e.Record())
	return s.commit(next)
}

func (s *JSONStore) DeleteEntriesForCounter(counterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loaded(); err != nil {
		return err
	}
	next := s.doc.clone()
	next.Entries = slices.DeleteFunc(next.Entries, func(e models.EntryRecord) bool {
		return e.CounterID == counterID
	})
	return s.commit(next)
}
