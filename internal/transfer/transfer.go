// Package transfer writes and reads portable snapshots of all counters and
// entries as YAML or JSON.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

const documentVersion = 1

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ParseFormat accepts yaml, yml or json in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected yaml or json)", s)
	}
}

// FormatFromPath guesses the format from a file extension, defaulting to YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Document is the export file layout.
type Document struct {
	Version    int                    `json:"version" yaml:"version"`
	App        string                 `json:"app" yaml:"app"`
	ExportedAt time.Time              `json:"exportedAt" yaml:"exportedAt"`
	Counters   []models.CounterRecord `json:"counters" yaml:"counters"`
	Entries    []models.EntryRecord   `json:"entries" yaml:"entries"`
}

// NewDocument snapshots counters and entries.
func NewDocument(counters []models.Counter, entries []models.Entry, now time.Time) Document {
	doc := Document{
		Version:    documentVersion,
		App:        constants.AppName,
		ExportedAt: now.UTC().Truncate(time.Second),
		Counters:   make([]models.CounterRecord, 0, len(counters)),
		Entries:    make([]models.EntryRecord, 0, len(entries)),
	}
	for _, c := range counters {
		doc.Counters = append(doc.Counters, c.Record())
	}
	for _, e := range entries {
		doc.Entries = append(doc.Entries, e.Record())
	}
	return doc
}

func Encode(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func Decode(r io.Reader, format Format) (Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&doc)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&doc)
	default:
		return Document{}, fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to parse %s export: %w", format, err)
	}
	if doc.Version > documentVersion {
		return Document{}, fmt.Errorf("export version (%d) is newer than supported version (%d) - please upgrade tally", doc.Version, documentVersion)
	}
	return doc, nil
}

// Result counts what an import did.
type Result struct {
	CountersAdded   int
	CountersSkipped int
	EntriesAdded    int
	EntriesSkipped  int
}

func (r Result) String() string {
	return fmt.Sprintf("%d counters and %d entries imported (%d counters, %d entries skipped)",
		r.CountersAdded, r.EntriesAdded, r.CountersSkipped, r.EntriesSkipped)
}

// checkRecord accepts anything the stored data model can hold. Form rules
// such as a non-negative initial count or the name length are not applied, so
// a copy never loses data the source store accepted.
func checkRecord(r models.CounterRecord) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is empty")
	}
	switch r.IconType {
	case "", models.IconKindSymbol, models.IconKindImage:
	default:
		return fmt.Errorf("unknown icon type %q", r.IconType)
	}
	return nil
}

// Import inserts every counter and entry of doc whose id is not already in
// the store. Counters without a name or with an unknown icon type are skipped
// together with their entries, as are entries pointing at unknown counters.
func Import(store storage.Provider, doc Document) (Result, error) {
	var res Result

	counters, entries, err := store.LoadAll()
	if err != nil {
		return res, err
	}

	counterIDs := make(map[string]bool, len(counters))
	for _, c := range counters {
		counterIDs[c.ID] = true
	}
	entryIDs := make(map[string]bool, len(entries))
	for _, e := range entries {
		entryIDs[e.ID] = true
	}

	for _, r := range doc.Counters {
		if r.ID == "" || counterIDs[r.ID] {
			res.CountersSkipped++
			continue
		}
		if err := checkRecord(r); err != nil {
			logger.Warn("Skipping invalid counter in import", "id", r.ID, "error", err)
			res.CountersSkipped++
			continue
		}
		if err := store.InsertCounter(r.Counter()); err != nil {
			return res, fmt.Errorf("failed to import counter %q: %w", r.Name, err)
		}
		counterIDs[r.ID] = true
		res.CountersAdded++
	}

	for _, r := range doc.Entries {
		if r.ID == "" || entryIDs[r.ID] || !counterIDs[r.CounterID] {
			res.EntriesSkipped++
			continue
		}
		if err := store.InsertEntry(r.Entry()); err != nil {
			return res, fmt.Errorf("failed to import entry %s: %w", r.ID, err)
		}
		entryIDs[r.ID] = true
		res.EntriesAdded++
	}

	return res, nil
}

// Copy moves everything from src into dst, as used by init --source.
func Copy(src, dst storage.Provider, now time.Time) (Result, error) {
	counters, entries, err := src.LoadAll()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read source: %w", err)
	}
	return Import(dst, NewDocument(counters, entries, now))
}
