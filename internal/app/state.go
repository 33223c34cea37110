// Package app holds the loaded counters and entries and the mutation handlers
// that change them. State is a plain value: every handler takes the current
// State and returns the next one, re-read from storage after the write.
package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/aggregate"
	"github.com/julianstephens/tally/internal/models"
)

var (
	ErrCounterNotFound = errors.New("counter not found")
	ErrAmbiguousName   = errors.New("more than one counter has that name")
)

// State is a snapshot of everything in the store. Counters are newest first
// and entries oldest first, as returned by storage.Provider.LoadAll.
// Revision increases with every load, so of two States from one Service the
// one with the higher Revision is newer.
type State struct {
	Counters []models.Counter
	Entries  []models.Entry
	Revision uint64
}

// Counter looks up a counter by id. A missing id yields false.
func (s State) Counter(id string) (models.Counter, bool) {
	for _, c := range s.Counters {
		if c.ID == id {
			return c, true
		}
	}
	return models.Counter{}, false
}

// Find resolves a user supplied reference: an exact id first, then a
// case-insensitive name.
func (s State) Find(ref string) (models.Counter, error) {
	ref = strings.TrimSpace(ref)
	if c, ok := s.Counter(ref); ok {
		return c, nil
	}

	var matches []models.Counter
	for _, c := range s.Counters {
		if strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return models.Counter{}, fmt.Errorf("%w: %q", ErrCounterNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Counter{}, fmt.Errorf("%w: %q (use the id instead)", ErrAmbiguousName, ref)
	}
}

// EntriesFor returns the entries of one counter, oldest first.
func (s State) EntriesFor(id string) []models.Entry {
	var out []models.Entry
	for _, e := range s.Entries {
		if e.CounterID == id {
			out = append(out, e)
		}
	}
	return out
}

// Total is the current running total of counter id, or 0 when it is unknown.
func (s State) Total(id string) int {
	c, ok := s.Counter(id)
	if !ok {
		return 0
	}
	return aggregate.Total(c, s.Entries)
}

// Tags lists every tag in use, in first-seen order.
func (s State) Tags() []string {
	seen := make(map[string]bool)
	var tags []string
	for _, c := range s.Counters {
		for _, t := range c.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// Filter returns the counters carrying tag (all counters for an empty tag)
// whose name contains query, case-insensitively.
func (s State) Filter(tag, query string) []models.Counter {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []models.Counter
	for _, c := range s.Counters {
		if tag != "" && !c.HasTag(tag) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		out = append(out, c)
	}
	return out
}
