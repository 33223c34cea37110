package app

import (
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/models"
)

// SeedData returns the sample counters and entries a brand-new store starts
// with. ids are produced by newID; times are relative to now.
func SeedData(now time.Time, newID func() string) ([]models.Counter, []models.Entry) {
	created := now.Add(-7 * 24 * time.Hour)
	water := models.Counter{
		ID:        newID(),
		Name:      "Daily Water Intake",
		Unit:      "Glasses",
		Color:     constants.PresetColors[0],
		Tags:      []string{"Health", "Daily"},
		Goal:      models.IntPtr(10),
		CreatedAt: created,
		Icon:      models.SymbolIcon{Ref: "fa-solid fa-droplet"},
	}
	pushups := models.Counter{
		ID:        newID(),
		Name:      "Push-ups",
		Unit:      "Reps",
		Color:     constants.PresetColors[1],
		Tags:      []string{"Fitness"},
		CreatedAt: created,
		Icon:      models.SymbolIcon{Ref: "fa-solid fa-dumbbell"},
	}
	coffee := models.Counter{
		ID:        newID(),
		Name:      "Coffee Intake",
		Unit:      "Cups",
		Color:     constants.PresetColors[6],
		Tags:      []string{"Health"},
		CreatedAt: created,
		Icon:      models.SymbolIcon{Ref: "fa-solid fa-coffee"},
	}

	entries := []models.Entry{
		{ID: newID(), CounterID: water.ID, Timestamp: now.Add(-time.Hour), Value: 1},
		{ID: newID(), CounterID: water.ID, Timestamp: now.Add(-2 * time.Hour), Value: 1},
		{ID: newID(), CounterID: pushups.ID, Timestamp: now.Add(-4 * time.Hour), Value: 25},
		{ID: newID(), CounterID: coffee.ID, Timestamp: now.Add(-10 * time.Second), Value: 1},
	}
	return []models.Counter{water, pushups, coffee}, entries
}

// Seed fills an empty store with SeedData. A store that already holds
// counters is left alone and seeded is false.
func (s *Service) Seed(st State) (next State, seeded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.store.CountCounters()
	if err != nil {
		return st, false, err
	}
	if n > 0 {
		return st, false, nil
	}

	counters, entries := SeedData(s.now(), s.newID)
	for _, c := range counters {
		if err := s.store.InsertCounter(c); err != nil {
			return st, false, fmt.Errorf("failed to seed counter %q: %w", c.Name, err)
		}
	}
	for _, e := range entries {
		if err := s.store.InsertEntry(e); err != nil {
			return st, false, fmt.Errorf("failed to seed entry: %w", err)
		}
	}

	next, err = s.reload(st)
	return next, err == nil, err
}
