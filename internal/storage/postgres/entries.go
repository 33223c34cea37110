package postgres

import (
	"fmt"

	"github.com/julianstephens/tally/internal/models"
)

func (s *Store) InsertEntry(e models.Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO entries (id, counter_id, timestamp, value)
		VALUES ($1, $2, $3, $4)`,
		e.ID, e.CounterID, e.Timestamp.UnixMilli(), e.Value)
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}
	return nil
}

func (s *Store) DeleteEntriesForCounter(counterID string) error {
	if _, err := s.db.Exec("DELETE FROM entries WHERE counter_id = $1", counterID); err != nil {
		return fmt.Errorf("failed to clear entries: %w", err)
	}
	return nil
}
