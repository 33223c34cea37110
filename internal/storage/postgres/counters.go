package postgres

import (
	"database/sql"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
)

const counterColumns = "id, name, unit, color, tags, initial_count, goal, created_at, icon_kind, icon"

func (s *Store) LoadAll() ([]models.Counter, []models.Entry, error) {
	counters, err := s.loadCounters()
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.loadEntries()
	if err != nil {
		return nil, nil, err
	}
	return counters, entries, nil
}

func (s *Store) loadCounters() ([]models.Counter, error) {
	rows, err := s.db.Query("SELECT " + counterColumns + " FROM counters ORDER BY created_at DESC, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := []models.Counter{}
	for rows.Next() {
		var c models.Counter
		var tags pq.StringArray
		var goal sql.NullInt64
		var createdAt int64
		var iconKind, icon string

		if err := rows.Scan(&c.ID, &c.Name, &c.Unit, &c.Color, &tags, &c.InitialCount, &goal, &createdAt, &iconKind, &icon); err != nil {
			return nil, err
		}

		c.Tags = []string(tags)
		if c.Tags == nil {
			c.Tags = []string{}
		}
		if goal.Valid {
			c.Goal = models.IntPtr(int(goal.Int64))
		}
		c.CreatedAt = time.UnixMilli(createdAt)
		c.Icon = models.NewIcon(models.IconKind(iconKind), icon)

		counters = append(counters, c)
	}
	return counters, rows.Err()
}

func (s *Store) loadEntries() ([]models.Entry, error) {
	rows, err := s.db.Query("SELECT id, counter_id, timestamp, value FROM entries ORDER BY timestamp, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.CounterID, &ts, &e.Value); err != nil {
			return nil, err
		}
		e.Timestamp = time.UnixMilli(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func iconArgs(c models.Counter) (string, string) {
	kind, value := models.SplitIcon(c.Icon)
	if kind == "" {
		kind = models.IconKindSymbol
	}
	return string(kind), value
}

func goalArg(c models.Counter) sql.NullInt64 {
	if c.Goal == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*c.Goal), Valid: true}
}

func tagsArg(c models.Counter) any {
	if c.Tags == nil {
		return pq.Array([]string{})
	}
	return pq.Array(c.Tags)
}

func (s *Store) InsertCounter(c models.Counter) error {
	iconKind, icon := iconArgs(c)
	_, err := s.db.Exec(`
		INSERT INTO counters (`+counterColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Unit, c.Color, tagsArg(c), c.InitialCount, goalArg(c), c.CreatedAt.UnixMilli(), iconKind, icon)
	if err != nil {
		return fmt.Errorf("failed to insert counter: %w", err)
	}
	return nil
}

func (s *Store) UpdateCounter(c models.Counter) error {
	iconKind, icon := iconArgs(c)
	result, err := s.db.Exec(`
		UPDATE counters
		SET name = $1, unit = $2, color = $3, tags = $4, initial_count = $5, goal = $6, icon_kind = $7, icon = $8
		WHERE id = $9`,
		c.Name, c.Unit, c.Color, tagsArg(c), c.InitialCount, goalArg(c), iconKind, icon, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update counter: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("counter %s: %w", c.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteCounter(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries WHERE counter_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	result, err := tx.Exec("DELETE FROM counters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete counter: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("counter %s: %w", id, storage.ErrNotFound)
	}

	return tx.Commit()
}

func (s *Store) CountCounters() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM counters").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count counters: %w", err)
	}
	return n, nil
}

func (s *Store) ListDistinctTags() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT DISTINCT tag COLLATE "C" AS t
		FROM counters, unnest(tags) AS tag
		ORDER BY t`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}
