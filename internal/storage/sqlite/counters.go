package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

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
		var tags, iconKind, icon string
		var goal sql.NullInt64
		var createdAt int64

		if err := rows.Scan(&c.ID, &c.Name, &c.Unit, &c.Color, &tags, &c.InitialCount, &goal, &createdAt, &iconKind, &icon); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags for counter %s: %w", c.ID, err)
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

func counterArgs(c models.Counter) (tags string, goal sql.NullInt64, iconKind models.IconKind, icon string, err error) {
	list := c.Tags
	if list == nil {
		list = []string{}
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return "", goal, "", "", fmt.Errorf("failed to marshal tags: %w", err)
	}
	if c.Goal != nil {
		goal = sql.NullInt64{Int64: int64(*c.Goal), Valid: true}
	}
	iconKind, icon = models.SplitIcon(c.Icon)
	if iconKind == "" {
		iconKind = models.IconKindSymbol
	}
	return string(raw), goal, iconKind, icon, nil
}

func (s *Store) InsertCounter(c models.Counter) error {
	tags, goal, iconKind, icon, err := counterArgs(c)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO counters (`+counterColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Unit, c.Color, tags, c.InitialCount, goal, c.CreatedAt.UnixMilli(), string(iconKind), icon)
	if err != nil {
		return fmt.Errorf("failed to insert counter: %w", err)
	}
	return nil
}

func (s *Store) UpdateCounter(c models.Counter) error {
	tags, goal, iconKind, icon, err := counterArgs(c)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(`
		UPDATE counters
		SET name = ?, unit = ?, color = ?, tags = ?, initial_count = ?, goal = ?, icon_kind = ?, icon = ?
		WHERE id = ?`,
		c.Name, c.Unit, c.Color, tags, c.InitialCount, goal, string(iconKind), icon, c.ID)
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

	if _, err := tx.Exec("DELETE FROM entries WHERE counter_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete entries: %w", err)
	}

	result, err := tx.Exec("DELETE FROM counters WHERE id = ?", id)
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
		SELECT DISTINCT t.value
		FROM counters, json_each(counters.tags) AS t
		ORDER BY t.value`)
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
