package models

import "time"

// Counter is a named metric definition that entries are logged against.
type Counter struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Unit         string    `json:"unit"`
	Color        string    `json:"color"`
	Tags         []string  `json:"tags"`
	InitialCount int       `json:"initial_count"`
	Goal         *int      `json:"goal,omitempty"` // nil means no goal
	CreatedAt    time.Time `json:"created_at"`
	Icon         Icon      `json:"-"`
}

// HasGoal reports whether the counter has a target set.
func (c Counter) HasGoal() bool {
	return c.Goal != nil && *c.Goal > 0
}

// HasTag reports whether tag is attached to the counter (exact match).
func (c Counter) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Entry is an immutable signed delta recorded against one counter.
type Entry struct {
	ID        string    `json:"id"`
	CounterID string    `json:"counter_id"`
	Timestamp time.Time `json:"timestamp"`
	Value     int       `json:"value"` // usually +1 or -1
}

// IntPtr returns a pointer to v, for optional fields such as Counter.Goal.
func IntPtr(v int) *int {
	return &v
}
