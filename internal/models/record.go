package models

import "time"

// CounterRecord is the flat, serializable form of a Counter used by the JSON
// store and by export files. Timestamps are epoch milliseconds.
type CounterRecord struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Unit         string   `json:"unit" yaml:"unit"`
	Color        string   `json:"color" yaml:"color"`
	Tags         []string `json:"tags" yaml:"tags"`
	InitialCount int      `json:"initialCount" yaml:"initialCount"`
	Goal         *int     `json:"goal,omitempty" yaml:"goal,omitempty"`
	CreatedAt    int64    `json:"createdAt" yaml:"createdAt"`
	IconType     IconKind `json:"iconType,omitempty" yaml:"iconType,omitempty"`
	Icon         string   `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// EntryRecord is the serializable form of an Entry.
type EntryRecord struct {
	ID        string `json:"id" yaml:"id"`
	CounterID string `json:"counterId" yaml:"counterId"`
	Timestamp int64  `json:"timestamp" yaml:"timestamp"`
	Value     int    `json:"value" yaml:"value"`
}

func (c Counter) Record() CounterRecord {
	kind, icon := SplitIcon(c.Icon)
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return CounterRecord{
		ID:           c.ID,
		Name:         c.Name,
		Unit:         c.Unit,
		Color:        c.Color,
		Tags:         tags,
		InitialCount: c.InitialCount,
		Goal:         c.Goal,
		CreatedAt:    c.CreatedAt.UnixMilli(),
		IconType:     kind,
		Icon:         icon,
	}
}

func (r CounterRecord) Counter() Counter {
	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return Counter{
		ID:           r.ID,
		Name:         r.Name,
		Unit:         r.Unit,
		Color:        r.Color,
		Tags:         tags,
		InitialCount: r.InitialCount,
		Goal:         r.Goal,
		CreatedAt:    time.UnixMilli(r.CreatedAt),
		Icon:         NewIcon(r.IconType, r.Icon),
	}
}

func (e Entry) Record() EntryRecord {
	return EntryRecord{
		ID:        e.ID,
		CounterID: e.CounterID,
		Timestamp: e.Timestamp.UnixMilli(),
		Value:     e.Value,
	}
}

func (r EntryRecord) Entry() Entry {
	return Entry{
		ID:        r.ID,
		CounterID: r.CounterID,
		Timestamp: time.UnixMilli(r.Timestamp),
		Value:     r.Value,
	}
}
