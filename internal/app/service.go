package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/validation"
)

// Service applies user actions to a store. Each handler validates, writes
// through, then reloads the whole State so the caller never holds data the
// store does not. Handlers are serialized, so a write and its reload finish
// before the next write starts.
type Service struct {
	mu    sync.Mutex
	rev   uint64
	store storage.Provider
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDs overrides uuid generation, for tests.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func NewService(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) Store() storage.Provider {
	return s.store
}

// Load reads a fresh State from the store.
func (s *Service) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) load() (State, error) {
	counters, entries, err := s.store.LoadAll()
	if err != nil {
		return State{}, fmt.Errorf("failed to load data: %w", err)
	}
	s.rev++
	return State{Counters: counters, Entries: entries, Revision: s.rev}, nil
}

func (s *Service) reload(prev State) (State, error) {
	next, err := s.load()
	if err != nil {
		logger.Error("Reload after write failed", "error", err)
		return prev, err
	}
	return next, nil
}

// AddCounter validates in and creates a new counter with a fresh id.
func (s *Service) AddCounter(st State, in validation.CounterInput) (State, models.Counter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	in, err := validation.ValidateCounter(in)
	if err != nil {
		return st, models.Counter{}, err
	}

	c := in.Apply(models.Counter{
		ID:        s.newID(),
		CreatedAt: s.now(),
	})
	if err := s.store.InsertCounter(c); err != nil {
		return st, models.Counter{}, err
	}
	logger.Debug("Counter created", "id", c.ID, "name", c.Name)

	next, err := s.reload(st)
	return next, c, err
}

// UpdateCounter replaces every editable field of counter id.
func (s *Service) UpdateCounter(st State, id string, in validation.CounterInput) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := st.Counter(id)
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrCounterNotFound, id)
	}
	in, err := validation.ValidateCounter(in)
	if err != nil {
		return st, err
	}

	if err := s.store.UpdateCounter(in.Apply(existing)); err != nil {
		return st, s.translate(id, err)
	}
	logger.Debug("Counter updated", "id", id)
	return s.reload(st)
}

// DeleteCounter removes counter id together with all of its entries.
func (s *Service) DeleteCounter(st State, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := st.Counter(id); !ok {
		return st, fmt.Errorf("%w: %s", ErrCounterNotFound, id)
	}
	if err := s.store.DeleteCounter(id); err != nil {
		return st, s.translate(id, err)
	}
	logger.Debug("Counter deleted", "id", id)
	return s.reload(st)
}

// LogEntry records a signed delta against counter id at the current time.
func (s *Service) LogEntry(st State, id string, value int) (State, models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := st.Counter(id); !ok {
		return st, models.Entry{}, fmt.Errorf("%w: %s", ErrCounterNotFound, id)
	}

	e := models.Entry{
		ID:        s.newID(),
		CounterID: id,
		Timestamp: s.now(),
		Value:     value,
	}
	if err := s.store.InsertEntry(e); err != nil {
		return st, models.Entry{}, s.translate(id, err)
	}

	next, err := s.reload(st)
	return next, e, err
}

func (s *Service) Increment(st State, id string) (State, error) {
	next, _, err := s.LogEntry(st, id, 1)
	return next, err
}

func (s *Service) Decrement(st State, id string) (State, error) {
	next, _, err := s.LogEntry(st, id, -1)
	return next, err
}

// ClearEntries deletes every entry of counter id. The counter itself and its
// initial count stay, so the total falls back to InitialCount.
func (s *Service) ClearEntries(st State, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := st.Counter(id); !ok {
		return st, fmt.Errorf("%w: %s", ErrCounterNotFound, id)
	}
	if err := s.store.DeleteEntriesForCounter(id); err != nil {
		return st, err
	}
	logger.Debug("Counter reset", "id", id)
	return s.reload(st)
}

func (s *Service) translate(id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCounterNotFound, id)
	}
	return err
}
