package session

import (
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"rootedweb/lbs-invoice/internal/aggregator"
	"rootedweb/lbs-invoice/internal/models"
)

// Flash holds one-shot messages for the next page view.
type Flash struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Data is everything held for one browser session.
type Data struct {
	Report   *models.Report `json:"invoice_data,omitempty"`
	Download string         `json:"pdf_download,omitempty"`
	Flash    Flash          `json:"flash"`
}

// RequireReport returns the held report or ErrExpired.
func (d Data) RequireReport() (models.Report, error) {
	if d.Report == nil {
		return models.Report{}, ErrExpired
	}
	return *d.Report, nil
}

type entry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-process session store with sliding expiry.
type MemoryStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]entry
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]entry),
	}
}

// WithClock replaces the store clock.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// NewID issues a fresh session identifier and reserves it in the store.
func (s *MemoryStore) NewID() string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry{expires: s.now().Add(s.ttl)}
	return id
}

// Issued reports whether id is a live identifier handed out by NewID.
// Client-chosen or expired values are not.
func (s *MemoryStore) Issued(id string) bool {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	return ok && !s.now().After(e.expires)
}

// Load returns the session data for id. Unknown or expired sessions yield
// empty data.
func (s *MemoryStore) Load(id string) (Data, error) {
	s.mu.Lock()
	e, ok := s.items[id]
	if ok && s.now().After(e.expires) {
		delete(s.items, id)
		ok = false
	}
	if ok {
		e.expires = s.now().Add(s.ttl)
		s.items[id] = e
	}
	s.mu.Unlock()

	if !ok || e.data == nil {
		return Data{}, nil
	}

	var d Data
	if err := sonic.Unmarshal(e.data, &d); err != nil {
		return Data{}, err
	}
	if d.Report != nil {
		// Re-derive identifiers rather than trusting stored ones.
		r := *d.Report
		aggregator.AssignLineIDs(&r)
		d.Report = &r
	}
	return d, nil
}

// Save replaces the session data for id.
func (s *MemoryStore) Save(id string, d Data) error {
	data, err := sonic.Marshal(d)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = entry{data: data, expires: s.now().Add(s.ttl)}
	return nil
}

// Delete drops a session.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.items {
		if now.After(e.expires) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Len returns the number of held sessions.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
