package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"carhire/internal/booking"
	"carhire/internal/pricing"
)

// DefaultDraftTTL is how long an untouched draft survives before the purge
// job may evict it.
const DefaultDraftTTL = 2 * time.Hour

// Draft is the in-progress booking a customer builds up across page
// transitions. It replaces the browser-held session storage of the classic
// flow with an explicit server-side object owned by the lifecycle.
type Draft struct {
	ID          string
	State       booking.State
	PickupDate  time.Time
	DropDate    time.Time
	PickupTime  string
	DropTime    string
	PickupPlace string
	DropPlace   string
	CarID       int
	CustomerID  int
	Options     []pricing.Option
	Summary     *pricing.Summary
	UpdatedAt   time.Time
}

// DraftStore holds drafts in memory, keyed by a uuid session id. Drafts are
// transient by design; restarting the server discards them.
type DraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time
}

func NewDraftStore(ttl time.Duration) *DraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &DraftStore{
		drafts: make(map[string]*Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create registers a new draft in the Drafting state and returns it.
func (s *DraftStore) Create() *Draft {
	d := &Draft{
		ID:        uuid.NewString(),
		State:     booking.StateDrafting,
		UpdatedAt: s.now(),
	}
	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return d
}

// Get returns a copy of the draft, or false when the id is unknown or the
// draft has expired.
func (s *DraftStore) Get(id string) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[id]
	if !ok || s.expired(d) {
		return Draft{}, false
	}
	return *d, true
}

// Update applies fn to the draft under the store lock and bumps its
// freshness. It returns the updated copy, or false for unknown/expired ids.
func (s *DraftStore) Update(id string, fn func(*Draft) error) (Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok || s.expired(d) {
		return Draft{}, false, nil
	}
	if err := fn(d); err != nil {
		return Draft{}, true, err
	}
	d.UpdatedAt = s.now()
	return *d, true, nil
}

// Delete discards a draft; used once a booking is persisted.
func (s *DraftStore) Delete(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// PurgeExpired evicts drafts past their TTL and reports how many went.
func (s *DraftStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	purged := 0
	for id, d := range s.drafts {
		if s.expired(d) {
			delete(s.drafts, id)
			purged++
		}
	}
	return purged
}

// Len reports the number of live drafts, for logging.
func (s *DraftStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

func (s *DraftStore) expired(d *Draft) bool {
	return s.now().Sub(d.UpdatedAt) > s.ttl
}
