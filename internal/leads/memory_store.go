package leads

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore keeps leads in process memory. Used for local development and tests.
type InMemoryStore struct {
	mu    sync.RWMutex
	leads []Lead
	now   func() time.Time
}

var _ Store = (*InMemoryStore)(nil)

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

// ListOrdered returns leads newest first.
func (s *InMemoryStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Lead, len(s.leads))
	copy(out, s.leads)
	return Derive(out, Query{Sort: DefaultSort}), nil
}

// FindIDByEmail does an exact, case-sensitive match.
func (s *InMemoryStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, lead := range s.leads {
		if lead.Email == email {
			return lead.ID, true, nil
		}
	}
	return "", false, nil
}

// Insert assigns an id and timestamp and stores the lead.
func (s *InMemoryStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	lead := Lead{
		ID:         uuid.New().String(),
		Name:       form.Name,
		Email:      form.Email,
		Phone:      form.Phone,
		LeadSource: form.LeadSource,
		CreatedAt:  s.now(),
	}

	s.mu.Lock()
	s.leads = append(s.leads, lead)
	s.mu.Unlock()

	return &lead, nil
}

// DeleteByID removes the lead if present.
func (s *InMemoryStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, lead := range s.leads {
		if lead.ID == id {
			s.leads = append(s.leads[:i], s.leads[i+1:]...)
			return nil
		}
	}
	return nil
}
