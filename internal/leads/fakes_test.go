package leads

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/wolfman30/lead-manager/pkg/logging"
)

// recordingStore wraps InMemoryStore, counts calls and can be told to fail.
type recordingStore struct {
	*InMemoryStore

	mu         sync.Mutex
	listErr    error
	probeErr   error
	insertErr  error
	deleteErr  error
	lists      int
	probes     int
	inserts    int
	deletes    []string
	nilInserts bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{InMemoryStore: NewInMemoryStore()}
}

func (s *recordingStore) ListOrdered(ctx context.Context) ([]Lead, error) {
	s.mu.Lock()
	s.lists++
	err := s.listErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.InMemoryStore.ListOrdered(ctx)
}

func (s *recordingStore) FindIDByEmail(ctx context.Context, email string) (string, bool, error) {
	s.mu.Lock()
	s.probes++
	err := s.probeErr
	s.mu.Unlock()
	if err != nil {
		return "", false, err
	}
	return s.InMemoryStore.FindIDByEmail(ctx, email)
}

func (s *recordingStore) Insert(ctx context.Context, form LeadFormData) (*Lead, error) {
	s.mu.Lock()
	s.inserts++
	err := s.insertErr
	nilInsert := s.nilInserts
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if nilInsert {
		return nil, nil
	}
	return s.InMemoryStore.Insert(ctx, form)
}

func (s *recordingStore) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, id)
	err := s.deleteErr
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.InMemoryStore.DeleteByID(ctx, id)
}

type recordingNotifier struct {
	mu    sync.Mutex
	leads []Lead
	err   error
}

func (n *recordingNotifier) LeadCreated(_ context.Context, lead Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, lead)
	return n.err
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", &bytes.Buffer{})
}

func validForm(name, email string) LeadFormData {
	return LeadFormData{
		Name:       name,
		Email:      email,
		Phone:      "555-123-4567",
		LeadSource: "Website",
	}
}

func leadAt(id, name string, created time.Time) Lead {
	return Lead{
		ID:         id,
		Name:       name,
		Email:      id + "@example.com",
		Phone:      "5550000000",
		LeadSource: "Website",
		CreatedAt:  created,
	}
}
