package leads

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wolfman30/lead-manager/internal/observability/metrics"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

// Notifier is told about leads after they are persisted. Failures are logged only.
type Notifier interface {
	LeadCreated(ctx context.Context, lead Lead) error
}

// Workspace owns the in-memory working set shown by the list view.
// Every mutation is two-phase: the remote call runs first, and the local
// collection changes only if it succeeded.
type Workspace struct {
	adapter  *Adapter
	notifier Notifier
	metrics  *metrics.LeadMetrics
	logger   *logging.Logger
	now      func() time.Time

	mu    sync.RWMutex
	leads []Lead
}

// NewWorkspace builds an empty workspace. notifier and m may be nil.
func NewWorkspace(adapter *Adapter, notifier Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Workspace {
	if adapter == nil {
		panic("leads: adapter required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Workspace{
		adapter:  adapter,
		notifier: notifier,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		leads:    []Lead{},
	}
}

// Load replaces the working set with the store's current contents.
// On failure the previous working set is kept.
func (w *Workspace) Load(ctx context.Context) error {
	leads, err := w.adapter.List(ctx)
	if err != nil {
		return err
	}
	w.mu.Lock()
	w.leads = leads
	w.mu.Unlock()
	w.metrics.SetCollectionSize(len(leads))
	w.logger.Info("leads loaded", "count", len(leads))
	return nil
}

// Leads returns a copy of the working set in its stored order.
func (w *Workspace) Leads() []Lead {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Lead, len(w.leads))
	copy(out, w.leads)
	return out
}

// Len reports the size of the working set.
func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.leads)
}

// Get returns the local copy of the lead with id.
func (w *Workspace) Get(id string) (*Lead, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, lead := range w.leads {
		if lead.ID == id {
			found := lead
			return &found, nil
		}
	}
	return nil, ErrLeadNotFound
}

// ListView is one rendering of the list plus the data the page header needs.
type ListView struct {
	Leads   []Lead    `json:"leads"`
	Count   int       `json:"count"`
	Total   int       `json:"total"`
	Sources []string  `json:"sources"`
	Sort    SortState `json:"sort"`
	Stats   Stats     `json:"stats"`
}

// View derives the list for q without touching the working set.
func (w *Workspace) View(q Query) ListView {
	all := w.Leads()
	if q.Sort.Field == "" {
		q.Sort.Field = DefaultSort.Field
	}
	if q.Sort.Order == "" {
		q.Sort.Order = DefaultSort.Order
	}
	derived := Derive(all, q)
	return ListView{
		Leads:   derived,
		Count:   len(derived),
		Total:   len(all),
		Sources: Sources(all),
		Sort:    q.Sort,
		Stats:   ComputeStats(all, w.now()),
	}
}

// Create validates form, persists it, and prepends the stored lead.
// Invalid forms return *ValidationError and never reach the store.
func (w *Workspace) Create(ctx context.Context, form LeadFormData) (*Lead, error) {
	if errs := Validate(form); !errs.Valid() {
		return nil, &ValidationError{Fields: errs}
	}

	lead, err := w.adapter.Create(ctx, form)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	next := make([]Lead, 0, len(w.leads)+1)
	next = append(next, *lead)
	next = append(next, w.leads...)
	w.leads = next
	size := len(w.leads)
	w.mu.Unlock()

	w.metrics.SetCollectionSize(size)
	w.logger.Info("lead created", "id", lead.ID, "leadsource", lead.LeadSource)

	if w.notifier != nil {
		if err := w.notifier.LeadCreated(ctx, *lead); err != nil {
			w.metrics.ObserveAlert("failed")
			w.logger.Warn("lead alert failed", "error", err, "id", lead.ID)
		} else {
			w.metrics.ObserveAlert("sent")
		}
	}
	return lead, nil
}

// Delete removes id remotely and then locally. It returns the name of the
// local copy for the outcome message, or "Unknown" when there was none.
func (w *Workspace) Delete(ctx context.Context, id string) (string, error) {
	name := "Unknown"
	w.mu.RLock()
	for _, lead := range w.leads {
		if lead.ID == id {
			name = lead.Name
			break
		}
	}
	w.mu.RUnlock()

	if err := w.adapter.Delete(ctx, id); err != nil {
		return "", err
	}

	w.mu.Lock()
	kept := make([]Lead, 0, len(w.leads))
	for _, lead := range w.leads {
		if lead.ID != id {
			kept = append(kept, lead)
		}
	}
	w.leads = kept
	size := len(w.leads)
	w.mu.Unlock()

	w.metrics.SetCollectionSize(size)
	w.logger.Info("lead deleted", "id", id)
	return name, nil
}

// CreatedMessage is the confirmation shown after a successful create.
func CreatedMessage(name string) string {
	return fmt.Sprintf("Lead \"%s\" created successfully!", name)
}

// DeletedMessage is the confirmation shown after a successful delete.
func DeletedMessage(name string) string {
	return fmt.Sprintf("Lead \"%s\" deleted successfully!", name)
}
