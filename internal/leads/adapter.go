package leads

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/wolfman30/lead-manager/internal/observability/metrics"
	"github.com/wolfman30/lead-manager/pkg/logging"
)

var adapterTracer = otel.Tracer("leadmanager.internal.leads.adapter")

// Adapter is the only path from the application to the remote lead collection.
// It is stateless; callers apply the local collection changes.
type Adapter struct {
	store   Store
	metrics *metrics.LeadMetrics
	logger  *logging.Logger
}

// NewAdapter wraps store. metrics may be nil.
func NewAdapter(store Store, m *metrics.LeadMetrics, logger *logging.Logger) *Adapter {
	if store == nil {
		panic("leads: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Adapter{store: store, metrics: m, logger: logger}
}

// List returns all leads ordered by createdat descending.
func (a *Adapter) List(ctx context.Context) ([]Lead, error) {
	ctx, span := adapterTracer.Start(ctx, "leads.List")
	defer span.End()
	start := time.Now()

	leads, err := a.store.ListOrdered(ctx)
	if err != nil {
		a.observe("list", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "list failed")
		a.logger.Error("failed to list leads", "error", err)
		return nil, newStoreError("list", msgFetchFailed, err)
	}
	if leads == nil {
		leads = []Lead{}
	}
	a.observe("list", "ok", start)
	span.SetAttributes(attribute.Int("leads.count", len(leads)))
	return leads, nil
}

// Create probes for an existing email and inserts only when none is found.
// The probe and insert are separate remote calls; concurrent duplicates from
// other clients are not prevented.
func (a *Adapter) Create(ctx context.Context, form LeadFormData) (*Lead, error) {
	ctx, span := adapterTracer.Start(ctx, "leads.Create")
	defer span.End()
	start := time.Now()

	existingID, found, err := a.store.FindIDByEmail(ctx, form.Email)
	if err != nil {
		a.observe("create", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "email probe failed")
		a.logger.Error("failed to check for existing lead", "error", err)
		return nil, newStoreError("create", msgCreateFailed, err)
	}
	if found {
		a.observe("create", "duplicate", start)
		span.SetAttributes(attribute.Bool("leads.duplicate", true))
		a.logger.Info("duplicate lead rejected", "existing_id", existingID)
		return nil, &DuplicateEmailError{Email: form.Email}
	}

	lead, err := a.store.Insert(ctx, form)
	if err != nil {
		a.observe("create", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		a.logger.Error("failed to insert lead", "error", err)
		return nil, newStoreError("create", msgCreateFailed, err)
	}
	if lead == nil {
		a.observe("create", "error", start)
		return nil, newStoreError("create", msgCreateFailed, errors.New(msgCreateFailed))
	}

	a.observe("create", "ok", start)
	span.SetAttributes(attribute.String("leads.id", lead.ID))
	return lead, nil
}

// Delete removes the lead with id. Deleting an id the store does not have succeeds.
func (a *Adapter) Delete(ctx context.Context, id string) error {
	ctx, span := adapterTracer.Start(ctx, "leads.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("leads.id", id))
	start := time.Now()

	if err := a.store.DeleteByID(ctx, id); err != nil {
		a.observe("delete", "error", start)
		span.RecordError(err)
		span.SetStatus(codes.Error, "delete failed")
		a.logger.Error("failed to delete lead", "error", err, "id", id)
		return newStoreError("delete", msgDeleteFailed, err)
	}
	a.observe("delete", "ok", start)
	return nil
}

func (a *Adapter) observe(op, outcome string, start time.Time) {
	a.metrics.ObserveOperation(op, outcome, time.Since(start))
}
