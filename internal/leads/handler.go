package leads

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wolfman30/lead-manager/pkg/logging"
)

const maxFormBytes = 1 << 20

// Handler serves the lead list and form over JSON.
type Handler struct {
	workspace *Workspace
	logger    *logging.Logger
}

// NewHandler creates a new leads handler
func NewHandler(workspace *Workspace, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		workspace: workspace,
		logger:    logger,
	}
}

// CreateLeadResponse is returned after a successful create.
type CreateLeadResponse struct {
	Lead    *Lead  `json:"lead"`
	Message string `json:"message"`
}

// ValidationErrorResponse lists the fields that blocked a create.
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors ErrorMap `json:"errors"`
}

// ListLeads handles GET /api/leads requests
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.workspace.View(q))
}

// GetLead handles GET /api/leads/{id} requests
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	lead, err := h.workspace.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// CreateLead handles POST /api/leads requests
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var form LeadFormData
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxFormBytes)).Decode(&form); err != nil {
		h.logger.Warn("failed to decode lead form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	lead, err := h.workspace.Create(r.Context(), form)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateLeadResponse{
		Lead:    lead,
		Message: CreatedMessage(lead.Name),
	})
}

// DeleteLead handles DELETE /api/leads/{id} requests
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing lead id")
		return
	}
	name, err := h.workspace.Delete(r.Context(), id)
	if err != nil {
		h.writeMutationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": DeletedMessage(name)})
}

// Refresh handles POST /api/leads/refresh by reloading the working set.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.workspace.Load(r.Context()); err != nil {
		writeError(w, http.StatusBadGateway, UserMessage(err))
		return
	}
	writeJSON(w, http.StatusOK, h.workspace.View(Query{Sort: DefaultSort}))
}

// LeadSources handles GET /api/lead-sources requests
func (h *Handler) LeadSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"suggested": SuggestedSources,
		"present":   Sources(h.workspace.Leads()),
	})
}

// Health reports liveness plus the working-set size.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"leads":  h.workspace.Len(),
	})
}

// Page serves the admin UI.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(leadsPageHTML))
}

func (h *Handler) writeMutationError(w http.ResponseWriter, err error) {
	var valErr *ValidationError
	var dupErr *DuplicateEmailError
	var storeErr *StoreError
	switch {
	case errors.As(err, &valErr):
		writeJSON(w, http.StatusUnprocessableEntity, ValidationErrorResponse{
			Error:  UserMessage(err),
			Errors: valErr.Fields,
		})
	case errors.As(err, &dupErr):
		writeError(w, http.StatusConflict, dupErr.Error())
	case errors.As(err, &storeErr):
		writeError(w, http.StatusBadGateway, storeErr.Message)
	default:
		h.logger.Error("unexpected lead error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseQuery reads search, source, sort, order and an optional toggle.
// toggle applies a header click to the sort state described by sort/order.
func parseQuery(r *http.Request) (Query, error) {
	values := r.URL.Query()
	field, err := ParseSortField(values.Get("sort"))
	if err != nil {
		return Query{}, err
	}
	order, err := ParseSortOrder(values.Get("order"))
	if err != nil {
		return Query{}, err
	}
	state := SortState{Field: field, Order: order}
	if raw := values.Get("toggle"); raw != "" {
		toggled, err := ParseSortField(raw)
		if err != nil {
			return Query{}, err
		}
		state = state.Toggle(toggled)
	}
	return Query{
		Search: values.Get("search"),
		Source: values.Get("source"),
		Sort:   state,
	}, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
