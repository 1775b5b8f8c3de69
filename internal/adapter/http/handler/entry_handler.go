package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/dto"
	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/middleware"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/metrics"
	"github.com/RenzoCostarelli/verduapp/internal/query"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"
)

// EntryHandler handles entry-related HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
	planner *usecase.QueryPlanner
	metrics *metrics.Metrics
}

// NewEntryHandler creates a new EntryHandler. metrics may be nil.
func NewEntryHandler(entryUC *usecase.EntryUseCase, planner *usecase.QueryPlanner, m *metrics.Metrics) *EntryHandler {
	return &EntryHandler{entryUC: entryUC, planner: planner, metrics: m}
}

// List returns one page of entries matching the filter query parameters,
// newest first.
func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "pageSize", 0)

	consumer, _ := middleware.UserID(r.Context())
	res, err := h.planner.FetchPage(r.Context(), consumer, filter, page, pageSize)
	if err != nil {
		if h.metrics != nil {
			h.metrics.QueryErrors.WithLabelValues("list").Inc()
		}
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	if !h.planner.Apply(consumer, res) && h.metrics != nil {
		h.metrics.StaleResultsDropped.Inc()
	}
	if h.metrics != nil {
		h.metrics.PagesFetched.Inc()
	}

	writeJSON(w, http.StatusOK, dto.PageFromResult(res))
}

// Create records a new movement authored by the session user.
func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	userID, _ := middleware.UserID(r.Context())

	entry, err := h.entryUC.CreateEntry(r.Context(), req.ToUseCaseInput(userID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.EntriesCreated.Inc()
		amount, _ := entry.Amount.Float64()
		h.metrics.EntryAmount.WithLabelValues(string(entry.Type)).Observe(amount)
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Delete removes an entry and refreshes the page described by the filter
// query parameters. A refresh failure does not undo the delete and is
// reported alongside the success, never as a failure of the whole call.
func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	if err := h.entryUC.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete entry", err.Error())
		return
	}
	if h.metrics != nil {
		h.metrics.EntriesDeleted.Inc()
	}

	resp := &dto.DeleteEntryResponse{Deleted: true}

	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		resp.RefreshError = err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "pageSize", 0)

	consumer, _ := middleware.UserID(r.Context())
	res, err := h.planner.FetchPage(r.Context(), consumer, filter, page, pageSize)
	if err != nil {
		if h.metrics != nil {
			h.metrics.QueryErrors.WithLabelValues("refresh").Inc()
		}
		resp.RefreshError = err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	h.planner.Apply(consumer, res)
	resp.Page = dto.PageFromResult(res)
	writeJSON(w, http.StatusOK, resp)
}

// UpdateDescription edits an entry's description. Only the author may do
// this; an empty description clears it.
func (h *EntryHandler) UpdateDescription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.UpdateDescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	userID, _ := middleware.UserID(r.Context())

	if err := h.entryUC.UpdateDescription(r.Context(), id, req.Description, userID); err != nil {
		writeError(w, mapDomainError(err), "failed to update description", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// ListCreators lists the distinct authors that have at least one entry.
func (h *EntryHandler) ListCreators(w http.ResponseWriter, r *http.Request) {
	creators, err := h.entryUC.ListCreators(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list creators", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreatorsFromDomain(creators))
}
