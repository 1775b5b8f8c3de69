package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/RenzoCostarelli/verduapp/internal/domain"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/metrics"
	"github.com/RenzoCostarelli/verduapp/internal/query"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"
)

// ExportHandler serves CSV downloads of the filtered entry set.
type ExportHandler struct {
	exportUC *usecase.ExportUseCase
	metrics  *metrics.Metrics
}

// NewExportHandler creates a new ExportHandler. metrics may be nil.
func NewExportHandler(exportUC *usecase.ExportUseCase, m *metrics.Metrics) *ExportHandler {
	return &ExportHandler{exportUC: exportUC, metrics: m}
}

// Export streams the filtered entries as a CSV attachment. An empty set
// is an error, not a header-only document.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	csv, err := h.exportUC.ExportCSV(r.Context(), filter)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyExport) {
			if h.metrics != nil {
				h.metrics.ExportsEmpty.Inc()
			}
			writeError(w, http.StatusNotFound, "no entries to export", "")
			return
		}
		writeError(w, mapDomainError(err), "failed to export entries", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsServed.Inc()
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.exportUC.Filename()))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(csv))
}
