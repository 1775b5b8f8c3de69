package handler

import (
	"net/http"

	"github.com/RenzoCostarelli/verduapp/internal/adapter/http/dto"
	"github.com/RenzoCostarelli/verduapp/internal/infrastructure/metrics"
	"github.com/RenzoCostarelli/verduapp/internal/query"
	"github.com/RenzoCostarelli/verduapp/internal/usecase"
)

// ReportHandler handles aggregation HTTP requests.
type ReportHandler struct {
	reportUC *usecase.ReportUseCase
	metrics  *metrics.Metrics
}

// NewReportHandler creates a new ReportHandler. metrics may be nil.
func NewReportHandler(reportUC *usecase.ReportUseCase, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, metrics: m}
}

func (h *ReportHandler) report(w http.ResponseWriter, r *http.Request) (*usecase.ReportData, bool) {
	filter, err := query.ParseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return nil, false
	}

	data, err := h.reportUC.Report(r.Context(), filter)
	if err != nil {
		if h.metrics != nil {
			h.metrics.QueryErrors.WithLabelValues("report").Inc()
		}
		writeError(w, mapDomainError(err), "failed to compute report", err.Error())
		return nil, false
	}

	if h.metrics != nil {
		h.metrics.ReportsComputed.Inc()
		h.metrics.ReportEntriesScanned.Observe(float64(data.Scanned))
	}
	return data, true
}

// Summary returns income, expense and balance totals for the filtered set.
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	data, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(data.Summary))
}

// Daily returns the per-day income/expense series, ascending, with
// zero-activity days omitted.
func (h *ReportHandler) Daily(w http.ResponseWriter, r *http.Request) {
	data, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.DayBucketsFromDomain(data.Daily))
}

// Methods returns per-payment-method totals, largest first.
func (h *ReportHandler) Methods(w http.ResponseWriter, r *http.Request) {
	data, ok := h.report(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.MethodBucketsFromDomain(data.Methods))
}
