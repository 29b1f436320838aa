package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveydash/internal/service"
)

// ReportHandler handles report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Get handles GET /v1/surveys/{surveyId}/report
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportSvc.Report(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// Chart handles GET /v1/surveys/{surveyId}/questions/{questionId}/chart
func (h *ReportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := h.reportSvc.ChartData(r.Context(), vars["surveyId"], vars["questionId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
