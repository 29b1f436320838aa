package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveydash/internal/model"
	"surveydash/internal/service"
	"surveydash/internal/transport/rest/middleware"
)

// SurveyHandler handles survey endpoints
type SurveyHandler struct {
	surveySvc *service.SurveyService
}

// NewSurveyHandler creates a new survey handler
func NewSurveyHandler(surveySvc *service.SurveyService) *SurveyHandler {
	return &SurveyHandler{surveySvc: surveySvc}
}

// List handles GET /v1/surveys?search=&page=
func (h *SurveyHandler) List(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, pageNumber(r.URL.Query().Get("page")))
}

// ListPage handles GET /v1/surveys/page/{page}
func (h *SurveyHandler) ListPage(w http.ResponseWriter, r *http.Request) {
	h.dashboard(w, r, pageNumber(mux.Vars(r)["page"]))
}

func (h *SurveyHandler) dashboard(w http.ResponseWriter, r *http.Request, page int) {
	dash, err := h.surveySvc.Dashboard(r.Context(), r.URL.Query().Get("search"), page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// htmx partial refreshes only swap the list itself
	if r.Header.Get("HX-Request") == "true" {
		dash.Recent = nil
	}
	writeJSON(w, http.StatusOK, dash)
}

// Create handles POST /v1/surveys
func (h *SurveyHandler) Create(w http.ResponseWriter, r *http.Request) {
	hostID := middleware.GetHostID(r.Context())
	if hostID == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req model.CreateSurveyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	survey, err := h.surveySvc.Create(r.Context(), hostID, &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, survey)
}

// Get handles GET /v1/surveys/{surveyId}
func (h *SurveyHandler) Get(w http.ResponseWriter, r *http.Request) {
	survey, err := h.surveySvc.Get(r.Context(), mux.Vars(r)["surveyId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// UpdateStatus handles PUT /v1/surveys/{surveyId}/status
func (h *SurveyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	survey, err := h.surveySvc.UpdateStatus(r.Context(), middleware.GetHostID(r.Context()), mux.Vars(r)["surveyId"], req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, survey)
}

// Delete handles POST|DELETE /v1/surveys/{surveyId}/delete
func (h *SurveyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	surveyID := mux.Vars(r)["surveyId"]
	if err := h.surveySvc.Delete(r.Context(), middleware.GetHostID(r.Context()), surveyID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": surveyID})
}

// QuestionKinds handles GET /v1/question-kinds
func (h *SurveyHandler) QuestionKinds(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": h.surveySvc.QuestionKinds()})
}
