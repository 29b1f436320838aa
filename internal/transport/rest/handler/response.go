package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"surveydash/internal/model"
	"surveydash/internal/service"
	"surveydash/internal/transport/rest/middleware"
)

// ResponseHandler handles response endpoints
type ResponseHandler struct {
	responseSvc *service.ResponseService
}

// NewResponseHandler creates a new response handler
func NewResponseHandler(responseSvc *service.ResponseService) *ResponseHandler {
	return &ResponseHandler{responseSvc: responseSvc}
}

// Submit handles POST /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitResponseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resp, err := h.responseSvc.Submit(r.Context(), mux.Vars(r)["surveyId"], &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// List handles GET /v1/responses?search=&survey=&page=
func (h *ResponseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.list(w, r, q.Get("survey"))
}

// ListBySurvey handles GET /v1/surveys/{surveyId}/responses
func (h *ResponseHandler) ListBySurvey(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, mux.Vars(r)["surveyId"])
}

func (h *ResponseHandler) list(w http.ResponseWriter, r *http.Request, surveyID string) {
	q := r.URL.Query()
	list, err := h.responseSvc.List(r.Context(), q.Get("search"), surveyID, pageNumber(q.Get("page")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Detail handles GET /v1/responses/{responseId}/detail
func (h *ResponseHandler) Detail(w http.ResponseWriter, r *http.Request) {
	detail, err := h.responseSvc.Detail(r.Context(), mux.Vars(r)["responseId"])
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Delete handles POST|DELETE /v1/responses/{responseId}/delete
func (h *ResponseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	responseID := mux.Vars(r)["responseId"]
	if err := h.responseSvc.Delete(r.Context(), middleware.GetHostID(r.Context()), responseID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": responseID})
}
