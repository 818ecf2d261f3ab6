package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echologistics/carrier-intake/internal/service"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

// AgreementHandler serves the public intake surface: direct submission
// and tracking lookup.
type AgreementHandler struct {
	svc *service.AgreementService
}

func NewAgreementHandler(svc *service.AgreementService) *AgreementHandler {
	return &AgreementHandler{svc: svc}
}

// Submit accepts a complete draft in one request, for clients that run
// the wizard locally and only need the pipeline.
func (h *AgreementHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var draft wizard.Draft
	if err := readJSON(r, &draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trackingID, err := h.svc.Submit(r.Context(), &draft)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"trackingId": trackingID})
}

// Get resolves a tracking ID. Public: submitters use it through the
// tracking view and the /track?id= deep link.
func (h *AgreementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trackingId")
	a, err := h.svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// Track serves the /track?id=<trackingId> deep link pattern.
func (h *AgreementHandler) Track(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id query parameter is required")
		return
	}
	a, err := h.svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}
