package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echologistics/carrier-intake/internal/service"
)

// AdminHandler serves the authenticated list/mutate surface behind the
// dashboard. Search and sort over the list happen client-side.
type AdminHandler struct {
	svc *service.AgreementService
}

func NewAdminHandler(svc *service.AgreementService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	agreements, err := h.svc.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"agreements": agreements,
		"total":      len(agreements),
	})
}

func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trackingId")
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.UpdateStatus(id, req.Status); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "trackingId")
	if err := h.svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}
