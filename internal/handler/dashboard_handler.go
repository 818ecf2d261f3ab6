package handler

import (
	"net/http"

	"github.com/echologistics/carrier-intake/internal/models"
	"github.com/echologistics/carrier-intake/internal/repository"
)

// DashboardHandler serves the admin dashboard's summary counts.
type DashboardHandler struct {
	agreements *repository.AgreementRepo
}

func NewDashboardHandler(agreements *repository.AgreementRepo) *DashboardHandler {
	return &DashboardHandler{agreements: agreements}
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	total, err := h.agreements.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	byStatus := make(map[string]int, 4)
	for _, s := range []string{
		models.StatusSubmitted, models.StatusInProgress,
		models.StatusCompleted, models.StatusRejected,
	} {
		count, err := h.agreements.CountByStatus(s)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		byStatus[s] = count
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"total":    total,
		"byStatus": byStatus,
	})
}
