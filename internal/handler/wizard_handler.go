package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/echologistics/carrier-intake/internal/service"
	"github.com/echologistics/carrier-intake/internal/validate"
	"github.com/echologistics/carrier-intake/internal/wizard"
)

// WizardHandler exposes server-side wizard sessions so a stateless
// client can drive the step machine across requests. Each session owns
// one machine and one draft.
type WizardHandler struct {
	sessions  *wizard.Sessions
	validator *validate.Validator
	svc       *service.AgreementService
}

func NewWizardHandler(sessions *wizard.Sessions, v *validate.Validator, svc *service.AgreementService) *WizardHandler {
	return &WizardHandler{sessions: sessions, validator: v, svc: svc}
}

func (h *WizardHandler) Create(w http.ResponseWriter, r *http.Request) {
	m := wizard.New(h.validator, h.svc)
	id := h.sessions.Create(m)
	writeJSON(w, http.StatusCreated, map[string]any{
		"sessionId": id,
		"state":     m.Snapshot(),
	})
}

func (h *WizardHandler) Get(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, m.Snapshot())
}

// Next merges the posted draft fields for the current step and attempts
// the validation-gated forward transition. On the last step this runs
// the submission pipeline.
func (h *WizardHandler) Next(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	var patch wizard.Draft
	if err := readJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	snap, err := m.Next(r.Context(), &patch)
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *WizardHandler) Back(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	snap, err := m.Back()
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *WizardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	m, ok := h.machine(w, r)
	if !ok {
		return
	}
	snap, err := m.Reset()
	if err != nil {
		writeTransitionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *WizardHandler) machine(w http.ResponseWriter, r *http.Request) (*wizard.Machine, bool) {
	id := chi.URLParam(r, "sessionId")
	m, err := h.sessions.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "wizard session not found")
		return nil, false
	}
	return m, true
}

func writeTransitionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wizard.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, "submission already in flight")
	case errors.Is(err, wizard.ErrCompleted):
		writeError(w, http.StatusConflict, "wizard already completed")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
