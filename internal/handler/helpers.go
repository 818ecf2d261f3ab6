package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/echologistics/carrier-intake/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// writeServiceError maps the pipeline/admin error taxonomy onto HTTP
// responses. Validation failures keep their field scoping on the wire.
func writeServiceError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":       "validation failed",
			"fieldErrors": verr.Fields,
		})
		return
	}
	var perr *service.PersistenceError
	if errors.As(err, &perr) {
		writeError(w, http.StatusInternalServerError, perr.Error())
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
