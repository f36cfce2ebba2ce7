package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apierrors "carhire/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps service errors onto the HTTP response. Anything that is
// not a tagged HTTPError is treated as an opaque server error.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apierrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal Server Error"})
}
