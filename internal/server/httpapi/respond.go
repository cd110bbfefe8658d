package httpapi

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes data as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeErrorMessage writes a JSON error body with the given status code.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeErrorMessage(w, http.StatusBadRequest, message)
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	writeErrorMessage(w, http.StatusUnauthorized, message)
}

func writeNotFound(w http.ResponseWriter, message string) {
	writeErrorMessage(w, http.StatusNotFound, message)
}

func writeInternalError(w http.ResponseWriter) {
	writeErrorMessage(w, http.StatusInternalServerError, "internal error")
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
