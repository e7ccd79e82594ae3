package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// RespondWithJSON sends a JSON response with the given status code
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already written, so only log
		slog.Error("Failed to encode JSON response", "error", err, "statusCode", statusCode)
	}
}

// RespondWithError sends a JSON error response; details are omitted when nil
func RespondWithError(w http.ResponseWriter, statusCode int, message string, details interface{}) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message, Details: details})
}

// RespondNoContent writes a bare 204
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
