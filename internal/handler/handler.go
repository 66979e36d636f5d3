package handler

import (
	"encoding/json"
	"net/http"

	"product-catalog/internal/middleware"
	"product-catalog/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already on the wire; nothing useful can be done
	// if encoding fails here.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a standardised error body carrying the request's
// correlation id.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	correlationID := middleware.RequestIDFrom(r.Context())

	logger.Error().
		Str("error", message).
		Int("status", status).
		Str("request_id", correlationID).
		Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         http.StatusText(status),
		Message:       message,
		CorrelationID: correlationID,
	})
}
