package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/AnuraagTripathy/coding-assessment/internal/logging"
)

// respondWithJSON writes payload as a JSON response with the given status.
func respondWithJSON(ctx context.Context, w http.ResponseWriter, code int, payload any, logger logging.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error(ctx, "failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error(ctx, "failed to write HTTP response", "error", err)
	}
}

// respondWithError writes a {"detail": message} error body, the shape the
// frontend expects.
func respondWithError(ctx context.Context, w http.ResponseWriter, code int, message string, logger logging.Logger) {
	respondWithJSON(ctx, w, code, map[string]string{"detail": message}, logger)
}
