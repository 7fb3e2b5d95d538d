package handlers

import (
	"encoding/json"
	"net/http"

	"chainboard/pkg/errors"
	"chainboard/pkg/logger"
)

// errorBody is the JSON shape of every error response
type errorBody struct {
	Error string `json:"error"`
}

// respondJSON writes v as the JSON response body
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

// respondError maps domain errors onto HTTP status codes. Unclassified
// errors become a generic 500 so internals never leak to the client.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrInvalidInput),
		errors.Is(err, errors.ErrUnknownTimeframe),
		errors.Is(err, errors.ErrUnknownMetric):
		respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})

	case errors.Is(err, errors.ErrNotFound):
		respondJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})

	case errors.Is(err, errors.ErrRateLimitExceeded):
		respondJSON(w, http.StatusTooManyRequests, errorBody{Error: err.Error()})

	case errors.Is(err, errors.ErrUpstreamUnavailable),
		errors.Is(err, errors.ErrWarehouseUnavailable),
		errors.Is(err, errors.ErrUnavailable):
		respondJSON(w, http.StatusServiceUnavailable, errorBody{Error: "upstream unavailable"})

	case errors.Is(err, errors.ErrTimeout):
		respondJSON(w, http.StatusGatewayTimeout, errorBody{Error: "request timed out"})

	default:
		logger.Errorf("unhandled request error: %v", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}
