package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// Error codes produced by the HTTP layer itself
const (
	codeInvalidJSON     = "INVALID_JSON"
	codeInvalidID       = "INVALID_ID"
	codePayloadTooLarge = "PAYLOAD_TOO_LARGE"
	codeInternal        = "INTERNAL_ERROR"
)

// handleError maps service errors to HTTP responses
func handleError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		respondError(w, r, mapErrorCodeToHTTPStatus(appErr.Code), appErr.Code, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		respondError(w, r, http.StatusNotFound, models.CodeNotFound, err.Error())

	case errors.Is(err, models.ErrConflict):
		respondError(w, r, http.StatusConflict, models.CodeConflict, err.Error())

	default:
		// internal details stay in the log
		logger.Error("internal server error",
			slog.String("request_id", RequestIDFromContext(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		respondError(w, r, http.StatusInternalServerError, codeInternal, "An unexpected error occurred")
	}
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case models.CodeInvalidInput:
		return http.StatusBadRequest
	case models.CodeNotFound:
		return http.StatusNotFound
	case models.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
