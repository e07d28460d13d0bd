package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Raymond9734/sales-date-prediction/internal/models"
)

// pathID reads a positive integer URL parameter
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into dst and writes the error response
// itself when decoding fails
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "Request body too large")
			return false
		}
		respondError(w, r, http.StatusBadRequest, codeInvalidJSON, "Invalid JSON format")
		return false
	}
	return true
}

// serveList handles ?pageNumber=&pageSize= listing endpoints. fn receives nil
// params when neither query parameter is present.
func serveList[T any](
	w http.ResponseWriter,
	r *http.Request,
	logger *slog.Logger,
	fn func(context.Context, *models.PaginationParams) (*models.PaginationResponse[T], error),
) {
	query := r.URL.Query()
	params, err := models.ParsePaginationParams(query.Get("pageNumber"), query.Get("pageSize"))
	if err != nil {
		handleError(w, r, err, logger)
		return
	}

	result, err := fn(r.Context(), params)
	if err != nil {
		handleError(w, r, err, logger)
		return
	}

	respondSuccess(w, result)
}
