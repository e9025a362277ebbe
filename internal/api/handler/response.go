package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"customer-service/internal/api/handler/dto"
	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"message":"An unexpected error occurred"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

// respondError maps domain errors to HTTP statuses and renders the shared
// error body with the request path echoed back.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "An unexpected error occurred"

	switch {
	case errors.Is(err, customer.ErrNotFound), errors.Is(err, apperrors.ErrNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, customer.ErrDuplicateEmail), errors.Is(err, apperrors.ErrAlreadyExists):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, customer.ErrInvalidSortField):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		status, message = http.StatusBadRequest, err.Error()
	default:
		slog.Default().Error("Unhandled internal error", "error", err)
	}

	resp := dto.NewErrorResponse(status, http.StatusText(status), message, r.URL.Path)
	respondJSON(w, status, resp)
}

func respondBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	resp := dto.NewErrorResponse(http.StatusBadRequest, http.StatusText(http.StatusBadRequest), message, r.URL.Path)
	respondJSON(w, http.StatusBadRequest, resp)
}

func respondValidationErrors(w http.ResponseWriter, r *http.Request, violations map[string]string) {
	resp := dto.NewValidationErrorResponse(
		http.StatusBadRequest,
		http.StatusText(http.StatusBadRequest),
		"Validation failed",
		r.URL.Path,
		violations,
	)
	respondJSON(w, http.StatusBadRequest, resp)
}
