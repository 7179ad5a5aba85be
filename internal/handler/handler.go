// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer, plus the auth
// middleware for both trust domains.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wellnesshub/booking/internal/model"
)

// Machine-readable error kinds carried in every error envelope.
const (
	kindNotFound         = "not_found"
	kindForbidden        = "forbidden"
	kindUnauthorized     = "unauthorized"
	kindCapacityExceeded = "capacity_exceeded"
	kindDuplicateBooking = "duplicate_booking"
	kindEventInactive    = "event_inactive"
	kindInvalidState     = "invalid_state"
	kindValidation       = "validation_error"
	kindInternal         = "internal"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Kind: kind})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainError maps the domain error taxonomy onto HTTP statuses
// and kinds. All taxonomy errors are recoverable client errors;
// anything else is a store-level failure surfaced as a generic 500
// without internal detail.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, kindNotFound, err.Error())
	case errors.Is(err, model.ErrForbidden):
		writeError(w, http.StatusForbidden, kindForbidden, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, kindUnauthorized, err.Error())
	case errors.Is(err, model.ErrCapacityExceeded):
		writeError(w, http.StatusConflict, kindCapacityExceeded, err.Error())
	case errors.Is(err, model.ErrDuplicateBooking):
		writeError(w, http.StatusConflict, kindDuplicateBooking, err.Error())
	case errors.Is(err, model.ErrEventInactive):
		writeError(w, http.StatusConflict, kindEventInactive, err.Error())
	case errors.Is(err, model.ErrInvalidState):
		writeError(w, http.StatusConflict, kindInvalidState, err.Error())
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, kindInternal, "internal server error")
	}
}

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
