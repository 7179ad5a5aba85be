package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellnesshub/booking/internal/model"
	"github.com/wellnesshub/booking/internal/service"
)

// BookingHandler serves the user-facing reservation operations. All
// routes sit behind RequireUser, so the acting user id always comes
// from the verified token, never from the request body.
type BookingHandler struct {
	svc      *service.BookingService
	validate *validator.Validate
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(svc *service.BookingService, validate *validator.Validate) *BookingHandler {
	return &BookingHandler{svc: svc, validate: validate}
}

// Create handles POST /api/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	booking, err := h.svc.Create(r.Context(), UserID(r.Context()), req.EventID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "booking created successfully",
		"booking": booking,
	})
}

// List handles GET /api/bookings
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.ListForUser(r.Context(), UserID(r.Context()))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

// Cancel handles DELETE /api/bookings/{id}
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	booking, err := h.svc.Cancel(r.Context(), UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "booking cancelled successfully",
		"booking": booking,
	})
}
