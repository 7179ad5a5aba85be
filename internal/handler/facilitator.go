package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/wellnesshub/booking/internal/model"
	"github.com/wellnesshub/booking/internal/service"
)

// FacilitatorHandler serves the CRM trust domain. The channel is
// guarded by RequireCRM; the facilitator id in the path scopes every
// operation and the service layer verifies ownership against it.
type FacilitatorHandler struct {
	svc      *service.FacilitatorService
	validate *validator.Validate
}

// NewFacilitatorHandler constructs a FacilitatorHandler.
func NewFacilitatorHandler(svc *service.FacilitatorService, validate *validator.Validate) *FacilitatorHandler {
	return &FacilitatorHandler{svc: svc, validate: validate}
}

// Login handles POST /api/facilitator/login
func (h *FacilitatorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	facilitator, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "login successful",
		"facilitator": facilitator,
	})
}

// Events handles GET /api/facilitator/{id}/events
func (h *FacilitatorHandler) Events(w http.ResponseWriter, r *http.Request) {
	facilitatorID := chi.URLParam(r, "id")

	events, err := h.svc.ListEvents(r.Context(), facilitatorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"facilitator_id": facilitatorID,
		"events":         events,
		"total":          len(events),
	})
}

// Bookings handles GET /api/facilitator/{id}/bookings
func (h *FacilitatorHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	facilitatorID := chi.URLParam(r, "id")

	bookings, err := h.svc.ListBookings(r.Context(), facilitatorID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []model.BookingDetail{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"facilitator_id": facilitatorID,
		"bookings":       bookings,
		"total":          len(bookings),
	})
}

// UpdateEvent handles PUT /api/facilitator/{id}/events/{eventID}
func (h *FacilitatorHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch model.UpdateEventRequest
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body: "+err.Error())
		return
	}
	if err := h.validate.Struct(patch); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	event, err := h.svc.UpdateEvent(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eventID"), patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "event updated successfully",
		"event":   event,
	})
}

// CancelEvent handles DELETE /api/facilitator/{id}/events/{eventID}
func (h *FacilitatorHandler) CancelEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.CancelEvent(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "eventID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "event cancelled successfully",
		"event":   event,
	})
}
