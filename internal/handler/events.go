package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wellnesshub/booking/internal/model"
	"github.com/wellnesshub/booking/internal/service"
)

// EventHandler serves the public event listings.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List handles GET /api/events
// Optional query filters: type, facilitator_id.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.EventFilter{
		EventType:     r.URL.Query().Get("type"),
		FacilitatorID: r.URL.Query().Get("facilitator_id"),
	}

	events, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"total":  len(events),
	})
}

// Get handles GET /api/events/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"event": event})
}
