package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/wellnesshub/booking/internal/auth"
)

// RouterDeps collects everything the router needs.
type RouterDeps struct {
	Logger         *zap.Logger
	Tokens         *auth.TokenManager
	CRMBearerToken string

	Auth        *AuthHandler
	Events      *EventHandler
	Bookings    *BookingHandler
	Facilitator *FacilitatorHandler
}

// NewRouter builds the chi router serving both trust domains: the
// public booking API under /api (per-user tokens) and the facilitator
// CRM API under /api/facilitator (shared channel token).
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(deps.Logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.Auth.Register)
			r.Post("/login", deps.Auth.Login)
			r.With(RequireUser(deps.Tokens)).Post("/logout", deps.Auth.Logout)
		})

		// End-user trust domain.
		r.Group(func(r chi.Router) {
			r.Use(RequireUser(deps.Tokens))
			r.Get("/events", deps.Events.List)
			r.Get("/events/{id}", deps.Events.Get)
			r.Post("/bookings", deps.Bookings.Create)
			r.Get("/bookings", deps.Bookings.List)
			r.Delete("/bookings/{id}", deps.Bookings.Cancel)
		})

		// Facilitator CRM trust domain.
		r.Route("/facilitator", func(r chi.Router) {
			r.Post("/login", deps.Facilitator.Login)

			r.Group(func(r chi.Router) {
				r.Use(RequireCRM(deps.CRMBearerToken))
				r.Get("/{id}/bookings", deps.Facilitator.Bookings)
				r.Get("/{id}/events", deps.Facilitator.Events)
				r.Put("/{id}/events/{eventID}", deps.Facilitator.UpdateEvent)
				r.Delete("/{id}/events/{eventID}", deps.Facilitator.CancelEvent)
			})
		})
	})

	return r
}
