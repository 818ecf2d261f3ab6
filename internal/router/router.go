package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/echologistics/carrier-intake/internal/auth"
	"github.com/echologistics/carrier-intake/internal/handler"
	mw "github.com/echologistics/carrier-intake/internal/middleware"
)

func New(
	jwtSecret string,
	authH *handler.AuthHandler,
	agreementH *handler.AgreementHandler,
	wizardH *handler.WizardHandler,
	adminH *handler.AdminHandler,
	dashH *handler.DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS)

	// Tracking deep link
	r.Get("/track", agreementH.Track)

	r.Route("/api/v1", func(r chi.Router) {
		// Public intake surface
		r.Post("/auth/login", authH.Login)
		r.Post("/agreements", agreementH.Submit)
		r.Get("/agreements/{trackingId}", agreementH.Get)

		r.Post("/wizard", wizardH.Create)
		r.Get("/wizard/{sessionId}", wizardH.Get)
		r.Post("/wizard/{sessionId}/next", wizardH.Next)
		r.Post("/wizard/{sessionId}/back", wizardH.Back)
		r.Post("/wizard/{sessionId}/reset", wizardH.Reset)

		// Admin surface, gated by the session token
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(jwtSecret))

			r.Get("/auth/me", authH.Me)
			r.Get("/dashboard", dashH.Dashboard)
			r.Get("/agreements", adminH.List)
			r.Patch("/agreements/{trackingId}/status", adminH.UpdateStatus)
			r.Delete("/agreements/{trackingId}", adminH.Delete)
		})
	})

	return r
}
