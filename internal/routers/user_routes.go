package routers

import (
	"net/http"

	"roleplay/api/internal/handlers"
	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"

	"github.com/go-chi/chi/v5"
)

func UserRoutes(r *chi.Mux, userHandler *handlers.UserHandler, requireAuth func(http.Handler) http.Handler) {
	r.Route("/users", func(r chi.Router) {
		r.With(middleware.ValidateRequest[*services.CreateUserInput]()).Post("/", userHandler.CreateUserHandler)
		r.With(requireAuth, middleware.ValidateRequest[*services.UpdateUserInput]()).Put("/{id}", userHandler.UpdateUserHandler)
	})
}
