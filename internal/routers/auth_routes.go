package routers

import (
	"net/http"

	"roleplay/api/internal/handlers"
	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"

	"github.com/go-chi/chi/v5"
)

// AuthRoutes mounts session and password recovery endpoints.
func AuthRoutes(r *chi.Mux, sessionHandler *handlers.SessionHandler, passwordHandler *handlers.PasswordHandler, requireAuth func(http.Handler) http.Handler) {
	r.With(middleware.ValidateRequest[*services.LoginInput]()).Post("/sessions", sessionHandler.LoginHandler)
	r.With(requireAuth).Delete("/sessions", sessionHandler.LogoutHandler)

	r.With(middleware.ValidateRequest[*services.RequestResetInput]()).Post("/forgot-password", passwordHandler.ForgotPasswordHandler)
	r.With(middleware.ValidateRequest[*services.ConsumeResetInput]()).Post("/reset-password", passwordHandler.ResetPasswordHandler)
}
