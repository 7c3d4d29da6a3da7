package routers

import (
	"net/http"

	"roleplay/api/internal/handlers"
	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"

	"github.com/go-chi/chi/v5"
)

// GroupRoutes mounts group management and the join request workflow.
func GroupRoutes(r *chi.Mux, groupHandler *handlers.GroupHandler, requestHandler *handlers.GroupRequestHandler, requireAuth func(http.Handler) http.Handler) {
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", groupHandler.ListGroupsHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.With(middleware.ValidateRequest[*services.CreateGroupInput]()).Post("/", groupHandler.CreateGroupHandler)
			r.Get("/requests", requestHandler.ListRequestsHandler)

			r.With(middleware.ValidateRequest[*services.UpdateGroupInput]()).Patch("/{groupId}", groupHandler.UpdateGroupHandler)
			r.Delete("/{groupId}", groupHandler.DeleteGroupHandler)

			r.Delete("/{groupId}/players/{playerId}", groupHandler.RemovePlayerHandler)

			r.Post("/{groupId}/requests", requestHandler.CreateRequestHandler)
			r.Post("/{groupId}/requests/{requestId}/accept", requestHandler.AcceptRequestHandler)
			r.Delete("/{groupId}/requests/{requestId}", requestHandler.RejectRequestHandler)
		})
	})
}
