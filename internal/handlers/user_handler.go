package handlers

import (
	"net/http"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"go.uber.org/zap"
)

// UserHandler serves account endpoints.
type UserHandler struct {
	Users  UserService
	Logger *zap.Logger
}

func NewUserHandler(users UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Users: users, Logger: logger}
}

// CreateUserHandler handles POST /users.
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	in := middleware.GetValidatedRequest[*services.CreateUserInput](r)
	user, err := h.Users.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"user": user})
}

// UpdateUserHandler handles PUT /users/{id}.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "user not found")
		return
	}
	in := middleware.GetValidatedRequest[*services.UpdateUserInput](r)
	user, err := h.Users.Update(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"user": user})
}
