package handlers

import (
	"net/http"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"go.uber.org/zap"
)

// SessionHandler serves login and logout.
type SessionHandler struct {
	Sessions SessionService
	Logger   *zap.Logger
}

func NewSessionHandler(sessions SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Sessions: sessions, Logger: logger}
}

// LoginHandler handles POST /sessions.
func (h *SessionHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	in := middleware.GetValidatedRequest[*services.LoginInput](r)
	user, token, err := h.Sessions.Login(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"user": user, "token": token})
}

// LogoutHandler handles DELETE /sessions.
func (h *SessionHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := h.Sessions.Logout(r.Context(), p.SessionID); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, emptyObject)
}
