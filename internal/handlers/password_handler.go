package handlers

import (
	"net/http"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"

	"go.uber.org/zap"
)

// PasswordHandler serves the forgot/reset password flow.
type PasswordHandler struct {
	Passwords PasswordService
	Logger    *zap.Logger
}

func NewPasswordHandler(passwords PasswordService, logger *zap.Logger) *PasswordHandler {
	return &PasswordHandler{Passwords: passwords, Logger: logger}
}

// ForgotPasswordHandler handles POST /forgot-password. It answers 204 whether
// or not the email belongs to an account.
func (h *PasswordHandler) ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	in := middleware.GetValidatedRequest[*services.RequestResetInput](r)
	if err := h.Passwords.RequestReset(r.Context(), in); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPasswordHandler handles POST /reset-password.
func (h *PasswordHandler) ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	in := middleware.GetValidatedRequest[*services.ConsumeResetInput](r)
	if err := h.Passwords.ConsumeReset(r.Context(), in); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
