package handlers

import (
	"net/http"
	"strconv"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// writeError maps a service error onto the JSON error envelope. Unclassified
// errors are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := services.StatusOf(err)
	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		utils.JSONError(w, status, "internal server error")
		return
	}
	utils.JSONError(w, status, err.Error())
}

// pathID parses a numeric chi URL parameter.
func pathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// actorID returns the authenticated user id; it writes 401 when absent.
func actorID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "authentication required")
		return 0, false
	}
	return p.UserID, true
}

var emptyObject = struct{}{}
