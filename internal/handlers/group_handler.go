package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"roleplay/api/internal/middleware"
	"roleplay/api/internal/services"
	"roleplay/api/internal/utils"

	"go.uber.org/zap"
)

// GroupHandler serves group CRUD and membership endpoints.
type GroupHandler struct {
	Groups GroupService
	Logger *zap.Logger
}

func NewGroupHandler(groups GroupService, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{Groups: groups, Logger: logger}
}

// ListGroupsHandler handles GET /groups?user=&text=.
func (h *GroupHandler) ListGroupsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	in := services.ListGroupsInput{Text: q.Get("text")}
	if raw := strings.TrimSpace(q.Get("user")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.JSONError(w, http.StatusUnprocessableEntity, "user must be a numeric id")
			return
		}
		uid := uint(id)
		in.UserID = &uid
	}

	groups, err := h.Groups.List(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"groups": groups})
}

// CreateGroupHandler handles POST /groups.
func (h *GroupHandler) CreateGroupHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}
	in := middleware.GetValidatedRequest[*services.CreateGroupInput](r)
	group, err := h.Groups.Create(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"group": group})
}

// UpdateGroupHandler handles PATCH /groups/{groupId}.
func (h *GroupHandler) UpdateGroupHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "groupId")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "group not found")
		return
	}
	in := middleware.GetValidatedRequest[*services.UpdateGroupInput](r)
	group, err := h.Groups.Update(r.Context(), actor, id, in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"group": group})
}

// DeleteGroupHandler handles DELETE /groups/{groupId}.
func (h *GroupHandler) DeleteGroupHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "groupId")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "group not found")
		return
	}
	if err := h.Groups.Delete(r.Context(), actor, id); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, emptyObject)
}

// RemovePlayerHandler handles DELETE /groups/{groupId}/players/{playerId}.
func (h *GroupHandler) RemovePlayerHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	groupID, ok := pathID(r, "groupId")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "group not found")
		return
	}
	playerID, ok := pathID(r, "playerId")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "player not found")
		return
	}
	if err := h.Groups.RemovePlayer(r.Context(), actor, groupID, playerID); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, emptyObject)
}
