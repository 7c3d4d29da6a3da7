package handlers

import (
	"net/http"
	"strconv"

	"roleplay/api/internal/utils"

	"go.uber.org/zap"
)

// GroupRequestHandler serves the join request workflow.
type GroupRequestHandler struct {
	Requests GroupRequestService
	Logger   *zap.Logger
}

func NewGroupRequestHandler(requests GroupRequestService, logger *zap.Logger) *GroupRequestHandler {
	return &GroupRequestHandler{Requests: requests, Logger: logger}
}

// ListRequestsHandler handles GET /groups/requests?master=.
func (h *GroupRequestHandler) ListRequestsHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := actorID(w, r); !ok {
		return
	}
	master, err := strconv.ParseUint(r.URL.Query().Get("master"), 10, 64)
	if err != nil || master == 0 {
		utils.JSONError(w, http.StatusUnprocessableEntity, "master is required")
		return
	}
	requests, err := h.Requests.List(r.Context(), uint(master))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"groupRequests": requests})
}

// CreateRequestHandler handles POST /groups/{groupId}/requests for the caller.
func (h *GroupRequestHandler) CreateRequestHandler(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorID(w, r)
	if !ok {
		return
	}
	groupID, ok := pathID(r, "groupId")
	if !ok {
		utils.JSONError(w, http.StatusNotFound, "group not found")
		return
	}
	request, err := h.Requests.Create(r.Context(), groupID, actor)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]any{"groupRequest": request})
}

// AcceptRequestHandler handles POST /groups/{groupId}/requests/{requestId}/accept.
func (h *GroupRequestHandler) AcceptRequestHandler(w http.ResponseWriter, r *http.Request) {
	actor, groupID, requestID, ok := h.requestPath(w, r)
	if !ok {
		return
	}
	request, err := h.Requests.Accept(r.Context(), actor, groupID, requestID)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]any{"groupRequest": request})
}

// RejectRequestHandler handles DELETE /groups/{groupId}/requests/{requestId}.
func (h *GroupRequestHandler) RejectRequestHandler(w http.ResponseWriter, r *http.Request) {
	actor, groupID, requestID, ok := h.requestPath(w, r)
	if !ok {
		return
	}
	if err := h.Requests.Reject(r.Context(), actor, groupID, requestID); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, emptyObject)
}

func (h *GroupRequestHandler) requestPath(w http.ResponseWriter, r *http.Request) (actor, groupID, requestID uint, ok bool) {
	if actor, ok = actorID(w, r); !ok {
		return
	}
	if groupID, ok = pathID(r, "groupId"); !ok {
		utils.JSONError(w, http.StatusNotFound, "group not found")
		return
	}
	if requestID, ok = pathID(r, "requestId"); !ok {
		utils.JSONError(w, http.StatusNotFound, "group request not found")
		return
	}
	return
}
