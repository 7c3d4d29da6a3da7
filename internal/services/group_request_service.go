package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"roleplay/api/internal/metrics"
	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"

	"go.uber.org/zap"
)

// GroupRequestService runs the join request workflow:
// PENDING -> ACCEPTED (requester becomes a player) or PENDING -> deleted (rejected).
type GroupRequestService struct {
	requests GroupRequestStore
	groups   GroupStore
	logger   *zap.Logger
}

func NewGroupRequestService(requests GroupRequestStore, groups GroupStore, logger *zap.Logger) *GroupRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupRequestService{requests: requests, groups: groups, logger: logger}
}

// Create files a pending request from userID to join groupID.
func (s *GroupRequestService) Create(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error) {
	if userID == 0 {
		return nil, invalidInput("user is required")
	}
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return nil, err
	}

	if _, err := s.requests.FindByPair(ctx, groupID, userID); err == nil {
		return nil, conflict("a request for this group already exists")
	} else if !errors.Is(err, repositories.ErrGroupRequestNotFound) {
		return nil, fmt.Errorf("lookup request: %w", err)
	}

	isPlayer, err := s.groups.IsPlayer(ctx, groupID, userID)
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if isPlayer {
		return nil, invalidState(http.StatusUnprocessableEntity, "user is already a player of this group")
	}

	request := &models.GroupRequest{GroupID: groupID, UserID: userID, Status: models.GroupRequestPending}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, conflict("a request for this group already exists")
		}
		return nil, fmt.Errorf("create request: %w", err)
	}
	metrics.GroupRequest("created")
	s.logger.Info("group request created",
		zap.Uint("request_id", request.ID), zap.Uint("group_id", groupID), zap.Uint("user_id", userID))

	return s.requests.GetWithRelations(ctx, request.ID)
}

// List returns the pending requests addressed to every group masterID owns.
func (s *GroupRequestService) List(ctx context.Context, masterID uint) ([]models.GroupRequest, error) {
	if masterID == 0 {
		return nil, invalidInput("master is required")
	}
	requests, err := s.requests.ListPendingForMaster(ctx, masterID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// Accept moves a pending request to ACCEPTED and adds the requester as a player.
func (s *GroupRequestService) Accept(ctx context.Context, actorID, groupID, requestID uint) (*models.GroupRequest, error) {
	if err := s.authorize(ctx, actorID, groupID, requestID); err != nil {
		return nil, err
	}

	if _, err := s.requests.Accept(ctx, requestID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRequestNotPending):
			return nil, invalidState(http.StatusBadRequest, "group request was already accepted")
		case errors.Is(err, repositories.ErrGroupRequestNotFound):
			return nil, notFound("group request not found")
		default:
			return nil, fmt.Errorf("accept request: %w", err)
		}
	}
	metrics.GroupRequest("accepted")
	s.logger.Info("group request accepted", zap.Uint("request_id", requestID), zap.Uint("group_id", groupID))

	return s.requests.GetWithRelations(ctx, requestID)
}

// Reject deletes the request. The requester may file a new one afterwards.
func (s *GroupRequestService) Reject(ctx context.Context, actorID, groupID, requestID uint) error {
	if err := s.authorize(ctx, actorID, groupID, requestID); err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, requestID); err != nil {
		if errors.Is(err, repositories.ErrGroupRequestNotFound) {
			return notFound("group request not found")
		}
		return fmt.Errorf("reject request: %w", err)
	}
	metrics.GroupRequest("rejected")
	s.logger.Info("group request rejected", zap.Uint("request_id", requestID), zap.Uint("group_id", groupID))
	return nil
}

// authorize resolves the request inside its group and checks the actor masters it.
func (s *GroupRequestService) authorize(ctx context.Context, actorID, groupID, requestID uint) error {
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return err
	}
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupRequestNotFound) {
			return notFound("group request not found")
		}
		return fmt.Errorf("load request: %w", err)
	}
	if request.GroupID != group.ID {
		return notFound("group request not found")
	}
	if !CanMutateGroup(actorID, group) {
		return forbidden("only the group master can answer requests")
	}
	return nil
}

func (s *GroupRequestService) loadGroup(ctx context.Context, groupID uint) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, notFound("group not found")
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	return group, nil
}
