package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"

	"go.uber.org/zap"
)

// GroupService manages groups and their membership.
type GroupService struct {
	groups GroupStore
	users  UserStore
	logger *zap.Logger
}

func NewGroupService(groups GroupStore, users UserStore, logger *zap.Logger) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{groups: groups, users: users, logger: logger}
}

// Create stores a group whose master becomes its first player.
func (s *GroupService) Create(ctx context.Context, in *CreateGroupInput) (*models.Group, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.users.GetUserByID(ctx, in.Master); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, invalidInput("master does not reference an existing user")
		}
		return nil, fmt.Errorf("lookup master: %w", err)
	}

	group := &models.Group{
		Name:        in.Name,
		Description: in.Description,
		Chronic:     in.Chronic,
		Schedule:    in.Schedule,
		Location:    in.Location,
		Master:      in.Master,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	s.logger.Info("group created", zap.Uint("group_id", group.ID), zap.Uint("master", group.Master))

	return s.groups.GetWithRelations(ctx, group.ID)
}

// Update merges the given descriptive fields. The master never changes.
func (s *GroupService) Update(ctx context.Context, actorID, groupID uint, in *UpdateGroupInput) (*models.Group, error) {
	changes, err := in.changes()
	if err != nil {
		return nil, err
	}
	group, err := s.find(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !CanMutateGroup(actorID, group) {
		return nil, forbidden("only the group master can update the group")
	}
	if err := s.groups.Update(ctx, group, changes); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return s.groups.GetWithRelations(ctx, groupID)
}

// Delete removes the group, its memberships and its pending requests.
func (s *GroupService) Delete(ctx context.Context, actorID, groupID uint) error {
	group, err := s.find(ctx, groupID)
	if err != nil {
		return err
	}
	if !CanMutateGroup(actorID, group) {
		return forbidden("only the group master can delete the group")
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return notFound("group not found")
		}
		return fmt.Errorf("delete group: %w", err)
	}
	s.logger.Info("group deleted", zap.Uint("group_id", groupID), zap.Uint("actor", actorID))
	return nil
}

// RemovePlayer drops a membership. The master cannot be removed; other players
// may leave on their own or be removed by the master.
func (s *GroupService) RemovePlayer(ctx context.Context, actorID, groupID, playerID uint) error {
	group, err := s.find(ctx, groupID)
	if err != nil {
		return err
	}
	if playerID == group.Master {
		return invalidState(http.StatusBadRequest, "the group master cannot be removed")
	}
	if !CanMutateGroup(actorID, group) && actorID != playerID {
		return forbidden("only the group master or the player can remove a player")
	}
	if err := s.groups.RemovePlayer(ctx, groupID, playerID); err != nil {
		return fmt.Errorf("remove player: %w", err)
	}
	return nil
}

// List returns groups filtered by membership and free text.
func (s *GroupService) List(ctx context.Context, in ListGroupsInput) ([]models.Group, error) {
	filter := repositories.GroupFilter{Text: in.Text}
	if in.UserID != nil {
		if *in.UserID == 0 {
			return []models.Group{}, nil
		}
		filter.UserID = *in.UserID
	}
	groups, err := s.groups.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *GroupService) find(ctx context.Context, id uint) (*models.Group, error) {
	group, err := s.groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, notFound("group not found")
		}
		return nil, fmt.Errorf("load group: %w", err)
	}
	return group, nil
}
