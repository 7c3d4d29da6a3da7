package handlers

import (
	"context"

	"roleplay/api/internal/models"
	"roleplay/api/internal/services"
)

// UserService captures the account operations required by handlers.
type UserService interface {
	Create(ctx context.Context, in *services.CreateUserInput) (*models.User, error)
	Update(ctx context.Context, actorID, userID uint, in *services.UpdateUserInput) (*models.User, error)
}

type SessionService interface {
	Login(ctx context.Context, in *services.LoginInput) (*models.User, string, error)
	Logout(ctx context.Context, sessionID string) error
}

type PasswordService interface {
	RequestReset(ctx context.Context, in *services.RequestResetInput) error
	ConsumeReset(ctx context.Context, in *services.ConsumeResetInput) error
}

type GroupService interface {
	Create(ctx context.Context, in *services.CreateGroupInput) (*models.Group, error)
	Update(ctx context.Context, actorID, groupID uint, in *services.UpdateGroupInput) (*models.Group, error)
	Delete(ctx context.Context, actorID, groupID uint) error
	RemovePlayer(ctx context.Context, actorID, groupID, playerID uint) error
	List(ctx context.Context, in services.ListGroupsInput) ([]models.Group, error)
}

type GroupRequestService interface {
	Create(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error)
	List(ctx context.Context, masterID uint) ([]models.GroupRequest, error)
	Accept(ctx context.Context, actorID, groupID, requestID uint) (*models.GroupRequest, error)
	Reject(ctx context.Context, actorID, groupID, requestID uint) error
}
