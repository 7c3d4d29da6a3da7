package services

import (
	"context"
	"time"

	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

type GroupStore interface {
	Create(ctx context.Context, group *models.Group) error
	GetByID(ctx context.Context, id uint) (*models.Group, error)
	GetWithRelations(ctx context.Context, id uint) (*models.Group, error)
	Update(ctx context.Context, group *models.Group, changes map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IsPlayer(ctx context.Context, groupID, userID uint) (bool, error)
	RemovePlayer(ctx context.Context, groupID, userID uint) error
	List(ctx context.Context, filter repositories.GroupFilter) ([]models.Group, error)
}

type GroupRequestStore interface {
	Create(ctx context.Context, request *models.GroupRequest) error
	GetByID(ctx context.Context, id uint) (*models.GroupRequest, error)
	GetWithRelations(ctx context.Context, id uint) (*models.GroupRequest, error)
	FindByPair(ctx context.Context, groupID, userID uint) (*models.GroupRequest, error)
	ListPendingForMaster(ctx context.Context, masterID uint) ([]models.GroupRequest, error)
	Accept(ctx context.Context, id uint) (*models.GroupRequest, error)
	Delete(ctx context.Context, id uint) error
}

type ResetTokenStore interface {
	Create(ctx context.Context, token *models.LinkToken) error
	GetByToken(ctx context.Context, token string) (*models.LinkToken, error)
	Consume(ctx context.Context, token *models.LinkToken, passwordHash string) error
}

type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error
	UserID(ctx context.Context, sessionID string) (uint, error)
	Delete(ctx context.Context, sessionID string) error
}

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time
