package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"

	"go.uber.org/zap"
)

type UserService struct {
	users  UserStore
	logger *zap.Logger
}

func NewUserService(users UserStore, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, logger: logger}
}

// Create registers an account. Email and username are unique.
func (s *UserService) Create(ctx context.Context, in *CreateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", in.Email, 0, s.users.GetUserByEmail); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "username", in.Username, 0, s.users.GetUserByUsername); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:    strings.TrimSpace(in.Email),
		Username: strings.TrimSpace(in.Username),
		Password: hash,
		Avatar:   in.Avatar,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, conflict("email or username already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.logger.Info("user created", zap.Uint("user_id", user.ID))
	return user, nil
}

// Update replaces email, password and avatar of the actor's own account.
func (s *UserService) Update(ctx context.Context, actorID, userID uint, in *UpdateUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, notFound("user not found")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if actorID != user.ID {
		return nil, forbidden("users can only update their own account")
	}
	if err := s.ensureFree(ctx, "email", in.Email, user.ID, s.users.GetUserByEmail); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.Email = strings.TrimSpace(in.Email)
	user.Password = hash
	user.Avatar = in.Avatar
	if err := s.users.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, conflict("email already in use")
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, notFound("user not found")
		default:
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return user, nil
}

// ensureFree fails with Conflict when value already belongs to a user other than owner.
func (s *UserService) ensureFree(ctx context.Context, field, value string, owner uint,
	lookup func(context.Context, string) (*models.User, error)) error {
	existing, err := lookup(ctx, strings.TrimSpace(value))
	switch {
	case errors.Is(err, repositories.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("lookup %s: %w", field, err)
	case existing.ID == owner:
		return nil
	default:
		return conflict(field + " already in use")
	}
}
