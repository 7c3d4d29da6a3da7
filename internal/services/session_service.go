package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"
	"roleplay/api/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Principal is the authenticated caller behind a bearer token.
type Principal struct {
	UserID    uint
	SessionID string
}

// SessionService issues JWT bearer tokens backed by revocable Redis sessions.
type SessionService struct {
	users    UserStore
	sessions SessionStore
	secret   string
	ttl      time.Duration
	now      Clock
	newID    func() string
	logger   *zap.Logger
}

func NewSessionService(users UserStore, sessions SessionStore, secret string, ttl time.Duration, now Clock, logger *zap.Logger) *SessionService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		users:    users,
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
		now:      now,
		newID:    func() string { return uuid.NewString() },
		logger:   logger,
	}
}

// Login checks credentials and opens a session.
func (s *SessionService) Login(ctx context.Context, in *LoginInput) (*models.User, string, error) {
	if err := in.Validate(); err != nil {
		return nil, "", err
	}

	user, err := s.users.GetUserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", badRequest("invalid credentials")
		}
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if !passwordMatches(user.Password, in.Password) {
		return nil, "", badRequest("invalid credentials")
	}

	sessionID := s.newID()
	token, err := utils.SignSessionToken(s.secret, user.ID, sessionID, s.now(), s.ttl)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	if err := s.sessions.Save(ctx, sessionID, user.ID, s.ttl); err != nil {
		return nil, "", fmt.Errorf("save session: %w", err)
	}
	s.logger.Info("session opened", zap.Uint("user_id", user.ID))
	return user, token, nil
}

// Authenticate resolves a bearer token to a live session.
func (s *SessionService) Authenticate(ctx context.Context, token string) (*Principal, error) {
	claims, err := utils.ParseSessionToken(token, s.secret, s.now())
	if err != nil {
		return nil, unauthorized("invalid token")
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, unauthorized("invalid token")
	}

	stored, err := s.sessions.UserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, unauthorized("session expired or revoked")
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if stored != userID {
		return nil, unauthorized("invalid token")
	}
	return &Principal{UserID: userID, SessionID: claims.ID}, nil
}

// Logout revokes the session. Revoking an unknown session is not an error.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, repositories.ErrSessionNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
