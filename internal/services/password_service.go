package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roleplay/api/internal/metrics"
	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResetTokenTTL is how long a reset token stays redeemable.
const ResetTokenTTL = 2 * time.Hour

// PasswordService issues and redeems password reset tokens.
type PasswordService struct {
	users    UserStore
	tokens   ResetTokenStore
	notifier ResetNotifier
	now      Clock
	newToken func() string
	logger   *zap.Logger
}

func NewPasswordService(users UserStore, tokens ResetTokenStore, notifier ResetNotifier, now Clock, logger *zap.Logger) *PasswordService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PasswordService{
		users:    users,
		tokens:   tokens,
		notifier: notifier,
		now:      now,
		newToken: func() string { return uuid.NewString() },
		logger:   logger,
	}
}

// RequestReset issues a token for the account behind the email and notifies
// its owner. An unknown email succeeds silently.
func (s *PasswordService) RequestReset(ctx context.Context, in *RequestResetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.logger.Info("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("lookup user: %w", err)
	}

	token := &models.LinkToken{Token: s.newToken(), UserID: user.ID, CreatedAt: s.now()}
	if err := s.tokens.Create(ctx, token); err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	metrics.PasswordReset("requested")

	n := ResetNotification{
		Email:    user.Email,
		Username: user.Username,
		Token:    token.Token,
		ResetURL: strings.TrimSpace(in.ResetPasswordURL),
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyPasswordReset(ctx, n); err != nil {
			s.logger.Error("reset notification not dispatched", zap.Uint("user_id", user.ID), zap.Error(err))
		}
	}
	return nil
}

// ConsumeReset sets a new password and burns the token. Expiry is checked
// before anything is written; an expired token stays in place.
func (s *PasswordService) ConsumeReset(ctx context.Context, in *ConsumeResetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	token, err := s.tokens.GetByToken(ctx, in.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return notFound("token not found")
		}
		return fmt.Errorf("lookup token: %w", err)
	}
	if token.ExpiredAt(s.now(), ResetTokenTTL) {
		metrics.PasswordReset("expired")
		return tokenExpired()
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return err
	}
	if err := s.tokens.Consume(ctx, token, hash); err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) || errors.Is(err, repositories.ErrUserNotFound) {
			return notFound("token not found")
		}
		return fmt.Errorf("consume token: %w", err)
	}
	metrics.PasswordReset("consumed")
	s.logger.Info("password reset", zap.Uint("user_id", token.UserID))
	return nil
}
