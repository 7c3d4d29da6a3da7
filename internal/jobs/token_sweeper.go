package jobs

import (
	"context"
	"fmt"
	"time"

	"roleplay/api/internal/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type expiredTokenStore interface {
	DeleteCreatedBefore(ctx context.Context, before time.Time) (int64, error)
}

// TokenSweeper periodically deletes reset tokens older than the retention
// window. Retention must exceed the reset TTL: an expired row still has to be
// found so ConsumeReset reports expiry rather than an unknown token.
type TokenSweeper struct {
	tokens    expiredTokenStore
	retention time.Duration
	schedule  string
	now       func() time.Time
	logger    *zap.Logger
	cron      *cron.Cron
}

func NewTokenSweeper(tokens expiredTokenStore, retention time.Duration, schedule string, logger *zap.Logger) *TokenSweeper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSweeper{
		tokens:    tokens,
		retention: retention,
		schedule:  schedule,
		now:       time.Now,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the sweep. An empty schedule disables it.
func (s *TokenSweeper) Start() error {
	if s.schedule == "" {
		s.logger.Info("token sweeper disabled")
		return nil
	}
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("token sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token sweep: %w", err)
	}
	s.cron.Start()
	s.logger.Info("token sweeper started", zap.String("schedule", s.schedule))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *TokenSweeper) Stop() {
	<-s.cron.Stop().Done()
}

// Sweep performs one pass and returns how many tokens were removed.
func (s *TokenSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.tokens.DeleteCreatedBefore(ctx, s.now().Add(-s.retention))
	if err != nil {
		return 0, err
	}
	metrics.TokensSwept(n)
	if n > 0 {
		s.logger.Info("stale reset tokens swept", zap.Int64("count", n))
	}
	return n, nil
}
