package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// claimTTL bounds how long a delivered token is remembered for deduplication.
const claimTTL = 10 * time.Minute

var errSubscriptionClosed = errors.New("subscription closed")

type resetDeliverer interface {
	Deliver(n ResetNotification) error
}

// MailSubscriber delivers reset mails published on ResetChannel. Every replica
// receives each message; a SETNX claim on the token lets exactly one deliver it.
type MailSubscriber struct {
	rdb        *redis.Client
	deliverer  resetDeliverer
	logger     *zap.Logger
	instanceID string
	retryMin   time.Duration
	retryMax   time.Duration
}

func NewMailSubscriber(rdb *redis.Client, deliverer resetDeliverer, logger *zap.Logger) *MailSubscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	instanceID := uuid.New().String()[:8]
	return &MailSubscriber{
		rdb:        rdb,
		deliverer:  deliverer,
		logger:     logger.With(zap.String("instance", instanceID)),
		instanceID: instanceID,
		retryMin:   500 * time.Millisecond,
		retryMax:   30 * time.Second,
	}
}

// Run consumes notifications until ctx is cancelled, resubscribing with
// backoff whenever Redis is unreachable or the subscription drops. ready, when
// non-nil, is closed once the first subscription is confirmed.
func (s *MailSubscriber) Run(ctx context.Context, ready chan<- struct{}) error {
	var once sync.Once
	markReady := func() {
		if ready != nil {
			once.Do(func() { close(ready) })
		}
	}

	backoff := s.retryMin
	for {
		subscribed, err := s.listen(ctx, markReady)
		if ctx.Err() != nil {
			return nil
		}
		if subscribed {
			backoff = s.retryMin
		}
		s.logger.Warn("mail subscriber disconnected, retrying", zap.Error(err), zap.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > s.retryMax {
			backoff = s.retryMax
		}
	}
}

// listen runs one subscription. It reports whether the subscription was
// confirmed before it ended.
func (s *MailSubscriber) listen(ctx context.Context, onReady func()) (bool, error) {
	sub := s.rdb.Subscribe(ctx, ResetChannel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return false, err
	}
	onReady()
	s.logger.Info("mail subscriber listening", zap.String("channel", ResetChannel))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return true, errSubscriptionClosed
			}
			s.handle(ctx, msg.Payload)
		}
	}
}

func (s *MailSubscriber) handle(ctx context.Context, payload string) {
	var n ResetNotification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		s.logger.Warn("discarding malformed reset notification", zap.Error(err))
		return
	}
	if n.Email == "" || n.Token == "" {
		s.logger.Warn("discarding incomplete reset notification")
		return
	}
	claimed, err := s.rdb.SetNX(ctx, "reset_mail:"+n.Token, s.instanceID, claimTTL).Result()
	if err != nil {
		s.logger.Warn("could not claim reset notification", zap.Error(err))
		return
	}
	if !claimed {
		return
	}
	_ = s.deliverer.Deliver(n)
}
