package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps live session ids in Redis so bearer tokens can be revoked.
type SessionStore struct {
	RDB *redis.Client
}

func (s *SessionStore) Save(ctx context.Context, sessionID string, userID uint, ttl time.Duration) error {
	return s.RDB.Set(ctx, sessionKeyPrefix+sessionID, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

// UserID returns the owner of a live session.
func (s *SessionStore) UserID(ctx context.Context, sessionID string) (uint, error) {
	raw, err := s.RDB.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrSessionNotFound
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	n, err := s.RDB.Del(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
