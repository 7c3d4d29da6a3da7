package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"roleplay/api/internal/models"
	"roleplay/api/internal/repositories"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	*fixture
	mr    *miniredis.Miniredis
	store *repositories.SessionStore
	now   time.Time
	svc   *SessionService
	user  *models.User
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := newFixture(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	sf := &sessionFixture{
		fixture: f,
		mr:      mr,
		store:   &repositories.SessionStore{RDB: rdb},
		now:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	sf.svc = NewSessionService(f.users, sf.store, "test-secret", time.Hour, func() time.Time { return sf.now }, nil)

	user, err := NewUserService(f.users, nil).Create(context.Background(), &CreateUserInput{
		Email:    "test@test.com",
		Username: "test",
		Password: "test",
	})
	require.NoError(t, err)
	sf.user = user
	return sf
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		sf := newSessionFixture(t)

		user, token, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com", Password: "test"})
		require.NoError(t, err)
		assert.Equal(t, sf.user.ID, user.ID)
		assert.NotEmpty(t, token)

		principal, err := sf.svc.Authenticate(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, sf.user.ID, principal.UserID)
		assert.True(t, sf.mr.Exists("session:"+principal.SessionID))
	})

	t.Run("wrong password", func(t *testing.T) {
		sf := newSessionFixture(t)

		_, _, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com", Password: "nope"})
		requireKind(t, err, ErrInvalidInput, http.StatusBadRequest)
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("unknown email", func(t *testing.T) {
		sf := newSessionFixture(t)

		_, _, err := sf.svc.Login(ctx, &LoginInput{Email: "ghost@test.com", Password: "test"})
		requireKind(t, err, ErrInvalidInput, http.StatusBadRequest)
	})

	t.Run("missing credentials", func(t *testing.T) {
		sf := newSessionFixture(t)

		_, _, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com"})
		requireKind(t, err, ErrInvalidInput, http.StatusBadRequest)
	})
}

func TestSessionAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("logout revokes the token", func(t *testing.T) {
		sf := newSessionFixture(t)
		_, token, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com", Password: "test"})
		require.NoError(t, err)
		principal, err := sf.svc.Authenticate(ctx, token)
		require.NoError(t, err)

		require.NoError(t, sf.svc.Logout(ctx, principal.SessionID))
		_, err = sf.svc.Authenticate(ctx, token)
		requireKind(t, err, ErrUnauthorized, http.StatusUnauthorized)

		assert.NoError(t, sf.svc.Logout(ctx, principal.SessionID), "second logout is a no-op")
	})

	t.Run("expired token", func(t *testing.T) {
		sf := newSessionFixture(t)
		_, token, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com", Password: "test"})
		require.NoError(t, err)

		sf.now = sf.now.Add(2 * time.Hour)
		_, err = sf.svc.Authenticate(ctx, token)
		requireKind(t, err, ErrUnauthorized, http.StatusUnauthorized)
	})

	t.Run("session evicted from redis", func(t *testing.T) {
		sf := newSessionFixture(t)
		_, token, err := sf.svc.Login(ctx, &LoginInput{Email: "test@test.com", Password: "test"})
		require.NoError(t, err)

		sf.mr.FlushAll()
		_, err = sf.svc.Authenticate(ctx, token)
		requireKind(t, err, ErrUnauthorized, http.StatusUnauthorized)
	})

	t.Run("garbage token", func(t *testing.T) {
		sf := newSessionFixture(t)

		_, err := sf.svc.Authenticate(ctx, "not-a-jwt")
		requireKind(t, err, ErrUnauthorized, http.StatusUnauthorized)
	})
}
