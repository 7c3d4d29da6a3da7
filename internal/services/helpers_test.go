package services

import (
	"errors"
	"os"
	"testing"
	"time"

	"roleplay/api/internal/repositories"
	"roleplay/api/internal/testhelpers"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	generatePasswordHash = func(password []byte, _ int) ([]byte, error) {
		return bcrypt.GenerateFromPassword(password, bcrypt.MinCost)
	}
	os.Exit(m.Run())
}

type fixture struct {
	db       *gorm.DB
	users    *repositories.UserRepository
	groups   *repositories.GroupRepository
	requests *repositories.GroupRequestRepository
	tokens   *repositories.TokenRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testhelpers.SetupTestDB(t)
	return &fixture{
		db:       db,
		users:    &repositories.UserRepository{DB: db},
		groups:   &repositories.GroupRepository{DB: db},
		requests: &repositories.GroupRequestRepository{DB: db},
		tokens:   &repositories.TokenRepository{DB: db},
	}
}

func fixedClock(at time.Time) Clock {
	return func() time.Time { return at }
}

// requireKind asserts err carries kind and surfaces as status.
func requireKind(t *testing.T, err error, kind error, status int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "expected %v, got %v", kind, err)
	require.Equal(t, status, StatusOf(err))
}

func strPtr(s string) *string { return &s }

func uintPtr(u uint) *uint { return &u }
