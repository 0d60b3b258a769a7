package services

import (
	"context"
	"testing"
	"time"

	"github.com/PandeyAnukrati/payment-app/internal/models"
	"github.com/PandeyAnukrati/payment-app/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(store *testutil.MemoryUserStore) *UserService {
	return &UserService{
		store:  store,
		logger: &testutil.MockLogger{},
		now:    func() time.Time { return testNow },
	}
}

func TestUserService_CreateAndAuthenticate(t *testing.T) {
	store := &testutil.MemoryUserStore{}
	us := newTestUserService(store)

	user, err := us.Create(context.Background(), "alice", "alice@example.com", "s3cret", "user")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cret", user.Password, "password must be stored hashed")

	authed, err := us.Authenticate(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", authed.Username)
}

func TestUserService_AuthenticateWrongPassword(t *testing.T) {
	store := &testutil.MemoryUserStore{}
	us := newTestUserService(store)

	_, err := us.Create(context.Background(), "alice", "alice@example.com", "s3cret", "user")
	require.NoError(t, err)

	_, err = us.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserService_AuthenticateUnknownUser(t *testing.T) {
	us := newTestUserService(&testutil.MemoryUserStore{})

	_, err := us.Authenticate(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestUserService_SeedDefaults(t *testing.T) {
	store := &testutil.MemoryUserStore{}
	us := newTestUserService(store)

	require.NoError(t, us.SeedDefaults(context.Background()))
	assert.Len(t, store.Users, 2)

	// Second run is a no-op on a populated collection.
	require.NoError(t, us.SeedDefaults(context.Background()))
	assert.Len(t, store.Users, 2)

	admin, err := us.Authenticate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)
}
