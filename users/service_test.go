package users

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/degreeportal-go/apperror"
	"github.com/user/degreeportal-go/auth"
)

func as(userID string, admin bool) context.Context {
	return auth.NewContextWithSubject(context.Background(),
		auth.Authenticated{Claim: auth.Claim{UserID: userID, IsAdministrator: admin}})
}

func ptr[T any](v T) *T { return &v }

func newTestService(t *testing.T) (*UserService, *MemoryStore, auth.PasswordHasher) {
	t.Helper()
	store := NewMemoryStore()
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	svc := NewUserService(store, hasher, "123")
	require.NoError(t, svc.EnsureBootstrapIdentity(context.Background()))
	_, err := svc.Create(as("admin", true), CreateUserRequest{UserID: "alice", Password: "pw1"})
	require.NoError(t, err)
	return svc, store, hasher
}

func TestEnsureBootstrapIdentity(t *testing.T) {
	svc, store, hasher := newTestService(t)
	ctx := context.Background()

	admin, err := store.FindByUserID(ctx, BootstrapUserID)
	require.NoError(t, err)
	assert.True(t, admin.IsAdministrator)
	assert.Equal(t, "default", admin.FirstName)
	assert.Equal(t, "admin", admin.LastName)
	ok, err := hasher.Verify(ctx, "123", admin.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	// A second run keeps the existing record.
	admin.FirstName = "renamed"
	require.NoError(t, store.Update(ctx, admin))
	require.NoError(t, svc.EnsureBootstrapIdentity(ctx))
	again, err := store.FindByUserID(ctx, BootstrapUserID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", again.FirstName)
}

// racingStore misses the lookup but loses the insert, as when another
// instance bootstraps at the same time.
type racingStore struct{ *MemoryStore }

func (racingStore) FindByUserID(context.Context, string) (*auth.Identity, error) {
	return nil, apperror.NewNotFoundError(msgUserNotFound, nil)
}

func (racingStore) Insert(context.Context, *auth.Identity) error {
	return apperror.NewDuplicateKeyError(msgUserIDTaken, nil)
}

func TestEnsureBootstrapIdentity_LostRaceIsSuccess(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	svc := NewUserService(racingStore{NewMemoryStore()}, auth.NewBcryptHasher(bcrypt.MinCost), "123")
	require.NoError(t, svc.EnsureBootstrapIdentity(context.Background()))

	assert.Contains(t, logs.String(), `"msg":"bootstrap administrator created concurrently"`)
	assert.NotContains(t, logs.String(), `"msg":"bootstrap administrator created"`)
}

func TestList_RequiresAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.List(context.Background())
	assert.True(t, apperror.IsUnauthorized(err))

	_, err = svc.List(as("alice", false))
	assert.True(t, apperror.IsForbidden(err))

	list, err := svc.List(as("admin", true))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestGet_SelfOrAdmin(t *testing.T) {
	svc, _, _ := newTestService(t)

	identity, err := svc.Get(as("alice", false), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.UserID)

	_, err = svc.Get(as("alice", false), "admin")
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.Get(as("admin", true), "ghost")
	assert.True(t, apperror.IsNotFound(err))

	// Non-admins learn nothing about other userIDs, existing or not.
	_, err = svc.Get(as("alice", false), "ghost")
	assert.True(t, apperror.IsForbidden(err))
}

func TestIdentityJSONHidesPasswordHash(t *testing.T) {
	svc, _, _ := newTestService(t)
	identity, err := svc.Get(as("alice", false), "alice")
	require.NoError(t, err)
	require.NotEmpty(t, identity.PasswordHash)

	raw, err := json.Marshal(identity)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), identity.PasswordHash)
	assert.NotContains(t, string(raw), "password")
}

func TestCreateAndRegister(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(as("alice", false), CreateUserRequest{UserID: "bob", Password: "x"})
	assert.True(t, apperror.IsForbidden(err))

	_, err = svc.Create(as("admin", true), CreateUserRequest{UserID: "alice", Password: "x"})
	assert.True(t, apperror.IsDuplicateKey(err))

	_, err = svc.Create(as("admin", true), CreateUserRequest{UserID: "bob"})
	assert.True(t, apperror.IsValidationError(err))

	_, err = svc.Register(context.Background(), CreateUserRequest{UserID: "eve", Password: "x", IsAdministrator: true})
	assert.True(t, apperror.IsForbidden(err))

	identity, err := svc.Register(context.Background(), CreateUserRequest{UserID: "dave", Password: "x"})
	require.NoError(t, err)
	assert.False(t, identity.IsAdministrator)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("non-admin cannot promote themselves", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		_, err := svc.Update(as("alice", false), "alice", UpdateUserRequest{IsAdministrator: ptr(true)})
		assert.True(t, apperror.IsForbidden(err))

		stored, err := store.FindByUserID(ctx, "alice")
		require.NoError(t, err)
		assert.False(t, stored.IsAdministrator)
	})

	t.Run("non-admin cannot edit others", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Update(as("alice", false), "admin", UpdateUserRequest{FirstName: ptr("x")})
		assert.True(t, apperror.IsForbidden(err))
	})

	t.Run("self may rename and change password", func(t *testing.T) {
		svc, store, hasher := newTestService(t)
		before, err := store.FindByUserID(ctx, "alice")
		require.NoError(t, err)

		updated, err := svc.Update(as("alice", false), "alice", UpdateUserRequest{FirstName: ptr("Alice"), Password: ptr("pw2")})
		require.NoError(t, err)
		assert.Equal(t, "Alice", updated.FirstName)
		assert.NotEqual(t, before.PasswordHash, updated.PasswordHash)
		ok, err := hasher.Verify(ctx, "pw2", updated.PasswordHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("password untouched when absent", func(t *testing.T) {
		svc, store, _ := newTestService(t)
		before, err := store.FindByUserID(ctx, "alice")
		require.NoError(t, err)
		updated, err := svc.Update(as("alice", false), "alice", UpdateUserRequest{LastName: ptr("L")})
		require.NoError(t, err)
		assert.Equal(t, before.PasswordHash, updated.PasswordHash)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Update(as("alice", false), "alice", UpdateUserRequest{Password: ptr("")})
		assert.True(t, apperror.IsValidationError(err))
	})

	t.Run("userID is immutable", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		_, err := svc.Update(as("alice", false), "alice", UpdateUserRequest{UserID: ptr("mallory")})
		assert.True(t, apperror.IsForbidden(err))

		_, err = svc.Update(as("admin", true), "alice", UpdateUserRequest{UserID: ptr("mallory")})
		appErr, ok := apperror.FromError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.BadRequestError, appErr.Type)

		_, err = svc.Update(as("alice", false), "alice", UpdateUserRequest{UserID: ptr("alice"), FirstName: ptr("A")})
		assert.NoError(t, err, "repeating the current userID is not a change")
	})

	t.Run("admin may promote", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		updated, err := svc.Update(as("admin", true), "alice", UpdateUserRequest{IsAdministrator: ptr(true)})
		require.NoError(t, err)
		assert.True(t, updated.IsAdministrator)
	})
}

func TestDelete_AdminOnly(t *testing.T) {
	svc, _, _ := newTestService(t)

	assert.True(t, apperror.IsForbidden(svc.Delete(as("alice", false), "alice")))
	require.NoError(t, svc.Delete(as("admin", true), "alice"))
	assert.True(t, apperror.IsNotFound(svc.Delete(as("admin", true), "alice")))
}
