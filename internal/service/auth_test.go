package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodesignco/apparel-shop/internal/tokens"
)

var testSecret = []byte("test-secret")

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{Repo: newTestRepo(t), JWTSecret: testSecret}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	res, err := svc.Register(ctx, "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)
	assert.False(t, res.IsAdmin)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)

	claims, err := tokens.AccessClaimsFromToken(res.AccessToken, testSecret)
	require.NoError(t, err)
	identity, err := tokens.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, identity.UserID)
	assert.Equal(t, tokens.RoleUser, identity.Role)

	login, err := svc.Login(ctx, "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	res, err := svc.Register(ctx, "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, &tokens.Identity{UserID: res.User.ID, Role: tokens.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)

	_, err = svc.CurrentUser(ctx, &tokens.Identity{UserID: 9999, Role: tokens.RoleUser})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "alice@example.com", "other", "Alice", "Again")
	require.ErrorIs(t, err, ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(context.Background(), "", "s3cret", "", "")
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.Register(context.Background(), "alice@example.com", "", "", "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	require.ErrorIs(t, err, ErrForbidden)
}

func TestAdminRoleInToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	res, err := svc.Register(ctx, "admin@example.com", "s3cret", "Admin", "User")
	require.NoError(t, err)

	res.User.IsAdmin = true
	require.NoError(t, svc.Repo.DB.Save(res.User).Error)

	login, err := svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.True(t, login.IsAdmin)

	claims, err := tokens.AccessClaimsFromToken(login.AccessToken, testSecret)
	require.NoError(t, err)
	identity, err := tokens.IdentityFromClaims(claims)
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin())
}
