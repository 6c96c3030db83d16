package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prodesignco/apparel-shop/internal/tokens"
)

var testSecret = []byte("test-secret")

func request(t *testing.T, mw echo.MiddlewareFunc, token string) (*tokens.Identity, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var identity *tokens.Identity
	err := mw(func(c echo.Context) error {
		identity = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return identity, err
}

func signToken(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := tokens.SignAccessToken(userID, role, testSecret, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	mw := New(testSecret)

	identity, err := request(t, mw.RequireAuth, signToken(t, 7, tokens.RoleUser))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.EqualValues(t, 7, identity.UserID)

	_, err = request(t, mw.RequireAuth, "")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)

	_, err = request(t, mw.RequireAuth, "not-a-token")
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	mw := New(testSecret)

	forged, err := tokens.SignAccessToken(7, tokens.RoleAdmin, []byte("other-secret"), time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = request(t, mw.RequireAuth, forged)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	mw := New(testSecret)

	expired, err := tokens.SignAccessToken(7, tokens.RoleUser, testSecret, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = request(t, mw.RequireAuth, expired)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := New(testSecret)

	identity, err := request(t, mw.RequireAdmin, signToken(t, 1, tokens.RoleAdmin))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.True(t, identity.IsAdmin())

	_, err = request(t, mw.RequireAdmin, signToken(t, 2, tokens.RoleUser))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Code)

	_, err = request(t, mw.RequireAdmin, "")
	he, ok = err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestOptionalAuth(t *testing.T) {
	mw := New(testSecret)

	identity, err := request(t, mw.OptionalAuth, signToken(t, 9, tokens.RoleUser))
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.EqualValues(t, 9, identity.UserID)

	identity, err = request(t, mw.OptionalAuth, "")
	require.NoError(t, err)
	assert.Nil(t, identity)

	// A garbage token falls back to anonymous instead of failing the request.
	identity, err = request(t, mw.OptionalAuth, "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, identity)
}
