package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prodesignco/apparel-shop/internal/tokens"
)

const identityKey = "identity"

type BearerAuth struct {
	JWTSecret []byte
}

func New(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolve(c)
		if err != nil || identity == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid access token")
		}
		setIdentity(c, identity)
		return next(c)
	}
}

// RequireAdmin additionally demands the admin role. A valid non-admin token
// gets 403, not 401.
func (m *BearerAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := m.resolve(c)
		if err != nil || identity == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid access token")
		}
		if !identity.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		setIdentity(c, identity)
		return next(c)
	}
}

// OptionalAuth resolves the caller identity once if a token is present and
// valid, and lets the request through anonymously otherwise. Handlers read
// the result with IdentityFrom instead of re-parsing the token themselves.
func (m *BearerAuth) OptionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity, err := m.resolve(c); err == nil && identity != nil {
			setIdentity(c, identity)
		}
		return next(c)
	}
}

func (m *BearerAuth) resolve(c echo.Context) (*tokens.Identity, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, nil
	}

	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if raw == "" {
		return nil, nil
	}

	claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
	if err != nil || claims == nil {
		return nil, err
	}
	return tokens.IdentityFromClaims(claims)
}

func setIdentity(c echo.Context, identity *tokens.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFrom returns the resolved caller, or nil for anonymous requests.
func IdentityFrom(c echo.Context) *tokens.Identity {
	if v := c.Get(identityKey); v != nil {
		if identity, ok := v.(*tokens.Identity); ok {
			return identity
		}
	}
	return nil
}
