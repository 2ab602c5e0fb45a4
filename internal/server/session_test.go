package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSessionTestApp wires a bare Server (no DB) with a /whoami route that
// reports the identity resolved from the session cookie.
func newSessionTestApp(t *testing.T, rdb *redis.Client) (*fiber.App, *Server) {
	t.Helper()
	s := &Server{
		config: &config.Config{SessionSecret: "test-session-secret", Env: "test"},
		redis:  rdb,
	}
	app := fiber.New()
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(itoa(s.currentUserID(c)))
	})
	return app, s
}

func whoami(t *testing.T, app *fiber.App, token string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return readBody(t, resp)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	app, s := newSessionTestApp(t, nil)

	token, err := s.signSessionToken(42)
	require.NoError(t, err)

	assert.Equal(t, "42", whoami(t, app, token))

	claims, err := s.parseSessionClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims["sub"])
	assert.Equal(t, "inkwell", claims["iss"])
	assert.NotEmpty(t, claims["jti"])
}

func TestSessionTokenRejection(t *testing.T) {
	app, s := newSessionTestApp(t, nil)

	token, err := s.signSessionToken(42)
	require.NoError(t, err)

	t.Run("No Cookie", func(t *testing.T) {
		assert.Equal(t, "0", whoami(t, app, ""))
	})

	t.Run("Tampered Token", func(t *testing.T) {
		assert.Equal(t, "0", whoami(t, app, token+"x"))
	})

	t.Run("Garbage Token", func(t *testing.T) {
		assert.Equal(t, "0", whoami(t, app, "not.a.token"))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := &Server{config: &config.Config{SessionSecret: "a-different-secret"}}
		foreign, err := other.signSessionToken(42)
		require.NoError(t, err)
		assert.Equal(t, "0", whoami(t, app, foreign))
	})

	t.Run("No Secret Configured", func(t *testing.T) {
		bare := &Server{config: &config.Config{}}
		_, err := bare.signSessionToken(1)
		assert.Error(t, err)
	})
}

func TestSessionRevocation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	app, s := newSessionTestApp(t, rdb)

	token, err := s.signSessionToken(42)
	require.NoError(t, err)
	assert.Equal(t, "42", whoami(t, app, token))

	s.revokeSessionToken(context.Background(), token)

	// The revocation marker carries the token's jti.
	claims, err := s.parseSessionClaims(token)
	require.NoError(t, err)
	jti := claims["jti"].(string)
	assert.True(t, mr.Exists(revocationKey(jti)))

	// A revoked token no longer resolves to a user.
	assert.Equal(t, "0", whoami(t, app, token))

	// A fresh token for the same user still works.
	fresh, err := s.signSessionToken(42)
	require.NoError(t, err)
	assert.Equal(t, "42", whoami(t, app, fresh))
}

func TestSessionRevocationWithoutRedis(t *testing.T) {
	app, s := newSessionTestApp(t, nil)

	token, err := s.signSessionToken(7)
	require.NoError(t, err)

	// Without Redis, revocation is a no-op; the cookie clear is the only defense.
	s.revokeSessionToken(context.Background(), token)
	assert.Equal(t, "7", whoami(t, app, token))
}
