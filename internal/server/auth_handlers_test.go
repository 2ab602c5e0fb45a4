package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	app, _, db := setupTestServer(t)

	t.Run("Success Starts Session", func(t *testing.T) {
		resp, err := app.Test(postForm("/register", url.Values{
			"email":    {"reader@example.com"},
			"password": {"strongpassword"},
			"name":     {"Reader"},
		}), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		token := cookieValue(resp, sessionCookieName)
		require.NotEmpty(t, token)

		// The session is live: the front page now greets a logged-in user.
		home, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, "/", nil), token), -1)
		require.NoError(t, err)
		body := readBody(t, home)
		assert.Contains(t, body, "Log Out")
		assert.NotContains(t, body, "Register")

		var user models.User
		require.NoError(t, db.Where("email = ?", "reader@example.com").First(&user).Error)
		assert.False(t, user.IsAdmin)
		assert.NotEqual(t, "strongpassword", user.PasswordHash)
	})

	t.Run("Duplicate Email Redirects To Login", func(t *testing.T) {
		resp, err := app.Test(postForm("/register", url.Values{
			"email":    {"reader@example.com"},
			"password": {"anotherpassword"},
			"name":     {"Impostor"},
		}), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/login", resp.Header.Get("Location"))
		assert.Empty(t, cookieValue(resp, sessionCookieName))

		// The flash message lands on the login page.
		flash := cookieValue(resp, flashCookieName)
		require.NotEmpty(t, flash)
		loginReq := httptest.NewRequest(http.MethodGet, "/login", nil)
		loginReq.AddCookie(&http.Cookie{Name: flashCookieName, Value: flash})
		loginResp, err := app.Test(loginReq, -1)
		require.NoError(t, err)
		assert.Contains(t, readBody(t, loginResp), "You&#39;ve already signed up with that email, log in instead!")

		var count int64
		db.Model(&models.User{}).Where("email = ?", "reader@example.com").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Validation Redirects Back", func(t *testing.T) {
		resp, err := app.Test(postForm("/register", url.Values{
			"email":    {"short@example.com"},
			"password": {"short"},
			"name":     {"Shorty"},
		}), -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/register", resp.Header.Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	app, _, db := setupTestServer(t)
	createUser(t, db, "reader@example.com", "correct-password", false)

	t.Run("Success", func(t *testing.T) {
		token := login(t, app, "reader@example.com", "correct-password")
		assert.NotEmpty(t, token)
	})

	t.Run("Wrong Password And Unknown Email Look Identical", func(t *testing.T) {
		var locations, flashes []string
		for _, form := range []url.Values{
			{"email": {"reader@example.com"}, "password": {"wrong-password"}},
			{"email": {"stranger@example.com"}, "password": {"correct-password"}},
		} {
			resp, err := app.Test(postForm("/login", form), -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
			locations = append(locations, resp.Header.Get("Location"))
			flashes = append(flashes, cookieValue(resp, flashCookieName))
			assert.Empty(t, cookieValue(resp, sessionCookieName))
			_ = resp.Body.Close()
		}

		assert.Equal(t, locations[0], locations[1])
		assert.Equal(t, flashes[0], flashes[1])
		require.NotEmpty(t, flashes[0])
	})

	t.Run("Flash Shown Once", func(t *testing.T) {
		resp, err := app.Test(postForm("/login", url.Values{
			"email":    {"reader@example.com"},
			"password": {"wrong"},
		}), -1)
		require.NoError(t, err)
		flash := cookieValue(resp, flashCookieName)
		_ = resp.Body.Close()
		require.NotEmpty(t, flash)

		req := httptest.NewRequest(http.MethodGet, "/login", nil)
		req.AddCookie(&http.Cookie{Name: flashCookieName, Value: flash})
		shown, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Contains(t, readBody(t, shown), "Invalid email or password, please try again.")
		// The response clears the cookie so the message does not repeat.
		assert.Empty(t, cookieValue(shown, flashCookieName))
	})
}

func TestLogout(t *testing.T) {
	app, _, db := setupTestServer(t)
	createUser(t, db, "reader@example.com", "correct-password", false)
	token := login(t, app, "reader@example.com", "correct-password")

	resp, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, "/logout", nil), token), -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	// The cookie is expired in the response.
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			assert.Empty(t, c.Value)
		}
	}
}

func TestAuthPagesRedirectWhenLoggedIn(t *testing.T) {
	app, _, db := setupTestServer(t)
	createUser(t, db, "reader@example.com", "correct-password", false)
	token := login(t, app, "reader@example.com", "correct-password")

	for _, path := range []string{"/login", "/register"} {
		resp, err := app.Test(withSession(httptest.NewRequest(http.MethodGet, path, nil), token), -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		_ = resp.Body.Close()
	}
}
