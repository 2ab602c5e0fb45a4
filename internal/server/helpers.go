package server

import (
	"errors"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const flashCookieName = "inkwell_flash"

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 404 page and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderError(c, fiber.StatusNotFound, "Page not found")
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// setFlash stores a one-shot message for the next rendered page.
func setFlash(c *fiber.Ctx, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		Expires:  time.Now().Add(5 * time.Minute),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// popFlash reads and clears the pending flash message, if any.
func popFlash(c *fiber.Ctx) string {
	raw := c.Cookies(flashCookieName)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	message, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return message
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// currentUser returns the user loaded by LoadSession, or nil.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// render wraps c.Render with the data every page needs: the current user,
// whether they are the admin, and any pending flash message.
func (s *Server) render(c *fiber.Ctx, view string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}

	user := currentUser(c)
	data["CurrentUser"] = user
	data["IsAdmin"] = user != nil && user.IsAdmin
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = popFlash(c)
	}

	return c.Render(view, data)
}

// renderError writes an error page with the given status.
func (s *Server) renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("error", fiber.Map{
		"Status":      status,
		"Message":     message,
		"CurrentUser": currentUser(c),
	})
}
