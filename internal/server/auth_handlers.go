package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterPage handles GET /register
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.render(c, "register", fiber.Map{"Title": "Register"})
}

// Register handles POST /register: it creates the account and starts a
// session. A taken email sends the visitor to the login page instead of
// creating a duplicate.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email"`
		Password string `form:"password"`
		Name     string `form:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "Invalid form submission")
		return c.Redirect("/register", fiber.StatusSeeOther)
	}

	user, err := s.authService.Register(c.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeAlreadyExists:
			setFlash(c, "You've already signed up with that email, log in instead!")
			return c.Redirect("/login", fiber.StatusSeeOther)
		case models.CodeValidation:
			setFlash(c, err.Error())
			return c.Redirect("/register", fiber.StatusSeeOther)
		default:
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	if err := s.issueSession(c, user.ID, "register"); err != nil {
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if currentUser(c) != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	return s.render(c, "login", fiber.Map{"Title": "Log In"})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email"`
		Password string `form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "Invalid form submission")
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	user, err := s.authService.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		if models.IsCode(err, models.CodeInvalidCredentials) {
			setFlash(c, "Invalid email or password, please try again.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	if err := s.issueSession(c, user.ID, "login"); err != nil {
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles GET /logout: the session token is revoked server-side and
// the cookie cleared.
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSession(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
