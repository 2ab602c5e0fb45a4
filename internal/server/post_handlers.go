package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Index handles GET /
func (s *Server) Index(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.Context())
	if err != nil {
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
	return s.render(c, "index", fiber.Map{
		"Title": "Inkwell",
		"Posts": posts,
	})
}

// ShowPost handles GET /post/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post doesn't exist")
		}
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	return s.render(c, "post", fiber.Map{
		"Title": post.Title,
		"Post":  post,
	})
}

// CreateComment handles POST /post/:id. Anonymous visitors are flashed and
// redirected to the login page rather than rejected outright.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `form:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "Invalid form submission")
		return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
	}

	_, err = s.commentService.AddComment(c.Context(), service.CreateCommentInput{
		AuthorID: s.currentUserID(c),
		PostID:   id,
		Text:     req.Text,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeUnauthenticated:
			setFlash(c, "You need to log in or register to comment.")
			return c.Redirect("/login", fiber.StatusSeeOther)
		case models.CodeNotFound:
			return s.renderError(c, fiber.StatusNotFound, "That post doesn't exist")
		case models.CodeValidation:
			setFlash(c, err.Error())
			return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
		default:
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return c.Redirect("/post/"+c.Params("id"), fiber.StatusSeeOther)
}

// NewPostPage handles GET /new-post (admin only, enforced by AdminRequired).
func (s *Server) NewPostPage(c *fiber.Ctx) error {
	return s.render(c, "make-post", fiber.Map{
		"Title":   "New Post",
		"Heading": "New Post",
		"Action":  "/new-post",
	})
}

// CreatePost handles POST /new-post
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `form:"title"`
		Subtitle string `form:"subtitle"`
		Body     string `form:"body"`
		ImageURL string `form:"img_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "Invalid form submission")
		return c.Redirect("/new-post", fiber.StatusSeeOther)
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: s.currentUserID(c),
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeForbidden:
			return s.renderError(c, fiber.StatusForbidden, "You don't have permission to do that")
		case models.CodeDuplicateTitle, models.CodeValidation:
			setFlash(c, err.Error())
			return c.Redirect("/new-post", fiber.StatusSeeOther)
		default:
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return c.Redirect("/post/"+itoa(post.ID), fiber.StatusSeeOther)
}

// EditPostPage handles GET /edit-post/:id with the form pre-filled.
func (s *Server) EditPostPage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), id)
	if err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return s.renderError(c, fiber.StatusNotFound, "That post doesn't exist")
		}
		return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
	}

	return s.render(c, "make-post", fiber.Map{
		"Title":   "Edit Post",
		"Heading": "Edit Post",
		"Action":  "/edit-post/" + c.Params("id"),
		"Post":    post,
	})
}

// UpdatePost handles POST /edit-post/:id. The publish date is never
// restamped on edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title    string `form:"title"`
		Subtitle string `form:"subtitle"`
		Body     string `form:"body"`
		ImageURL string `form:"img_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		setFlash(c, "Invalid form submission")
		return c.Redirect("/edit-post/"+c.Params("id"), fiber.StatusSeeOther)
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		UserID:   s.currentUserID(c),
		PostID:   id,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Body:     req.Body,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeForbidden:
			return s.renderError(c, fiber.StatusForbidden, "You don't have permission to do that")
		case models.CodeNotFound:
			return s.renderError(c, fiber.StatusNotFound, "That post doesn't exist")
		case models.CodeDuplicateTitle, models.CodeValidation:
			setFlash(c, err.Error())
			return c.Redirect("/edit-post/"+c.Params("id"), fiber.StatusSeeOther)
		default:
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return c.Redirect("/post/"+itoa(post.ID), fiber.StatusSeeOther)
}

// DeletePost handles GET /delete/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	err = s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: s.currentUserID(c),
		PostID: id,
	})
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeForbidden:
			return s.renderError(c, fiber.StatusForbidden, "You don't have permission to do that")
		case models.CodeNotFound:
			return s.renderError(c, fiber.StatusNotFound, "That post doesn't exist")
		default:
			return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
		}
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}
