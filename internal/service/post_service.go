package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// PostService implements the admin-gated content operations for posts.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	AuthorID uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

// ListPosts returns every post in insertion order.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetPost returns the post with its author and comments, or NOT_FOUND.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// CreatePost publishes a new post. Only admins may publish; the check runs
// before any state is touched. The date stamp is fixed at creation time.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if err := s.requireAdmin(ctx, in.AuthorID); err != nil {
		return nil, err
	}

	const maxTitleLen = 250

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 250 characters)")
	}
	if strings.TrimSpace(in.Body) == "" {
		return nil, models.NewValidationError("Body is required")
	}

	post := &models.Post{
		Title:    title,
		Subtitle: strings.TrimSpace(in.Subtitle),
		Body:     in.Body,
		ImageURL: strings.TrimSpace(in.ImageURL),
		AuthorID: in.AuthorID,
		Date:     time.Now().Format(models.DateFormat),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	observability.PostsPublished.Inc()
	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost edits an existing post. Empty input fields leave the stored
// values unchanged, and the publish date is never restamped.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		post.Title = title
	}
	if subtitle := strings.TrimSpace(in.Subtitle); subtitle != "" {
		post.Subtitle = subtitle
	}
	if strings.TrimSpace(in.Body) != "" {
		post.Body = in.Body
	}
	if imageURL := strings.TrimSpace(in.ImageURL); imageURL != "" {
		post.ImageURL = imageURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post and its comments. Admin only.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	if err := s.requireAdmin(ctx, in.UserID); err != nil {
		return err
	}

	// Resolve first so a missing id surfaces as NOT_FOUND, not a silent no-op.
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return err
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) requireAdmin(ctx context.Context, userID uint) error {
	if s.isAdmin == nil {
		return models.NewForbiddenError("Admin access required")
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewForbiddenError("Admin access required")
	}
	return nil
}
