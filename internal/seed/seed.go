// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"errors"
	"fmt"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// EnsureAdmin creates the administrator account from configuration if it
// does not already exist. It is safe to run on every startup.
func EnsureAdmin(db *gorm.DB, cfg *config.Config) (*models.User, error) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required to seed the admin account")
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		if !existing.IsAdmin {
			existing.IsAdmin = true
			if err := db.Save(&existing).Error; err != nil {
				return nil, fmt.Errorf("failed to promote existing admin user: %w", err)
			}
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Name:         cfg.AdminName,
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}
	return admin, nil
}

// Run populates the database with demo readers, posts, and comments.
// Intended for development environments only.
func Run(db *gorm.DB, admin *models.User, opts Options) error {
	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return err
		}
	}

	readers := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := fakeReader(db)
		if err != nil {
			return err
		}
		readers = append(readers, user)
	}

	for i := 0; i < opts.NumPosts; i++ {
		post := &models.Post{
			Title:    fmt.Sprintf("%s #%d", gofakeit.BookTitle(), i+1),
			Subtitle: gofakeit.Sentence(6),
			Date:     time.Now().AddDate(0, 0, -i).Format(models.DateFormat),
			Body:     gofakeit.Paragraph(3, 4, 12, " "),
			ImageURL: gofakeit.ImageURL(640, 480),
			AuthorID: admin.ID,
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to seed post: %w", err)
		}

		for _, reader := range readers {
			if gofakeit.Bool() {
				continue
			}
			comment := &models.Comment{
				Text:     gofakeit.Sentence(10),
				AuthorID: reader.ID,
				PostID:   post.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to seed comment: %w", err)
			}
		}
	}

	return nil
}

// Clean removes all seeded content. Admin accounts are kept.
func Clean(db *gorm.DB) error {
	if err := db.Where("1 = 1").Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("failed to clean comments: %w", err)
	}
	if err := db.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
		return fmt.Errorf("failed to clean posts: %w", err)
	}
	if err := db.Where("is_admin = ?", false).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("failed to clean users: %w", err)
	}
	return nil
}

func fakeReader(db *gorm.DB) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(gofakeit.Password(true, true, true, false, false, 12)), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Email:        gofakeit.Email(),
		PasswordHash: string(hash),
		Name:         gofakeit.Name(),
	}
	if err := db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to seed user: %w", err)
	}
	return user, nil
}
