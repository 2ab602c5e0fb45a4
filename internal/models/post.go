// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// DateFormat is the human-readable publish stamp written when a post is
// created. It is never rewritten on edit.
const DateFormat = "January 2, 2006"

// Post represents a blog post in the Inkwell application.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;not null" json:"title"`
	Subtitle  string    `json:"subtitle"`
	Date      string    `gorm:"not null" json:"date"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImageURL  string    `json:"image_url"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
