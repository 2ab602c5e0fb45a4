// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents a registered account in the Inkwell application.
// IsAdmin is an explicit role flag; admin-only operations check it rather
// than relying on any particular row id.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments     []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}
