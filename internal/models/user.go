// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user's permission level in the system.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
)

// User represents a platform member. A user authors articles, comments
// and replies, and keeps per-user bookmark and reaction state.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Bio          string    `json:"bio"`
	AvatarKey    string    `json:"-"` // Object storage key, resolved to a URL on output
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Ref returns the display form of the user used when resolving
// author/commentator/replier references inside articles.
func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, AvatarKey: u.AvatarKey}
}

// UserRef is the resolved display identity embedded in article views.
// It never carries credentials or private state.
type UserRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarKey string    `json:"-"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}
