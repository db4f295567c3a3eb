package models

import "time"

// User is a portal account. Password hashes never leave the server.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	IsAdmin      bool       `json:"isAdmin"`
	CreatedAt    time.Time  `json:"created"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`

	// Favorites maps collection -> saved item ids.
	Favorites map[Collection][]string `json:"favorites,omitempty"`
}
