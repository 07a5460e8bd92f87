package models

import "time"

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Not serialized
	DateOfBirth  *string   `json:"dateOfBirth"`
	PhotoURL     *string   `json:"photoUrl"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	User      *User  `json:"user"`
}
