package models

import "time"

type Profile struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"` // For email/password auth
	Avatar   string `json:"avatar"`            // Avatar URL
	Phone    string `json:"-"`                 // Optional, for SMS notifications

	// OAuth fields
	GoogleID     string `gorm:"index" json:"-"` // Google user ID
	AuthProvider string `json:"auth_provider"`  // "email" or "google"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	User    Profile `json:"user"`
	Message string  `json:"message"`
}
