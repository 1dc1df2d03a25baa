package domain

import "time"

// Roles carried by a session. RoleGuest is never persisted; it marks an
// anonymous session holding a cart before sign-in.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// Preferences holds per-user UI and notification settings.
type Preferences struct {
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme,omitempty"`
	Language      string `json:"language,omitempty"`
}

// User is a registered account. Email is unique case-insensitively and
// stored lowercased.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Name         string      `json:"name"`
	Role         string      `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Avatar       string      `json:"avatar,omitempty"`
	Preferences  Preferences `json:"preferences"`
	LastLoginAt  *time.Time  `json:"lastLoginAt,omitempty"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}
