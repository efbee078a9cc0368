package domain

import "time"

// User represents a registered planner account.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	Name         string            `json:"name"`
	PasswordHash string            `json:"-"`
	AvatarURL    string            `json:"avatar_url,omitempty"`
	Preferences  map[string]string `json:"preferences,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}
