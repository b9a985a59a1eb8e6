package model

import "time"

// User is one registered identity. PasswordHash never leaves the service;
// APIKey is nil until the user rotates one in.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	APIKey       *string   `json:"api_key"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
