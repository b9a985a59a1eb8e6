package platform

import "github.com/google/uuid"

// NewID returns an opaque unique identifier for a new record.
func NewID() string {
	return uuid.New().String()
}
