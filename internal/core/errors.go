package core

import "errors"

var (
	// ErrUsernameTaken is returned when a registration collides with an
	// existing username. The unique index on users.username is the source
	// of truth, so concurrent registrations lose cleanly here.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when an id from a valid token no longer
	// resolves to a user record.
	ErrUserNotFound = errors.New("user not found")
)
