package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/edvin/authd/internal/model"
)

// apiKeyBytes is the number of random bytes in a generated API key.
// Hex-encoded this yields a 32-character string.
const apiKeyBytes = 16

type UserService struct {
	db DB
}

func NewUserService(db DB) *UserService {
	return &UserService{db: db}
}

// GetByID retrieves a user by id. A valid token whose subject no longer
// exists yields ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, api_key, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.APIKey, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

// RotateAPIKey overwrites the user's API key and returns the new value.
// A non-empty supplied key is adopted verbatim; otherwise a fresh random
// key is generated. The previous key stops working immediately.
func (s *UserService) RotateAPIKey(ctx context.Context, id, supplied string) (string, error) {
	key := supplied
	if key == "" {
		raw := make([]byte, apiKeyBytes)
		if _, err := rand.Read(raw); err != nil {
			return "", fmt.Errorf("generate api key: %w", err)
		}
		key = hex.EncodeToString(raw)
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET api_key = $1, updated_at = now() WHERE id = $2`, key, id)
	if err != nil {
		return "", fmt.Errorf("update api key: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", ErrUserNotFound
	}

	return key, nil
}
