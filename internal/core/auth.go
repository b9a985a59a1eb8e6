package core

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edvin/authd/internal/model"
	"github.com/edvin/authd/internal/platform"
)

// tokenTTL is the fixed validity window of a bearer token.
const tokenTTL = 24 * time.Hour

// pgUniqueViolation is the Postgres error code for a unique constraint violation.
const pgUniqueViolation = "23505"

type AuthService struct {
	db        DB
	jwtSecret []byte
	jwtIssuer string
}

func NewAuthService(db DB, jwtSecret, jwtIssuer string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtIssuer: jwtIssuer,
	}
}

// Register creates a new user with a hashed password and no API key.
// The unique index on username decides conflicts, so concurrent registrations
// for the same name lose with ErrUsernameTaken rather than a generic failure.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           platform.NewID(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)
		 RETURNING created_at, updated_at`,
		user.ID, user.Username, user.PasswordHash,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

// Login authenticates a user by username and password, returning a signed
// token and the user on success. An unknown username and a wrong password
// both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	var user model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, username, password_hash, api_key, created_at, updated_at
		 FROM users WHERE username = $1`, username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.APIKey, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(&user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}

	return token, &user, nil
}

// IssueToken creates a signed JWT for the given user, valid for one day.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := model.JWTClaims{
		Sub:      user.ID,
		Username: user.Username,
		Iat:      now.Unix(),
		Exp:      now.Add(tokenTTL).Unix(),
		Iss:      s.jwtIssuer,
	}
	return s.signJWT(claims)
}

// ValidateToken parses and validates a JWT, returning the claims.
func (s *AuthService) ValidateToken(tokenStr string) (*model.JWTClaims, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid token format")
	}

	// Verify signature
	signingInput := parts[0] + "." + parts[1]
	expectedSig := s.hmacSign([]byte(signingInput))
	actualSig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("invalid signature encoding")
	}
	if subtle.ConstantTimeCompare(expectedSig, actualSig) != 1 {
		return nil, fmt.Errorf("invalid signature")
	}

	// Decode payload
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid payload encoding")
	}

	var claims model.JWTClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("invalid claims: %w", err)
	}

	if time.Now().Unix() > claims.Exp {
		return nil, fmt.Errorf("token expired")
	}

	return &claims, nil
}

func (s *AuthService) signJWT(claims model.JWTClaims) (string, error) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	payload := base64.RawURLEncoding.EncodeToString(claimsJSON)

	signingInput := header + "." + payload
	sig := base64.RawURLEncoding.EncodeToString(s.hmacSign([]byte(signingInput)))

	return signingInput + "." + sig, nil
}

func (s *AuthService) hmacSign(data []byte) []byte {
	mac := hmac.New(sha256.New, s.jwtSecret)
	mac.Write(data)
	return mac.Sum(nil)
}
