package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	mw "github.com/edvin/authd/internal/api/middleware"
	"github.com/edvin/authd/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withUser injects an authenticated user into the request context, as the
// Auth middleware would.
func withUser(r *http.Request, user *model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), mw.UserKey, user))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// ---------- In-memory fake DB ----------

// fakeDB implements core.DB over an in-memory user table, dispatching on the
// small fixed set of statements the services issue. It lets flow tests run
// the real services end to end without Postgres.
type fakeDB struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by id
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[string]*model.User)}
}

type fakeRow struct {
	scanFunc func(dest ...any) error
}

func (r *fakeRow) Scan(dest ...any) error {
	return r.scanFunc(dest...)
}

func (f *fakeDB) userCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

func (f *fakeDB) deleteAllUsers() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users = make(map[string]*model.User)
}

func (f *fakeDB) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if strings.Contains(sql, "UPDATE users SET api_key") {
		key := arguments[0].(string)
		id := arguments[1].(string)
		u, ok := f.users[id]
		if !ok {
			return pgconn.NewCommandTag("UPDATE 0"), nil
		}
		u.APIKey = &key
		u.UpdatedAt = time.Now()
		return pgconn.NewCommandTag("UPDATE 1"), nil
	}
	return pgconn.CommandTag{}, nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("fakeDB: no service issues Query")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case strings.Contains(sql, "INSERT INTO users"):
		id := args[0].(string)
		username := args[1].(string)
		passwordHash := args[2].(string)
		for _, u := range f.users {
			if u.Username == username {
				return &fakeRow{scanFunc: func(dest ...any) error {
					return &pgconn.PgError{Code: "23505", ConstraintName: "users_username_idx"}
				}}
			}
		}
		now := time.Now()
		f.users[id] = &model.User{
			ID:           id,
			Username:     username,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return &fakeRow{scanFunc: func(dest ...any) error {
			*(dest[0].(*time.Time)) = now
			*(dest[1].(*time.Time)) = now
			return nil
		}}

	case strings.Contains(sql, "WHERE username"):
		username := args[0].(string)
		for _, u := range f.users {
			if u.Username == username {
				return userRow(u)
			}
		}
		return &fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}

	case strings.Contains(sql, "WHERE id"):
		if u, ok := f.users[args[0].(string)]; ok {
			return userRow(u)
		}
		return &fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
	}

	return &fakeRow{scanFunc: func(dest ...any) error { return pgx.ErrNoRows }}
}

func userRow(u *model.User) *fakeRow {
	// Copy so later mutations do not leak through the row.
	snapshot := *u
	return &fakeRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*string)) = snapshot.ID
		*(dest[1].(*string)) = snapshot.Username
		*(dest[2].(*string)) = snapshot.PasswordHash
		*(dest[3].(**string)) = snapshot.APIKey
		*(dest[4].(*time.Time)) = snapshot.CreatedAt
		*(dest[5].(*time.Time)) = snapshot.UpdatedAt
		return nil
	}}
}
