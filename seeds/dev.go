// Command seed-dev loads development user fixtures into the identity
// database. Fixture passwords are hashed with the same argon2id parameters
// the service uses, so seeded accounts can log in normally.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/edvin/authd/internal/core"
	"github.com/edvin/authd/internal/platform"
)

type usersFile struct {
	Users []userEntry `yaml:"users"`
}

type userEntry struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	APIKey   string `yaml:"api_key"`
}

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	fixturePath := "seeds/users.yaml"
	if len(os.Args) > 1 {
		fixturePath = os.Args[1]
	}

	data, err := os.ReadFile(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read fixtures: %v\n", err)
		os.Exit(1)
	}

	var fixtures usersFile
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		fmt.Fprintf(os.Stderr, "parse fixtures: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	fmt.Println("Seeding identity database...")

	for _, u := range fixtures.Users {
		fmt.Printf("  Inserting user %s...\n", u.Username)

		passwordHash, err := core.HashPassword(u.Password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
			os.Exit(1)
		}

		var apiKey *string
		if u.APIKey != "" {
			apiKey = &u.APIKey
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, username, password_hash, api_key) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (username) DO NOTHING`,
			platform.NewID(), u.Username, passwordHash, apiKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert user %s: %v\n", u.Username, err)
			os.Exit(1)
		}
	}

	fmt.Println("Done.")
}
