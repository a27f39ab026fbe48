// seed inserts a few test users and thoughts into the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/annaehn/happy-thoughts-api/internal/infrastructure/postgres"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// All seed users share this password for easy manual testing.
const seedPassword = "happyhappy"

type userSpec struct {
	username string
	email    string
}

var users = []userSpec{
	{"ada", "ada@test.local"},
	{"grace", "grace@test.local"},
	{"linus", "linus@test.local"},
}

var thoughts = map[string][]string{
	"ada":   {"Just proved my first theorem today!", "Coffee and punch cards, what a morning"},
	"grace": {"Found an actual moth in the relay", "Ships in harbor are safe, but that is not what ships are for"},
	"linus": {"Talk is cheap, show me the code", "Released a tiny hobby project, nothing serious"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.RunMigrations(ctx, dbURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	// Upsert users, then insert thoughts, skipping any that already exist
	// so re-runs stay idempotent.
	userIDs := make(map[string]string, len(users))
	for _, u := range users {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id`,
			u.username, u.email, string(hash),
		).Scan(&id)
		if err != nil {
			log.Fatalf("upsert user %s: %v", u.username, err)
		}
		userIDs[u.username] = id
	}

	var inserted, skipped int
	for username, messages := range thoughts {
		for _, msg := range messages {
			var id string
			err := pool.QueryRow(ctx, `
				INSERT INTO thoughts (message, user_id)
				SELECT $1, $2
				WHERE NOT EXISTS (SELECT 1 FROM thoughts WHERE message = $1)
				RETURNING id`,
				msg, userIDs[username],
			).Scan(&id)
			switch {
			case errors.Is(err, pgx.ErrNoRows):
				skipped++
			case err != nil:
				log.Fatalf("insert thought: %v", err)
			default:
				inserted++
			}
		}
	}

	log.Printf("seeded %d users, %d thoughts inserted, %d skipped (password for all: %s)",
		len(users), inserted, skipped, seedPassword)
}
