// Seeds a login credential: go run ./cmd/seed <username> <password>
package main

import (
	"context"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"example.com/gymlog/internal/config"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <username> <password>", os.Args[0])
	}
	username, password := os.Args[1], os.Args[2]

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, password_hash) VALUES ($1, $2)
         ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash`,
		username, string(hash))
	if err != nil {
		log.Fatalf("failed to upsert user: %v", err)
	}

	log.Printf("seeded credential for %s", username)
}
