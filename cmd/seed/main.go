// seed is a one-shot tool to create the initial admin user and a sample post.
// Run it once after migrations, with SEED_ADMIN_PASSWORD set.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"invoice-agent/internal/db"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("SEED_ADMIN_PASSWORD not set")
	}
	username := os.Getenv("SEED_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Creating admin user...")
	_, err = tx.Exec(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`, username, email, string(hash))
	if err != nil {
		log.Fatalf("Failed to upsert admin user: %v", err)
	}

	log.Println("Creating welcome post...")
	_, err = tx.Exec(ctx, `
		INSERT INTO posts (id, title, description, content, tags, type, published)
		VALUES ($1, 'Welcome', 'First post', $2, '{meta}', 'announcement', false)
	`, uuid.NewString(), "## Hello\n\nThe blog is live.")
	if err != nil {
		log.Fatalf("Failed to insert welcome post: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}
	log.Println("Seed complete.")
}
