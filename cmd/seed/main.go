package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/kira8888888888888888-lgtm/kill-shot-backend/config"
	"github.com/kira8888888888888888-lgtm/kill-shot-backend/pkg/helpers"
)

// Seeds a verified demo user with a funded wallet so the claim and
// withdraw flows can be exercised locally without going through
// registration and email verification.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := getenv("SEED_EMAIL", "demo@example.com")
	password := getenv("SEED_PASSWORD", "password123")
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (id, email, password_hash, verified, balances)
		VALUES ($1, $2, $3, TRUE, '{"USDT":100,"ETH":0.5,"BTC":0.001,"USDC":50,"DAI":0}')
		ON CONFLICT (email) DO UPDATE SET verified = TRUE, updated_at = now()
		RETURNING id
	`, uuid.NewString(), email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	adminEmail := getenv("SEED_ADMIN_EMAIL", "")
	if adminEmail == "" {
		return
	}
	adminPassword := getenv("SEED_ADMIN_PASSWORD", "admin-password123")
	adminHash, err := helpers.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}
	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (id, email, verified, is_admin, admin_password_hash)
		VALUES ($1, $2, TRUE, TRUE, $3)
		ON CONFLICT (email) DO UPDATE SET is_admin = TRUE, admin_password_hash = EXCLUDED.admin_password_hash, updated_at = now()
		RETURNING id
	`, uuid.NewString(), adminEmail, adminHash).Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", adminID, adminEmail)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
