package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/victorbrunner12/fast-api-pizzaria/config"
	"github.com/victorbrunner12/fast-api-pizzaria/internal/domain/entity"
	"github.com/victorbrunner12/fast-api-pizzaria/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	adminHash, err := helpers.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	var adminID int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, phone, gender, admin, active)
		VALUES ($1, $2, $3, $4, $5, TRUE, TRUE)
		ON CONFLICT (email) DO UPDATE SET admin = TRUE, active = TRUE
		RETURNING id
	`, "admin", cfg.AdminEmail, adminHash, "11999999999", "admin").Scan(&adminID)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s\n", adminID, cfg.AdminEmail)

	// Demo customer for local development
	demoHash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash demo password: %v", err)
	}
	var demoID int64
	err = db.QueryRow(`
		INSERT INTO users (name, email, password, phone, gender, admin, active)
		VALUES ($1, $2, $3, $4, $5, FALSE, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Maria Souza", "maria@example.com", demoHash, "11988887777", entity.DefaultGender).Scan(&demoID)
	if err != nil {
		log.Fatalf("failed to seed demo user: %v", err)
	}
	fmt.Printf("seeded demo user: id=%d email=maria@example.com password=password123\n", demoID)
}
