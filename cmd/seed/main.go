package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/jobboardhq/jobboard-api/config"
	"github.com/jobboardhq/jobboard-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seekerHash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var seekerID string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role, is_verified)
		VALUES ($1, $2, $3, 'jobSeeker', TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Seeker", "seeker@example.com", seekerHash).Scan(&seekerID)
	if err != nil {
		log.Fatalf("failed to seed job seeker: %v", err)
	}
	fmt.Printf("seeded job seeker: id=%s email=seeker@example.com password=password123\n", seekerID)

	employerHash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var employerID string
	err = db.QueryRow(`
		INSERT INTO accounts (name, email, password_hash, role, organization_name, industry_type, is_verified)
		VALUES ($1, $2, $3, 'employer', $4, $5, TRUE)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Employer", "employer@example.com", employerHash, "Acme Corp", "Software").Scan(&employerID)
	if err != nil {
		log.Fatalf("failed to seed employer: %v", err)
	}
	fmt.Printf("seeded employer: id=%s email=employer@example.com password=password123\n", employerID)
}
