package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a local user account for development. Account management is
// otherwise external to this application.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	username := getenvDefault("SEED_USERNAME", "alice")
	password := getenvDefault("SEED_PASSWORD", "Demo1234!")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("failed to ping db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	query := `
	INSERT INTO users (id, username, password, created_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (username) DO UPDATE SET
	  password = EXCLUDED.password
	RETURNING id
	`

	var id string
	err = db.QueryRow(query, uuid.NewString(), username, string(hash), time.Now()).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}

	fmt.Printf("Seeded user: username=%s id=%s\n", username, id)
}

func getenvDefault(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
