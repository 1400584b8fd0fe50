package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"gomarket/config"
	"gomarket/pkg/helpers"
)

// Seeds a demo account and a small catalog for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, name, password_hash, gender, location)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, username, "Demo User", hash, "other", "Berlin").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", id, username, password)

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		log.Fatalf("failed to count products: %v", err)
	}
	if count > 0 {
		fmt.Printf("products already present (%d), skipping catalog seed\n", count)
		return
	}

	products := []struct {
		name     string
		price    int64
		quantity int64
	}{
		{"Pear", 20, 10},
		{"Apple", 15, 25},
		{"Walnut", 45, 8},
	}
	for _, p := range products {
		if _, err := db.Exec(`INSERT INTO products (name, price, quantity) VALUES ($1, $2, $3)`,
			p.name, p.price, p.quantity); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.name, err)
		}
	}
	fmt.Printf("seeded %d products\n", len(products))
}
