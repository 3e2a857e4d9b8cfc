// seed inserts an admin user and a small content catalog into the local dev
// database. Run: go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/avelichko/reviewhub/internal/infrastructure/postgres"
	"github.com/joho/godotenv"
)

const (
	seedUsername = "seed-admin"
	seedEmail    = "admin@seed.local"
)

type slugSpec struct {
	name string
	slug string
}

var categories = []slugSpec{
	{"Movies", "movies"},
	{"Books", "books"},
	{"Music", "music"},
}

var genres = []slugSpec{
	{"Drama", "drama"},
	{"Comedy", "comedy"},
	{"Thriller", "thriller"},
	{"Sci-Fi", "sci-fi"},
	{"Rock", "rock"},
}

type titleSpec struct {
	name     string
	year     int
	category string
	genres   []string
}

var titles = []titleSpec{
	{"The Shawshank Redemption", 1994, "movies", []string{"drama"}},
	{"Back to the Future", 1985, "movies", []string{"comedy", "sci-fi"}},
	{"Gone Girl", 2014, "movies", []string{"thriller", "drama"}},
	{"The Master and Margarita", 1967, "books", []string{"drama"}},
	{"Dune", 1965, "books", []string{"sci-fi"}},
	{"The Dark Side of the Moon", 1973, "music", []string{"rock"}},
	{"Abbey Road", 1969, "music", []string{"rock"}},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	// Upsert admin user
	var userID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (username, email, role)
		VALUES ($1, $2, 'admin')
		ON CONFLICT (username) DO UPDATE SET role = 'admin', updated_at = NOW()
		RETURNING id`,
		seedUsername, seedEmail,
	).Scan(&userID)
	if err != nil {
		log.Fatalf("upsert admin: %v", err)
	}

	// Categories and genres, idempotent on slug
	for _, c := range categories {
		if _, err := pool.Exec(ctx, `
			INSERT INTO categories (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING`,
			c.name, c.slug,
		); err != nil {
			log.Fatalf("insert category %s: %v", c.slug, err)
		}
	}
	for _, g := range genres {
		if _, err := pool.Exec(ctx, `
			INSERT INTO genres (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING`,
			g.name, g.slug,
		); err != nil {
			log.Fatalf("insert genre %s: %v", g.slug, err)
		}
	}

	var inserted, skipped int
	for _, t := range titles {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO titles (name, year, category_id)
			SELECT $1, $2, c.id FROM categories c WHERE c.slug = $3
			AND NOT EXISTS (SELECT 1 FROM titles WHERE name = $1 AND year = $2)
			RETURNING id`,
			t.name, t.year, t.category,
		).Scan(&id)
		if err != nil {
			// No row returned means the title already exists
			skipped++
			continue
		}
		for _, slug := range t.genres {
			if _, err := pool.Exec(ctx, `
				INSERT INTO title_genres (title_id, genre_id)
				SELECT $1, g.id FROM genres g WHERE g.slug = $2
				ON CONFLICT DO NOTHING`,
				id, slug,
			); err != nil {
				log.Fatalf("link genre %s: %v", slug, err)
			}
		}
		inserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:          %s (%s)\n", seedUsername, seedEmail)
	fmt.Printf("  Admin ID:       %s\n", userID)
	fmt.Printf("  Titles created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — request a confirmation code for the admin:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/signup \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"username\":\"%s\",\"email\":\"%s\"}'\n", seedUsername, seedEmail)
	fmt.Println()
	fmt.Println("    # Copy the code from the server log (ENV=local logs instead of emailing), then:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/token \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"username\":\"%s\",\"confirmation_code\":\"CODE\"}'\n", seedUsername)
	fmt.Println("    # → {\"token\":\"eyJ...\"}")
	fmt.Println()
	fmt.Println("  Step 2 — browse the catalog:")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:8080/titles")
	fmt.Println("    curl -s 'http://localhost:8080/titles?category=movies&genre=drama'")
	fmt.Println()
	fmt.Println("  Step 3 — review a title (use an ID from the listing):")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s -X POST http://localhost:8080/titles/TITLE_ID/reviews \\")
	fmt.Println("      -H \"Authorization: Bearer $JWT\" -H 'Content-Type: application/json' \\")
	fmt.Println("      -d '{\"text\":\"A classic.\",\"score\":10}'")
}
