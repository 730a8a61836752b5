// seed inserts the demo user and a handful of sample friends into the local
// Postgres database. Safe to re-run.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/friendlist/internal/domain"
	"github.com/ErlanBelekov/friendlist/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/friendlist/internal/password"
	"github.com/ErlanBelekov/friendlist/internal/usecase"
)

var friends = []usecase.FriendInput{
	{Name: "Bob Builder", Email: "bob@example.com", Phone: "+1 555 0101", Company: "Acme"},
	{Name: "Carol Danvers", Email: "carol@example.com", Company: "Stark Industries", Notes: "Met at the conference"},
	{Name: "Dave Grohl", Email: "dave@example.com", Phone: "+1 555 0103"},
	{Name: "Erin Brockovich", Email: "erin@example.com", Notes: "Ask about the hiking trip"},
	{Name: "Frank Ocean", Email: "frank@example.com", Company: "Blonde LLC"},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	// Seeding never issues tokens or sends mail, so no key or sender is needed.
	authUsecase := usecase.NewAuthUsecase(
		postgres.NewUserRepository(pool),
		password.NewHasher(password.DefaultCost),
		nil,
		nil,
		0,
		logger,
	)
	demo, err := authUsecase.SeedDemoUser(ctx, usecase.DemoUserName, usecase.DemoUserEmail, usecase.DemoUserPassword)
	if err != nil {
		log.Fatalf("seed demo user: %v", err)
	}

	friendUsecase := usecase.NewFriendUsecase(postgres.NewFriendRepository(pool))

	// Skip any that already exist (idempotent re-runs)
	var inserted, skipped int
	for _, in := range friends {
		_, err := friendUsecase.Create(ctx, demo.ID, in)
		switch {
		case err == nil:
			inserted++
		case errors.Is(err, domain.ErrFriendEmailTaken):
			skipped++
		default:
			log.Fatalf("insert friend %s: %v", in.Email, err)
		}
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  User:            %s / %s\n", usecase.DemoUserEmail, usecase.DemoUserPassword)
	fmt.Printf("  User ID:         %s\n", demo.ID)
	fmt.Printf("  Friends created: %d  (skipped %d already existing)\n", inserted, skipped)
	fmt.Println()
	fmt.Println("How to test (server started with STORE=postgres):")
	fmt.Println()
	fmt.Println("  Step 1 — log in as the demo user:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:3001/api/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", usecase.DemoUserEmail, usecase.DemoUserPassword)
	fmt.Println("    # → {\"message\":\"Login successful\",\"token\":\"eyJ...\",...}")
	fmt.Println()
	fmt.Println("  Step 2 — list friends:")
	fmt.Println()
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:3001/api/friends -H \"Authorization: Bearer $JWT\"")
}
