// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev account (dev@example.com) already exists.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	accountdomain "notes-service/internal/account/domain"
	"notes-service/internal/config"
	"notes-service/internal/db"
	notedomain "notes-service/internal/note/domain"
	"notes-service/internal/security"
	"notes-service/internal/store"
)

const (
	devEmail    = "dev@example.com"
	devPassword = "Password123"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	stores := store.New(conn)

	existing, err := stores.Accounts().GetByEmail(ctx, devEmail)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		log.Printf("seed: %s already exists, nothing to do", devEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	hashed, err := hasher.Hash([]byte(devPassword))
	if err != nil {
		log.Fatalf("seed: hash: %v", err)
	}

	now := time.Now().UTC()
	account := &accountdomain.Account{
		ID:           uuid.New().String(),
		FullName:     "Dev Account",
		PhoneNumber:  "5550001111",
		Email:        devEmail,
		PasswordHash: hashed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := stores.Accounts().Create(ctx, account); err != nil {
		log.Fatalf("seed: create account: %v", err)
	}

	for i, title := range []string{"Welcome", "Second note"} {
		note := &notedomain.Note{
			ID:        uuid.New().String(),
			Title:     title,
			Content:   "Seeded for local development.",
			AuthorID:  account.ID,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
			UpdatedAt: now.Add(time.Duration(i) * time.Second),
		}
		if err := stores.Notes().Create(ctx, note); err != nil {
			log.Fatalf("seed: create note: %v", err)
		}
	}

	log.Printf("seed: created %s with password %q and 2 notes", devEmail, devPassword)
}
