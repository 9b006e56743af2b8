package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"storefront-client/internal/config"
	"storefront-client/internal/migrate"
	"storefront-client/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, err := storage.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer store.Close()

	if err := migrate.Apply(ctx, store.Pool()); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Println("migrations applied")
}
