package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dimitrije/flowdesk-api/internal/config"
	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/logger"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/google/uuid"
)

func main() {
	if len(os.Args) != 3 || (os.Args[2] != "on" && os.Args[2] != "off") {
		fmt.Println("Usage: set-embedding <platform-id> <on|off>")
		os.Exit(1)
	}

	platformID, err := uuid.Parse(os.Args[1])
	if err != nil {
		fmt.Printf("Invalid platform id: %s\n", os.Args[1])
		os.Exit(1)
	}
	enabled := os.Args[2] == "on"

	cfg, err := config.Load()
	if err != nil {
		logger.New("", "").Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := services.NewPlatformService(db).SetEmbeddingEnabled(ctx, platformID, enabled); err != nil {
		log.Fatalf("Failed to update platform %s: %v", platformID, err)
	}

	fmt.Printf("Embedding for platform %s is now %s\n", platformID, os.Args[2])
}
