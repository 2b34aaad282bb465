package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mpetrov/inkpad/internal/server"
	"github.com/mpetrov/inkpad/internal/server/config"
)

func main() {
	// Missing .env is fine, settings fall back to env vars and flags.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
